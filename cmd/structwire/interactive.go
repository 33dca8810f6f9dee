package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/structwire/structwire/codec"
	"github.com/structwire/structwire/schema"
	"github.com/structwire/structwire/schemafile"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	c        *codec.Codec
	filename string
	order    string
	brief    string
	result   string
	types    []typeInfo
	hexInput textinput.Model
	selected int
	state    modelState
}

type typeInfo struct {
	name        string
	kind        string
	displayName string
	size        int
}

type modelState int

const (
	stateSelectType modelState = iota
	stateInputHex
	stateShowResult
)

func newInteractiveModel(filename, order string) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		order:    order,
		state:    stateSelectType,
	}
}

type loadedMsg struct {
	err   error
	c     *codec.Codec
	brief string
	types []typeInfo
}

type decodeResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadSchema
}

func (m *interactiveModel) loadSchema() tea.Msg {
	raw, err := schemafile.Load(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	endian, err := codec.ParseEndianness(m.order)
	if err != nil {
		return loadedMsg{err: err}
	}

	defs, err := schema.FromRaw(raw)
	if err != nil {
		return loadedMsg{err: err}
	}

	var types []typeInfo
	for _, name := range defs.Names() {
		def := defs.Definitions[name]
		meta := def.Meta()
		types = append(types, typeInfo{
			name:        name,
			kind:        def.Kind().String(),
			displayName: meta.DisplayName,
			size:        meta.Size,
		})
	}

	return loadedMsg{
		c:     codec.New(raw, endian),
		brief: defs.File.Brief,
		types: types,
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputHex || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(m.types)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				m.prepareHexInput()
				m.state = stateInputHex

			case stateInputHex:
				return m, m.decodeBytes

			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputHex:
				m.state = stateSelectType
			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.c = msg.c
		m.brief = msg.brief
		m.types = msg.types

	case decodeResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputHex {
		var cmd tea.Cmd
		m.hexInput, cmd = m.hexInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) prepareHexInput() {
	ti := textinput.New()
	ti.Placeholder = "02 00 4B 01"
	ti.Prompt = "bytes: "
	ti.Width = 48
	ti.Focus()
	m.hexInput = ti
}

func (m *interactiveModel) decodeBytes() tea.Msg {
	data, err := hex.DecodeString(strings.ReplaceAll(m.hexInput.Value(), " ", ""))
	if err != nil {
		return decodeResultMsg{err: fmt.Errorf("parse hex: %w", err)}
	}

	t := m.types[m.selected]
	result := m.c.Decode(data, t.name)
	out, err := json.MarshalIndent(map[string]any{t.name: result}, "", "  ")
	if err != nil {
		return decodeResultMsg{err: err}
	}
	return decodeResultMsg{result: string(out)}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.types) == 0 {
		return "Loading schema..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("structwire"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	if m.brief != "" {
		b.WriteString(" - ")
		b.WriteString(m.brief)
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectType:
		b.WriteString("Select a type to decode:\n\n")
		for i, t := range m.types {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatType(t)))
			} else {
				b.WriteString(cursor + m.formatType(t))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter decode • q quit"))

	case stateInputHex:
		t := m.types[m.selected]
		b.WriteString(fmt.Sprintf("Decoding as %s\n\n", nameStyle.Render(t.name)))
		b.WriteString(m.hexInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowResult:
		t := m.types[m.selected]
		b.WriteString(fmt.Sprintf("Decoded %s:\n\n", nameStyle.Render(t.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatType(t typeInfo) string {
	label := nameStyle.Render(t.name) + " " + kindStyle.Render(t.kind)
	if t.size > 0 {
		label += fmt.Sprintf(" %d bytes", t.size)
	}
	if t.displayName != "" {
		label += " - " + t.displayName
	}
	return label
}

func runInteractive(filename, order string) error {
	p := tea.NewProgram(newInteractiveModel(filename, order), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package schemafile loads schema documents from TOML, JSON, or YAML files
// into the raw definition map the validator and codec consume. JSON input
// may carry comments and trailing commas.
package schemafile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/jsonc"

	"github.com/structwire/structwire/errors"
	"github.com/structwire/structwire/schema"
)

// Format identifies a schema document encoding.
type Format int

const (
	TOML Format = iota
	JSON
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	}
	return "toml"
}

// FormatForPath infers the document format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".json", ".jsonc":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, errors.New(errors.PhaseLoad, errors.KindUnsupported).
		Detail("no schema format for extension %q", filepath.Ext(path)).
		Build()
}

// Load reads and decodes the schema document at path, inferring the format
// from the extension.
func Load(path string) (schema.RawDefinitions, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err,
			"reading schema file")
	}
	return Decode(data, format)
}

// Decode parses a schema document in the given format.
func Decode(data []byte, format Format) (schema.RawDefinitions, error) {
	var raw map[string]any
	var err error
	switch format {
	case TOML:
		err = toml.Unmarshal(data, &raw)
	case JSON:
		err = json.Unmarshal(jsonc.ToJSON(data), &raw)
	case YAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, errors.New(errors.PhaseLoad, errors.KindUnsupported).
			Detail("unknown schema format %d", int(format)).
			Build()
	}
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err,
			"parsing "+format.String()+" schema document")
	}
	return schema.RawDefinitions(raw), nil
}

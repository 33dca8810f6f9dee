package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/structwire/structwire/codec"
	"github.com/structwire/structwire/schema"
	"github.com/structwire/structwire/schemafile"
)

func main() {
	var (
		schemaFile   = flag.String("schema", "", "Path to schema file (.toml, .json, .yaml)")
		list         = flag.Bool("list", false, "List definitions and exit")
		typeName     = flag.String("type", "", "Definition name for -decode")
		decodeHex    = flag.String("decode", "", "Hex bytes to decode (spaces allowed)")
		encodeFile   = flag.String("encode", "", "Path to a JSON value tree to encode")
		order        = flag.String("order", "big", "Byte order: big or little")
		reservedFill = flag.Uint("reserved-fill", 0x00, "Fill byte for reserved regions")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
		verbose      = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *schemaFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: structwire -schema <file> -list")
		fmt.Fprintln(os.Stderr, "       structwire -schema <file> -type <name> -decode <hex>")
		fmt.Fprintln(os.Stderr, "       structwire -schema <file> -encode <values.json>")
		fmt.Fprintln(os.Stderr, "       structwire -schema <file> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		codec.SetLogger(log)
	}

	if *interactive {
		if err := runInteractive(*schemaFile, *order); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*schemaFile, *typeName, *decodeHex, *encodeFile, *order, byte(*reservedFill), *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(schemaFile, typeName, decodeHex, encodeFile, orderStr string, fill byte, listOnly bool) error {
	raw, err := schemafile.Load(schemaFile)
	if err != nil {
		return err
	}

	endian, err := codec.ParseEndianness(orderStr)
	if err != nil {
		return err
	}

	defs, err := schema.FromRaw(raw)
	if err != nil {
		// Decoding still works against an invalid schema; encoding and
		// listing need the validated tree.
		if decodeHex == "" {
			return err
		}
		fmt.Fprintf(os.Stderr, "Warning: schema does not validate: %v\n", err)
	}

	if defs != nil {
		fmt.Printf("Schema: %s\n", schemaFile)
		if defs.File.Brief != "" {
			fmt.Printf("Brief: %s\n", defs.File.Brief)
		}
		fmt.Printf("Definitions: %d\n", len(defs.Definitions))
	}

	if listOnly {
		if defs == nil {
			return fmt.Errorf("cannot list an invalid schema")
		}
		fmt.Printf("\nDefined types:\n")
		for _, name := range defs.Names() {
			def := defs.Definitions[name]
			meta := def.Meta()
			fmt.Printf("  %-24s %-10s %3d bytes  %s\n",
				name, def.Kind(), meta.Size, meta.DisplayName)
		}
		return nil
	}

	c := codec.New(raw, endian).WithReservedFill(fill)

	if decodeHex != "" {
		if typeName == "" {
			return fmt.Errorf("-decode requires -type")
		}
		data, err := hex.DecodeString(strings.ReplaceAll(decodeHex, " ", ""))
		if err != nil {
			return fmt.Errorf("parse hex: %w", err)
		}
		result := c.Decode(data, typeName)
		out, err := json.MarshalIndent(map[string]any{typeName: result}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", out)
		return nil
	}

	if encodeFile != "" {
		// Value trees share the schema documents' markup formats.
		value, err := schemafile.Load(encodeFile)
		if err != nil {
			return err
		}
		data, err := c.Encode(map[string]any(value))
		if err != nil {
			return err
		}
		fmt.Printf("\n% X\n", data)
		return nil
	}

	return fmt.Errorf("nothing to do: pass -list, -decode, -encode, or -i")
}

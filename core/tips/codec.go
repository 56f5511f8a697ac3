// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tips

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrUnknownFormat is returned for a serialization format or file extension
// that is neither JSON nor YAML.
var ErrUnknownFormat = errors.New("unknown tip table format")

// ErrDuplicateKey is returned when a document defines a context twice.
var ErrDuplicateKey = errors.New("context defined more than once")

// Format is a serialization format for tip tables.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. "yml" is accepted as an alias of "yaml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Encode writes the collection's table to w.
//
// The layout is an object keyed by context, each holding an array of tips:
//
//	{"projectCreation": [{"title": "...", "content": "...", "closable": true, "link": {"label": "...", "url": "..."}}]}
func Encode(w io.Writer, c *Collection, f Format) error {
	table := c.Table()

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(table); err != nil {
			return fmt.Errorf("failed to encode tip table as JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(true)).Encode(table); err != nil {
			return fmt.Errorf("failed to encode tip table as YAML: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	return nil
}

// Decode reads a tip table from r and validates it.
//
// Fields other than the documented ones are rejected.
func Decode(r io.Reader, f Format) (*Collection, error) {
	var table Table

	switch f {
	case FormatJSON:
		var err error

		table, err = decodeJSONTable(r)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON tip table: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r, yaml.Strict()).Decode(&table); err != nil {
			return nil, fmt.Errorf("failed to parse YAML tip table: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	return New(table)
}

// decodeJSONTable reads the top-level object key by key so that a repeated
// context is an error, as it is for YAML.
func decodeJSONTable(r io.Reader) (Table, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if tok == nil {
		return nil, nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object keyed by context, got %v", tok)
	}

	table := Table{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a context key, got %v", tok)
		}

		if _, seen := table[key]; seen {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}

		var seq []Tip

		if err := dec.Decode(&seq); err != nil {
			return nil, fmt.Errorf("context %q: %w", key, err)
		}

		// A null sequence still counts as defined.
		if seq == nil {
			seq = []Tip{}
		}

		table[key] = seq
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return table, nil
}

package configstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ReadObject decodes the JSON object at path. A missing or blank file yields
// an empty map. Numbers are kept as json.Number so integers and floats are
// written back exactly as they were read.
func ReadObject(path string) (map[string]any, error) {
	data, err := readIfExists(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ParseError{Path: path, Format: "json", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: path, Format: "json", Err: errors.New("trailing data after top-level value")}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ParseError{Path: path, Format: "json", Err: fmt.Errorf("top-level value is %s, want object", jsonKind(v))}
	}
	return obj, nil
}

// WriteObject serializes obj with two-space indentation and a trailing
// newline and writes it atomically. Keys already in the file keep their
// order; new keys follow in sorted order.
func WriteObject(path string, obj map[string]any) error {
	existing, err := readIfExists(path)
	if err != nil {
		return err
	}

	var compact bytes.Buffer
	if err := encodeOrdered(&compact, obj, scanOrder(existing)); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	buf.WriteByte('\n')

	mode, err := existingMode(path)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, buf.Bytes(), mode)
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

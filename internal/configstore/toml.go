package configstore

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ReadFlat decodes the TOML document at path into a map. A missing file
// yields an empty map. Tables and non-string values are preserved as decoded
// so rewriting the file keeps keys letsyolo does not manage.
func ReadFlat(path string) (map[string]any, error) {
	data, err := readIfExists(path)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if _, err := toml.Decode(string(data), &out); err != nil {
		return nil, &ParseError{Path: path, Format: "toml", Err: err}
	}
	return out, nil
}

// WriteFlat encodes doc as TOML and writes it atomically.
func WriteFlat(path string, doc map[string]any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	mode, err := existingMode(path)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, buf.Bytes(), mode)
}

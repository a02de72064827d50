package configstore

import (
	"bytes"
	"encoding/json"
	"sort"
)

// keyOrder records the order object keys appear in a JSON document, so a
// rewrite keeps the user's layout. Keys added later are appended sorted.
type keyOrder struct {
	keys   []string
	fields map[string]*keyOrder
	items  []*keyOrder
}

func (o *keyOrder) field(key string) *keyOrder {
	if o == nil {
		return nil
	}
	return o.fields[key]
}

func (o *keyOrder) item(i int) *keyOrder {
	if o == nil || i >= len(o.items) {
		return nil
	}
	return o.items[i]
}

// sorted returns the keys of m: known keys first in document order, then the
// rest alphabetically.
func (o *keyOrder) sorted(m map[string]any) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	if o != nil {
		for _, k := range o.keys {
			if _, ok := m[k]; ok && !seen[k] {
				out = append(out, k)
				seen[k] = true
			}
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// scanOrder walks data's tokens. Unreadable input yields nil, which sorts
// every object alphabetically.
func scanOrder(data []byte) *keyOrder {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	o, err := scanValue(json.NewDecoder(bytes.NewReader(data)))
	if err != nil {
		return nil
	}
	return o
}

func scanValue(dec *json.Decoder) (*keyOrder, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch tok {
	case json.Delim('{'):
		o := &keyOrder{fields: map[string]*keyOrder{}}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := kt.(string)
			child, err := scanValue(dec)
			if err != nil {
				return nil, err
			}
			if _, dup := o.fields[key]; !dup {
				o.keys = append(o.keys, key)
			}
			o.fields[key] = child
		}
		_, err = dec.Token()
		return o, err
	case json.Delim('['):
		o := &keyOrder{}
		for dec.More() {
			child, err := scanValue(dec)
			if err != nil {
				return nil, err
			}
			o.items = append(o.items, child)
		}
		_, err = dec.Token()
		return o, err
	}
	return nil, nil
}

// encodeOrdered writes v as compact JSON, ordering object keys by o.
func encodeOrdered(buf *bytes.Buffer, v any, o *keyOrder) error {
	switch x := v.(type) {
	case map[string]any:
		buf.WriteByte('{')
		for i, k := range o.sorted(x) {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeLeaf(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeOrdered(buf, x[k], o.field(k)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeOrdered(buf, item, o.item(i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return encodeLeaf(buf, v)
	}
	return nil
}

func encodeLeaf(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode always terminates with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

package toggle

import (
	"fmt"
	"strings"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/configstore"
	"github.com/michaeljabbour/letsyolo/internal/schema"
)

// strategy implements the autonomy setting for one config format. enable and
// disable report whether the file was written.
type strategy interface {
	read(path string, def agents.Definition) (bool, error)
	enable(path string, def agents.Definition) (bool, error)
	disable(path string, def agents.Definition) (bool, error)
}

var strategies = map[agents.Format]strategy{
	agents.FormatJSON: jsonStrategy{},
	agents.FormatTOML: tomlStrategy{},
}

// checkShape validates the keys enable is about to write against the agent's
// schema. A violation is a ParseError so callers treat it like any other
// unreadable config. Disable never checks shape; it only removes sentinels.
func checkShape(path string, def agents.Definition, doc map[string]any) error {
	if def.Schema == "" {
		return nil
	}
	res, err := schema.Validate(def.Schema, doc)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	if err := res.Err(); err != nil {
		return &configstore.ParseError{Path: path, Format: def.Format.String(), Err: err}
	}
	return nil
}

// jsonStrategy sets a dotted key path inside a nested JSON object.
type jsonStrategy struct{}

func (jsonStrategy) read(path string, def agents.Definition) (bool, error) {
	doc, err := configstore.ReadObject(path)
	if err != nil {
		return false, err
	}
	for _, s := range def.Settings {
		v, ok := lookupPath(doc, s.Path())
		if !ok || v != s.Sentinel {
			return false, nil
		}
	}
	return true, nil
}

func (jsonStrategy) enable(path string, def agents.Definition) (bool, error) {
	doc, err := configstore.ReadObject(path)
	if err != nil {
		return false, err
	}
	if err := checkShape(path, def, doc); err != nil {
		return false, err
	}

	changed := false
	for _, s := range def.Settings {
		if v, ok := lookupPath(doc, s.Path()); ok && v == s.Sentinel {
			continue
		}
		if err := setPath(doc, s.Path(), s.Sentinel); err != nil {
			return false, &configstore.ParseError{Path: path, Format: "json", Err: err}
		}
		changed = true
	}
	if !changed {
		return false, nil
	}
	return true, configstore.WriteObject(path, doc)
}

func (jsonStrategy) disable(path string, def agents.Definition) (bool, error) {
	doc, err := configstore.ReadObject(path)
	if err != nil {
		return false, err
	}

	changed := false
	for _, s := range def.Settings {
		// A value the user set themselves is not ours to remove.
		if v, ok := lookupPath(doc, s.Path()); !ok || v != s.Sentinel {
			continue
		}
		deletePath(doc, s.Path())
		changed = true
	}
	if !changed {
		return false, nil
	}
	return true, configstore.WriteObject(path, doc)
}

// tomlStrategy sets top-level keys in a flat TOML table.
type tomlStrategy struct{}

func (tomlStrategy) read(path string, def agents.Definition) (bool, error) {
	doc, err := configstore.ReadFlat(path)
	if err != nil {
		return false, err
	}
	for _, s := range def.Settings {
		if doc[s.Key] != s.Sentinel {
			return false, nil
		}
	}
	return true, nil
}

func (tomlStrategy) enable(path string, def agents.Definition) (bool, error) {
	doc, err := configstore.ReadFlat(path)
	if err != nil {
		return false, err
	}
	if err := checkShape(path, def, doc); err != nil {
		return false, err
	}

	changed := false
	for _, s := range def.Settings {
		if doc[s.Key] == s.Sentinel {
			continue
		}
		doc[s.Key] = s.Sentinel
		changed = true
	}
	if !changed {
		return false, nil
	}
	return true, configstore.WriteFlat(path, doc)
}

func (tomlStrategy) disable(path string, def agents.Definition) (bool, error) {
	doc, err := configstore.ReadFlat(path)
	if err != nil {
		return false, err
	}

	// Keys are removed independently so a half-enabled file is cleaned up too.
	changed := false
	for _, s := range def.Settings {
		if doc[s.Key] != s.Sentinel {
			continue
		}
		delete(doc, s.Key)
		changed = true
	}
	if !changed {
		return false, nil
	}
	return true, configstore.WriteFlat(path, doc)
}

// lookupPath returns the string at a key path. Non-string leaves report
// ok=false.
func lookupPath(doc map[string]any, path []string) (string, bool) {
	cur := doc
	for i, key := range path {
		v, ok := cur[key]
		if !ok {
			return "", false
		}
		if i == len(path)-1 {
			s, ok := v.(string)
			return s, ok
		}
		next, ok := v.(map[string]any)
		if !ok {
			return "", false
		}
		cur = next
	}
	return "", false
}

// setPath assigns value at path, creating intermediate objects. It refuses to
// replace an existing non-object on the way down.
func setPath(doc map[string]any, path []string, value string) error {
	cur := doc
	for i, key := range path[:len(path)-1] {
		v, ok := cur[key]
		if !ok {
			next := map[string]any{}
			cur[key] = next
			cur = next
			continue
		}
		next, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("key %q is not an object", strings.Join(path[:i+1], "."))
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
	return nil
}

// deletePath removes the leaf at path and then prunes any parent object the
// removal left empty.
func deletePath(doc map[string]any, path []string) {
	parents := []map[string]any{doc}
	cur := doc
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return
		}
		parents = append(parents, next)
		cur = next
	}
	delete(cur, path[len(path)-1])

	for i := len(parents) - 1; i > 0; i-- {
		if len(parents[i]) > 0 {
			return
		}
		delete(parents[i-1], path[i-1])
	}
}

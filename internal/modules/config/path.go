package config

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

var (
	configType    = reflect.TypeOf(Config{})
	marshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
)

// splitPath breaks "section.subsection.leaf" into segments.
func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, &InvalidPathError{Path: path, Reason: "empty path"}
	}
	segs := strings.Split(path, ".")
	for _, s := range segs {
		if s == "" {
			return nil, &InvalidPathError{Path: path, Reason: "empty segment"}
		}
	}
	return segs, nil
}

// resolveSchema walks the Config type along the path. Struct-shaped nodes only
// accept their declared fields, map-shaped nodes accept any key, slices accept
// numeric indexes. It reports whether the final segment names a map key, which
// is the only place Set may create a new leaf.
func resolveSchema(path string, segs []string) (mapLeaf bool, err error) {
	t := configType
	for i, seg := range segs {
		if t.Implements(marshalerType) {
			return false, &InvalidPathError{Path: path, Reason: "path continues past a value at " + strings.Join(segs[:i], ".")}
		}
		switch t.Kind() {
		case reflect.Struct:
			f, ok := jsonField(t, seg)
			if !ok {
				return false, &InvalidPathError{Path: path, Reason: "unknown field " + strconv.Quote(seg)}
			}
			t = f.Type
			mapLeaf = false
		case reflect.Map:
			t = t.Elem()
			mapLeaf = true
		case reflect.Slice:
			if _, err := strconv.Atoi(seg); err != nil {
				return false, &InvalidPathError{Path: path, Reason: "expected index, got " + strconv.Quote(seg)}
			}
			t = t.Elem()
			mapLeaf = false
		default:
			return false, &InvalidPathError{Path: path, Reason: "path continues past a value at " + strings.Join(segs[:i], ".")}
		}
	}
	return mapLeaf, nil
}

// jsonField finds the struct field serialised under name.
func jsonField(t reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

// toTree renders the configuration into its JSON-shaped generic form.
// Numbers are kept as json.Number so money survives the round trip exactly.
func toTree(cfg *Config) (map[string]interface{}, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var tree map[string]interface{}
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// fromTree decodes a generic tree back into the typed configuration.
func fromTree(tree map[string]interface{}) (*Config, error) {
	b, err := json.Marshal(tree)
	if err != nil {
		return nil, err
	}
	return decode(b)
}

// decode parses a serialised configuration, rejecting unknown fields.
func decode(b []byte) (*Config, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// child steps one segment into a generic node.
func child(node interface{}, seg string) (interface{}, bool) {
	switch n := node.(type) {
	case map[string]interface{}:
		v, ok := n[seg]
		return v, ok
	case []interface{}:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(n) {
			return nil, false
		}
		return n[i], true
	}
	return nil, false
}

// lookup resolves path against a tree.
func lookup(tree map[string]interface{}, path string) (interface{}, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if _, err := resolveSchema(path, segs); err != nil {
		return nil, err
	}
	var node interface{} = tree
	for i, seg := range segs {
		next, ok := child(node, seg)
		if !ok {
			return nil, &InvalidPathError{Path: path, Reason: "missing segment " + strconv.Quote(strings.Join(segs[:i+1], "."))}
		}
		node = next
	}
	return node, nil
}

// assign replaces the leaf at path inside tree. Every parent must already
// exist; a new leaf may only be created under a map-shaped parent.
func assign(tree map[string]interface{}, path string, value interface{}) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}
	mapLeaf, err := resolveSchema(path, segs)
	if err != nil {
		return err
	}
	var parent interface{} = tree
	for i, seg := range segs[:len(segs)-1] {
		next, ok := child(parent, seg)
		if !ok || next == nil {
			return &InvalidPathError{Path: path, Reason: "missing segment " + strconv.Quote(strings.Join(segs[:i+1], "."))}
		}
		parent = next
	}
	leaf := segs[len(segs)-1]
	switch p := parent.(type) {
	case map[string]interface{}:
		if _, exists := p[leaf]; !exists && !mapLeaf {
			return &InvalidPathError{Path: path, Reason: "unknown field " + strconv.Quote(leaf)}
		}
		p[leaf] = value
	case []interface{}:
		i, err := strconv.Atoi(leaf)
		if err != nil || i < 0 || i >= len(p) {
			return &InvalidPathError{Path: path, Reason: "index out of range"}
		}
		p[i] = value
	default:
		return &InvalidPathError{Path: path, Reason: "parent is not a container"}
	}
	return nil
}

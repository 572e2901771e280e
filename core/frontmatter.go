package core

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FrontMatter is an insertion-ordered string-keyed mapping. Absent values
// (nil or empty string) are dropped at Set time, so a serialized block
// never contains a null entry.
type FrontMatter struct {
	keys []string
	vals map[string]any
}

// NewFrontMatter returns an empty front-matter mapping.
func NewFrontMatter() *FrontMatter {
	return &FrontMatter{vals: make(map[string]any)}
}

// Set records key -> value, keeping first-insertion order. Nil values and
// empty strings are ignored; setting an existing key overwrites its value
// without moving it.
func (f *FrontMatter) Set(key string, value any) {
	if value == nil {
		return
	}
	if s, ok := value.(string); ok && s == "" {
		return
	}
	if _, ok := f.vals[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.vals[key] = value
}

// Get returns the value for key and whether it is present.
func (f *FrontMatter) Get(key string) (any, bool) {
	v, ok := f.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (f *FrontMatter) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Len returns the number of entries.
func (f *FrontMatter) Len() int {
	return len(f.keys)
}

// MarshalYAML emits the entries as a YAML mapping in insertion order.
func (f *FrontMatter) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range f.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode := &yaml.Node{}
		if err := valNode.Encode(f.vals[k]); err != nil {
			return nil, fmt.Errorf("encoding front-matter key %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// NormalizedDocument is the platform-independent result of processing one
// raw post: everything the output writer needs to materialize a file.
type NormalizedDocument struct {
	Slug        string
	PostID      int64
	Date        string // YYYY-MM-DD
	FrontMatter *FrontMatter
	Content     string
}

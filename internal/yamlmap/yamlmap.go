// Package yamlmap is a wrapper of gopkg.in/yaml.v3 for interacting
// with yaml data as if it were a map.
package yamlmap

import (
	"errors"

	"gopkg.in/yaml.v3"
)

const (
	modified = "modifed"
)

type Map struct {
	*yaml.Node
}

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidYaml   = errors.New("invalid yaml")
	ErrInvalidFormat = errors.New("invalid format")
)

func StringValue(value string) *Map {
	return &Map{&yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: value,
	}}
}

func MapValue() *Map {
	return &Map{&yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}}
}

func NullValue() *Map {
	return &Map{&yaml.Node{
		Kind: yaml.ScalarNode,
		Tag:  "!!null",
	}}
}

func Unmarshal(data []byte) (*Map, error) {
	var root yaml.Node
	err := yaml.Unmarshal(data, &root)
	if err != nil {
		return nil, ErrInvalidYaml
	}
	if len(root.Content) == 0 {
		return MapValue(), nil
	}
	if root.Content[0].Kind != yaml.MappingNode {
		return nil, ErrInvalidFormat
	}
	return &Map{root.Content[0]}, nil
}

func Marshal(m *Map) ([]byte, error) {
	return yaml.Marshal(m.Node)
}

func (m *Map) AddEntry(key string, value *Map) {
	keyNode := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: key,
	}
	m.Content = append(m.Content, keyNode, value.Node)
	m.SetModified()
}

func (m *Map) Empty() bool {
	return m.Content == nil || len(m.Content) == 0
}

func (m *Map) FindEntry(key string) (*Map, error) {
	// Note: The content slice of a yamlMap looks like [key1, value1, key2, value2, ...].
	// When iterating over the content slice we only want to compare the keys of the yamlMap.
	for i, v := range m.Content {
		if i%2 != 0 {
			continue
		}
		if v.Value == key {
			if i+1 < len(m.Content) {
				return &Map{m.Content[i+1]}, nil
			}
		}
	}
	return nil, ErrNotFound
}

func (m *Map) Keys() []string {
	// Note: The content slice of a yamlMap looks like [key1, value1, key2, value2, ...].
	// When iterating over the content slice we only want to select the keys of the yamlMap.
	keys := []string{}
	for i, v := range m.Content {
		if i%2 != 0 {
			continue
		}
		keys = append(keys, v.Value)
	}
	return keys
}

func (m *Map) RemoveEntry(key string) error {
	newContent := []*yaml.Node{}
	var found bool
	for i := 0; i < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			found = true
			continue
		}
		newContent = append(newContent, m.Content[i])
		if i+1 < len(m.Content) {
			newContent = append(newContent, m.Content[i+1])
		}
	}
	if !found {
		return ErrNotFound
	}
	m.Content = newContent
	m.SetModified()
	return nil
}

func (m *Map) SetEntry(key string, value *Map) {
	for i := 0; i < len(m.Content); i += 2 {
		if m.Content[i].Value == key && i+1 < len(m.Content) {
			m.Content[i+1] = value.Node
			m.SetModified()
			return
		}
	}
	m.AddEntry(key, value)
	m.SetModified()
}

// IsModified reports whether the map, or any nested map, was changed since it
// was read or last marked unmodified.
func (m *Map) IsModified() bool {
	if m.Kind == yaml.MappingNode && m.Value == modified {
		return true
	}
	for _, v := range m.Content {
		if v.Kind == yaml.MappingNode && (&Map{v}).IsModified() {
			return true
		}
	}
	return false
}

// SetModified marks the map node. The marker lives in Value, which yaml.v3
// ignores for mapping nodes when encoding.
func (m *Map) SetModified() {
	if m.Kind == yaml.MappingNode {
		m.Value = modified
	}
}

func (m *Map) SetUnmodified() {
	if m.Kind == yaml.MappingNode {
		m.Value = ""
	}
	for _, v := range m.Content {
		if v.Kind == yaml.MappingNode {
			(&Map{v}).SetUnmodified()
		}
	}
}

func (m *Map) IsNull() bool {
	return m.Kind == yaml.ScalarNode && m.Tag == "!!null"
}

func (m *Map) String() string {
	data, err := Marshal(m)
	if err != nil {
		return ""
	}
	return string(data)
}

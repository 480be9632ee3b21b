package answers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Value is a single answer: enum or free text, a list of enum strings, or
// absent (the zero Value).
type Value struct {
	text   string
	list   []string
	isList bool
}

// Text returns a scalar answer.
func Text(s string) Value {
	return Value{text: s}
}

// List returns a list answer. An empty call still yields a list.
func List(items ...string) Value {
	return Value{list: slices.Clone(items), isList: true}
}

// IsList reports whether the answer holds a list.
func (v Value) IsList() bool { return v.isList }

// IsZero reports whether the answer is absent.
func (v Value) IsZero() bool { return !v.isList && v.text == "" }

// Text returns the scalar text, or "" for list answers.
func (v Value) Text() string {
	if v.isList {
		return ""
	}
	return v.text
}

// Items returns a copy of the list, or nil for scalar answers.
func (v Value) Items() []string {
	if !v.isList {
		return nil
	}
	return slices.Clone(v.list)
}

func (v Value) String() string {
	if v.isList {
		return fmt.Sprintf("%v", v.list)
	}
	return v.text
}

// UnmarshalYAML accepts scalars and sequences of scalars.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*v = Value{}
			return nil
		}
		*v = Text(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("decode list answer: %w", err)
		}
		*v = List(items...)
		return nil
	default:
		return fmt.Errorf("answer at line %d: expected scalar or list", node.Line)
	}
}

// UnmarshalJSON accepts strings, arrays of strings, and bare literals
// (numbers and booleans are kept as their literal text).
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*v = Value{}
	case b[0] == '[':
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("decode list answer: %w", err)
		}
		*v = List(items...)
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode text answer: %w", err)
		}
		*v = Text(s)
	case b[0] == '{':
		return fmt.Errorf("answer must be a string or a list of strings")
	default:
		*v = Text(string(b))
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isList {
		items := v.list
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	if v.text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(v.text)
}

func (v Value) MarshalYAML() (any, error) {
	if v.isList {
		return v.list, nil
	}
	if v.text == "" {
		return nil, nil
	}
	return v.text, nil
}

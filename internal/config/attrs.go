package config

import (
	"bytes"
	"encoding/json"
	"strings"
)

// AttributeSet is a nested tree of attribute groups and scalar leaves,
// keyed by attribute name. Groups such as `constraints` or
// `costs.monetary` are nested AttributeSets; everything else is a leaf.
type AttributeSet map[string]Attribute

// Attribute is a single node in an attribute tree: either a scalar leaf or
// a nested group. Exactly one of Value and Group is set.
type Attribute struct {
	Value *Value
	Group AttributeSet
}

// LeafAttr wraps a scalar value as an attribute node.
func LeafAttr(v Value) Attribute {
	return Attribute{Value: &v}
}

// GroupAttr wraps a nested set as an attribute node.
func GroupAttr(g AttributeSet) Attribute {
	return Attribute{Group: g}
}

// IsGroup reports whether the attribute is a nested group.
func (a Attribute) IsGroup() bool {
	return a.Group != nil
}

// Lookup resolves a dotted path such as "costs.monetary.e_cap" to a leaf
// value. It returns false if any path segment is missing or if the path
// terminates on a group rather than a leaf.
func (s AttributeSet) Lookup(path string) (Value, bool) {
	segments := strings.Split(path, ".")
	current := s
	for i, segment := range segments {
		attr, ok := current[segment]
		if !ok {
			return Value{}, false
		}
		if i == len(segments)-1 {
			if attr.Value == nil {
				return Value{}, false
			}
			return *attr.Value, true
		}
		if attr.Group == nil {
			return Value{}, false
		}
		current = attr.Group
	}
	return Value{}, false
}

// Copy returns a deep copy of the set. Resolved attribute sets must never
// alias the raw definitions they were merged from.
func (s AttributeSet) Copy() AttributeSet {
	if s == nil {
		return nil
	}
	out := make(AttributeSet, len(s))
	for key, attr := range s {
		if attr.IsGroup() {
			out[key] = GroupAttr(attr.Group.Copy())
			continue
		}
		out[key] = LeafAttr(*attr.Value)
	}
	return out
}

// Equal deep-compares two attribute sets.
func (s AttributeSet) Equal(o AttributeSet) bool {
	if len(s) != len(o) {
		return false
	}
	for key, attr := range s {
		other, ok := o[key]
		if !ok {
			return false
		}
		if attr.IsGroup() != other.IsGroup() {
			return false
		}
		if attr.IsGroup() {
			if !attr.Group.Equal(other.Group) {
				return false
			}
			continue
		}
		if !attr.Value.Equal(*other.Value) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the attribute as either its scalar value or its
// nested group object.
func (a Attribute) MarshalJSON() ([]byte, error) {
	if a.IsGroup() {
		return json.Marshal(a.Group)
	}
	return json.Marshal(a.Value)
}

// Render returns the set as indented JSON, primarily for CLI output and
// log-friendly dumps.
func (s AttributeSet) Render() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return buf.String(), nil
}

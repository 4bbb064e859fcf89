package schema

import "errors"

var (
	// ErrBadKeySpec when a key spec element is neither a property name nor a list of property names
	ErrBadKeySpec = errors.New("key spec must be a property name or a list of property names")
)

// KeySpec is one desired index/constraint key: either a single property
// name or an ordered compound of property names.
type KeySpec struct {
	Properties []string
	Compound   bool
}

// Key is ctor for a single property KeySpec
func Key(name string) KeySpec {
	return KeySpec{Properties: []string{name}}
}

// CompoundKey is ctor for a compound KeySpec
func CompoundKey(names ...string) KeySpec {
	return KeySpec{Properties: names, Compound: true}
}

// Wire converts the KeySpec to its loose wire form:
// a bare property name, or a list of property names.
func (ks KeySpec) Wire() interface{} {
	if !ks.Compound && len(ks.Properties) == 1 {
		return ks.Properties[0]
	}
	out := make([]interface{}, len(ks.Properties))
	for i, p := range ks.Properties {
		out[i] = p
	}
	return out
}

func parseKeySpec(v interface{}) (ks KeySpec, err error) {
	switch kv := v.(type) {
	case string:
		ks = Key(kv)
	case []string:
		ks = CompoundKey(kv...)
	case []interface{}:
		names := make([]string, len(kv))
		for i, e := range kv {
			name, ok := e.(string)
			if !ok {
				err = ErrBadKeySpec
				return
			}
			names[i] = name
		}
		ks = CompoundKey(names...)
	default:
		err = ErrBadKeySpec
	}
	return
}

// ParseSpec converts a loose wire form spec into KeySpec form.
func ParseSpec(in map[string][]interface{}) (out map[string][]KeySpec, err error) {
	out = make(map[string][]KeySpec, len(in))
	for subject, keys := range in {
		specs := make([]KeySpec, len(keys))
		for i, v := range keys {
			specs[i], err = parseKeySpec(v)
			if err != nil {
				return
			}
		}
		out[subject] = specs
	}
	return
}

// copySpec makes an owned working copy, caller input is never mutated
func copySpec(in map[string][]KeySpec) map[string][]KeySpec {
	if in == nil {
		return map[string][]KeySpec{}
	}
	out := make(map[string][]KeySpec, len(in))
	for subject, keys := range in {
		out[subject] = append([]KeySpec{}, keys...)
	}
	return out
}

func propertiesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// removeSingle removes the first single KeySpec matching property by value.
func removeSingle(list []KeySpec, property string) (out []KeySpec, removed bool) {
	out = list
	for i, ks := range list {
		if !ks.Compound && len(ks.Properties) == 1 && ks.Properties[0] == property {
			out = append(list[:i:i], list[i+1:]...)
			removed = true
			return
		}
	}
	return
}

// removeCompound removes the first compound KeySpec matching properties by ordered list equality.
func removeCompound(list []KeySpec, properties []string) (out []KeySpec, removed bool) {
	out = list
	for i, ks := range list {
		if ks.Compound && propertiesEqual(ks.Properties, properties) {
			out = append(list[:i:i], list[i+1:]...)
			removed = true
			return
		}
	}
	return
}

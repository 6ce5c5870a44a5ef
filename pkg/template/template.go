// Package template provides immutable, structurally comparable recipes
// for constructing component subtrees.
//
// A Template carries an instance name, a component type selector,
// arbitrary scalar configuration fields, and ordered child templates.
// Construction deep-copies the configuration, so a template never
// changes after New returns; structural equality and a canonical
// fingerprint make templates safe cache and identity keys.
package template

import (
	"reflect"

	"github.com/go-ember/ember/pkg/geometry"
)

// Template describes a node subtree. Immutable after construction.
type Template struct {
	name   string
	typ    string
	config map[string]any
	subs   []*Template
}

// New creates a template. name is the instance name the constructed
// node will carry, typ selects the component type (empty means the
// factory derives it from name), config holds scalar configuration
// fields, and subs are the child templates in order. The config map is
// deep-copied; the subs are shared, which is safe because templates are
// immutable.
func New(name, typ string, config map[string]any, subs ...*Template) *Template {
	t := &Template{
		name: name,
		typ:  typ,
	}
	if len(config) > 0 {
		t.config = make(map[string]any, len(config))
		for k, v := range config {
			t.config[k] = copyValue(v)
		}
	}
	if len(subs) > 0 {
		t.subs = make([]*Template, len(subs))
		copy(t.subs, subs)
	}
	return t
}

// copyValue deep-copies the nested maps and slices a configuration
// value may contain. Scalars are returned as-is.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}

// Getters tolerate a nil receiver, which reads as an empty template.
// Behaviors can therefore configure themselves against a node that was
// configured without a template.

// Name returns the instance name.
func (t *Template) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Type returns the component type selector, which may be empty.
func (t *Template) Type() string {
	if t == nil {
		return ""
	}
	return t.typ
}

// Subcomponents returns the child templates in order. The returned
// slice is a copy; the templates themselves are shared and immutable.
func (t *Template) Subcomponents() []*Template {
	if t == nil || len(t.subs) == 0 {
		return nil
	}
	out := make([]*Template, len(t.subs))
	copy(out, t.subs)
	return out
}

// Config returns a deep copy of the configuration fields.
func (t *Template) Config() map[string]any {
	if t == nil || len(t.config) == 0 {
		return nil
	}
	out := make(map[string]any, len(t.config))
	for k, v := range t.config {
		out[k] = copyValue(v)
	}
	return out
}

// Value returns the raw configuration value for key.
func (t *Template) Value(key string) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.config[key]
	return v, ok
}

// String returns the configuration value for key as a string.
func (t *Template) String(key string) (string, bool) {
	v, ok := t.Value(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the configuration value for key as a bool.
func (t *Template) Bool(key string) (bool, bool) {
	v, ok := t.Value(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Float64 returns the configuration value for key as a float64,
// coercing the integer types decoders commonly produce.
func (t *Template) Float64(key string) (float64, bool) {
	v, ok := t.Value(key)
	if !ok {
		return 0, false
	}
	return toFloat64(v)
}

// Int returns the configuration value for key as an int.
func (t *Template) Int(key string) (int, bool) {
	f, ok := t.Float64(key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Vec3 returns the configuration value for key as a Vec3. The value
// must be a sequence of three numbers.
func (t *Template) Vec3(key string) (geometry.Vec3, bool) {
	v, ok := t.Value(key)
	if !ok {
		return geometry.Vec3{}, false
	}
	seq, ok := v.([]any)
	if !ok || len(seq) != 3 {
		return geometry.Vec3{}, false
	}
	var out geometry.Vec3
	for i, item := range seq {
		f, ok := toFloat64(item)
		if !ok {
			return geometry.Vec3{}, false
		}
		out[i] = f
	}
	return out, true
}

// Color returns the configuration value for key as a Color. Accepts a
// packed ARGB integer or a "#RRGGBB"/"#AARRGGBB" string.
func (t *Template) Color(key string) (geometry.Color, bool) {
	v, ok := t.Value(key)
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case string:
		return parseHexColor(val)
	default:
		f, ok := toFloat64(v)
		if !ok {
			return 0, false
		}
		return geometry.Color(uint32(f)), true
	}
}

// Keys returns the configuration keys in unspecified order.
func (t *Template) Keys() []string {
	if t == nil || len(t.config) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.config))
	for k := range t.config {
		out = append(out, k)
	}
	return out
}

// Equal reports structural equality: same name, type, configuration
// fields and recursively equal subcomponents in the same order.
func (t *Template) Equal(o *Template) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if t.name != o.name || t.typ != o.typ {
		return false
	}
	if len(t.subs) != len(o.subs) {
		return false
	}
	if !reflect.DeepEqual(t.config, o.config) {
		return false
	}
	for i := range t.subs {
		if !t.subs[i].Equal(o.subs[i]) {
			return false
		}
	}
	return true
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func parseHexColor(s string) (geometry.Color, bool) {
	if len(s) == 0 || s[0] != '#' {
		return 0, false
	}
	digits := s[1:]
	var packed uint64
	for _, c := range digits {
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, false
		}
		packed = packed<<4 | d
	}
	switch len(digits) {
	case 6:
		// Opaque when no alpha channel is given.
		return geometry.Color(uint32(packed) | 0xFF000000), true
	case 8:
		return geometry.Color(uint32(packed)), true
	default:
		return 0, false
	}
}

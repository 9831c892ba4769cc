package control

import (
	"fmt"

	"github.com/mitchellh/copystructure"

	"github.com/go-drift/controlkit/pkg/errors"
)

// Settings configures a control at construction.
type Settings map[string]any

// Cloner is implemented by setting values that need a custom deep copy.
// It is honored at the top level and inside nested Settings, map[string]any,
// map[any]any and []any values. Types carrying unexported state must
// implement it; other values are copied field by field and lose that state.
type Cloner interface {
	CloneValue() any
}

// Clone returns a deep copy that shares no mutable structure with s.
// Maps, slices, arrays and pointers of any type are copied recursively.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = cloneValue(k, v)
	}
	return out
}

// String returns the string stored under key, or "".
func (s Settings) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Int returns the integer stored under key and whether it was present.
func (s Settings) Int(key string) (int, bool) {
	switch v := s[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func cloneValue(key string, v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case Cloner:
		return v.CloneValue()
	case Settings:
		return v.Clone()
	case map[string]any:
		if v == nil {
			return v
		}
		return map[string]any(Settings(v).Clone())
	case map[any]any:
		if v == nil {
			return v
		}
		out := make(map[any]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(key, e)
		}
		return out
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(key, e)
		}
		return out
	}

	out, err := copystructure.Copy(v)
	if err != nil {
		errors.Report(&errors.Error{
			Op:   "control.Settings.Clone",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("setting %q: %w", key, err),
		})
		return v
	}
	return out
}

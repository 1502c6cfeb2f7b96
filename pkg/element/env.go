package element

import (
	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/ident"
)

// Env carries values from the render driver down to elements built with
// Build. It is immutable; With returns a modified copy.
type Env struct {
	// Viewport is the size of the whole render area.
	Viewport geom.Size
	// Path is the identity path of the element being built or measured. It
	// lets builders key external state to the element.
	Path ident.Path

	values map[any]any
}

// With returns a copy of env where key is associated with value.
func (env Env) With(key, value any) Env {
	values := make(map[any]any, len(env.values)+1)
	for k, v := range env.values {
		values[k] = v
	}
	values[key] = value
	env.values = values
	return env
}

// Value returns the value associated with key.
func (env Env) Value(key any) (any, bool) {
	v, ok := env.values[key]
	return v, ok
}

package keymap

import "strconv"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action
}

// NewResolver creates a resolver from bindings. A key bound twice keeps the
// last binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{bindings: make(map[string]Action)}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// JumpTenth returns the tenth of the duration a jump key selects.
func JumpTenth(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, true
}

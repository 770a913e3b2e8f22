package ecs

// GetComponent returns the first component on e assignable to T.
func GetComponent[T any](e *Entity) (T, bool) {
	var zero T
	if e == nil {
		return zero, false
	}
	for _, c := range e.components {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	return zero, false
}

// FindComponents returns every component in the scene assignable to T.
func FindComponents[T any](s *Scene) []T {
	if s == nil {
		return nil
	}
	var out []T
	for _, e := range s.entities {
		for _, c := range e.components {
			if v, ok := c.(T); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// Package kind provides the semantic kind-label set consulted during
// feature filtering. A nil *Set means "no set configured", which callers
// treat differently from an empty set.
package kind

type Set struct {
	labels map[string]struct{}
}

// NewSet builds a set from kind labels. Returns nil when labels is empty so
// that an unconfigured list stays distinguishable from a configured one.
func NewSet(labels ...string) *Set {
	if len(labels) == 0 {
		return nil
	}
	s := &Set{labels: make(map[string]struct{}, len(labels))}
	for _, l := range labels {
		s.labels[l] = struct{}{}
	}
	return s
}

// Has reports exact membership of a single label.
func (s *Set) Has(label string) bool {
	if s == nil {
		return false
	}
	_, ok := s.labels[label]
	return ok
}

// HasOrIntersects reports whether any of the given labels is in the set.
func (s *Set) HasOrIntersects(labels ...string) bool {
	if s == nil {
		return false
	}
	for _, l := range labels {
		if _, ok := s.labels[l]; ok {
			return true
		}
	}
	return false
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.labels)
}

package optcfg

import "sort"

type value struct {
	scalar string
	list   []string
	isList bool
}

// OptionSet maps case-sensitive option names to a scalar string or an ordered
// sequence of strings. It is mutated during resolution and treated as
// read-only once handed to an invocation builder.
type OptionSet struct {
	values map[string]value
}

// NewOptionSet returns an empty option set.
func NewOptionSet() *OptionSet {
	return &OptionSet{values: make(map[string]value)}
}

// Set assigns a scalar value, replacing any previous value for name.
func (s *OptionSet) Set(name, val string) {
	s.values[name] = value{scalar: val}
}

// Append extends the sequence stored under name. A previously set scalar
// becomes the first element of the sequence.
func (s *OptionSet) Append(name, val string) {
	existing, ok := s.values[name]
	switch {
	case !ok:
		s.values[name] = value{list: []string{val}, isList: true}
	case existing.isList:
		existing.list = append(existing.list, val)
		s.values[name] = existing
	case !truthy(existing.scalar):
		s.values[name] = value{list: []string{val}, isList: true}
	default:
		s.values[name] = value{list: []string{existing.scalar, val}, isList: true}
	}
}

// Get returns the scalar value stored under name. Sequences report their
// first element so callers that expect a single value stay deterministic.
func (s *OptionSet) Get(name string) (string, bool) {
	v, ok := s.values[name]
	if !ok {
		return "", false
	}
	if v.isList {
		if len(v.list) == 0 {
			return "", false
		}
		return v.list[0], true
	}
	return v.scalar, true
}

// Values returns every value stored under name in source order. Scalars are
// returned as a one-element slice; absent names return nil.
func (s *OptionSet) Values(name string) []string {
	v, ok := s.values[name]
	if !ok {
		return nil
	}
	if v.isList {
		out := make([]string, len(v.list))
		copy(out, v.list)
		return out
	}
	return []string{v.scalar}
}

// Has reports whether name is set to a truthy value. Absent names, empty
// scalars, false-valued scalars, and empty sequences all count as unset.
func (s *OptionSet) Has(name string) bool {
	v, ok := s.values[name]
	if !ok {
		return false
	}
	if v.isList {
		return len(v.list) > 0
	}
	return truthy(v.scalar)
}

// Names returns the set's option names in sorted order.
func (s *OptionSet) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many options are set, truthy or not.
func (s *OptionSet) Len() int {
	return len(s.values)
}

func truthy(v string) bool {
	switch v {
	case "", "False", "false":
		return false
	default:
		return true
	}
}

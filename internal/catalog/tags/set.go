package tags

import "sort"

// Set: множество канонических тегов.
type Set map[string]struct{}

// NewSet builds a set from the given tags.
func NewSet(tags ...string) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

func (s Set) Add(tag string) { s[tag] = struct{}{} }

func (s Set) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Sorted возвращает теги в алфавитном порядке.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

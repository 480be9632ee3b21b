package skills

// OrderedSet is an insertion-ordered set of skill ids. The first insertion
// of an id fixes its position; later insertions are no-ops.
type OrderedSet struct {
	items []string
	seen  map[string]struct{}
}

// NewOrderedSet returns an empty set.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{seen: make(map[string]struct{})}
}

// Add appends ids not already present and reports how many were new.
func (s *OrderedSet) Add(ids ...string) int {
	added := 0
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := s.seen[id]; ok {
			continue
		}
		s.seen[id] = struct{}{}
		s.items = append(s.items, id)
		added++
	}
	return added
}

// Contains reports whether id has been added.
func (s *OrderedSet) Contains(id string) bool {
	_, ok := s.seen[id]
	return ok
}

// Len returns the number of ids.
func (s *OrderedSet) Len() int { return len(s.items) }

// Items returns a copy of the ids in insertion order.
func (s *OrderedSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

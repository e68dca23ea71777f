package play

// FoundSet tracks which items were found. Only membership matters.
type FoundSet map[string]struct{}

func NewFoundSet() FoundSet {
	return make(FoundSet)
}

// Add inserts id and reports whether it was not already present.
func (s FoundSet) Add(id string) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

func (s FoundSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s FoundSet) Len() int {
	return len(s)
}

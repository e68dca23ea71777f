package play

import "time"

// State is the mutable part of a play session.
type State struct {
	StartedAt time.Time
	Input     string
	Found     FoundSet
	LastHit   *Hit
}

func NewState(startedAt time.Time) *State {
	return &State{StartedAt: startedAt, Found: NewFoundSet()}
}

// Submit checks raw against the index. Only a hit changes the found set and
// the last hit. The input buffer is cleared whatever the outcome.
func (s *State) Submit(idx Index, raw string, at time.Time) Outcome {
	s.Input = ""

	key := Normalize(raw)
	if key == "" {
		return Outcome{Kind: OutcomeEmpty}
	}
	id, ok := idx.lookupKey(key)
	if !ok {
		return Outcome{Kind: OutcomeMiss}
	}
	if !s.Found.Add(id) {
		return Outcome{Kind: OutcomeAlreadyFound, ItemID: id}
	}

	answer := idx.Answer(id)
	s.LastHit = &Hit{ItemID: id, Answer: answer, At: at}
	return Outcome{Kind: OutcomeHit, ItemID: id, Answer: answer}
}

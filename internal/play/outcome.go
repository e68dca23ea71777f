package play

import (
	"encoding/json"
	"time"
)

// OutcomeKind is the result class of one submission.
type OutcomeKind int

const (
	OutcomeEmpty OutcomeKind = iota + 1
	OutcomeMiss
	OutcomeAlreadyFound
	OutcomeHit
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeEmpty:
		return "empty"
	case OutcomeMiss:
		return "miss"
	case OutcomeAlreadyFound:
		return "already_found"
	case OutcomeHit:
		return "hit"
	}
	return "unknown"
}

func (k OutcomeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Outcome describes what a submission did. ItemID is set for hits and
// already-found answers; Answer is the canonical text and is only set on hits.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	ItemID string      `json:"itemId,omitempty"`
	Answer string      `json:"answer,omitempty"`
}

// Hit is the most recent successful submission, kept for UI feedback only.
type Hit struct {
	ItemID string    `json:"itemId"`
	Answer string    `json:"answer"`
	At     time.Time `json:"at"`
}

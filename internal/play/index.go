package play

import "trivia-service/internal/domain"

// Index resolves normalized answers to quiz item ids for a single quiz.
// It is built once per session and only read afterwards.
type Index struct {
	keys    map[string]string // normalized answer -> item id
	answers map[string]string // item id -> canonical answer
}

// BuildIndex maps the canonical answer and every alias of each item to the
// item id, in quiz order. A later key overwrites an earlier one, across items
// and within one item's aliases alike. Keys that normalize to "" are skipped.
func BuildIndex(quiz domain.Quiz) Index {
	idx := Index{
		keys:    make(map[string]string),
		answers: make(map[string]string, len(quiz.Items)),
	}
	for _, item := range quiz.Items {
		idx.answers[item.ID] = item.Answer
		if key := Normalize(item.Answer); key != "" {
			idx.keys[key] = item.ID
		}
		for _, alias := range item.Aliases {
			if key := Normalize(alias); key != "" {
				idx.keys[key] = item.ID
			}
		}
	}
	return idx
}

// lookupKey resolves an already normalized answer to its item id.
func (i Index) lookupKey(key string) (string, bool) {
	id, ok := i.keys[key]
	return id, ok
}

// Answer returns the canonical answer of an item.
func (i Index) Answer(itemID string) string {
	return i.answers[itemID]
}

// Len is the number of accepted keys.
func (i Index) Len() int {
	return len(i.keys)
}

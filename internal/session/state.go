// Package session holds the flashcard and multiple-choice quiz state
// machines. Sessions are single-threaded: callers serialize access.
package session

import (
	"math/rand"
	"time"
)

// State is the lifecycle of a session: Idle -> InProgress -> Complete.
type State int

const (
	Idle State = iota
	InProgress
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InProgress:
		return "in_progress"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// NewRand returns a random source for a session. A zero seed uses the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// shuffle is an in-place Fisher-Yates permutation driven by rng.
func shuffle[T any](rng *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

package tone

import (
	"math/rand/v2"
	"sync"
)

// Selector picks an index in [0, n) for a list of n > 0 phrases.
type Selector interface {
	Pick(n int) int
}

// FirstSelector always picks the first phrase.
type FirstSelector struct{}

// Pick implements Selector.
func (FirstSelector) Pick(int) int { return 0 }

// SeededSelector picks reproducibly from a fixed seed. It is safe for concurrent use.
type SeededSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSelector creates a SeededSelector.
func NewSeededSelector(seed uint64) *SeededSelector {
	return &SeededSelector{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Pick implements Selector.
func (s *SeededSelector) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// RandomSelector picks uniformly at random.
type RandomSelector struct{}

// Pick implements Selector.
func (RandomSelector) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return rand.IntN(n)
}

func pick(sel Selector, phrases []string) string {
	if len(phrases) == 0 {
		return ""
	}
	i := sel.Pick(len(phrases))
	if i < 0 || i >= len(phrases) {
		i = 0
	}
	return phrases[i]
}

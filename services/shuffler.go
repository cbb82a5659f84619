package services

import (
	"math/rand"
	"time"

	"housing-trainer/models"
)

// Shuffler randomly permutes a Dataset in place so row order does not bias
// stochastic gradient descent.
type Shuffler struct {
	rng *rand.Rand
}

// NewShuffler uses rng as its random source.
func NewShuffler(rng *rand.Rand) *Shuffler {
	return &Shuffler{rng: rng}
}

// NewSeededShuffler seeds a new source. A zero seed draws one from the clock.
func NewSeededShuffler(seed int64) *Shuffler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewShuffler(rand.New(rand.NewSource(seed)))
}

// Shuffle permutes ds in place.
func (s *Shuffler) Shuffle(ds models.Dataset) {
	s.rng.Shuffle(len(ds), func(i, j int) {
		ds[i], ds[j] = ds[j], ds[i]
	})
}

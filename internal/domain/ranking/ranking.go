// Package ranking orders rating accumulators by computed scores.
package ranking

import (
	"slices"

	"github.com/okian/sofirank/internal/domain/model"
)

// Default ranking configuration constants.
const (
	defaultPersonalWeight = 10
	defaultMinRatings     = 1000
)

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithPersonalWeight sets how much a user's own mean outweighs the global mean
// in the blended score.
func WithPersonalWeight(weight float64) Option {
	return func(r *Ranker) {
		if weight > 0 {
			r.personalWeight = weight
		}
	}
}

// WithMinRatings sets the popularity threshold used by Popular.
func WithMinRatings(n uint32) Option {
	return func(r *Ranker) {
		r.minRatings = n
	}
}

// GlobalLookup resolves the global accumulator of a player.
type GlobalLookup func(playerID uint32) (model.Accumulator, bool)

// Ranker sorts accumulators. Ties keep the order in which they were found.
type Ranker struct {
	personalWeight float64
	minRatings     uint32
}

// New creates a ranker with configuration options.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		personalWeight: defaultPersonalWeight,
		minRatings:     defaultMinRatings,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mean returns the accumulator's mean rating, 0 when it has no ratings.
func Mean(acc model.Accumulator) float64 {
	return acc.Mean()
}

// BlendedScore is the global mean plus the weighted personal mean.
func (r *Ranker) BlendedScore(global, personal model.Accumulator) float64 {
	return Mean(global) + r.personalWeight*Mean(personal)
}

// ByGlobalMean sorts global accumulators in place by mean, highest first.
func (r *Ranker) ByGlobalMean(accs []model.Accumulator) {
	byMean(accs)
}

func byMean(accs []model.Accumulator) {
	Sort(accs, func(a, b model.Accumulator) bool {
		return Mean(a) > Mean(b)
	})
}

// ByBlendedScore sorts a user's accumulators in place: first by the user's
// own mean, then by blended score. The first pass decides the order of
// blended-score ties. Players without a global accumulator blend with 0.
func (r *Ranker) ByBlendedScore(personal []model.Accumulator, global GlobalLookup) {
	byMean(personal)

	type scored struct {
		acc   model.Accumulator
		score float64
	}
	items := make([]scored, len(personal))
	for i, acc := range personal {
		g, _ := global(acc.PlayerID)
		items[i] = scored{acc: acc, score: r.BlendedScore(g, acc)}
	}
	Sort(items, func(a, b scored) bool {
		return a.score > b.score
	})
	for i := range items {
		personal[i] = items[i].acc
	}
}

// Qualifies reports whether acc meets the popularity threshold.
func (r *Ranker) Qualifies(acc model.Accumulator) bool {
	return acc.Count >= r.minRatings
}

// Popular returns the accumulators that meet the popularity threshold,
// preserving their order.
func (r *Ranker) Popular(accs []model.Accumulator) []model.Accumulator {
	out := make([]model.Accumulator, 0, len(accs))
	for _, acc := range accs {
		if r.Qualifies(acc) {
			out = append(out, acc)
		}
	}
	return out
}

// Sort is a stable comparison sort driven by less.
func Sort[T any](s []T, less func(a, b T) bool) {
	slices.SortStableFunc(s, func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})
}

// SelectionSort sorts s in place with O(n²) comparisons. It is not stable.
func SelectionSort[T any](s []T, less func(a, b T) bool) {
	for i := range s {
		best := i
		for j := i + 1; j < len(s); j++ {
			if less(s[j], s[best]) {
				best = j
			}
		}
		s[i], s[best] = s[best], s[i]
	}
}

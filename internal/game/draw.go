package game

import "math"

// RNG is the single source of randomness used by the engine.
// *math/rand.Rand satisfies it.
type RNG interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// DrawWeighted samples up to k distinct cards from pool without
// replacement. Each pick is proportional to Weight against s. Cards
// weighing 0 (failed gate, modifier at 0) are excluded from the draw; only
// when every card weighs 0 does the draw fall back to uniform picks over
// the whole pool. Running out of drawable cards yields a short hand.
func DrawWeighted(pool []*Card, k int, s Status, rng RNG) []*Card {
	unique := uniqueByID(pool)
	var remaining []*Card
	var weights []float64
	for _, c := range unique {
		if w := Weight(c, s); w > 0 {
			remaining = append(remaining, c)
			weights = append(weights, w)
		}
	}
	if len(remaining) == 0 {
		remaining = unique
		weights = make([]float64, len(unique))
	}

	var drawn []*Card
	for len(drawn) < k && len(remaining) > 0 {
		idx := pickWeighted(weights, rng)
		drawn = append(drawn, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		weights = append(weights[:idx], weights[idx+1:]...)
	}
	return drawn
}

// pickWeighted returns an index into weights by cumulative-weight walk.
// Weights whose sum overflows are scaled by the largest one first, which
// keeps the picks proportional.
func pickWeighted(weights []float64, rng RNG) int {
	total, largest := 0.0, 0.0
	for _, w := range weights {
		total += w
		largest = math.Max(largest, w)
	}
	if math.IsInf(total, 1) || total > math.MaxFloat64/2 {
		scaled := make([]float64, len(weights))
		total = 0
		for i, w := range weights {
			scaled[i] = w / largest
			total += scaled[i]
		}
		weights = scaled
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 && w > 0 {
			return i
		}
	}
	// Rounding left a sliver; take the last drawable card.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

// SampleUniform picks up to k cards from hand uniformly without
// replacement, preserving the order produced by the shuffle.
func SampleUniform(hand []*Card, k int, rng RNG) []*Card {
	shuffled := uniqueByID(hand)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if k > len(shuffled) {
		k = len(shuffled)
	}
	if k < 0 {
		k = 0
	}
	return shuffled[:k]
}

// uniqueByID copies cards, dropping nil entries and repeated ids.
func uniqueByID(cards []*Card) []*Card {
	seen := make(map[string]bool, len(cards))
	out := make([]*Card, 0, len(cards))
	for _, c := range cards {
		if c == nil || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}

package recall

import (
	"math"
	"math/rand"
)

// Fuzzing spreads review dates so cards scheduled together do not stay
// clustered forever. The spread widens with the interval length.
var fuzzBands = []struct {
	start, end, factor float64
}{
	{start: 2.5, end: 7.0, factor: 0.15},
	{start: 7.0, end: 20.0, factor: 0.10},
	{start: 20.0, end: math.Inf(1), factor: 0.05},
}

// fuzzDelta is the half-width of the fuzz window around interval:
// 1.0 plus each band's factor times the portion of the interval inside it.
func fuzzDelta(interval float64) float64 {
	d := 1.0
	for _, b := range fuzzBands {
		if interval <= b.start {
			break
		}
		d += b.factor * (math.Min(interval, b.end) - b.start)
	}
	return d
}

// applyFuzz draws a randomized interval from the fuzz window. Intervals under
// 2.5 days are too short to fuzz and pass through unchanged.
func applyFuzz(interval, maxIvl int, rng *rand.Rand) int {
	ivl := float64(interval)
	if ivl < 2.5 {
		return interval
	}
	delta := fuzzDelta(ivl)

	lo := max(2, int(math.Round(ivl-delta)))
	hi := min(int(math.Round(ivl+delta)), maxIvl)
	lo = min(lo, hi)

	fuzzed := lo + int(math.Round(rng.Float64()*float64(hi-lo+1)))
	return min(fuzzed, maxIvl)
}

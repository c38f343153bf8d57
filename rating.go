package recall

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Rating represents the assessed recall quality of one review.
type Rating int

const (
	Again Rating = iota + 1 // Failure to recall.
	Hard                    // Recalled with significant difficulty.
	Good                    // Recalled with some effort.
	Easy                    // Recalled effortlessly.
)

var (
	ratingNames  = [...]string{Again: "Again", Hard: "Hard", Good: "Good", Easy: "Easy"}
	ratingByName = map[string]Rating{
		"Again": Again,
		"Hard":  Hard,
		"Good":  Good,
		"Easy":  Easy,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Rating(0)
	_ json.Marshaler           = Rating(0)
	_ json.Unmarshaler         = (*Rating)(nil)
	_ encoding.TextMarshaler   = Rating(0)
	_ encoding.TextUnmarshaler = (*Rating)(nil)
)

// String returns the name of the rating ("Again", "Hard", "Good", "Easy").
// For invalid values it returns "Rating(n)".
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// IsValid reports whether r is a valid rating (Again through Easy).
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	v, ok := ratingByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidRating, text)
	}
	*r = v
	return nil
}

// MarshalJSON implements json.Marshaler. Rating serializes as a JSON string.
func (r Rating) MarshalJSON() ([]byte, error) {
	text, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRating, data)
	}
	return r.UnmarshalText([]byte(s))
}

// RatingThresholds holds the latency-ratio cutoffs used by DeriveRating.
// The ratio is responseTime / expectedTime. The defaults are heuristic
// starting points, not fitted constants; tune them per deployment.
type RatingThresholds struct {
	FastRatio     float64 `json:"fast_ratio"`      // zero → 0.8
	SlowRatio     float64 `json:"slow_ratio"`      // zero → 1.2
	VerySlowRatio float64 `json:"very_slow_ratio"` // zero → 1.5
}

// DefaultRatingThresholds returns the default latency cutoffs (0.8, 1.2, 1.5).
func DefaultRatingThresholds() RatingThresholds {
	return RatingThresholds{FastRatio: 0.8, SlowRatio: 1.2, VerySlowRatio: 1.5}
}

func (t RatingThresholds) withDefaults() RatingThresholds {
	d := DefaultRatingThresholds()
	if t.FastRatio == 0 {
		t.FastRatio = d.FastRatio
	}
	if t.SlowRatio == 0 {
		t.SlowRatio = d.SlowRatio
	}
	if t.VerySlowRatio == 0 {
		t.VerySlowRatio = d.VerySlowRatio
	}
	return t
}

// DeriveRating maps correctness plus response latency to a Rating.
// An incorrect answer is always Again. A correct answer grades by the ratio
// of actual to expected response time: fast → Easy, normal → Good,
// slow → Hard. A very slow correct answer that also needed a cue
// (cueLevel > 0) counts as Again, since recall was not self-initiated.
func DeriveRating(correct bool, responseTimeMs, expectedMs, cueLevel int, th RatingThresholds) Rating {
	if !correct {
		return Again
	}
	if expectedMs <= 0 {
		return Good
	}
	th = th.withDefaults()
	ratio := float64(responseTimeMs) / float64(expectedMs)
	switch {
	case ratio <= th.FastRatio:
		return Easy
	case ratio <= th.SlowRatio:
		return Good
	case ratio <= th.VerySlowRatio:
		return Hard
	case cueLevel > 0:
		return Again
	default:
		return Hard
	}
}

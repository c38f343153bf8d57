package recall

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRatingString(t *testing.T) {
	tests := []struct {
		r    Rating
		want string
	}{
		{Again, "Again"},
		{Hard, "Hard"},
		{Good, "Good"},
		{Easy, "Easy"},
		{Rating(0), "Rating(0)"},
		{Rating(5), "Rating(5)"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("Rating(%d).String() = %q, want %q", int(tt.r), got, tt.want)
		}
	}
}

func TestRatingJSONRoundTrip(t *testing.T) {
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", r, err)
		}
		var back Rating
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != r {
			t.Errorf("round trip %s → %s", r, back)
		}
	}
}

func TestRatingInvalidJSON(t *testing.T) {
	var r Rating
	if err := json.Unmarshal([]byte(`"Meh"`), &r); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("error = %v, want ErrInvalidRating", err)
	}
	if err := json.Unmarshal([]byte(`3`), &r); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("numeric rating error = %v, want ErrInvalidRating", err)
	}
	if _, err := Rating(9).MarshalJSON(); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("marshal invalid error = %v, want ErrInvalidRating", err)
	}
}

// --- DeriveRating ---

func TestDeriveRatingIncorrect(t *testing.T) {
	if got := DeriveRating(false, 100, 2000, 0, RatingThresholds{}); got != Again {
		t.Errorf("incorrect answer → %s, want Again", got)
	}
}

func TestDeriveRatingByLatency(t *testing.T) {
	th := DefaultRatingThresholds()
	tests := []struct {
		name     string
		rtMs     int
		cueLevel int
		want     Rating
	}{
		{"fast", 1000, 0, Easy},          // ratio 0.5
		{"boundary-fast", 1600, 0, Easy}, // ratio 0.8
		{"normal", 2000, 0, Good},        // ratio 1.0
		{"slow", 2800, 0, Hard},          // ratio 1.4
		{"very-slow", 3400, 0, Hard},     // ratio 1.7, no cue
		{"very-slow-cued", 3400, 1, Again},
	}
	for _, tt := range tests {
		if got := DeriveRating(true, tt.rtMs, 2000, tt.cueLevel, th); got != tt.want {
			t.Errorf("%s: DeriveRating = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestDeriveRatingNoExpectedTime(t *testing.T) {
	// Without a latency baseline, a correct answer is simply Good.
	if got := DeriveRating(true, 5000, 0, 0, RatingThresholds{}); got != Good {
		t.Errorf("DeriveRating without baseline = %s, want Good", got)
	}
}

func TestDeriveRatingCustomThresholds(t *testing.T) {
	th := RatingThresholds{FastRatio: 0.5, SlowRatio: 1.0, VerySlowRatio: 2.0}
	if got := DeriveRating(true, 1400, 2000, 0, th); got != Good {
		t.Errorf("ratio 0.7 under custom cutoffs = %s, want Good", got)
	}
}

package recall

import (
	"math"
	"testing"
)

const epsilon = 1e-4

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %.6f, want %.6f (diff %.6f)", name, got, want, math.Abs(got-want))
	}
}

// --- retrievability ---

func TestRetrievabilityAtZero(t *testing.T) {
	a := newAlgo(DefaultParameters)
	// R(0, S) = e^0 = 1 exactly.
	got := a.retrievability(0, 5.0)
	if got != 1.0 {
		t.Errorf("R(0, 5) = %.6f, want exactly 1", got)
	}
}

func TestRetrievabilityAtStability(t *testing.T) {
	a := newAlgo(DefaultParameters)
	// R(S, S) = e^-1.
	got := a.retrievability(5.0, 5.0)
	assertFloat(t, "R(S, S)", got, math.Exp(-1))
}

func TestRetrievabilityTenDaysStabilityTen(t *testing.T) {
	a := newAlgo(DefaultParameters)
	// The canonical scenario: S=10, elapsed=10 → R = e^-1 ≈ 0.3679.
	got := a.retrievability(10.0, 10.0)
	assertFloat(t, "R(10, 10)", got, 0.3679)
}

func TestRetrievabilityStrictlyDecreasing(t *testing.T) {
	a := newAlgo(DefaultParameters)
	prev := a.retrievability(0, 5.0)
	for _, elapsed := range []float64{0.5, 1, 2, 5, 10, 30, 100} {
		r := a.retrievability(elapsed, 5.0)
		if r >= prev {
			t.Errorf("R(%.1f, 5) = %.6f not below R at previous elapsed %.6f", elapsed, r, prev)
		}
		prev = r
	}
}

// --- initStability / initDifficulty ---

func TestInitStability(t *testing.T) {
	a := newAlgo(DefaultParameters)
	// S₀(G) = clamp_s(w[G-1])
	for _, tt := range []struct {
		r    Rating
		want float64
	}{
		{Again, DefaultParameters[0]},
		{Hard, DefaultParameters[1]},
		{Good, DefaultParameters[2]},
		{Easy, DefaultParameters[3]},
	} {
		got := a.initStability(tt.r)
		assertFloat(t, "S0("+tt.r.String()+")", got, math.Max(tt.want, 0.001))
	}
}

func TestInitStabilityOrdering(t *testing.T) {
	a := newAlgo(DefaultParameters)
	// Higher ratings start with higher stability.
	if !(a.initStability(Again) < a.initStability(Hard) &&
		a.initStability(Hard) < a.initStability(Good) &&
		a.initStability(Good) < a.initStability(Easy)) {
		t.Error("initial stability should increase with rating")
	}
}

func TestInitDifficulty(t *testing.T) {
	a := newAlgo(DefaultParameters)
	// D₀(G) = w[4] - w[5]*(G-3): Again hardest, Easy easiest.
	assertFloat(t, "D0(Good)", a.initDifficulty(Good, true), DefaultParameters[4])
	if a.initDifficulty(Again, true) <= a.initDifficulty(Easy, true) {
		t.Error("Again should start more difficult than Easy")
	}
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		d := a.initDifficulty(r, true)
		if d < 1 || d > 10 {
			t.Errorf("D0(%s) = %.4f outside [1, 10]", r, d)
		}
	}
}

// --- intervalDays ---

func TestIntervalDaysInvertsCurve(t *testing.T) {
	a := newAlgo(DefaultParameters)
	// R(intervalDays(S, dr), S) = dr when no clamp binds.
	for _, s := range []float64{10, 50, 200} {
		ivl := a.intervalDays(s, 0.9, 36500)
		assertFloat(t, "round trip", a.retrievability(ivl, s), 0.9)
	}
}

func TestIntervalDaysClamps(t *testing.T) {
	a := newAlgo(DefaultParameters)
	if got := a.intervalDays(0.001, 0.9, 36500); got != 1 {
		t.Errorf("tiny stability interval = %.4f, want floor 1", got)
	}
	if got := a.intervalDays(1e9, 0.9, 365); got != 365 {
		t.Errorf("huge stability interval = %.4f, want cap 365", got)
	}
}

// --- nextDifficulty ---

func TestNextDifficultyDirection(t *testing.T) {
	a := newAlgo(DefaultParameters)
	d := 5.0
	if a.nextDifficulty(d, Again) <= d {
		t.Error("Again should raise difficulty")
	}
	if a.nextDifficulty(d, Easy) >= d {
		t.Error("Easy should lower difficulty")
	}
}

func TestNextDifficultyClamped(t *testing.T) {
	a := newAlgo(DefaultParameters)
	for i := 0; i < 50; i++ {
		d := a.nextDifficulty(10, Again)
		if d < 1 || d > 10 {
			t.Fatalf("difficulty %.4f escaped [1, 10]", d)
		}
	}
}

// --- nextStability ---

func TestRecallStabilityNeverDecreases(t *testing.T) {
	a := newAlgo(DefaultParameters)
	for _, rating := range []Rating{Hard, Good, Easy} {
		for _, r := range []float64{0.2, 0.5, 0.9, 1.0} {
			s := 10.0
			next := a.nextStability(5.0, s, r, rating)
			if next < s {
				t.Errorf("stability fell %.4f → %.4f on %s at R=%.1f", s, next, rating, r)
			}
		}
	}
}

func TestRecallStabilityGrowsWithRating(t *testing.T) {
	a := newAlgo(DefaultParameters)
	hard := a.nextStability(5.0, 10.0, 0.5, Hard)
	good := a.nextStability(5.0, 10.0, 0.5, Good)
	easy := a.nextStability(5.0, 10.0, 0.5, Easy)
	if !(hard < good && good < easy) {
		t.Errorf("stability growth not ordered: hard=%.4f good=%.4f easy=%.4f", hard, good, easy)
	}
}

func TestForgetStabilityDrops(t *testing.T) {
	a := newAlgo(DefaultParameters)
	s := 20.0
	next := a.nextStability(5.0, s, 0.4, Again)
	if next >= s {
		t.Errorf("lapse should drop stability, got %.4f from %.4f", next, s)
	}
	if next <= 0 {
		t.Errorf("stability %.4f must stay positive", next)
	}
}

func TestScenarioGoodReviewGrowsStability(t *testing.T) {
	a := newAlgo(DefaultParameters)
	// Card {difficulty:5, stability:10}, reviewed Good after 10 days.
	r := a.retrievability(10, 10)
	assertFloat(t, "pre-update R", r, 0.3679)
	next := a.nextStability(5.0, 10.0, r, Good)
	if next <= 10.0 {
		t.Errorf("post-update stability %.4f should exceed 10", next)
	}
}

// --- clamps ---

func TestClamps(t *testing.T) {
	assertFloat(t, "clampS floor", clampS(-5), 0.001)
	assertFloat(t, "clampS passthrough", clampS(3.7), 3.7)
	assertFloat(t, "clampD low", clampD(0), 1)
	assertFloat(t, "clampD high", clampD(42), 10)
}

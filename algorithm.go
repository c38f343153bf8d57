package recall

import "math"

// algo holds the 17 memory-model parameters behind the forgetting-curve math.
type algo struct {
	w [17]float64
}

func newAlgo(p [17]float64) algo {
	return algo{w: p}
}

// retrievability computes R(t, S) = e^(-t/S).
// Zero elapsed time yields exactly 1.
func (a *algo) retrievability(elapsedDays, stability float64) float64 {
	if elapsedDays <= 0 {
		return 1
	}
	return math.Exp(-elapsedDays / stability)
}

// initStability returns the initial stability S₀(G) = clamp_s(w[G-1]).
func (a *algo) initStability(r Rating) float64 {
	return clampS(a.w[r-1])
}

// initDifficulty returns the initial difficulty D₀(G) = w[4] - w[5]*(G - 3).
// When clamp is true, the result is clamped to [1, 10].
func (a *algo) initDifficulty(r Rating, clamp bool) float64 {
	d := a.w[4] - a.w[5]*(float64(r)-3)
	if clamp {
		return clampD(d)
	}
	return d
}

// intervalDays inverts the forgetting curve for the desired retention:
// R = e^(-t/S)  →  t = -S · ln(R).
// The result is clamped to [1, maxIvl] days.
func (a *algo) intervalDays(stability, desiredRetention float64, maxIvl int) float64 {
	ivl := -stability * math.Log(desiredRetention)
	if ivl < 1 {
		return 1
	}
	if ivl > float64(maxIvl) {
		return float64(maxIvl)
	}
	return ivl
}

// nextDifficulty computes the updated difficulty after a review.
// ΔD = -w[6] * (G - 3)
// D' = D + (10 - D) * ΔD / 9     (linear damping)
// D'' = w[7]*D₀(Easy) + (1-w[7])*D'  (mean reversion)
// D'' = clamp_d(D'')
func (a *algo) nextDifficulty(difficulty float64, r Rating) float64 {
	deltaD := -a.w[6] * (float64(r) - 3)
	dPrime := difficulty + (10-difficulty)*deltaD/9
	d0Easy := a.initDifficulty(Easy, false) // mean reversion target, unclamped
	dDoublePrime := a.w[7]*d0Easy + (1-a.w[7])*dPrime
	return clampD(dDoublePrime)
}

// nextStability dispatches to nextRecallStability or nextForgetStability.
func (a *algo) nextStability(d, s, r float64, rating Rating) float64 {
	if rating == Again {
		return a.nextForgetStability(d, s, r)
	}
	return a.nextRecallStability(d, s, r, rating)
}

// nextRecallStability computes stability after a successful recall (Hard/Good/Easy).
// S' = S * (1 + e^w[8] * (11-D) * S^(-w[9]) * (e^((1-R)*w[10]) - 1) * hardPenalty * easyBonus)
// The multiplier is never below 1, so successful reviews never shrink stability.
func (a *algo) nextRecallStability(d, s, r float64, rating Rating) float64 {
	hardPenalty := 1.0
	if rating == Hard {
		hardPenalty = a.w[15]
	}
	easyBonus := 1.0
	if rating == Easy {
		easyBonus = a.w[16]
	}
	return s * (1 + math.Exp(a.w[8])*
		(11-d)*
		math.Pow(s, -a.w[9])*
		(math.Exp((1-r)*a.w[10])-1)*
		hardPenalty*easyBonus)
}

// nextForgetStability computes stability after a lapse (Again).
// S'_f = min(w[11] * D^(-w[12]) * ((S+1)^w[13] - 1) * e^((1-R)*w[14]), S)
// The min guarantees a lapse never increases stability.
func (a *algo) nextForgetStability(d, s, r float64) float64 {
	long := a.w[11] *
		math.Pow(d, -a.w[12]) *
		(math.Pow(s+1, a.w[13]) - 1) *
		math.Exp((1-r)*a.w[14])
	return clampS(math.Min(long, s))
}

// clampS clamps stability to a minimum of 0.001.
func clampS(s float64) float64 {
	return math.Max(s, 0.001)
}

// clampD clamps difficulty to [1, 10].
func clampD(d float64) float64 {
	return math.Min(math.Max(d, 1), 10)
}

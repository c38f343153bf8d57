package irt

import (
	"math"

	"github.com/pkg/errors"
)

// Estimation sentinels. Sparse or degenerate data is NOT an error: those
// cases return an Estimate with Degenerate=true. Errors mean the input shape
// itself was wrong.
var (
	ErrLengthMismatch = errors.New("irt: responses and items differ in length")
	ErrInvalidItem    = errors.New("irt: item discrimination must be > 0")
)

// Estimate is a point estimate of a learner's latent ability.
type Estimate struct {
	Theta float64 `json:"theta"` // clamped to [-3, 3].
	SE    float64 `json:"se"`
	N     int     `json:"n"` // observations behind the estimate.
	// Degenerate marks the centered fallback returned when the likelihood
	// has no interior maximum (all-correct / all-incorrect vectors) or the
	// iteration failed to converge.
	Degenerate bool `json:"degenerate"`
}

// Prior is the normal prior used by EAP estimation.
// Zero values default to a standard normal with 21 quadrature nodes.
type Prior struct {
	Mean  float64 `json:"mean"`
	SD    float64 `json:"sd"`    // zero → 1
	Nodes int     `json:"nodes"` // zero → 21
}

const (
	mleMaxIterations = 50
	mleTolerance     = 1e-4
	thetaSearchBound = 4.0
	thetaReportBound = 3.0
)

// degenerateEstimate is the centered default used when estimation cannot
// produce a trustworthy interior maximum.
func degenerateEstimate(n int) Estimate {
	return Estimate{Theta: 0, SE: 1, N: n, Degenerate: true}
}

func validateResponses(responses []bool, items []ItemParameter) error {
	if len(responses) != len(items) {
		return errors.Wrapf(ErrLengthMismatch, "%d responses, %d items", len(responses), len(items))
	}
	for i, item := range items {
		if item.A <= 0 || math.IsNaN(item.A) || math.IsNaN(item.B) || math.IsNaN(item.C) {
			return errors.Wrapf(ErrInvalidItem, "item %d: a=%f b=%f c=%f", i, item.A, item.B, item.C)
		}
	}
	return nil
}

// EstimateThetaMLE maximizes the response likelihood with Fisher-scoring
// Newton-Raphson steps. All-correct and all-incorrect vectors have no
// interior maximum; those, and non-converging iterations, return the
// degenerate centered default rather than diverging.
func EstimateThetaMLE(responses []bool, items []ItemParameter) (Estimate, error) {
	if err := validateResponses(responses, items); err != nil {
		return Estimate{}, err
	}
	n := len(responses)
	if n == 0 {
		return degenerateEstimate(0), nil
	}

	correct := 0
	for _, u := range responses {
		if u {
			correct++
		}
	}
	if correct == 0 || correct == n {
		return degenerateEstimate(n), nil
	}

	theta := 0.0
	for iter := 0; iter < mleMaxIterations; iter++ {
		var score, info float64
		for i, item := range items {
			p := Probability3PL(theta, item)
			u := 0.0
			if responses[i] {
				u = 1.0
			}
			// 3PL score contribution: a·(u-p)·(p-c) / (p·(1-c)).
			score += item.A * (u - p) * (p - item.C) / (p * (1 - item.C))
			info += FisherInformation(theta, item)
		}
		if info < 1e-10 {
			return degenerateEstimate(n), nil
		}

		delta := score / info
		// Damp oversized steps; keep the search inside [-4, 4].
		delta = math.Max(-1, math.Min(delta, 1))
		theta = math.Max(-thetaSearchBound, math.Min(theta+delta, thetaSearchBound))

		if math.Abs(delta) < mleTolerance {
			se := 1.0 / math.Sqrt(info)
			return Estimate{
				Theta: math.Max(-thetaReportBound, math.Min(theta, thetaReportBound)),
				SE:    se,
				N:     n,
			}, nil
		}
	}
	return degenerateEstimate(n), nil
}

// EstimateThetaEAP computes the expected-a-posteriori ability under a normal
// prior via Gauss-Hermite quadrature. It always converges and is the
// preferred estimator for small samples; an empty response vector returns
// the prior itself flagged degenerate.
func EstimateThetaEAP(responses []bool, items []ItemParameter, prior Prior) (Estimate, error) {
	if err := validateResponses(responses, items); err != nil {
		return Estimate{}, err
	}
	sd := prior.SD
	if sd == 0 {
		sd = 1
	}
	nodes := prior.Nodes
	if nodes == 0 {
		nodes = 21
	}
	n := len(responses)
	if n == 0 {
		return Estimate{Theta: prior.Mean, SE: sd, N: 0, Degenerate: true}, nil
	}

	x, w := gaussHermite(nodes)

	// Log-likelihood at each node, shifted by its maximum before
	// exponentiating so long response vectors do not underflow.
	thetas := make([]float64, nodes)
	logL := make([]float64, nodes)
	maxLogL := math.Inf(-1)
	for k := 0; k < nodes; k++ {
		thetas[k] = prior.Mean + math.Sqrt2*sd*x[k]
		ll := 0.0
		for i, item := range items {
			p := Probability3PL(thetas[k], item)
			if responses[i] {
				ll += math.Log(p)
			} else {
				ll += math.Log(1 - p)
			}
		}
		logL[k] = ll
		if ll > maxLogL {
			maxLogL = ll
		}
	}

	var norm, mean float64
	for k := 0; k < nodes; k++ {
		g := w[k] * math.Exp(logL[k]-maxLogL)
		norm += g
		mean += thetas[k] * g
	}
	if norm == 0 {
		return degenerateEstimate(n), nil
	}
	mean /= norm

	var variance float64
	for k := 0; k < nodes; k++ {
		g := w[k] * math.Exp(logL[k]-maxLogL)
		variance += (thetas[k] - mean) * (thetas[k] - mean) * g
	}
	variance /= norm

	return Estimate{
		Theta: math.Max(-thetaReportBound, math.Min(mean, thetaReportBound)),
		SE:    math.Sqrt(variance),
		N:     n,
	}, nil
}

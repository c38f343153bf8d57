package irt

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func centeredItems(n int) []ItemParameter {
	items := make([]ItemParameter, n)
	for i := range items {
		items[i] = ItemParameter{A: 1.0, B: -1.5 + 3.0*float64(i)/float64(n-1)}
	}
	return items
}

func TestEstimateThetaMLEMixedVector(t *testing.T) {
	items := centeredItems(10)
	// Correct on the easy half, incorrect on the hard half: ability sits
	// near the middle of the difficulty range.
	responses := []bool{true, true, true, true, true, false, false, false, false, false}

	est, err := EstimateThetaMLE(responses, items)
	require.NoError(t, err)
	assert.False(t, est.Degenerate)
	assert.Equal(t, 10, est.N)
	assert.InDelta(t, 0, est.Theta, 0.5)
	assert.Greater(t, est.SE, 0.0)
	assert.Less(t, est.SE, 2.0)
}

func TestEstimateThetaMLEDegenerateVectors(t *testing.T) {
	items := centeredItems(6)
	tests := []struct {
		name      string
		responses []bool
	}{
		{"all-correct", []bool{true, true, true, true, true, true}},
		{"all-incorrect", []bool{false, false, false, false, false, false}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var obs []ItemParameter
			if tt.responses != nil {
				obs = items
			}
			est, err := EstimateThetaMLE(tt.responses, obs)
			require.NoError(t, err)
			assert.True(t, est.Degenerate)
			assert.Equal(t, 0.0, est.Theta)
			assert.Equal(t, 1.0, est.SE)
		})
	}
}

func TestEstimateThetaMLEShapeErrors(t *testing.T) {
	_, err := EstimateThetaMLE([]bool{true}, centeredItems(3))
	assert.True(t, errors.Is(err, ErrLengthMismatch))

	_, err = EstimateThetaMLE([]bool{true}, []ItemParameter{{A: 0, B: 0}})
	assert.True(t, errors.Is(err, ErrInvalidItem))
}

func TestEstimateThetaMLEMonotonicInCorrectness(t *testing.T) {
	items := centeredItems(8)
	weaker := []bool{true, true, false, false, false, false, false, true}
	stronger := []bool{true, true, true, true, true, true, false, true}

	lo, err := EstimateThetaMLE(weaker, items)
	require.NoError(t, err)
	hi, err := EstimateThetaMLE(stronger, items)
	require.NoError(t, err)
	assert.Greater(t, hi.Theta, lo.Theta)
}

func TestEstimateThetaEAPMixedVector(t *testing.T) {
	items := centeredItems(10)
	responses := []bool{true, true, true, true, true, false, false, false, false, false}

	est, err := EstimateThetaEAP(responses, items, Prior{})
	require.NoError(t, err)
	assert.False(t, est.Degenerate)
	assert.InDelta(t, 0, est.Theta, 0.5)
	// Posterior SD shrinks below the standard-normal prior.
	assert.Less(t, est.SE, 1.0)
}

func TestEstimateThetaEAPAllCorrectStaysFinite(t *testing.T) {
	// Unlike MLE, EAP has no divergence problem: the prior pulls the
	// all-correct estimate to a finite positive value.
	items := centeredItems(6)
	est, err := EstimateThetaEAP([]bool{true, true, true, true, true, true}, items, Prior{})
	require.NoError(t, err)
	assert.False(t, est.Degenerate)
	assert.Greater(t, est.Theta, 0.5)
	assert.LessOrEqual(t, est.Theta, 3.0)
}

func TestEstimateThetaEAPEmptyReturnsPrior(t *testing.T) {
	est, err := EstimateThetaEAP(nil, nil, Prior{Mean: 0.7, SD: 0.4})
	require.NoError(t, err)
	assert.True(t, est.Degenerate)
	assert.Equal(t, 0.7, est.Theta)
	assert.Equal(t, 0.4, est.SE)
}

func TestEstimateThetaEAPPriorPull(t *testing.T) {
	// With a single observation the prior mean dominates the estimate.
	items := []ItemParameter{{A: 1, B: 0}}
	low, err := EstimateThetaEAP([]bool{true}, items, Prior{Mean: -1})
	require.NoError(t, err)
	high, err := EstimateThetaEAP([]bool{true}, items, Prior{Mean: 1})
	require.NoError(t, err)
	assert.Less(t, low.Theta, high.Theta)
}

func TestEstimatorsAgreeOnLongVectors(t *testing.T) {
	items := centeredItems(20)
	responses := make([]bool, 20)
	for i := range responses {
		responses[i] = i%3 != 0 // ~67% correct
	}

	mle, err := EstimateThetaMLE(responses, items)
	require.NoError(t, err)
	eap, err := EstimateThetaEAP(responses, items, Prior{})
	require.NoError(t, err)
	assert.InDelta(t, mle.Theta, eap.Theta, 0.3)
}

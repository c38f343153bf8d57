package irt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectNextItemPicksClosestDifficulty(t *testing.T) {
	items := []ItemParameter{
		{A: 1, B: -2},
		{A: 1, B: 0.1},
		{A: 1, B: 2},
	}
	// Equal discrimination: information peaks at the item nearest theta.
	assert.Equal(t, 1, SelectNextItem(0, items, nil))
	assert.Equal(t, 0, SelectNextItem(-2.5, items, nil))
	assert.Equal(t, 2, SelectNextItem(2.5, items, nil))
}

func TestSelectNextItemSkipsAdministered(t *testing.T) {
	items := []ItemParameter{
		{A: 1, B: 0},
		{A: 1, B: 0.5},
		{A: 1, B: 1},
	}
	administered := map[int]bool{0: true}
	assert.Equal(t, 1, SelectNextItem(0, items, administered))

	administered[1] = true
	assert.Equal(t, 2, SelectNextItem(0, items, administered))

	administered[2] = true
	assert.Equal(t, -1, SelectNextItem(0, items, administered))
}

func TestSelectNextItemEmptyPool(t *testing.T) {
	assert.Equal(t, -1, SelectNextItem(0, nil, nil))
}

func TestSelectNextItemTieBreaksLow(t *testing.T) {
	items := []ItemParameter{
		{A: 1.2, B: 0},
		{A: 1.2, B: 0},
	}
	assert.Equal(t, 0, SelectNextItem(0, items, nil))
}

func TestSelectItemKLFavorsSeparation(t *testing.T) {
	items := []ItemParameter{
		{A: 1, B: -3},  // too easy for the plausible region
		{A: 1.5, B: 0}, // discriminates inside it
		{A: 1, B: 3},   // too hard
	}
	est := Estimate{Theta: 0, SE: 1}
	assert.Equal(t, 1, SelectItemKL(est, items, nil, 1))
}

func TestSelectItemKLDefaultDelta(t *testing.T) {
	items := []ItemParameter{{A: 1, B: 0.2}, {A: 1, B: 2.5}}
	est := Estimate{Theta: 0, SE: 0.8}
	// Non-positive delta falls back to 1 rather than collapsing the interval.
	assert.Equal(t, SelectItemKL(est, items, nil, 1), SelectItemKL(est, items, nil, 0))
	assert.Equal(t, SelectItemKL(est, items, nil, 1), SelectItemKL(est, items, nil, -2))
}

func TestSelectItemKLSkipsAdministered(t *testing.T) {
	items := []ItemParameter{{A: 1.5, B: 0}, {A: 1, B: 1}}
	est := Estimate{Theta: 0, SE: 1}
	assert.Equal(t, 1, SelectItemKL(est, items, map[int]bool{0: true}, 1))
	assert.Equal(t, -1, SelectItemKL(est, items, map[int]bool{0: true, 1: true}, 1))
}

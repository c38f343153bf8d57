package irt

import "math"

// ItemParameter is the psychometric profile of one learnable item.
type ItemParameter struct {
	A float64 `json:"a"` // discrimination, typically 0.5–2.5, never ≤ 0.
	B float64 `json:"b"` // difficulty, typically -3..3.
	C float64 `json:"c"` // guessing floor, 0–0.35; zero for 1PL/2PL.
}

const probClamp = 1e-9

// logistic returns 1 / (1 + e^(-x)).
func logistic(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// clampProb keeps a probability strictly inside (0, 1).
func clampProb(p float64) float64 {
	return math.Max(probClamp, math.Min(p, 1-probClamp))
}

// Probability1PL returns P(correct | theta) under the Rasch model
// (unit discrimination, no guessing).
func Probability1PL(theta float64, item ItemParameter) float64 {
	return clampProb(logistic(theta - item.B))
}

// Probability2PL returns P(correct | theta) under the two-parameter model.
func Probability2PL(theta float64, item ItemParameter) float64 {
	return clampProb(logistic(item.A * (theta - item.B)))
}

// Probability3PL returns P(correct | theta) under the three-parameter model:
// c + (1-c) · logistic(a(theta-b)).
func Probability3PL(theta float64, item ItemParameter) float64 {
	return clampProb(item.C + (1-item.C)*logistic(item.A*(theta-item.B)))
}

// FisherInformation returns the Fisher information the item carries about
// theta under the 3PL model:
//
//	I(θ) = a² · ((p-c)/(1-c))² · (1-p)/p
//
// With c = 0 this reduces to the familiar a²·p·(1-p) of the 2PL model.
func FisherInformation(theta float64, item ItemParameter) float64 {
	p := Probability3PL(theta, item)
	if item.C >= 1 {
		return 0
	}
	q := (p - item.C) / (1 - item.C)
	return item.A * item.A * q * q * (1 - p) / p
}

// KLDivergence returns the Kullback-Leibler divergence between the Bernoulli
// response distributions at theta1 and theta2 for the item. Used by
// SelectItemKL to rank items by their power to separate nearby abilities.
func KLDivergence(theta1, theta2 float64, item ItemParameter) float64 {
	p := Probability3PL(theta1, item)
	q := Probability3PL(theta2, item)
	return p*math.Log(p/q) + (1-p)*math.Log((1-p)/(1-q))
}

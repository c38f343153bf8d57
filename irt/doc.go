// Package irt estimates learner ability and item parameters under logistic
// item response models (1PL/2PL/3PL).
//
// Theta estimation comes in two flavors: EstimateThetaMLE (Newton-Raphson,
// needs a mixed response vector) and EstimateThetaEAP (Gauss-Hermite
// quadrature over a normal prior, always converges, preferred for small
// samples). SelectNextItem and SelectItemKL pick the most informative next
// item for adaptive assessment. Calibrate fits (a, b) item parameters from a
// person×item response matrix with an EM loop, declining with a typed reason
// when the data is too sparse to trust.
package irt

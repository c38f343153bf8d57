// Package session composes a bounded practice session from a ranked queue.
//
// A Composer scores each candidate (memory urgency, queue priority,
// cognitive load), greedily admits candidates under an item-count and
// total-load budget, orders the admitted items with one of five interleaving
// strategies, recommends break points, and predicts the session's learning
// value and retention probability. An empty candidate list produces an empty
// plan, never an error.
package session

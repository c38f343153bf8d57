// Package priority ranks learnable items for practice.
//
// An Engine combines three signals into one score per item: the intrinsic
// FRE value (frequency, relational density, contextual contribution) weighted
// by proficiency band, a cost derived from item difficulty and its
// component-specific vector, and a memory urgency derived from the card's
// current retrievability. Items whose prerequisite components are not yet
// automated carry an additive penalty, amplified when the bottleneck
// detector names that component as a root cause.
//
// BuildLearningQueue produces a deterministic total order: score descending,
// ties broken by ascending item ID.
package priority

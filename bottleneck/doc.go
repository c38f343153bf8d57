// Package bottleneck detects skill components whose error rates are holding
// a learner back.
//
// Analyze groups the trailing window of responses by component, flags
// components whose error rate clears a threshold with enough observations to
// mean something, and walks the fixed component dependency chain to
// attribute downstream error clusters to an elevated upstream root cause.
// The root-cause component and its confidence feed the priority engine.
package bottleneck

// Package recall implements the memory-model core of an adaptive learning
// scheduler: an exponential forgetting curve over per-item stability and
// difficulty, with review ratings derived from answer correctness and latency.
//
// recall provides a pure-Go Scheduler for computing review intervals against
// a target retention, plus the shared response and skill-component types used
// by the estimator and planning subpackages (recall/irt, recall/priority,
// recall/bottleneck, recall/session).
//
// Basic usage:
//
//	s, err := recall.NewScheduler(recall.SchedulerConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	card := recall.NewCard(1)
//	card, log := s.Schedule(card, recall.Good, time.Now())
package recall

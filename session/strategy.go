package session

import (
	"fmt"
	"math"
	"sort"

	"github.com/recallengine/recall"
)

// Strategy selects how admitted items are ordered within a session.
type Strategy int

const (
	// StrategyUnspecified lets the composer pick: fatigue forces blocking,
	// otherwise the learner's level maps to a default.
	StrategyUnspecified Strategy = iota
	Blocking                     // Group by component, highest score first within a group.
	Interleaving                 // Never repeat the previous component unless forced.
	Hybrid                       // Block the first half, interleave the second.
	Related                      // Prefer moderate relatedness to the previous item.
	Adaptive                     // Delegate by proficiency level and fatigue.
)

var strategyNames = [...]string{
	StrategyUnspecified: "unspecified",
	Blocking:            "pure_blocking",
	Interleaving:        "pure_interleaving",
	Hybrid:              "hybrid",
	Related:             "related",
	Adaptive:            "adaptive",
}

// String returns the strategy name ("pure_blocking", "hybrid", …).
func (s Strategy) String() string {
	if s >= StrategyUnspecified && s <= Adaptive {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// fatigueBlockingThreshold is the fatigue level above which the composer
// falls back to blocking to cut ordering-induced load.
const fatigueBlockingThreshold = 0.7

// resolveStrategy applies the selection precedence:
// explicit concrete strategy > fatigue override > level-mapped default.
// Adaptive (explicit or unspecified) delegates to a concrete strategy.
func resolveStrategy(explicit Strategy, learner LearnerState) Strategy {
	if explicit != StrategyUnspecified && explicit != Adaptive {
		return explicit
	}
	if learner.Fatigue >= fatigueBlockingThreshold {
		return Blocking
	}
	switch learner.Level {
	case recall.B1:
		return Hybrid
	case recall.B2:
		return Related
	case recall.C1, recall.C2:
		return Interleaving
	default:
		return Blocking
	}
}

// orderItems arranges the admitted candidates under the given concrete
// strategy. Input is already sorted by combined score descending.
func orderItems(sorted []scored, strategy Strategy) []scored {
	switch strategy {
	case Interleaving:
		return orderInterleaved(sorted)
	case Hybrid:
		return orderHybrid(sorted)
	case Related:
		return orderRelated(sorted)
	default:
		return orderBlocked(sorted)
	}
}

// orderBlocked groups items by component. Groups are ordered by their best
// score descending; within a group items keep score order.
func orderBlocked(sorted []scored) []scored {
	groups := make(map[recall.ComponentType][]scored)
	var order []recall.ComponentType
	for _, s := range sorted {
		if _, ok := groups[s.Component]; !ok {
			// First appearance is the group's best score, since input is
			// score-descending.
			order = append(order, s.Component)
		}
		groups[s.Component] = append(groups[s.Component], s)
	}

	out := make([]scored, 0, len(sorted))
	for _, c := range order {
		out = append(out, groups[c]...)
	}
	return out
}

// orderInterleaved greedily picks the highest-scoring remaining item whose
// component differs from the previous placement, falling back to a repeat
// only when every remaining item shares the previous component.
func orderInterleaved(sorted []scored) []scored {
	return interleaveAfter(sorted, 0)
}

// interleaveAfter interleaves sorted as if an item of component prev had just
// been placed; an invalid prev means no constraint on the first pick.
func interleaveAfter(sorted []scored, prev recall.ComponentType) []scored {
	remaining := append([]scored(nil), sorted...)
	out := make([]scored, 0, len(remaining))

	for len(remaining) > 0 {
		pick := -1
		for i, s := range remaining {
			if !prev.IsValid() || s.Component != prev {
				pick = i
				break
			}
		}
		if pick == -1 {
			// Forced repeat.
			pick = 0
		}
		chosen := remaining[pick]
		out = append(out, chosen)
		prev = chosen.Component
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return out
}

// orderHybrid blocks the first half of the session and interleaves the rest,
// seeding the interleave with the first half's final component so the seam
// itself cannot repeat.
func orderHybrid(sorted []scored) []scored {
	if len(sorted) < 3 {
		return orderBlocked(sorted)
	}
	half := (len(sorted) + 1) / 2
	first := orderBlocked(append([]scored(nil), sorted[:half]...))
	second := interleaveAfter(append([]scored(nil), sorted[half:]...), first[len(first)-1].Component)
	return append(first, second...)
}

// relatedTarget is the desirable-difficulty sweet spot: neither identical to
// the previous item nor unrelated.
const relatedTarget = 0.6

// relatedness scores how close two components are: same component is nearly
// identical, adjacent chain layers are moderately related, distant layers
// barely relate.
func relatedness(a, b recall.ComponentType) float64 {
	if a == b {
		return 0.9
	}
	switch int(math.Abs(float64(a.Position() - b.Position()))) {
	case 1:
		return 0.6
	case 2:
		return 0.4
	default:
		return 0.2
	}
}

// orderRelated starts from the top-scored item and walks greedily, at each
// step preferring the remaining item whose relatedness to the previous one
// is closest to the moderate target, breaking ties by score then item ID.
func orderRelated(sorted []scored) []scored {
	if len(sorted) == 0 {
		return nil
	}
	remaining := append([]scored(nil), sorted...)
	out := []scored{remaining[0]}
	remaining = remaining[1:]

	for len(remaining) > 0 {
		prev := out[len(out)-1]
		best := 0
		bestFit := math.Inf(1)
		for i, s := range remaining {
			fit := math.Abs(relatedness(prev.Component, s.Component) - relatedTarget)
			if fit < bestFit ||
				(fit == bestFit && (s.score > remaining[best].score ||
					(s.score == remaining[best].score && s.ItemID < remaining[best].ItemID))) {
				best = i
				bestFit = fit
			}
		}
		out = append(out, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return out
}

// sortByScore orders candidates by combined score descending, ties by
// ascending item ID, giving the composer a deterministic total order.
func sortByScore(items []scored) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].ItemID < items[j].ItemID
	})
}

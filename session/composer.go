package session

import (
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/recallengine/recall"
	"github.com/recallengine/recall/priority"
)

// Input-shape sentinels. These mark programmer errors; sparse inputs (an
// empty candidate list) produce an empty plan instead.
var (
	ErrInvalidConfig  = errors.New("session: invalid composer config")
	ErrInvalidLearner = errors.New("session: invalid learner state")
)

// Candidate is one queue item offered to the composer. MissingPrerequisite
// marks items whose component foundations the learner has not yet built;
// they are excluded up front.
type Candidate struct {
	priority.QueueItem
	MissingPrerequisite bool
}

// LearnerState is the session-time learner context supplied by the caller.
type LearnerState struct {
	Level          recall.Level
	Fatigue        float64 // [0,1]; high fatigue forces blocking.
	ElapsedMinutes float64
}

// Config configures a Composer.
// Zero values produce sensible defaults; see field comments.
type Config struct {
	MaxItems         int     `json:"max_items"`          // zero → 10
	MaxCognitiveLoad float64 `json:"max_cognitive_load"` // per-item budget basis; zero → 6
	BreakInterval    int     `json:"break_interval"`     // items between fixed breaks; zero → 5
	TargetRetention  float64 `json:"target_retention"`   // zero → 0.9
	// RecentlySeenThreshold is the memory-urgency floor below which a
	// well-mastered item is not worth repeating; zero → 0.05.
	RecentlySeenThreshold float64 `json:"recently_seen_threshold"`
}

// Composer builds session plans. It holds only immutable configuration;
// every call is independent.
type Composer struct {
	cfg Config
}

// NewComposer creates a Composer from the given config, filling defaults.
// Negative or NaN budget values are rejected.
func NewComposer(cfg Config) (*Composer, error) {
	if cfg.MaxItems < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "max items %d", cfg.MaxItems)
	}
	if cfg.MaxCognitiveLoad < 0 || math.IsNaN(cfg.MaxCognitiveLoad) {
		return nil, errors.Wrapf(ErrInvalidConfig, "max cognitive load %f", cfg.MaxCognitiveLoad)
	}
	if cfg.TargetRetention < 0 || cfg.TargetRetention >= 1 || math.IsNaN(cfg.TargetRetention) {
		return nil, errors.Wrapf(ErrInvalidConfig, "target retention %f", cfg.TargetRetention)
	}
	if cfg.MaxItems == 0 {
		cfg.MaxItems = 10
	}
	if cfg.MaxCognitiveLoad == 0 {
		cfg.MaxCognitiveLoad = 6
	}
	if cfg.BreakInterval == 0 {
		cfg.BreakInterval = 5
	}
	if cfg.TargetRetention == 0 {
		cfg.TargetRetention = 0.9
	}
	if cfg.RecentlySeenThreshold == 0 {
		cfg.RecentlySeenThreshold = 0.05
	}
	return &Composer{cfg: cfg}, nil
}

// consecutiveRepeatPenalty is added to an item's load when it follows
// another item of the same component.
const consecutiveRepeatPenalty = 0.5

// scored carries a candidate through scoring, filtering and ordering.
type scored struct {
	priority.QueueItem
	score float64
}

// Process builds one session plan from the candidate queue.
//
// The pipeline is score → filter → order → breaks → predict. The returned
// plan's total cognitive load never exceeds MaxCognitiveLoad × MaxItems.
// An empty candidate list yields an empty plan with zero predicted
// efficiency, not an error.
func (c *Composer) Process(candidates []Candidate, learner LearnerState, strategy Strategy) (Plan, error) {
	if math.IsNaN(learner.Fatigue) || learner.Fatigue < 0 || learner.Fatigue > 1 {
		return Plan{}, errors.Wrapf(ErrInvalidLearner, "fatigue %f", learner.Fatigue)
	}

	resolved := resolveStrategy(strategy, learner)
	plan := Plan{
		PlanID:   uuid.NewString(),
		Strategy: resolved,
	}
	if len(candidates) == 0 {
		return plan, nil
	}

	scoredItems, excluded := c.scoreAndFilter(candidates)
	plan.Excluded = excluded
	if len(scoredItems) == 0 {
		return plan, nil
	}

	ordered := orderItems(scoredItems, resolved)
	plan.Items, plan.Excluded = c.place(ordered, plan.Excluded)
	plan.Breaks = c.recommendBreaks(plan.Items)
	plan.Prediction = c.predict(plan.Items, learner)
	return plan, nil
}

// scoreAndFilter computes combined scores and greedily admits candidates
// under the item-count and total-load budgets, recording exclusion reasons.
func (c *Composer) scoreAndFilter(candidates []Candidate) ([]scored, []Exclusion) {
	var excluded []Exclusion

	// Normalize queue priority so the score mix is scale-free.
	maxPriority := 0.0
	for _, cand := range candidates {
		maxPriority = math.Max(maxPriority, cand.Priority)
	}

	all := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		if cand.MissingPrerequisite {
			excluded = append(excluded, Exclusion{ItemID: cand.ItemID, Reason: ReasonPrerequisiteNotMet})
			continue
		}
		if cand.FSRSPriority < c.cfg.RecentlySeenThreshold && cand.MasteryStage >= 3 {
			excluded = append(excluded, Exclusion{ItemID: cand.ItemID, Reason: ReasonRecentlySeen})
			continue
		}
		norm := 0.0
		if maxPriority > 0 {
			norm = cand.Priority / maxPriority
		}
		score := 0.4*cand.FSRSPriority + 0.4*norm - 0.2*(cand.CognitiveLoad/10)
		all = append(all, scored{QueueItem: cand.QueueItem, score: score})
	}
	sortByScore(all)

	budget := c.cfg.MaxCognitiveLoad * float64(c.cfg.MaxItems)
	admitted := make([]scored, 0, c.cfg.MaxItems)
	totalLoad := 0.0
	for _, s := range all {
		if len(admitted) >= c.cfg.MaxItems {
			excluded = append(excluded, Exclusion{ItemID: s.ItemID, Reason: ReasonLowPriority})
			continue
		}
		if totalLoad+s.CognitiveLoad > budget {
			excluded = append(excluded, Exclusion{ItemID: s.ItemID, Reason: ReasonCognitiveOverload})
			continue
		}
		admitted = append(admitted, s)
		totalLoad += s.CognitiveLoad
	}
	return admitted, excluded
}

// place turns the ordered items into placements, charging the
// consecutive-repeat penalty. If penalties push the total over budget, the
// tail of the session is dropped rather than over-loading the learner.
func (c *Composer) place(ordered []scored, excluded []Exclusion) ([]Placement, []Exclusion) {
	budget := c.cfg.MaxCognitiveLoad * float64(c.cfg.MaxItems)

	placements := make([]Placement, 0, len(ordered))
	totalLoad := 0.0
	for _, s := range ordered {
		load := s.CognitiveLoad
		// The penalty is charged against the previous placement, not the
		// previous candidate: a mid-stream exclusion must not mask a repeat.
		if n := len(placements); n > 0 && placements[n-1].Component == s.Component {
			load = math.Min(load+consecutiveRepeatPenalty, 10)
		}
		if totalLoad+load > budget {
			excluded = append(excluded, Exclusion{ItemID: s.ItemID, Reason: ReasonCognitiveOverload})
			continue
		}
		placements = append(placements, Placement{
			Position:      len(placements),
			ItemID:        s.ItemID,
			Component:     s.Component,
			MasteryStage:  s.MasteryStage,
			CognitiveLoad: load,
			Urgency:       s.FSRSPriority,
			Score:         s.score,
		})
		totalLoad += load
	}
	return placements, excluded
}

// recommendBreaks places a break whenever the load since the last break
// exceeds 3×MaxCognitiveLoad, and additionally every BreakInterval items.
func (c *Composer) recommendBreaks(items []Placement) []int {
	var breaks []int
	loadSinceBreak := 0.0
	itemsSinceBreak := 0
	for i, p := range items {
		if i == len(items)-1 {
			break // no break after the final item.
		}
		loadSinceBreak += p.CognitiveLoad
		itemsSinceBreak++
		if loadSinceBreak > 3*c.cfg.MaxCognitiveLoad || itemsSinceBreak >= c.cfg.BreakInterval {
			breaks = append(breaks, i)
			loadSinceBreak = 0
			itemsSinceBreak = 0
		}
	}
	return breaks
}

// predict estimates the session's efficiency.
func (c *Composer) predict(items []Placement, learner LearnerState) Prediction {
	if len(items) == 0 {
		return Prediction{}
	}

	var totalLoad, totalValue float64
	for _, p := range items {
		totalLoad += p.CognitiveLoad
		totalValue += p.Urgency
	}
	avgLoad := totalLoad / float64(len(items))

	loadFactor := 1.0
	if avgLoad > c.cfg.MaxCognitiveLoad {
		loadFactor = c.cfg.MaxCognitiveLoad / avgLoad
	}
	retention := c.cfg.TargetRetention * loadFactor * (1 - 0.3*learner.Fatigue)

	return Prediction{
		LearningValue:        totalValue / float64(len(items)),
		RetentionProbability: retention,
		CognitiveLoadAverage: avgLoad,
		TotalLoad:            totalLoad,
	}
}

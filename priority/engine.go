package priority

import (
	"fmt"
	"math"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/recallengine/recall"
)

// FRE is the three-factor intrinsic value of a learnable item.
// All factors are in [0, 1].
type FRE struct {
	Frequency              float64 `json:"frequency"`
	RelationalDensity      float64 `json:"relational_density"`
	ContextualContribution float64 `json:"contextual_contribution"`
}

// FREWeights weight the three FRE factors; they need not sum to 1.
type FREWeights struct {
	Frequency              float64 `json:"frequency"`
	RelationalDensity      float64 `json:"relational_density"`
	ContextualContribution float64 `json:"contextual_contribution"`
}

func (w FREWeights) isZero() bool {
	return w == FREWeights{}
}

// Item is the ranking view of one learnable item.
type Item struct {
	ID            int64                `json:"id"`
	Component     recall.ComponentType `json:"component"`
	FRE           FRE                  `json:"fre"`
	Difficulty    float64              `json:"difficulty"` // 1..10.
	Vector        ComponentVector      `json:"-"`          // optional component cost vector.
	TransferBonus float64              `json:"transfer_bonus"`
}

// LearnerState is the per-learner context priorities are computed against.
// LearnerID distinguishes learners sharing one Engine; Revision must change
// whenever the learner's memory or mastery state changes (one bump per
// scheduling pass is enough). Together they scope the engine's internal
// cache, so scores never leak across learners or stale state.
type LearnerState struct {
	LearnerID   int64
	Level       recall.Level
	Revision    uint64
	Automatized map[recall.ComponentType]bool
}

// BottleneckSignal names a root-cause component reported by the bottleneck
// detector, with the attribution confidence in [0, 1].
type BottleneckSignal struct {
	Component  recall.ComponentType `json:"component"`
	Confidence float64              `json:"confidence"`
}

// QueueItem is one ranked candidate for a session.
type QueueItem struct {
	ItemID        int64                `json:"item_id"`
	Component     recall.ComponentType `json:"component"`
	Priority      float64              `json:"priority"`
	MasteryStage  int                  `json:"mastery_stage"`  // 0..4.
	FSRSPriority  float64              `json:"fsrs_priority"`  // [0,1], urgency-derived.
	CognitiveLoad float64              `json:"cognitive_load"` // [1,10].
}

// Config configures an Engine.
// Zero values produce sensible defaults; see field comments.
type Config struct {
	BeginnerWeights     FREWeights        `json:"beginner_weights"`     // zero → {0.5, 0.3, 0.2}
	IntermediateWeights FREWeights        `json:"intermediate_weights"` // zero → {0.4, 0.3, 0.3}
	AdvancedWeights     FREWeights        `json:"advanced_weights"`     // zero → {0.2, 0.3, 0.5}
	PrerequisitePenalty float64           `json:"prerequisite_penalty"` // zero → 0.5
	UrgencyWeight       float64           `json:"urgency_weight"`       // zero → 1.0
	OverdueMultiplier   float64           `json:"overdue_multiplier"`   // zero → 2.0
	NewItemUrgency      float64           `json:"new_item_urgency"`     // zero → 0.5
	CacheSize           int               `json:"cache_size"`           // zero → 1024
	Scheduler           *recall.Scheduler `json:"-"`                    // nil → default scheduler
}

// Engine computes item priorities and ranked learning queues.
// It keeps no learner state of its own; everything is threaded through each
// call except a bounded score cache, which is safe to clear at any time.
type Engine struct {
	cfg   Config
	sched *recall.Scheduler
	cache *lru.Cache[cacheKey, float64]
}

type cacheKey struct {
	learnerID int64
	itemID    int64
	revision  uint64
}

// NewEngine creates an Engine from the given config, filling defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.BeginnerWeights.isZero() {
		cfg.BeginnerWeights = FREWeights{Frequency: 0.5, RelationalDensity: 0.3, ContextualContribution: 0.2}
	}
	if cfg.IntermediateWeights.isZero() {
		cfg.IntermediateWeights = FREWeights{Frequency: 0.4, RelationalDensity: 0.3, ContextualContribution: 0.3}
	}
	if cfg.AdvancedWeights.isZero() {
		cfg.AdvancedWeights = FREWeights{Frequency: 0.2, RelationalDensity: 0.3, ContextualContribution: 0.5}
	}
	if cfg.PrerequisitePenalty == 0 {
		cfg.PrerequisitePenalty = 0.5
	}
	if cfg.UrgencyWeight == 0 {
		cfg.UrgencyWeight = 1.0
	}
	if cfg.OverdueMultiplier == 0 {
		cfg.OverdueMultiplier = 2.0
	}
	if cfg.NewItemUrgency == 0 {
		cfg.NewItemUrgency = 0.5
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = 1024
	}
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("priority: cache size %d must be positive", cfg.CacheSize)
	}

	sched := cfg.Scheduler
	if sched == nil {
		var err error
		sched, err = recall.NewScheduler(recall.SchedulerConfig{DisableFuzzing: true})
		if err != nil {
			return nil, err
		}
	}

	cache, err := lru.New[cacheKey, float64](cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Engine{cfg: cfg, sched: sched, cache: cache}, nil
}

// ClearCache discards all cached scores.
func (e *Engine) ClearCache() {
	e.cache.Purge()
}

// weightsFor returns the FRE weights for the learner's proficiency band.
func (e *Engine) weightsFor(level recall.Level) FREWeights {
	switch level.Band() {
	case recall.Advanced:
		return e.cfg.AdvancedWeights
	case recall.Intermediate:
		return e.cfg.IntermediateWeights
	default:
		return e.cfg.BeginnerWeights
	}
}

// ComputePriority scores one item for the learner at the given time.
// card may be nil for never-seen items. signal may be nil when no bottleneck
// has been detected.
func (e *Engine) ComputePriority(item Item, state LearnerState, card *recall.Card, now time.Time, signal *BottleneckSignal) float64 {
	key := cacheKey{learnerID: state.LearnerID, itemID: item.ID, revision: state.Revision}
	if v, ok := e.cache.Get(key); ok {
		return v
	}

	w := e.weightsFor(state.Level)
	fre := w.Frequency*item.FRE.Frequency +
		w.RelationalDensity*item.FRE.RelationalDensity +
		w.ContextualContribution*item.FRE.ContextualContribution

	cost := (item.Difficulty / 5.0) * costModifier(item.Vector)
	if cost < 0.1 {
		cost = 0.1
	}

	penalty := e.prerequisitePenalty(item, state, signal)
	urgency := e.urgency(item, card, now, signal)

	denom := cost - item.TransferBonus + penalty
	if denom < 0.1 {
		denom = 0.1
	}

	p := fre/denom + urgency*e.cfg.UrgencyWeight
	e.cache.Add(key, p)
	return p
}

// prerequisitePenalty returns the additive cost applied when any upstream
// component of the item's layer is not yet automated. A bottleneck signal on
// one of those upstream components amplifies the penalty by its confidence.
func (e *Engine) prerequisitePenalty(item Item, state LearnerState, signal *BottleneckSignal) float64 {
	unmet := false
	signalHit := false
	for _, up := range item.Component.Upstream() {
		if state.Automatized[up] {
			continue
		}
		unmet = true
		if signal != nil && signal.Component == up {
			signalHit = true
		}
	}
	if !unmet {
		return 0
	}
	penalty := e.cfg.PrerequisitePenalty
	if signalHit {
		penalty *= 1 + clamp01(signal.Confidence)
	}
	return penalty
}

// urgency places the item in one of three tiers: overdue cards dominate,
// never-seen items sit on a fixed middle tier, and not-yet-due cards trail
// with their residual forgetting risk. A bottleneck signal on the item's own
// component boosts its urgency, pulling root-cause practice forward.
func (e *Engine) urgency(item Item, card *recall.Card, now time.Time, signal *BottleneckSignal) float64 {
	var u float64
	switch {
	case card == nil || card.LastReview == nil:
		u = e.cfg.NewItemUrgency
	case !now.Before(card.Due):
		r := e.sched.Retrievability(*card, now)
		u = 1 + e.cfg.OverdueMultiplier*math.Max(0, 1-r)
	default:
		r := e.sched.Retrievability(*card, now)
		u = math.Max(0, 1-r)
	}
	if signal != nil && signal.Component == item.Component {
		u *= 1 + clamp01(signal.Confidence)
	}
	return u
}

// fsrsPriority maps a card's forgetting risk into [0, 1] for downstream
// session scoring. Never-seen items sit at 0.5.
func (e *Engine) fsrsPriority(card *recall.Card, now time.Time) float64 {
	if card == nil || card.LastReview == nil {
		return 0.5
	}
	return clamp01(1 - e.sched.Retrievability(*card, now))
}

// BuildLearningQueue ranks all items by final score descending, ties broken
// by ascending item ID. The order is a deterministic total order: identical
// inputs always produce identical output.
func (e *Engine) BuildLearningQueue(items []Item, state LearnerState, cards map[int64]recall.Card, mastery map[int64]int, now time.Time, signal *BottleneckSignal) []QueueItem {
	queue := make([]QueueItem, 0, len(items))
	for _, item := range items {
		var card *recall.Card
		if c, ok := cards[item.ID]; ok {
			card = &c
		}
		stage := mastery[item.ID]
		queue = append(queue, QueueItem{
			ItemID:        item.ID,
			Component:     item.Component,
			Priority:      e.ComputePriority(item, state, card, now, signal),
			MasteryStage:  stage,
			FSRSPriority:  e.fsrsPriority(card, now),
			CognitiveLoad: CognitiveLoad(item.Component, stage),
		})
	}

	sort.Slice(queue, func(i, j int) bool {
		if queue[i].Priority != queue[j].Priority {
			return queue[i].Priority > queue[j].Priority
		}
		return queue[i].ItemID < queue[j].ItemID
	})
	return queue
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}

package session

import "github.com/recallengine/recall"

// ExclusionReason states why a candidate was left out of the plan.
type ExclusionReason string

const (
	ReasonCognitiveOverload  ExclusionReason = "cognitive_overload"
	ReasonLowPriority        ExclusionReason = "low_priority"
	ReasonRecentlySeen       ExclusionReason = "recently_seen"
	ReasonPrerequisiteNotMet ExclusionReason = "prerequisite_not_met"
)

// Placement is one ordered slot of the session plan.
type Placement struct {
	Position      int                  `json:"position"`
	ItemID        int64                `json:"item_id"`
	Component     recall.ComponentType `json:"component"`
	MasteryStage  int                  `json:"mastery_stage"`
	CognitiveLoad float64              `json:"cognitive_load"` // includes consecutive-repeat penalty.
	Urgency       float64              `json:"urgency"`        // memory urgency in [0,1].
	Score         float64              `json:"score"`
}

// Exclusion records a candidate that did not make the plan and why.
type Exclusion struct {
	ItemID int64           `json:"item_id"`
	Reason ExclusionReason `json:"reason"`
}

// Prediction is the composer's efficiency estimate for the plan.
type Prediction struct {
	LearningValue        float64 `json:"learning_value"`        // mean memory urgency of placed items.
	RetentionProbability float64 `json:"retention_probability"` // target retention discounted by load and fatigue.
	CognitiveLoadAverage float64 `json:"cognitive_load_average"`
	TotalLoad            float64 `json:"total_load"`
}

// Plan is an ordered, budget-respecting practice session.
type Plan struct {
	PlanID     string      `json:"plan_id"`
	Strategy   Strategy    `json:"strategy"` // the concrete strategy applied.
	Items      []Placement `json:"items"`
	Breaks     []int       `json:"breaks,omitempty"` // recommend a break after these positions.
	Excluded   []Exclusion `json:"excluded,omitempty"`
	Prediction Prediction  `json:"prediction"`
}

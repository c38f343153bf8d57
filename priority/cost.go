package priority

import (
	"math"

	"github.com/recallengine/recall"
)

// ComponentVector carries the component-specific attributes that modify an
// item's learning cost. It is a closed set: exactly one variant exists per
// skill component, and costModifier matches them exhaustively.
type ComponentVector interface {
	componentVector()
	Kind() recall.ComponentType
}

// PhonVector describes a phonological item.
type PhonVector struct {
	Irregularity       float64 `json:"irregularity"`        // [0,1]; irregular forms cost more.
	SyllableComplexity float64 `json:"syllable_complexity"` // [0,1].
}

// MorphVector describes a morphological item.
type MorphVector struct {
	Productivity float64 `json:"productivity"` // [0,1]; low productivity costs more.
	FamilySize   int     `json:"family_size"`  // larger families transfer, lowering cost.
}

// LexVector describes a lexical item.
type LexVector struct {
	Cognate      bool    `json:"cognate"` // cognates cost less.
	Concreteness float64 `json:"concreteness"`
}

// SyntVector describes a syntactic item.
type SyntVector struct {
	Complexity              float64 `json:"complexity"`                // [0,1].
	CrossLinguisticContrast float64 `json:"cross_linguistic_contrast"` // [0,1]; contrastive structures cost more.
}

// PragVector describes a pragmatic item.
type PragVector struct {
	CulturalLoad float64 `json:"cultural_load"` // [0,1]; culturally loaded usage costs more.
}

func (PhonVector) componentVector()  {}
func (MorphVector) componentVector() {}
func (LexVector) componentVector()   {}
func (SyntVector) componentVector()  {}
func (PragVector) componentVector()  {}

func (PhonVector) Kind() recall.ComponentType  { return recall.Phonology }
func (MorphVector) Kind() recall.ComponentType { return recall.Morphology }
func (LexVector) Kind() recall.ComponentType   { return recall.Lexicon }
func (SyntVector) Kind() recall.ComponentType  { return recall.Syntax }
func (PragVector) Kind() recall.ComponentType  { return recall.Pragmatics }

const (
	minCostModifier = 0.5
	maxCostModifier = 2.0
)

// costModifier maps a component vector to a cost multiplier in [0.5, 2.0].
// A nil vector is neutral.
func costModifier(v ComponentVector) float64 {
	if v == nil {
		return 1.0
	}
	var m float64
	switch vec := v.(type) {
	case PhonVector:
		m = 1.0 + 0.6*vec.Irregularity + 0.4*vec.SyllableComplexity
	case MorphVector:
		family := math.Min(float64(vec.FamilySize), 20) / 20
		m = 1.0 + 0.6*(1-vec.Productivity) - 0.4*family
	case LexVector:
		m = 1.0 + 0.2*(1-vec.Concreteness)
		if vec.Cognate {
			m -= 0.5
		}
	case SyntVector:
		m = 1.0 + 0.5*vec.Complexity + 0.5*vec.CrossLinguisticContrast
	case PragVector:
		m = 1.0 + vec.CulturalLoad
	default:
		m = 1.0
	}
	return math.Max(minCostModifier, math.Min(m, maxCostModifier))
}

// Base cognitive load per component, on the 1–10 scale.
var baseLoads = map[recall.ComponentType]float64{
	recall.Phonology:  3.0,
	recall.Morphology: 4.0,
	recall.Lexicon:    2.5,
	recall.Syntax:     5.0,
	recall.Pragmatics: 4.5,
}

// Mastery-stage load multipliers, stage 0 (new) through 4 (automated).
var masteryMultipliers = [5]float64{1.3, 1.15, 1.0, 0.8, 0.6}

// BaseLoad returns the intrinsic cognitive load of practicing one item of
// the given component. Unknown components get a mid-scale default.
func BaseLoad(c recall.ComponentType) float64 {
	if l, ok := baseLoads[c]; ok {
		return l
	}
	return 4.0
}

// MasteryMultiplier returns the load multiplier for a mastery stage in 0..4.
// Out-of-range stages clamp to the nearest bound.
func MasteryMultiplier(stage int) float64 {
	if stage < 0 {
		stage = 0
	}
	if stage > 4 {
		stage = 4
	}
	return masteryMultipliers[stage]
}

// CognitiveLoad combines base load and mastery stage, clamped to [1, 10].
func CognitiveLoad(c recall.ComponentType, masteryStage int) float64 {
	load := BaseLoad(c) * MasteryMultiplier(masteryStage)
	return math.Max(1, math.Min(load, 10))
}

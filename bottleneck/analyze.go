package bottleneck

import (
	"math"
	"sort"

	"github.com/recallengine/recall"
)

// Config configures Analyze.
// Zero values are replaced with the documented defaults.
type Config struct {
	Window              int     `json:"window"`                 // trailing responses considered; zero → 50
	ErrorRateThreshold  float64 `json:"error_rate_threshold"`   // zero → 0.4
	MinResponsesPerType int     `json:"min_responses_per_type"` // zero → 5
}

func (c Config) withDefaults() Config {
	if c.Window == 0 {
		c.Window = 50
	}
	if c.ErrorRateThreshold == 0 {
		c.ErrorRateThreshold = 0.4
	}
	if c.MinResponsesPerType == 0 {
		c.MinResponsesPerType = 5
	}
	return c
}

// Evidence is the error-rate signal for one flagged component.
type Evidence struct {
	Component   recall.ComponentType   `json:"component"`
	ErrorRate   float64                `json:"error_rate"`
	Responses   int                    `json:"responses"`
	CoOccurring []recall.ComponentType `json:"co_occurring,omitempty"` // other flagged components in the window.
}

// Cascade attributes a downstream error cluster to an upstream root cause.
type Cascade struct {
	Root       recall.ComponentType `json:"root"`
	Downstream recall.ComponentType `json:"downstream"`
	Confidence float64              `json:"confidence"` // [0,1].
}

// Analysis is the full detector output. An empty analysis (no flagged
// components) is the normal outcome for sparse or healthy response streams.
type Analysis struct {
	Bottlenecks []Evidence `json:"bottlenecks,omitempty"`
	Cascades    []Cascade  `json:"cascades,omitempty"`
}

// RootCause returns the highest-confidence cascade root, if any.
func (a Analysis) RootCause() (recall.ComponentType, float64, bool) {
	if len(a.Cascades) == 0 {
		return 0, 0, false
	}
	best := a.Cascades[0]
	for _, c := range a.Cascades[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best.Root, best.Confidence, true
}

type componentStats struct {
	total  int
	errors int
}

func (s componentStats) rate() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.errors) / float64(s.total)
}

// Analyze computes per-component error rates over the trailing window of the
// response stream and attributes cascades along the component chain.
// Responses are considered in timestamp order; only the newest cfg.Window
// entries count. Never returns an error: too little data simply yields an
// empty analysis.
func Analyze(responses []recall.Response, cfg Config) Analysis {
	cfg = cfg.withDefaults()
	if len(responses) == 0 {
		return Analysis{}
	}

	ordered := make([]recall.Response, len(responses))
	copy(ordered, responses)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	if len(ordered) > cfg.Window {
		ordered = ordered[len(ordered)-cfg.Window:]
	}

	stats := make(map[recall.ComponentType]*componentStats)
	for _, r := range ordered {
		if !r.Component.IsValid() {
			continue
		}
		s := stats[r.Component]
		if s == nil {
			s = &componentStats{}
			stats[r.Component] = s
		}
		s.total++
		if !r.Correct {
			s.errors++
		}
	}

	// Flag components with enough data and an elevated error rate, walking
	// the chain in dependency order for a stable output.
	flagged := make(map[recall.ComponentType]bool)
	var evidence []Evidence
	for _, c := range recall.ComponentChain() {
		s := stats[c]
		if s == nil || s.total < cfg.MinResponsesPerType {
			continue
		}
		if s.rate() >= cfg.ErrorRateThreshold {
			flagged[c] = true
			evidence = append(evidence, Evidence{
				Component: c,
				ErrorRate: s.rate(),
				Responses: s.total,
			})
		}
	}
	for i := range evidence {
		for c := range flagged {
			if c != evidence[i].Component {
				evidence[i].CoOccurring = append(evidence[i].CoOccurring, c)
			}
		}
		sort.Slice(evidence[i].CoOccurring, func(a, b int) bool {
			return evidence[i].CoOccurring[a] < evidence[i].CoOccurring[b]
		})
	}

	// Cascade attribution: for each flagged downstream component, the
	// nearest flagged upstream component is the root cause. Lower-layer
	// deficits propagate upward, so the upstream rate carries most of the
	// confidence.
	var cascades []Cascade
	for _, down := range recall.ComponentChain() {
		if !flagged[down] {
			continue
		}
		upstream := down.Upstream()
		for i := len(upstream) - 1; i >= 0; i-- {
			up := upstream[i]
			if !flagged[up] {
				continue
			}
			upRate := stats[up].rate()
			downRate := stats[down].rate()
			cascades = append(cascades, Cascade{
				Root:       up,
				Downstream: down,
				Confidence: math.Min(1, upRate*(0.5+0.5*downRate)),
			})
			break
		}
	}

	return Analysis{Bottlenecks: evidence, Cascades: cascades}
}

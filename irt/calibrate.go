package irt

import (
	"math"

	"github.com/pkg/errors"
)

// Matrix shape sentinels.
var (
	ErrRaggedMatrix = errors.New("irt: response matrix rows differ in length")
	ErrInvalidCell  = errors.New("irt: response matrix cell must be -1, 0 or 1")
)

// ResponseMissing marks an unobserved cell in a response matrix.
const ResponseMissing = -1

// CalibrationConfig configures Calibrate.
// Zero values are replaced with the documented defaults.
type CalibrationConfig struct {
	MaxIterations       int     `json:"max_iterations"`         // default 50
	MinRespondents      int     `json:"min_respondents"`        // default 10
	MinItems            int     `json:"min_items"`              // default 10
	MinResponsesPerItem int     `json:"min_responses_per_item"` // default 5
	MaxStandardError    float64 `json:"max_standard_error"`     // default 0.5
	Tolerance           float64 `json:"tolerance"`              // default 1e-3
}

func (c CalibrationConfig) withDefaults() CalibrationConfig {
	if c.MaxIterations == 0 {
		c.MaxIterations = 50
	}
	if c.MinRespondents == 0 {
		c.MinRespondents = 10
	}
	if c.MinItems == 0 {
		c.MinItems = 10
	}
	if c.MinResponsesPerItem == 0 {
		c.MinResponsesPerItem = 5
	}
	if c.MaxStandardError == 0 {
		c.MaxStandardError = 0.5
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-3
	}
	return c
}

// DeclineReason states why a calibration was refused.
type DeclineReason string

const (
	DeclineNone                    DeclineReason = ""
	DeclineInsufficientRespondents DeclineReason = "insufficient_respondents"
	DeclineInsufficientItems       DeclineReason = "insufficient_items"
	DeclineInsufficientResponses   DeclineReason = "insufficient_responses_per_item"
)

// ItemCalibration is the fitted parameters for one item column.
type ItemCalibration struct {
	Item      ItemParameter `json:"item"`
	SEA       float64       `json:"se_a"`
	SEB       float64       `json:"se_b"`
	Responses int           `json:"responses"`
	// Trustworthy is false when either standard error exceeds the
	// configured quality threshold; callers should not adopt such items.
	Trustworthy bool `json:"trustworthy"`
}

// CalibrationResult reports the outcome of a calibration run.
// Calibrated=false with a Reason is the normal sparse-data outcome, not an
// error; hard errors are reserved for malformed matrices.
type CalibrationResult struct {
	Calibrated bool              `json:"calibrated"`
	Reason     DeclineReason     `json:"reason,omitempty"`
	Items      []ItemCalibration `json:"items,omitempty"`
	Iterations int               `json:"iterations"`
}

const (
	calibMinA = 0.5
	calibMaxA = 2.5
	calibMaxB = 3.0
)

// Calibrate jointly estimates 2PL parameters (a, b) for each item column of
// a person×item response matrix (1 correct, 0 incorrect, -1 missing).
//
// The EM-style loop alternates EAP ability estimates per respondent with
// Fisher-scoring updates of each item's (a, b), bounded by MaxIterations.
// Below the configured minimum respondents / items / responses-per-item the
// calibration is declined with a machine-readable reason.
func Calibrate(matrix [][]int, cfg CalibrationConfig) (CalibrationResult, error) {
	cfg = cfg.withDefaults()

	if err := validateMatrix(matrix); err != nil {
		return CalibrationResult{}, err
	}

	persons := len(matrix)
	items := 0
	if persons > 0 {
		items = len(matrix[0])
	}

	if persons < cfg.MinRespondents {
		return CalibrationResult{Reason: DeclineInsufficientRespondents}, nil
	}
	if items < cfg.MinItems {
		return CalibrationResult{Reason: DeclineInsufficientItems}, nil
	}

	counts := make([]int, items)
	for _, row := range matrix {
		for j, cell := range row {
			if cell != ResponseMissing {
				counts[j]++
			}
		}
	}
	for _, n := range counts {
		if n < cfg.MinResponsesPerItem {
			return CalibrationResult{Reason: DeclineInsufficientResponses}, nil
		}
	}

	params := initialParameters(matrix, items)

	iterations := 0
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		iterations = iter + 1
		thetas := estimateAbilities(matrix, params)

		maxChange := 0.0
		for j := 0; j < items; j++ {
			next := updateItem(matrix, thetas, params[j], j)
			maxChange = math.Max(maxChange, math.Abs(next.A-params[j].A))
			maxChange = math.Max(maxChange, math.Abs(next.B-params[j].B))
			params[j] = next
		}
		if maxChange < cfg.Tolerance {
			break
		}
	}

	thetas := estimateAbilities(matrix, params)
	result := CalibrationResult{
		Calibrated: true,
		Iterations: iterations,
		Items:      make([]ItemCalibration, items),
	}
	for j := 0; j < items; j++ {
		seA, seB := standardErrors(matrix, thetas, params[j], j)
		result.Items[j] = ItemCalibration{
			Item:        params[j],
			SEA:         seA,
			SEB:         seB,
			Responses:   counts[j],
			Trustworthy: math.Max(seA, seB) <= cfg.MaxStandardError,
		}
	}
	return result, nil
}

func validateMatrix(matrix [][]int) error {
	if len(matrix) == 0 {
		return nil
	}
	width := len(matrix[0])
	for i, row := range matrix {
		if len(row) != width {
			return errors.Wrapf(ErrRaggedMatrix, "row %d has %d cells, want %d", i, len(row), width)
		}
		for j, cell := range row {
			if cell != ResponseMissing && cell != 0 && cell != 1 {
				return errors.Wrapf(ErrInvalidCell, "row %d col %d: %d", i, j, cell)
			}
		}
	}
	return nil
}

// initialParameters seeds a=1 and b from each item's classical p-value.
func initialParameters(matrix [][]int, items int) []ItemParameter {
	params := make([]ItemParameter, items)
	for j := 0; j < items; j++ {
		var correct, total float64
		for _, row := range matrix {
			if row[j] == ResponseMissing {
				continue
			}
			total++
			correct += float64(row[j])
		}
		p := 0.5
		if total > 0 {
			p = clampProb(correct / total)
		}
		params[j] = ItemParameter{
			A: 1.0,
			B: clampB(-math.Log(p / (1 - p))),
		}
	}
	return params
}

// estimateAbilities returns an EAP ability per respondent over their
// observed columns.
func estimateAbilities(matrix [][]int, params []ItemParameter) []float64 {
	thetas := make([]float64, len(matrix))
	for i, row := range matrix {
		var responses []bool
		var observed []ItemParameter
		for j, cell := range row {
			if cell == ResponseMissing {
				continue
			}
			responses = append(responses, cell == 1)
			observed = append(observed, params[j])
		}
		est, err := EstimateThetaEAP(responses, observed, Prior{})
		if err != nil {
			continue
		}
		thetas[i] = est.Theta
	}
	return thetas
}

// updateItem applies one Fisher-scoring step to (a, b) for item column j.
//
//	∂lnL/∂a = Σ (u-p)(θ-b)        I_aa = Σ pq(θ-b)²
//	∂lnL/∂b = -a Σ (u-p)          I_bb = a² Σ pq      I_ab = -a Σ pq(θ-b)
func updateItem(matrix [][]int, thetas []float64, item ItemParameter, j int) ItemParameter {
	var gradA, gradB float64
	var iaa, ibb, iab float64

	for i, row := range matrix {
		cell := row[j]
		if cell == ResponseMissing {
			continue
		}
		theta := thetas[i]
		p := Probability2PL(theta, item)
		q := 1 - p
		u := float64(cell)
		dev := theta - item.B

		gradA += (u - p) * dev
		gradB += -item.A * (u - p)
		iaa += p * q * dev * dev
		ibb += item.A * item.A * p * q
		iab += -item.A * p * q * dev
	}

	det := iaa*ibb - iab*iab
	if det < 1e-9 {
		return item
	}

	// Solve the 2x2 system I · Δ = grad.
	deltaA := (ibb*gradA - iab*gradB) / det
	deltaB := (iaa*gradB - iab*gradA) / det

	// Damp oversized steps.
	deltaA = math.Max(-0.5, math.Min(deltaA, 0.5))
	deltaB = math.Max(-0.5, math.Min(deltaB, 0.5))

	return ItemParameter{
		A: math.Max(calibMinA, math.Min(item.A+deltaA, calibMaxA)),
		B: clampB(item.B + deltaB),
	}
}

// standardErrors returns the asymptotic SEs of (a, b) from the inverse of
// the expected information matrix at the fitted parameters.
func standardErrors(matrix [][]int, thetas []float64, item ItemParameter, j int) (seA, seB float64) {
	var iaa, ibb, iab float64
	for i, row := range matrix {
		if row[j] == ResponseMissing {
			continue
		}
		theta := thetas[i]
		p := Probability2PL(theta, item)
		q := 1 - p
		dev := theta - item.B
		iaa += p * q * dev * dev
		ibb += item.A * item.A * p * q
		iab += -item.A * p * q * dev
	}
	det := iaa*ibb - iab*iab
	if det < 1e-9 {
		return math.Inf(1), math.Inf(1)
	}
	return math.Sqrt(ibb / det), math.Sqrt(iaa / det)
}

func clampB(b float64) float64 {
	return math.Max(-calibMaxB, math.Min(b, calibMaxB))
}

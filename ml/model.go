package ml

import (
	"fmt"
	"math"
)

const (
	MinCGPA = 0.0
	MaxCGPA = 10.0

	// UncertaintyBand is the fixed half-width of the displayed range. It is a cosmetic
	// heuristic, not a confidence interval.
	UncertaintyBand = 0.5
)

// LinearModel is a fitted univariate regression line. It is never mutated after LoadModel
// returns, so a single value can be shared by concurrent readers.
type LinearModel struct {
	Slope     float64
	Intercept float64

	Source      string
	FeatureName string
	TargetName  string
}

// NewLinearModel builds a model directly from its two parameters.
func NewLinearModel(slope, intercept float64) *LinearModel {
	return &LinearModel{
		Slope:       slope,
		Intercept:   intercept,
		FeatureName: "cgpa",
		TargetName:  "lpa",
	}
}

// PredictY evaluates the regression line at x.
func (m *LinearModel) PredictY(x float64) float64 {
	// The explicit conversion rounds the product so it cannot be fused into an FMA.
	return float64(m.Slope*x) + m.Intercept
}

// Equation renders the line the way the model information panel shows it.
func (m *LinearModel) Equation() string {
	return fmt.Sprintf("LPA = %.4f × CGPA + %.4f", m.Slope, m.Intercept)
}

// PredictionRequest carries one user-entered CGPA.
type PredictionRequest struct {
	CGPA float64 `json:"cgpa"`
}

// Validate applies ValidateCGPA to the request.
func (r PredictionRequest) Validate() error {
	return ValidateCGPA(r.CGPA)
}

// PredictionResult is the derived output of a single prediction.
type PredictionResult struct {
	CGPA       float64 `json:"cgpa"`
	Value      float64 `json:"value"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// Positive reports whether the predicted package is above zero.
func (r PredictionResult) Positive() bool {
	return r.Value > 0
}

// Predict applies the model to an already validated cgpa.
func Predict(model *LinearModel, cgpa float64) PredictionResult {
	value := model.PredictY(cgpa)
	return PredictionResult{
		CGPA:       cgpa,
		Value:      value,
		LowerBound: math.Max(0, value-UncertaintyBand),
		UpperBound: value + UncertaintyBand,
	}
}

// ValidateCGPA enforces the input contract for Predict. Any cgpa <= 0 yields
// ErrCGPANotPositive, which callers surface as a warning. Values above the scale or
// not finite yield ErrCGPAOutOfRange.
func ValidateCGPA(cgpa float64) error {
	if math.IsNaN(cgpa) || math.IsInf(cgpa, 0) || cgpa > MaxCGPA {
		return ErrCGPAOutOfRange
	}
	if cgpa <= MinCGPA {
		return ErrCGPANotPositive
	}
	return nil
}

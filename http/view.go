package http

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"lpapredictor/ml"
	"lpapredictor/monitoring"
)

const (
	WarnNonPositiveCGPA  = "Please enter a valid CGPA greater than 0"
	noticeBelowThreshold = "The predicted LPA is negative or zero. This might indicate that " +
		"your CGPA is below the minimum placement threshold."
)

// PredictionView is a prediction together with its display strings.
type PredictionView struct {
	ml.PredictionResult

	Positive  bool   `json:"positive"`
	CGPAText  string `json:"cgpa_text"`
	LPAText   string `json:"lpa_text"`
	Summary   string `json:"summary"`
	RangeText string `json:"range_text,omitempty"`
	BasedOn   string `json:"based_on"`
	Notice    string `json:"notice,omitempty"`
}

// ModelView describes the loaded model for the information panel.
type ModelView struct {
	Type        string  `json:"model_type"`
	Intercept   float64 `json:"intercept"`
	Coefficient float64 `json:"coefficient"`
	Equation    string  `json:"equation"`
	Source      string  `json:"source,omitempty"`

	InterceptText   string `json:"-"`
	CoefficientText string `json:"-"`
}

// Formatter renders numbers with Indian digit grouping.
type Formatter struct {
	p *message.Printer
}

func NewFormatter() Formatter {
	return Formatter{p: message.NewPrinter(language.MustParse("en-IN"))}
}

func (f Formatter) CGPA(v float64) string {
	return f.p.Sprintf("%.2f", v)
}

func (f Formatter) LPA(v float64) string {
	return f.p.Sprintf("₹%.2f L", v)
}

func (f Formatter) Prediction(r ml.PredictionResult) PredictionView {
	view := PredictionView{
		PredictionResult: r,
		Positive:         r.Positive(),
		CGPAText:         f.CGPA(r.CGPA),
		LPAText:          f.LPA(r.Value),
		Summary:          f.p.Sprintf("Your predicted LPA is: ₹%.2f Lakhs per annum", r.Value),
		BasedOn:          f.p.Sprintf("%.2f/%.1f", r.CGPA, ml.MaxCGPA),
	}
	if view.Positive {
		view.RangeText = f.p.Sprintf("₹%.2fL - ₹%.2fL", r.LowerBound, r.UpperBound)
	} else {
		view.Notice = noticeBelowThreshold
	}
	return view
}

func (f Formatter) Model(m *ml.LinearModel) ModelView {
	return ModelView{
		Type:            "Linear Regression",
		Intercept:       m.Intercept,
		Coefficient:     m.Slope,
		Equation:        m.Equation(),
		Source:          m.Source,
		InterceptText:   f.p.Sprintf("%.4f", m.Intercept),
		CoefficientText: f.p.Sprintf("%.4f", m.Slope),
	}
}

// predictor validates input, applies the model and memoises rendered results. The model is
// immutable, so a cached view never goes stale.
type predictor struct {
	model   *ml.LinearModel
	cache   *lru.Cache[float64, PredictionView]
	format  Formatter
	metrics *monitoring.Collector
}

func newPredictor(model *ml.LinearModel, cacheSize int, metrics *monitoring.Collector) (*predictor, error) {
	cache, err := lru.New[float64, PredictionView](cacheSize)
	if err != nil {
		return nil, err
	}
	return &predictor{
		model:   model,
		cache:   cache,
		format:  NewFormatter(),
		metrics: metrics,
	}, nil
}

// predict returns ml.ErrCGPANotPositive for the warning case and ml.ErrCGPAOutOfRange for
// rejected input. No prediction is computed in either case.
func (p *predictor) predict(cgpa float64) (PredictionView, error) {
	if err := ml.ValidateCGPA(cgpa); err != nil {
		if ml.IsWarning(err) {
			p.metrics.RecordOutcome(monitoring.OutcomeWarning)
		} else {
			p.metrics.RecordOutcome(monitoring.OutcomeRejected)
		}
		return PredictionView{}, err
	}

	view, ok := p.cache.Get(cgpa)
	p.metrics.RecordCacheLookup(ok)
	if !ok {
		view = p.format.Prediction(ml.Predict(p.model, cgpa))
		p.cache.Add(cgpa, view)
	}
	p.metrics.RecordPrediction(view.Value)
	return view, nil
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"lpapredictor/ml"
)

// predictResponse is the body of /api/predict and of every WebSocket reply. Exactly one
// field is set.
type predictResponse struct {
	Prediction *PredictionView `json:"prediction,omitempty"`
	Warning    string          `json:"warning,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func (s *Server) registerHandlers(mux *http.ServeMux) {
	s.handle(mux, "GET /{$}", s.handleIndex)
	s.handle(mux, "POST /predict", s.handlePredictForm)
	s.handle(mux, "GET /static/predict.js", handleScript)
	s.handle(mux, "GET /api/health", handleHealth)
	s.handle(mux, "GET /api/model", s.handleModel)
	s.handle(mux, "POST /api/predict", s.handlePredictAPI)
	s.handle(mux, "GET /api/ws/predict", s.handlePredictWS)
}

func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, instrument(s.metrics, pattern, h))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.predictor.format.Model(s.predictor.model))
}

// evaluate maps a validated request onto a response and its status code.
func (s *Server) evaluate(req ml.PredictionRequest) (predictResponse, int) {
	view, err := s.predictor.predict(req.CGPA)
	switch {
	case err == nil:
		return predictResponse{Prediction: &view}, http.StatusOK
	case ml.IsWarning(err):
		return predictResponse{Warning: WarnNonPositiveCGPA}, http.StatusUnprocessableEntity
	default:
		return predictResponse{Error: err.Error()}, http.StatusBadRequest
	}
}

func (s *Server) handlePredictAPI(w http.ResponseWriter, r *http.Request) {
	var req ml.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, predictResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	resp, status := s.evaluate(req)
	respondJSON(w, status, resp)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, s.newPage(defaultCGPA))
}

func (s *Server) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.PostFormValue("cgpa"))
	page := s.newPage(raw)
	page.Submitted = true

	cgpa, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		page.Error = "CGPA must be a number"
		s.renderPage(w, http.StatusBadRequest, page)
		return
	}
	page.CGPA = s.predictor.format.CGPA(cgpa)

	resp, status := s.evaluate(ml.PredictionRequest{CGPA: cgpa})
	page.Result = resp.Prediction
	page.Warning = resp.Warning
	page.Error = resp.Error
	if status == http.StatusUnprocessableEntity {
		// The page itself rendered fine; the warning is shown inline.
		status = http.StatusOK
	}
	s.renderPage(w, status, page)
}

// respondJSON writes data as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode JSON", zap.Error(err))
	}
}

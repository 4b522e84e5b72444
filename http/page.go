package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

const defaultCGPA = "7.00"

//go:embed templates/index.html templates/predict.js
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// page is the data behind the single form page.
type page struct {
	Model     ModelView
	CGPA      string
	MinCGPA   float64
	MaxCGPA   float64
	Submitted bool
	Result    *PredictionView
	Warning   string
	Error     string
}

func (s *Server) newPage(cgpa string) page {
	return page{
		Model:   s.predictor.format.Model(s.predictor.model),
		CGPA:    cgpa,
		MinCGPA: 0,
		MaxCGPA: 10,
	}
}

func handleScript(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, templateFS, "templates/predict.js")
}

func (s *Server) renderPage(w http.ResponseWriter, status int, p page) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

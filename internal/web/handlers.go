package web

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/rpgo/swp-projector/internal/chart"
	"github.com/rpgo/swp-projector/internal/config"
	"github.com/rpgo/swp-projector/internal/domain"
	"github.com/rpgo/swp-projector/internal/log"
)

// scenarioName labels single projections run from the form
const scenarioName = "Projection"

type pageData struct {
	Fields      []formField
	Currency    domain.Currency
	Result      *domain.ScenarioResult
	Chart       template.JS
	Assumptions []string
	Invalid     bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.project(w, r, defaultInputs())
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.FromContext(r.Context()).Warn("Parse form error", log.FieldError, err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	s.project(w, r, rawFromForm(r))
}

// project parses raw inputs, simulates them and renders the page. Invalid
// input re-renders the form with field messages and no results.
func (s *Server) project(w http.ResponseWriter, r *http.Request, raw config.RawInputs) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	params, err := config.ParseInputs(raw)
	if err != nil {
		var verr *domain.InvalidInputError
		if !errors.As(err, &verr) {
			logger.Error("Input parsing failed", log.FieldError, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		logger.Info("Projection inputs rejected", log.FieldError, err)
		s.writePage(w, r, http.StatusUnprocessableEntity, pageData{
			Fields:   formFields(raw, verr),
			Currency: s.currency,
			Invalid:  true,
		})
		return
	}

	comparison, err := s.engine.RunSingle(ctx, domain.Scenario{Name: scenarioName, Parameters: params}, s.currency)
	if err != nil {
		logger.Error("Projection failed", log.FieldError, err)
		http.Error(w, "projection failed", http.StatusInternalServerError)
		return
	}
	result := comparison.Scenarios[0]

	script, err := s.drawChart(chart.BuildSeries(result.Projection, s.currency))
	if err != nil {
		logger.Error("Chart rendering failed", log.FieldError, err)
		http.Error(w, "chart unavailable", http.StatusServiceUnavailable)
		return
	}

	s.writePage(w, r, http.StatusOK, pageData{
		Fields:      formFields(raw, nil),
		Currency:    s.currency,
		Result:      &result,
		Chart:       script,
		Assumptions: comparison.Assumptions,
	})
}

// writePage renders into a buffer first so failures never leave a partial page
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.FromContext(r.Context()).Error("Index template execution failed", log.FieldError, err, "template", "index.html")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	data := s.currentChart()
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no chart drawn"}`))
		return
	}
	_, _ = w.Write(data)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

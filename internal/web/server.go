package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/rpgo/swp-projector/internal/calculation"
	"github.com/rpgo/swp-projector/internal/chart"
	"github.com/rpgo/swp-projector/internal/domain"
	"github.com/rpgo/swp-projector/internal/log"
	"github.com/rpgo/swp-projector/internal/output"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"curr":   output.FormatCurrency,
	"amount": output.FormatAmount,
	"pct":    output.FormatPercentage,
}).ParseFS(templatesFS, "templates/*.html"))

// Options configures a Server
type Options struct {
	Addr     string
	Currency domain.Currency
	Logger   *log.Logger
}

// Server serves the projection form and renders results with a chart
type Server struct {
	http.Server

	engine   *calculation.Engine
	currency domain.Currency
	logger   *log.Logger

	// chartMu spans a Replace and the read of the new surface
	chartMu  sync.Mutex
	renderer *chart.Renderer

	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	engine := calculation.NewEngine()
	engine.SetLogger(log.NewCalcLogger(logger))

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			Handler:           withRequestLogging(logger, withSecurityHeaders(mux)),
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine:   engine,
		currency: opts.Currency.OrDefault(),
		logger:   logger,
		renderer: chart.NewRenderer(chart.NewHTMLCanvas()),
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /calculate", s.handleCalculate)
	mux.HandleFunc("GET /chart.json", s.handleChart)
	mux.HandleFunc("GET /healthz", handleHealth)

	return s
}

// Shutdown stops accepting requests and releases the live chart
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
		if err := s.renderer.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	})
	return shutdownErr
}

// drawChart replaces the live chart and returns its embeddable script
func (s *Server) drawChart(series chart.Series) (template.JS, error) {
	s.chartMu.Lock()
	defer s.chartMu.Unlock()

	h, err := s.renderer.Replace(series)
	if err != nil {
		return "", err
	}
	surface, ok := h.Surface().(*chart.HTMLSurface)
	if !ok {
		return "", nil
	}
	return surface.Script(), nil
}

// currentChart returns the live chart config, or nil when none is drawn
func (s *Server) currentChart() []byte {
	s.chartMu.Lock()
	defer s.chartMu.Unlock()

	h := s.renderer.Current()
	if h == nil {
		return nil
	}
	if surface, ok := h.Surface().(*chart.HTMLSurface); ok {
		return surface.JSON()
	}
	return nil
}

package chart

import (
	"encoding/json"
	"fmt"
	"html/template"
	"sync"
)

// ChartJS is a Chart.js line chart configuration. Callbacks (currency
// tick labels, tooltips) are added by the page script.
type ChartJS struct {
	Type    string         `json:"type"`
	Data    ChartJSData    `json:"data"`
	Options ChartJSOptions `json:"options"`
}

type ChartJSData struct {
	Labels   []string         `json:"labels"`
	Datasets []ChartJSDataset `json:"datasets"`
}

type ChartJSDataset struct {
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	BorderColor string    `json:"borderColor"`
	Tension     float64   `json:"tension"`
}

type ChartJSOptions struct {
	Responsive bool           `json:"responsive"`
	Plugins    ChartJSPlugins `json:"plugins"`
}

type ChartJSPlugins struct {
	Title ChartJSTitle `json:"title"`
}

type ChartJSTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// ChartJSConfig maps a series onto a Chart.js line chart
func ChartJSConfig(s Series) ChartJS {
	cfg := ChartJS{
		Type: "line",
		Data: ChartJSData{Labels: s.Labels},
		Options: ChartJSOptions{
			Responsive: true,
			Plugins:    ChartJSPlugins{Title: ChartJSTitle{Display: true, Text: s.Title}},
		},
	}
	for _, ds := range s.Datasets {
		cfg.Data.Datasets = append(cfg.Data.Datasets, ChartJSDataset{
			Label:       ds.Label,
			Data:        ds.Values,
			BorderColor: ds.Color.CSS(),
			Tension:     0.1,
		})
	}
	return cfg
}

// HTMLCanvas produces Chart.js configurations for embedding in pages
type HTMLCanvas struct{}

// NewHTMLCanvas creates an HTML canvas
func NewHTMLCanvas() *HTMLCanvas {
	return &HTMLCanvas{}
}

// Acquire encodes the series as Chart.js JSON
func (c *HTMLCanvas) Acquire(s Series) (Surface, error) {
	data, err := json.Marshal(ChartJSConfig(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart config: %w", err)
	}
	return &HTMLSurface{config: data, currency: s.Currency.Symbol}, nil
}

// HTMLSurface holds an encoded chart until released
type HTMLSurface struct {
	mu       sync.RWMutex
	config   []byte
	currency string
}

// JSON returns the Chart.js configuration, or nil once released
func (s *HTMLSurface) JSON() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Script returns the configuration for use inside a <script> block
func (s *HTMLSurface) Script() template.JS {
	return template.JS(s.JSON())
}

// CurrencySymbol is the prefix for axis ticks and tooltips
func (s *HTMLSurface) CurrencySymbol() string {
	return s.currency
}

// Released reports whether Release has been called
func (s *HTMLSurface) Released() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config == nil
}

// Release drops the encoded configuration
func (s *HTMLSurface) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = nil
	return nil
}

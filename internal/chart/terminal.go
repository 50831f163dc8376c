package chart

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TerminalCanvas draws one column chart per dataset to a writer
type TerminalCanvas struct {
	Out    io.Writer
	Width  int
	Height int
}

// NewTerminalCanvas creates a canvas with an 80x12 chart area
func NewTerminalCanvas(out io.Writer) *TerminalCanvas {
	return &TerminalCanvas{Out: out, Width: 80, Height: 12}
}

// Acquire renders every dataset and writes the result to Out
func (c *TerminalCanvas) Acquire(s Series) (Surface, error) {
	labels := make([]string, len(s.Labels))
	for i, l := range s.Labels {
		labels[i] = shortLabel(l)
	}

	titleStyle := lipgloss.NewStyle().Bold(true)
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Title))
	b.WriteString("\n")
	for _, ds := range s.Datasets {
		color := lipgloss.Color(ds.Color.Hex())
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(ds.Label))
		b.WriteString("\n")
		b.WriteString(ColumnChart(ds.Values, labels, color, c.Width, c.Height))
		b.WriteString("\n")
	}

	text := b.String()
	if c.Out != nil {
		if _, err := io.WriteString(c.Out, text); err != nil {
			return nil, fmt.Errorf("failed to write chart: %w", err)
		}
	}
	return &TerminalSurface{text: text}, nil
}

// TerminalSurface keeps the rendered text of the last chart
type TerminalSurface struct {
	mu   sync.Mutex
	text string
}

// String returns the rendered chart, or "" once released
func (s *TerminalSurface) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Release drops the rendered text
func (s *TerminalSurface) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = ""
	return nil
}

// shortLabel turns "Year 3 Month 12" into "Y3M12" for the x axis
func shortLabel(l string) string {
	var y, m int
	if _, err := fmt.Sscanf(l, "Year %d Month %d", &y, &m); err != nil {
		return l
	}
	return fmt.Sprintf("Y%dM%d", y, m)
}

// ColumnChart renders values as vertical block columns with a labelled y
// axis. When there are more values than columns fit, values are sampled
// evenly, always keeping the first and last.
func ColumnChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if height < 3 {
		height = 3
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)
	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := max(width-yLabelW-1, 5)
	n := len(values)
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	if barW < 2 && n > 1 {
		maxN := max((chartW+1)/3, 2)
		sampled := make([]float64, maxN)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, maxN)
		}
		for i := range sampled {
			src := i * (n - 1) / (maxN - 1)
			sampled[i] = values[src]
			if sampledLabels != nil {
				sampledLabels[i] = labels[src]
			}
		}
		values, labels, n, barW = sampled, sampledLabels, maxN, 2
	}
	barW = min(barW, 6)
	gap := 1
	if n == 1 {
		gap = 0
	}
	axisLen := n*barW + max(0, n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	barStyle := lipgloss.NewStyle().Foreground(color)
	axisStyle := lipgloss.NewStyle().Faint(true)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, tickLabels[row])))
		for i, v := range values {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				idx = min(max(idx, 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n && n > 0 {
		buf := []byte(strings.Repeat(" ", axisLen))
		last := labels[n-1]
		lastPos := max(axisLen-len(last), 0)
		if p := (n - 1) * (barW + gap); p < lastPos {
			lastPos = p
		}
		lastEnd := -1
		step := max(1, (n*8)/(axisLen+1))
		for i := 0; i < n-1; i += step {
			lbl := labels[i]
			pos := i * (barW + gap)
			if pos <= lastEnd || pos+len(lbl) >= lastPos {
				continue
			}
			copy(buf[pos:], lbl)
			lastEnd = pos + len(lbl)
		}
		copy(buf[lastPos:], last)
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", yLabelW+1))
		b.WriteString(axisStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e9:
		return trimUnit(v, 1e9, "B")
	case v >= 1e6:
		return trimUnit(v, 1e6, "M")
	case v >= 1e3:
		return trimUnit(v, 1e3, "k")
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimUnit(v, unit float64, suffix string) string {
	if v == math.Trunc(v/unit)*unit {
		return fmt.Sprintf("%.0f%s", v/unit, suffix)
	}
	return fmt.Sprintf("%.1f%s", v/unit, suffix)
}

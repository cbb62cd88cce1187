package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aptiz/internal/question"
	"github.com/abhisek/aptiz/internal/ui/theme"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// RenderChart draws a chart descriptor as text. Bar charts scale each
// bar to the largest value, pie charts show each slice's share of the
// total, and line charts are drawn as a sparkline above a value table.
// A nil or empty chart renders as "".
func RenderChart(c *question.ChartDescriptor, width int) string {
	if c == nil || len(c.Points) == 0 {
		return ""
	}

	var body string
	switch c.Kind {
	case question.ChartPie:
		body = renderPie(c, width)
	case question.ChartLine:
		body = renderLine(c, width)
	default:
		body = renderBars(c, width)
	}

	caption := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render(fmt.Sprintf("%s chart · %s", chartKindName(c.Kind), valueField(c)))

	return caption + "\n" + body
}

func renderBars(c *question.ChartDescriptor, width int) string {
	maxV := c.Max()
	lw := labelWidth(c.Points)
	lines := make([]string, 0, len(c.Points))
	for i, p := range c.Points {
		pct := 0.0
		if maxV > 0 && p.Value > 0 {
			pct = p.Value / maxV
		}
		bar := NewProgressBar(p.Label, pct, false, width)
		bar.LabelWidth = lw
		bar.Fill = theme.ChartPalette[i%len(theme.ChartPalette)]
		bar.Suffix = FormatValue(p.Value)
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func renderPie(c *question.ChartDescriptor, width int) string {
	total := c.Total()
	lw := labelWidth(c.Points)
	lines := make([]string, 0, len(c.Points))
	for i, p := range c.Points {
		pct := 0.0
		if total > 0 && p.Value > 0 {
			pct = min(p.Value/total, 1)
		}
		bar := NewProgressBar(p.Label, pct, true, width)
		bar.LabelWidth = lw
		bar.Fill = theme.ChartPalette[i%len(theme.ChartPalette)]
		bar.Suffix = FormatValue(p.Value)
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func renderLine(c *question.ChartDescriptor, width int) string {
	lo, hi := c.Points[0].Value, c.Points[0].Value
	for _, p := range c.Points {
		lo = min(lo, p.Value)
		hi = max(hi, p.Value)
	}

	var spark strings.Builder
	for _, p := range c.Points {
		spark.WriteString(strings.Repeat(string(sparkRunes[sparkIndex(p.Value, lo, hi)]), 3))
		spark.WriteString(" ")
	}

	lw := labelWidth(c.Points)
	rows := []string{
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(spark.String()),
		"",
	}
	for _, p := range c.Points {
		label := lipgloss.NewStyle().Foreground(theme.Text).Width(lw).MaxWidth(lw).Render(p.Label)
		value := lipgloss.NewStyle().Foreground(theme.TextDim).Render(FormatValue(p.Value))
		rows = append(rows, lipgloss.NewStyle().MaxWidth(width).Render(label+"  "+value))
	}
	return strings.Join(rows, "\n")
}

// sparkIndex maps v within [lo, hi] onto sparkRunes. Halving before
// subtracting keeps the span finite for values near the float64 limits.
func sparkIndex(v, lo, hi float64) int {
	top := len(sparkRunes) - 1
	span := hi/2 - lo/2
	if !(span > 0) {
		return top
	}
	ratio := (v/2 - lo/2) / span
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return top
	}
	return max(0, min(top, int(ratio*float64(top))))
}

func labelWidth(points []question.Point) int {
	w := 0
	for _, p := range points {
		w = max(w, lipgloss.Width(p.Label))
	}
	return min(w, 20)
}

func valueField(c *question.ChartDescriptor) string {
	if c.ValueField == "" {
		return question.DefaultValueField
	}
	return c.ValueField
}

func chartKindName(k question.ChartKind) string {
	switch k {
	case question.ChartPie:
		return "Pie"
	case question.ChartLine:
		return "Line"
	}
	return "Bar"
}

// FormatValue prints a chart value without trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

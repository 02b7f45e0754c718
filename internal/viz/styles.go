package viz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel, chart and status styles.
var (
	Subtle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	// Shown while a GIF is being recorded.
	StatusRecording = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444")).Blink(true)

	MetricValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	MetricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(12)

	// Population sparkline tiers, high to low.
	tierStyles = [3]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")),
	}

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(panelWidth)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// tier picks a style for a value in [0, 1].
func tier(v, hi, lo float64) lipgloss.Style {
	switch {
	case v > hi:
		return tierStyles[0]
	case v > lo:
		return tierStyles[1]
	}
	return tierStyles[2]
}

// GradientText colors each rune of text on a line between two hex colors.
func GradientText(text string, from, to lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, b := rgbOf(from), rgbOf(to)

	var sb strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		var c [3]int
		for k := range c {
			c[k] = a[k] + int(t*float64(b[k]-a[k]))
		}
		col := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
		sb.WriteString(lipgloss.NewStyle().Foreground(col).Render(string(r)))
	}
	return sb.String()
}

// rgbOf parses "#rrggbb"; anything else reads as white.
func rgbOf(c lipgloss.Color) [3]int {
	var r, g, b int
	if _, err := fmt.Sscanf(string(c), "#%02x%02x%02x", &r, &g, &b); err != nil {
		return [3]int{255, 255, 255}
	}
	return [3]int{r, g, b}
}

func AnimatedSpinner(frame int) string {
	return spinnerFrames[frame%len(spinnerFrames)]
}

// ProgressBar fills width cells by fraction, clamped to [0, 1].
func ProgressBar(fraction float64, width int) string {
	filled := min(max(int(fraction*float64(width)), 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return tier(fraction, 0.8, 0.4).Render(bar)
}

// SparklineChart draws up to width samples of values scaled between their
// min and max.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	lo, hi := slices.Min(values), slices.Max(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	stride := max(len(values)/width, 1)

	var sb strings.Builder
	for i := 0; i < width && i*stride < len(values); i++ {
		norm := (values[i*stride] - lo) / span
		r := sparkRunes[min(max(int(norm*float64(len(sparkRunes)-1)), 0), len(sparkRunes)-1)]
		sb.WriteString(tier(norm, 0.7, 0.3).Render(string(r)))
	}
	return sb.String()
}

func Separator(width int) string {
	half := width / 2
	return Subtle.Render(strings.Repeat("─", max(half-3, 0)) + " ◆ " + strings.Repeat("─", max(width-half-3, 0)))
}

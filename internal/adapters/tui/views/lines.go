package views

import (
	"fmt"
	"strings"

	"chemint/internal/adapters/tui/styles"
	"chemint/internal/domain"
)

// FormatLine renders one line as plain text
func FormatLine(l domain.Line) string {
	return fmt.Sprintf("%-14s %-16s %-16s %5.2f", l.Category, l.From.Label(), l.To.Label(), l.Distance)
}

// LinesSummary renders lines as plain text, one per row, for the clipboard
func LinesSummary(lines []domain.Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(FormatLine(l))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderLines draws up to maxRows lines with their colors and a per-category tally
func RenderLines(lines []domain.Line, maxRows int) string {
	if len(lines) == 0 {
		return styles.MutedText.Render("No interaction lines drawn")
	}

	var b strings.Builder
	counts := domain.CountByCategory(lines)
	var tally []string
	for _, c := range domain.DefaultCategories {
		if n := counts[c.Name]; n > 0 {
			tally = append(tally, fmt.Sprintf("%s %d", c.Name, n))
		}
	}
	b.WriteString(styles.MutedText.Render(strings.Join(tally, ", ")))

	shown := lines
	if maxRows > 0 && len(shown) > maxRows {
		shown = shown[:maxRows]
	}
	for _, l := range shown {
		b.WriteString("\n")
		b.WriteString(styles.Swatch(l.Color.Hex()))
		b.WriteString(" ")
		b.WriteString(FormatLine(l))
	}
	if len(shown) < len(lines) {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("… %d more", len(lines)-len(shown))))
	}
	return b.String()
}

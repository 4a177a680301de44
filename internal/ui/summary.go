package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"stride/internal/session"
)

// SummaryMarkdown describes a finished segment as markdown.
func SummaryMarkdown(snap session.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s session\n\n", snap.Mode.Title())
	fmt.Fprintf(&b, "- **Progress:** %s (%.0f%%)\n", FormatMetric(snap), snap.ProgressRatio*100)
	fmt.Fprintf(&b, "- **State:** %s\n", snap.State)
	if !snap.Mode.UsesLocation() {
		fmt.Fprintf(&b, "- **Distance:** %.2f km\n", snap.Stats.DistanceKm)
		fmt.Fprintf(&b, "- **Calories:** %.2f kcal\n", snap.Stats.Calories)
	}
	if snap.GoalReached {
		b.WriteString("\n**Goal reached!**\n")
	}
	if snap.Err != nil {
		fmt.Fprintf(&b, "\n> %s\n", snap.Err)
	}
	return b.String()
}

// RenderSummary renders the summary for the terminal. An empty style picks one from the environment.
func RenderSummary(snap session.Snapshot, style string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(80)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	md := SummaryMarkdown(snap)
	out, err := renderer.Render(md)
	if err != nil {
		// Fallback to plain text
		return md, nil
	}
	return out, nil
}

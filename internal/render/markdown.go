package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns markdown into terminal text.
type Renderer interface {
	Render(string) (string, error)
}

// NewRenderer builds a glamour renderer. Plain output carries no ANSI styling.
func NewRenderer(width int, plain bool) (Renderer, error) {
	if width <= 0 {
		width = 80
	}
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	return glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
}

// Markdown renders md, falling back to the raw text when rendering fails or
// no renderer is configured.
func Markdown(r Renderer, md string) string {
	if r == nil {
		return strings.TrimSpace(md)
	}
	out, err := r.Render(md)
	if err != nil {
		return strings.TrimSpace(md)
	}
	return strings.TrimRight(out, "\n")
}

// Bullets formats a heading and bullet list as markdown.
func Bullets(title string, items []string) string {
	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(title)
	b.WriteString("\n\n")
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

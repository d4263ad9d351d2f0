package markdown

import (
	"strings"

	"github.com/sha1n/mcp-docs-server/internal/domain"
)

// monospaceHints are font family fragments that mark a run as code.
var monospaceHints = []string{"Courier", "Mono"}

// Compose renders one run's text with inline Markdown markers. Wraps are
// applied in a fixed order: emphasis, underline, strikethrough, link, code.
// Trailing newlines stay outside the markers, so a run of just "\n" comes
// back unchanged. renderParagraph trims the paragraph's closing newline from
// the composed line and depends on it never sitting inside a marker.
func Compose(text string, style domain.Style) string {
	core := strings.TrimRight(text, "\n")
	if core == "" {
		return text
	}
	trailing := text[len(core):]

	switch {
	case style.IsBold() && style.IsItalic():
		core = "***" + core + "***"
	case style.IsBold():
		core = "**" + core + "**"
	case style.IsItalic():
		core = "*" + core + "*"
	}

	if style.IsUnderline() {
		core = "__" + core + "__"
	}

	if style.IsStrikethrough() {
		core = "~~" + core + "~~"
	}

	if style.Link != nil && style.Link.URL != "" {
		core = "[" + core + "](" + style.Link.URL + ")"
	}

	if isMonospace(style.FontFamily) {
		core = "`" + core + "`"
	}

	return core + trailing
}

// ComposeRun renders a run through Compose.
func ComposeRun(r *domain.Run) string {
	return Compose(r.Text(), r.Style())
}

func isMonospace(family string) bool {
	for _, hint := range monospaceHints {
		if strings.Contains(family, hint) {
			return true
		}
	}
	return false
}

// Package markdown renders document snapshots as Markdown.
//
// Rendering is a pure function of the snapshot: no escaping is performed on
// source text and the output is trimmed of surrounding whitespace.
package markdown

import (
	"strconv"
	"strings"

	"github.com/sha1n/mcp-docs-server/internal/domain"
)

const horizontalRule = "\n---\n\n"

// Render converts a document snapshot into Markdown.
func Render(doc *domain.Document) string {
	if doc == nil {
		return ""
	}
	var sb strings.Builder
	renderBlocks(&sb, doc.Body.Content)
	return strings.TrimSpace(sb.String())
}

func renderBlocks(sb *strings.Builder, blocks []*domain.Block) {
	for _, b := range blocks {
		switch {
		case b.Paragraph != nil:
			sb.WriteString(renderParagraph(b.Paragraph))
		case b.Table != nil:
			sb.WriteString(renderTable(b.Table))
		case b.SectionBreak != nil:
			// Every document opens with a section break at index 0
			if b.StartIndex > 0 {
				sb.WriteString(horizontalRule)
			}
		}
	}
}

func renderParagraph(p *domain.Paragraph) string {
	var text strings.Builder
	for _, r := range p.Elements {
		text.WriteString(ComposeRun(r))
	}
	line := strings.TrimRight(text.String(), "\n")
	if line == "" {
		return "\n"
	}

	if p.Bullet != nil {
		level := int(p.Bullet.NestingLevel)
		marker := "- "
		if level == 0 {
			marker = "1. "
		}
		return strings.Repeat("  ", level) + marker + line + "\n"
	}

	return headingPrefix(p.NamedStyle()) + line + "\n\n"
}

// headingPrefix maps a named style to its Markdown heading marker.
func headingPrefix(named string) string {
	switch named {
	case domain.StyleTitle:
		return "# "
	case domain.StyleSubtitle:
		return "## "
	}
	if level, ok := strings.CutPrefix(named, "HEADING_"); ok {
		if n, err := strconv.Atoi(level); err == nil && n >= 1 && n <= 6 {
			return strings.Repeat("#", n) + " "
		}
	}
	return ""
}

func renderTable(t *domain.Table) string {
	var sb strings.Builder
	for i, row := range t.TableRows {
		cells := make([]string, len(row.TableCells))
		for j, cell := range row.TableCells {
			cells[j] = cellText(cell)
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")

		if i == 0 {
			sep := make([]string, len(row.TableCells))
			for j := range sep {
				sep[j] = "---"
			}
			sb.WriteString("| " + strings.Join(sep, " | ") + " |\n")
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func cellText(c *domain.TableCell) string {
	return strings.TrimSpace(strings.ReplaceAll(c.Text(), "\n", " "))
}

// Package notes manages numbered note paragraphs of the form
// "[Note N] text" inside a document.
package notes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sha1n/mcp-docs-server/internal/domain"
)

var notePattern = regexp.MustCompile(`^\[Note (\d+)\]\s?`)

// Note is one note paragraph found in a document.
type Note struct {
	Number int
	Text   string
	Path   string
}

// Format returns the paragraph text of note n.
func Format(n int, text string) string {
	return fmt.Sprintf("[Note %d] %s", n, strings.TrimSpace(text))
}

// List returns every note paragraph in document order.
func List(doc *domain.Document) []Note {
	var out []Note
	eachParagraph(doc, func(p paragraph) {
		if m := notePattern.FindStringSubmatch(p.text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return
			}
			out = append(out, Note{Number: n, Text: strings.TrimPrefix(p.text, m[0]), Path: p.path})
		}
	})
	return out
}

// Next returns the number the next inserted note should carry.
func Next(doc *domain.Document) int {
	highest := 0
	for _, n := range List(doc) {
		if n.Number > highest {
			highest = n.Number
		}
	}
	return highest + 1
}

// InsertInstructions returns the instructions that add a new note after the
// one paragraph containing anchorText. A missing or repeated anchor fails
// rather than guessing.
//
// The note is inserted in front of the anchor's closing newline, so the
// instructions stay valid when the anchor is the last paragraph of its
// segment. The new paragraph is reset to plain normal text.
func InsertInstructions(doc *domain.Document, anchorText, text string) ([]domain.Instruction, int, error) {
	if strings.TrimSpace(text) == "" {
		return nil, 0, fmt.Errorf("%w: note text is empty", domain.ErrMissingPayload)
	}
	if strings.TrimSpace(anchorText) == "" {
		return nil, 0, fmt.Errorf("%w: anchor text is empty", domain.ErrMissingPayload)
	}

	var matches []paragraph
	eachParagraph(doc, func(p paragraph) {
		if strings.Contains(p.text, anchorText) {
			matches = append(matches, p)
		}
	})

	switch len(matches) {
	case 0:
		return nil, 0, fmt.Errorf("%w: no paragraph contains %q", domain.ErrTargetNotFound, anchorText)
	case 1:
		// exactly one
	default:
		paths := make([]string, len(matches))
		for i, m := range matches {
			paths[i] = m.path
		}
		return nil, 0, fmt.Errorf("%w: %d paragraphs contain %q (%s)", domain.ErrAmbiguousTarget, len(matches), anchorText, strings.Join(paths, ", "))
	}

	n := Next(doc)
	note := Format(n, text)
	at := matches[0].end - 1
	start := at + 1
	end := start + domain.TextLength(note)

	return []domain.Instruction{
		domain.InsertText{Index: at, Text: "\n" + note},
		domain.SetParagraphStyle{
			Start:  start,
			End:    end,
			Style:  domain.ParagraphStyle{NamedStyleType: domain.StyleNormalText},
			Fields: []string{"namedStyleType"},
		},
		domain.SetTextStyle{
			Start:  start,
			End:    end,
			Style:  plainStyle(),
			Fields: []string{"bold", "italic", "underline", "strikethrough", "link"},
		},
	}, n, nil
}

// UpdateInstructions returns the instructions that replace the text of note
// n. The paragraph's closing newline is kept.
func UpdateInstructions(doc *domain.Document, n int, text string) ([]domain.Instruction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: note text is empty", domain.ErrMissingPayload)
	}

	var found []paragraph
	eachParagraph(doc, func(p paragraph) {
		if num, ok := noteNumber(p.text); ok && num == n {
			found = append(found, p)
		}
	})

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: note %d", domain.ErrTargetNotFound, n)
	case 1:
		p := found[0]
		return []domain.Instruction{
			domain.DeleteRange{Start: p.start, End: p.end - 1},
			domain.InsertText{Index: p.start, Text: Format(n, text)},
		}, nil
	default:
		return nil, fmt.Errorf("%w: note %d appears %d times", domain.ErrAmbiguousTarget, n, len(found))
	}
}

func plainStyle() domain.Style {
	return domain.Style{
		Bold:          domain.Bool(false),
		Italic:        domain.Bool(false),
		Underline:     domain.Bool(false),
		Strikethrough: domain.Bool(false),
		Link:          &domain.Link{},
	}
}

func noteNumber(text string) (int, bool) {
	m := notePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// paragraph is one paragraph with its newline-trimmed text and the index
// range it covers, closing newline included.
type paragraph struct {
	path  string
	text  string
	start int64
	end   int64
}

// eachParagraph calls fn for every paragraph, including those nested in
// tables.
func eachParagraph(doc *domain.Document, fn func(p paragraph)) {
	doc.Walk(func(path string, n domain.Node) bool {
		b, ok := n.(*domain.Block)
		if !ok || b.Paragraph == nil {
			return true
		}
		fn(paragraph{
			path:  path,
			text:  strings.TrimRight(b.Paragraph.Text(), "\n"),
			start: b.StartIndex,
			end:   b.EndIndex,
		})
		return false
	})
}

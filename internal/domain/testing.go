package domain

import "strings"

// Span is a piece of paragraph text with an optional style, used by Builder.
type Span struct {
	Text  string
	Style *Style
}

// Plain returns an unstyled span.
func Plain(text string) Span {
	return Span{Text: text}
}

// Styled returns a span carrying style.
func Styled(text string, style Style) Span {
	return Span{Text: text, Style: &style}
}

// Builder assembles documents with a consistent index space, the way the
// document service stamps them. It is exported for use in tests.
type Builder struct {
	doc    *Document
	cursor int64
}

// NewBuilder starts a document that opens with the leading section break.
func NewBuilder(id, title string) *Builder {
	b := &Builder{doc: &Document{DocumentID: id, Title: title}}
	b.doc.Body.Content = append(b.doc.Body.Content, &Block{
		EndIndex:     1,
		SectionBreak: &SectionBreak{SectionType: "CONTINUOUS"},
	})
	b.cursor = 1
	return b
}

// Paragraph appends a paragraph with the given named style ("" for normal).
func (b *Builder) Paragraph(named string, spans ...Span) *Builder {
	block := b.paragraph(b.cursor, named, nil, spans)
	b.doc.Body.Content = append(b.doc.Body.Content, block)
	b.cursor = block.EndIndex
	return b
}

// ListItem appends a bulleted paragraph at the given nesting level.
func (b *Builder) ListItem(level int64, spans ...Span) *Builder {
	block := b.paragraph(b.cursor, "", &Bullet{ListID: "list-1", NestingLevel: level}, spans)
	b.doc.Body.Content = append(b.doc.Body.Content, block)
	b.cursor = block.EndIndex
	return b
}

// SectionBreak appends a section break.
func (b *Builder) SectionBreak() *Builder {
	b.doc.Body.Content = append(b.doc.Body.Content, &Block{
		StartIndex:   b.cursor,
		EndIndex:     b.cursor + 1,
		SectionBreak: &SectionBreak{SectionType: "NEXT_PAGE"},
	})
	b.cursor++
	return b
}

// Table appends a table whose cells each hold one plain paragraph.
func (b *Builder) Table(cells [][]string) *Builder {
	start := b.cursor
	pos := start + 1
	table := &Table{Rows: int64(len(cells))}
	for _, row := range cells {
		if int64(len(row)) > table.Columns {
			table.Columns = int64(len(row))
		}
		tr := &TableRow{StartIndex: pos}
		for _, text := range row {
			cell := &TableCell{StartIndex: pos}
			p := b.paragraph(pos+1, "", nil, []Span{Plain(text)})
			cell.Content = []*Block{p}
			cell.EndIndex = p.EndIndex
			pos = cell.EndIndex
			tr.TableCells = append(tr.TableCells, cell)
		}
		tr.EndIndex = pos
		table.TableRows = append(table.TableRows, tr)
	}
	b.doc.Body.Content = append(b.doc.Body.Content, &Block{
		StartIndex: start,
		EndIndex:   pos + 1,
		Table:      table,
	})
	b.cursor = pos + 1
	return b
}

// Build returns the assembled document.
func (b *Builder) Build() *Document {
	return b.doc
}

func (b *Builder) paragraph(start int64, named string, bullet *Bullet, spans []Span) *Block {
	if len(spans) == 0 || !strings.HasSuffix(spans[len(spans)-1].Text, "\n") {
		spans = append(spans, Plain("\n"))
	}
	p := &Paragraph{Bullet: bullet}
	if named != "" {
		p.ParagraphStyle = &ParagraphStyle{NamedStyleType: named}
	}
	pos := start
	for _, s := range spans {
		end := pos + TextLength(s.Text)
		p.Elements = append(p.Elements, &Run{
			StartIndex: pos,
			EndIndex:   end,
			TextRun:    &TextRun{Content: s.Text, TextStyle: s.Style},
		})
		pos = end
	}
	return &Block{StartIndex: start, EndIndex: pos, Paragraph: p}
}

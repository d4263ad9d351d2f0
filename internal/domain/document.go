package domain

import (
	"strings"
	"unicode/utf16"
)

// Named paragraph styles understood by the document service.
const (
	StyleNormalText = "NORMAL_TEXT"
	StyleTitle      = "TITLE"
	StyleSubtitle   = "SUBTITLE"
	StyleHeading1   = "HEADING_1"
	StyleHeading2   = "HEADING_2"
	StyleHeading3   = "HEADING_3"
	StyleHeading4   = "HEADING_4"
	StyleHeading5   = "HEADING_5"
	StyleHeading6   = "HEADING_6"
)

// UnitPoints is the only dimension unit the document service accepts.
const UnitPoints = "PT"

// Document is an immutable snapshot of a hosted document.
// It is valid only for the round trip that fetched it.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	RevisionID string `json:"revisionId,omitempty"`
	Body       Body   `json:"body"`
}

// Body is the root container of a document. Path expressions are evaluated
// against it, so "$.content[2]" addresses the third block.
type Body struct {
	Content []*Block `json:"content"`
}

// Block is a structural element. Exactly one of Paragraph, Table or
// SectionBreak is set; a block with none set is opaque (e.g. a table of
// contents) and carries only its range.
type Block struct {
	StartIndex   int64         `json:"startIndex,omitempty"`
	EndIndex     int64         `json:"endIndex"`
	Paragraph    *Paragraph    `json:"paragraph,omitempty"`
	Table        *Table        `json:"table,omitempty"`
	SectionBreak *SectionBreak `json:"sectionBreak,omitempty"`
}

// Paragraph is a run sequence plus block-level style.
type Paragraph struct {
	Elements       []*Run          `json:"elements"`
	ParagraphStyle *ParagraphStyle `json:"paragraphStyle,omitempty"`
	Bullet         *Bullet         `json:"bullet,omitempty"`
}

// NamedStyle returns the paragraph's named style, defaulting to NORMAL_TEXT.
func (p *Paragraph) NamedStyle() string {
	if p.ParagraphStyle == nil || p.ParagraphStyle.NamedStyleType == "" {
		return StyleNormalText
	}
	return p.ParagraphStyle.NamedStyleType
}

// Text returns the plain concatenated text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Elements {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// Bullet marks a paragraph as a list item.
type Bullet struct {
	ListID       string `json:"listId,omitempty"`
	NestingLevel int64  `json:"nestingLevel,omitempty"`
}

// ParagraphStyle holds paragraph attributes. Zero values and nil pointers mean
// "unspecified"; the same type doubles as a partial update patch.
type ParagraphStyle struct {
	NamedStyleType  string     `json:"namedStyleType,omitempty"`
	Alignment       string     `json:"alignment,omitempty"`
	Direction       string     `json:"direction,omitempty"`
	LineSpacing     *float64   `json:"lineSpacing,omitempty"`
	IndentStart     *Dimension `json:"indentStart,omitempty"`
	IndentEnd       *Dimension `json:"indentEnd,omitempty"`
	IndentFirstLine *Dimension `json:"indentFirstLine,omitempty"`
	SpaceAbove      *Dimension `json:"spaceAbove,omitempty"`
	SpaceBelow      *Dimension `json:"spaceBelow,omitempty"`
}

// Table is a grid of cells; cell content shares the document index space.
type Table struct {
	Rows      int64       `json:"rows"`
	Columns   int64       `json:"columns"`
	TableRows []*TableRow `json:"tableRows"`
}

// TableRow is one row of a table.
type TableRow struct {
	StartIndex int64        `json:"startIndex,omitempty"`
	EndIndex   int64        `json:"endIndex"`
	TableCells []*TableCell `json:"tableCells"`
}

// TableCell holds nested blocks.
type TableCell struct {
	StartIndex int64    `json:"startIndex,omitempty"`
	EndIndex   int64    `json:"endIndex"`
	Content    []*Block `json:"content"`
}

// Text returns the plain text of every run nested in the cell.
func (c *TableCell) Text() string {
	var sb strings.Builder
	for _, b := range c.Content {
		if b.Paragraph != nil {
			sb.WriteString(b.Paragraph.Text())
		}
	}
	return sb.String()
}

// SectionBreak is a structural marker with no text.
type SectionBreak struct {
	SectionType string `json:"sectionType,omitempty"`
}

// Run is one element of a paragraph. Only text runs carry content; other
// inline elements (page breaks, images) keep their range so that siblings
// stay contiguous.
type Run struct {
	StartIndex int64    `json:"startIndex,omitempty"`
	EndIndex   int64    `json:"endIndex"`
	TextRun    *TextRun `json:"textRun,omitempty"`
}

// Text returns the run's text or "" for non-text elements.
func (r *Run) Text() string {
	if r.TextRun == nil {
		return ""
	}
	return r.TextRun.Content
}

// Style returns the run's style, or the zero Style when unset.
func (r *Run) Style() Style {
	if r.TextRun == nil || r.TextRun.TextStyle == nil {
		return Style{}
	}
	return *r.TextRun.TextStyle
}

// TextRun is a styled span of text.
type TextRun struct {
	Content   string `json:"content"`
	TextStyle *Style `json:"textStyle,omitempty"`
}

// Style is the character style of a run, and also a partial update patch.
// A nil pointer (or empty FontFamily) means "inherit", never "false".
type Style struct {
	Bold            *bool      `json:"bold,omitempty"`
	Italic          *bool      `json:"italic,omitempty"`
	Underline       *bool      `json:"underline,omitempty"`
	Strikethrough   *bool      `json:"strikethrough,omitempty"`
	FontSize        *Dimension `json:"fontSize,omitempty"`
	ForegroundColor *Color     `json:"foregroundColor,omitempty"`
	BackgroundColor *Color     `json:"backgroundColor,omitempty"`
	Link            *Link      `json:"link,omitempty"`
	FontFamily      string     `json:"fontFamily,omitempty"`
}

// IsBold reports whether bold is explicitly on.
func (s Style) IsBold() bool { return isOn(s.Bold) }

// IsItalic reports whether italic is explicitly on.
func (s Style) IsItalic() bool { return isOn(s.Italic) }

// IsUnderline reports whether underline is explicitly on.
func (s Style) IsUnderline() bool { return isOn(s.Underline) }

// IsStrikethrough reports whether strikethrough is explicitly on.
func (s Style) IsStrikethrough() bool { return isOn(s.Strikethrough) }

func isOn(b *bool) bool {
	return b != nil && *b
}

// Dimension is a magnitude with an explicit unit.
type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

// Points returns a dimension expressed in points.
func Points(v float64) *Dimension {
	return &Dimension{Magnitude: v, Unit: UnitPoints}
}

// Color is a hex RGB color such as "#1a2b3c". An empty Color clears the
// attribute when used in a patch.
type Color string

// Link is a hyperlink target. An empty URL removes the link in a patch.
type Link struct {
	URL string `json:"url"`
}

// Bool returns a pointer to b, for building styles.
func Bool(b bool) *bool {
	return &b
}

// TextLength returns the length of s in the document index space, which
// counts UTF-16 code units.
func TextLength(s string) int64 {
	var n int64
	for _, r := range s {
		n += int64(utf16.RuneLen(r))
	}
	return n
}

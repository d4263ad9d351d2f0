package gdocs

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sha1n/mcp-docs-server/internal/domain"
	"google.golang.org/api/docs/v1"
)

// FromDocs converts an API document into a domain snapshot.
func FromDocs(d *docs.Document) *domain.Document {
	if d == nil {
		return nil
	}
	doc := &domain.Document{
		DocumentID: d.DocumentId,
		Title:      d.Title,
		RevisionID: d.RevisionId,
	}
	if d.Body != nil {
		doc.Body.Content = fromElements(d.Body.Content)
	}
	return doc
}

func fromElements(elements []*docs.StructuralElement) []*domain.Block {
	blocks := make([]*domain.Block, 0, len(elements))
	for _, el := range elements {
		if el == nil {
			continue
		}
		block := &domain.Block{StartIndex: el.StartIndex, EndIndex: el.EndIndex}
		switch {
		case el.Paragraph != nil:
			block.Paragraph = fromParagraph(el.Paragraph)
		case el.Table != nil:
			block.Table = fromTable(el.Table)
		case el.SectionBreak != nil:
			block.SectionBreak = &domain.SectionBreak{}
			if el.SectionBreak.SectionStyle != nil {
				block.SectionBreak.SectionType = el.SectionBreak.SectionStyle.SectionType
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func fromParagraph(p *docs.Paragraph) *domain.Paragraph {
	out := &domain.Paragraph{Elements: make([]*domain.Run, 0, len(p.Elements))}
	for _, el := range p.Elements {
		if el == nil {
			continue
		}
		run := &domain.Run{StartIndex: el.StartIndex, EndIndex: el.EndIndex}
		if el.TextRun != nil {
			run.TextRun = &domain.TextRun{
				Content:   el.TextRun.Content,
				TextStyle: fromTextStyle(el.TextRun.TextStyle),
			}
		}
		out.Elements = append(out.Elements, run)
	}
	if p.ParagraphStyle != nil {
		out.ParagraphStyle = fromParagraphStyle(p.ParagraphStyle)
	}
	if p.Bullet != nil {
		out.Bullet = &domain.Bullet{ListID: p.Bullet.ListId, NestingLevel: p.Bullet.NestingLevel}
	}
	return out
}

func fromTable(t *docs.Table) *domain.Table {
	out := &domain.Table{Rows: t.Rows, Columns: t.Columns}
	for _, row := range t.TableRows {
		if row == nil {
			continue
		}
		tr := &domain.TableRow{StartIndex: row.StartIndex, EndIndex: row.EndIndex}
		for _, cell := range row.TableCells {
			if cell == nil {
				continue
			}
			tr.TableCells = append(tr.TableCells, &domain.TableCell{
				StartIndex: cell.StartIndex,
				EndIndex:   cell.EndIndex,
				Content:    fromElements(cell.Content),
			})
		}
		out.TableRows = append(out.TableRows, tr)
	}
	return out
}

// fromTextStyle keeps only attributes that are on or set; the API omits
// false booleans, so a false flag is indistinguishable from unset.
func fromTextStyle(s *docs.TextStyle) *domain.Style {
	if s == nil {
		return nil
	}
	out := &domain.Style{}
	if s.Bold {
		out.Bold = domain.Bool(true)
	}
	if s.Italic {
		out.Italic = domain.Bool(true)
	}
	if s.Underline {
		out.Underline = domain.Bool(true)
	}
	if s.Strikethrough {
		out.Strikethrough = domain.Bool(true)
	}
	if s.FontSize != nil {
		out.FontSize = &domain.Dimension{Magnitude: s.FontSize.Magnitude, Unit: s.FontSize.Unit}
	}
	out.ForegroundColor = fromColor(s.ForegroundColor)
	out.BackgroundColor = fromColor(s.BackgroundColor)
	if s.Link != nil && s.Link.Url != "" {
		out.Link = &domain.Link{URL: s.Link.Url}
	}
	if s.WeightedFontFamily != nil {
		out.FontFamily = s.WeightedFontFamily.FontFamily
	}
	return out
}

func fromParagraphStyle(s *docs.ParagraphStyle) *domain.ParagraphStyle {
	out := &domain.ParagraphStyle{
		NamedStyleType:  s.NamedStyleType,
		Alignment:       s.Alignment,
		Direction:       s.Direction,
		IndentStart:     fromDimension(s.IndentStart),
		IndentEnd:       fromDimension(s.IndentEnd),
		IndentFirstLine: fromDimension(s.IndentFirstLine),
		SpaceAbove:      fromDimension(s.SpaceAbove),
		SpaceBelow:      fromDimension(s.SpaceBelow),
	}
	if s.LineSpacing != 0 {
		v := s.LineSpacing
		out.LineSpacing = &v
	}
	return out
}

func fromDimension(d *docs.Dimension) *domain.Dimension {
	if d == nil {
		return nil
	}
	return &domain.Dimension{Magnitude: d.Magnitude, Unit: d.Unit}
}

func fromColor(c *docs.OptionalColor) *domain.Color {
	if c == nil || c.Color == nil || c.Color.RgbColor == nil {
		return nil
	}
	rgb := c.Color.RgbColor
	hex := domain.Color(fmt.Sprintf("#%02x%02x%02x", channel(rgb.Red), channel(rgb.Green), channel(rgb.Blue)))
	return &hex
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// toColor converts "#rrggbb" (or "rrggbb") to an API color. An empty color
// yields an OptionalColor with no value, which clears the attribute.
func toColor(c domain.Color) (*docs.OptionalColor, error) {
	hex := strings.TrimPrefix(string(c), "#")
	if hex == "" {
		return &docs.OptionalColor{}, nil
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid color %q: expected #rrggbb", string(c))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", string(c), err)
	}
	return &docs.OptionalColor{
		Color: &docs.Color{
			RgbColor: &docs.RgbColor{
				Red:   float64((v>>16)&0xff) / 255,
				Green: float64((v>>8)&0xff) / 255,
				Blue:  float64(v&0xff) / 255,
				// Zero channels must still be sent
				ForceSendFields: []string{"Red", "Green", "Blue"},
			},
		},
	}, nil
}

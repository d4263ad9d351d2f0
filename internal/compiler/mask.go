package compiler

import (
	"github.com/sha1n/mcp-docs-server/internal/domain"
)

// textField describes one maskable character-style attribute.
type textField struct {
	name    string
	present func(s *domain.Style) bool
	copy    func(dst, src *domain.Style)
}

// textFields is ordered; masks list fields in this order.
var textFields = []textField{
	{"bold", func(s *domain.Style) bool { return s.Bold != nil }, func(d, s *domain.Style) { d.Bold = s.Bold }},
	{"italic", func(s *domain.Style) bool { return s.Italic != nil }, func(d, s *domain.Style) { d.Italic = s.Italic }},
	{"underline", func(s *domain.Style) bool { return s.Underline != nil }, func(d, s *domain.Style) { d.Underline = s.Underline }},
	{"strikethrough", func(s *domain.Style) bool { return s.Strikethrough != nil }, func(d, s *domain.Style) { d.Strikethrough = s.Strikethrough }},
	{"fontSize", func(s *domain.Style) bool { return s.FontSize != nil }, func(d, s *domain.Style) { d.FontSize = inPoints(s.FontSize) }},
	{"foregroundColor", func(s *domain.Style) bool { return s.ForegroundColor != nil }, func(d, s *domain.Style) { d.ForegroundColor = s.ForegroundColor }},
	{"backgroundColor", func(s *domain.Style) bool { return s.BackgroundColor != nil }, func(d, s *domain.Style) { d.BackgroundColor = s.BackgroundColor }},
	{"link", func(s *domain.Style) bool { return s.Link != nil }, func(d, s *domain.Style) { d.Link = s.Link }},
	{"weightedFontFamily", func(s *domain.Style) bool { return s.FontFamily != "" }, func(d, s *domain.Style) { d.FontFamily = s.FontFamily }},
}

// paragraphField describes one maskable paragraph attribute.
type paragraphField struct {
	name    string
	present func(s *domain.ParagraphStyle) bool
	copy    func(dst, src *domain.ParagraphStyle)
}

var paragraphFields = []paragraphField{
	{"namedStyleType", func(s *domain.ParagraphStyle) bool { return s.NamedStyleType != "" }, func(d, s *domain.ParagraphStyle) { d.NamedStyleType = s.NamedStyleType }},
	{"alignment", func(s *domain.ParagraphStyle) bool { return s.Alignment != "" }, func(d, s *domain.ParagraphStyle) { d.Alignment = s.Alignment }},
	{"direction", func(s *domain.ParagraphStyle) bool { return s.Direction != "" }, func(d, s *domain.ParagraphStyle) { d.Direction = s.Direction }},
	{"lineSpacing", func(s *domain.ParagraphStyle) bool { return s.LineSpacing != nil }, func(d, s *domain.ParagraphStyle) { d.LineSpacing = s.LineSpacing }},
	{"indentStart", func(s *domain.ParagraphStyle) bool { return s.IndentStart != nil }, func(d, s *domain.ParagraphStyle) { d.IndentStart = inPoints(s.IndentStart) }},
	{"indentEnd", func(s *domain.ParagraphStyle) bool { return s.IndentEnd != nil }, func(d, s *domain.ParagraphStyle) { d.IndentEnd = inPoints(s.IndentEnd) }},
	{"indentFirstLine", func(s *domain.ParagraphStyle) bool { return s.IndentFirstLine != nil }, func(d, s *domain.ParagraphStyle) { d.IndentFirstLine = inPoints(s.IndentFirstLine) }},
	{"spaceAbove", func(s *domain.ParagraphStyle) bool { return s.SpaceAbove != nil }, func(d, s *domain.ParagraphStyle) { d.SpaceAbove = inPoints(s.SpaceAbove) }},
	{"spaceBelow", func(s *domain.ParagraphStyle) bool { return s.SpaceBelow != nil }, func(d, s *domain.ParagraphStyle) { d.SpaceBelow = inPoints(s.SpaceBelow) }},
}

// TextStyleMask splits a patch into the payload to send and the names of the
// fields it sets. Only attributes present in the patch appear in either;
// everything else is left untouched by the document service.
func TextStyleMask(patch *domain.Style) (domain.Style, []string) {
	var payload domain.Style
	var fields []string
	if patch == nil {
		return payload, nil
	}
	for _, f := range textFields {
		if f.present(patch) {
			f.copy(&payload, patch)
			fields = append(fields, f.name)
		}
	}
	return payload, fields
}

// ParagraphStyleMask is TextStyleMask for paragraph attributes.
func ParagraphStyleMask(patch *domain.ParagraphStyle) (domain.ParagraphStyle, []string) {
	var payload domain.ParagraphStyle
	var fields []string
	if patch == nil {
		return payload, nil
	}
	for _, f := range paragraphFields {
		if f.present(patch) {
			f.copy(&payload, patch)
			fields = append(fields, f.name)
		}
	}
	return payload, fields
}

// inPoints returns a copy of d with the unit defaulted to points.
func inPoints(d *domain.Dimension) *domain.Dimension {
	out := *d
	if out.Unit == "" {
		out.Unit = domain.UnitPoints
	}
	return &out
}

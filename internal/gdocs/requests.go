package gdocs

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sha1n/mcp-docs-server/internal/domain"
	"google.golang.org/api/docs/v1"
)

// ToRequests converts compiled instructions into API requests, preserving
// order. It fails without producing a partial batch.
func ToRequests(instrs []domain.Instruction) ([]*docs.Request, error) {
	reqs := make([]*docs.Request, 0, len(instrs))
	for i, ins := range instrs {
		req, err := toRequest(ins)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func toRequest(ins domain.Instruction) (*docs.Request, error) {
	switch in := ins.(type) {
	case domain.InsertText:
		return &docs.Request{InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: in.Index},
			Text:     in.Text,
		}}, nil

	case domain.DeleteRange:
		return &docs.Request{DeleteContentRange: &docs.DeleteContentRangeRequest{
			Range: &docs.Range{StartIndex: in.Start, EndIndex: in.End},
		}}, nil

	case domain.SetParagraphStyle:
		return &docs.Request{UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          &docs.Range{StartIndex: in.Start, EndIndex: in.End},
			ParagraphStyle: toParagraphStyle(in.Style, in.Fields),
			Fields:         strings.Join(in.Fields, ","),
		}}, nil

	case domain.SetTextStyle:
		style, err := toTextStyle(in.Style, in.Fields)
		if err != nil {
			return nil, err
		}
		return &docs.Request{UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     &docs.Range{StartIndex: in.Start, EndIndex: in.End},
			TextStyle: style,
			Fields:    strings.Join(in.Fields, ","),
		}}, nil

	case domain.CreateBullets:
		return &docs.Request{CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
			Range:        &docs.Range{StartIndex: in.Start, EndIndex: in.End},
			BulletPreset: in.Preset,
		}}, nil
	}

	return nil, fmt.Errorf("%w: cannot encode %v instruction", domain.ErrUnknownOperation, kindOf(ins))
}

func kindOf(ins domain.Instruction) string {
	if ins == nil {
		return "nil"
	}
	return string(ins.Kind())
}

// toTextStyle builds the API payload for the masked fields. Booleans named
// in the mask are force-sent so that an explicit false reaches the service.
func toTextStyle(s domain.Style, fields []string) (*docs.TextStyle, error) {
	out := &docs.TextStyle{}
	for _, f := range fields {
		switch f {
		case "bold":
			out.Bold = s.IsBold()
			out.ForceSendFields = append(out.ForceSendFields, "Bold")
		case "italic":
			out.Italic = s.IsItalic()
			out.ForceSendFields = append(out.ForceSendFields, "Italic")
		case "underline":
			out.Underline = s.IsUnderline()
			out.ForceSendFields = append(out.ForceSendFields, "Underline")
		case "strikethrough":
			out.Strikethrough = s.IsStrikethrough()
			out.ForceSendFields = append(out.ForceSendFields, "Strikethrough")
		case "fontSize":
			out.FontSize = toDimension(s.FontSize)
		case "foregroundColor":
			if s.ForegroundColor != nil {
				c, err := toColor(*s.ForegroundColor)
				if err != nil {
					return nil, err
				}
				out.ForegroundColor = c
			}
		case "backgroundColor":
			if s.BackgroundColor != nil {
				c, err := toColor(*s.BackgroundColor)
				if err != nil {
					return nil, err
				}
				out.BackgroundColor = c
			}
		case "link":
			// An empty URL leaves Link unset, which removes the link
			if s.Link != nil && s.Link.URL != "" {
				out.Link = &docs.Link{Url: s.Link.URL}
			}
		case "weightedFontFamily":
			out.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: s.FontFamily}
		}
	}
	return out, nil
}

func toParagraphStyle(s domain.ParagraphStyle, fields []string) *docs.ParagraphStyle {
	out := &docs.ParagraphStyle{}
	for _, f := range fields {
		switch f {
		case "namedStyleType":
			out.NamedStyleType = s.NamedStyleType
		case "alignment":
			out.Alignment = s.Alignment
		case "direction":
			out.Direction = s.Direction
		case "lineSpacing":
			if s.LineSpacing != nil {
				out.LineSpacing = *s.LineSpacing
				out.ForceSendFields = append(out.ForceSendFields, "LineSpacing")
			}
		case "indentStart":
			out.IndentStart = toDimension(s.IndentStart)
		case "indentEnd":
			out.IndentEnd = toDimension(s.IndentEnd)
		case "indentFirstLine":
			out.IndentFirstLine = toDimension(s.IndentFirstLine)
		case "spaceAbove":
			out.SpaceAbove = toDimension(s.SpaceAbove)
		case "spaceBelow":
			out.SpaceBelow = toDimension(s.SpaceBelow)
		}
	}
	return out
}

func toDimension(d *domain.Dimension) *docs.Dimension {
	if d == nil {
		return nil
	}
	unit := d.Unit
	if unit == "" {
		unit = domain.UnitPoints
	}
	return &docs.Dimension{Magnitude: d.Magnitude, Unit: unit, ForceSendFields: []string{"Magnitude"}}
}

// FromRequest describes an API request as an instruction, for summaries of
// caller-built batches. Requests outside the modeled kinds become Opaque.
func FromRequest(req *docs.Request) domain.Instruction {
	if req == nil {
		return domain.Opaque{Name: "unknown"}
	}
	switch {
	case req.InsertText != nil && req.InsertText.Location != nil:
		return domain.InsertText{Index: req.InsertText.Location.Index, Text: req.InsertText.Text}
	case req.DeleteContentRange != nil && req.DeleteContentRange.Range != nil:
		r := req.DeleteContentRange.Range
		return domain.DeleteRange{Start: r.StartIndex, End: r.EndIndex}
	case req.UpdateParagraphStyle != nil && req.UpdateParagraphStyle.Range != nil:
		r := req.UpdateParagraphStyle.Range
		return domain.SetParagraphStyle{Start: r.StartIndex, End: r.EndIndex, Fields: splitFields(req.UpdateParagraphStyle.Fields)}
	case req.UpdateTextStyle != nil && req.UpdateTextStyle.Range != nil:
		r := req.UpdateTextStyle.Range
		return domain.SetTextStyle{Start: r.StartIndex, End: r.EndIndex, Fields: splitFields(req.UpdateTextStyle.Fields)}
	case req.CreateParagraphBullets != nil && req.CreateParagraphBullets.Range != nil:
		r := req.CreateParagraphBullets.Range
		return domain.CreateBullets{Start: r.StartIndex, End: r.EndIndex, Preset: req.CreateParagraphBullets.BulletPreset}
	}
	return domain.Opaque{Name: requestName(req)}
}

// requestName returns the name of the populated request field, as it
// appears on the wire.
func requestName(req *docs.Request) string {
	data, err := json.Marshal(req)
	if err != nil {
		return "unknown"
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || len(fields) == 0 {
		return "unknown"
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0]
}

func splitFields(mask string) []string {
	if strings.TrimSpace(mask) == "" {
		return nil
	}
	parts := strings.Split(mask, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// replyObjects converts per-request replies into generic objects.
func replyObjects(resp *docs.BatchUpdateDocumentResponse) []map[string]any {
	if resp == nil {
		return nil
	}
	out := make([]map[string]any, len(resp.Replies))
	for i, r := range resp.Replies {
		if r == nil {
			continue
		}
		data, err := json.Marshal(r)
		if err != nil {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err == nil {
			out[i] = obj
		}
	}
	return out
}

package compiler

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sha1n/mcp-docs-server/internal/domain"
	"github.com/sha1n/mcp-docs-server/internal/locator"
)

func rangeTarget(start, end int64) locator.Target {
	return locator.Target{Expr: "$.content[1]", Start: &start, End: &end}
}

func TestCompileTarget_InsertAfterLaysOutCursor(t *testing.T) {
	intent := domain.InsertAfter{
		Target: "$.content[1]",
		Content: []domain.ContentItem{
			domain.Heading{Level: 2, Text: "H"},
			domain.ParagraphItem{Text: "P"},
			domain.BulletList{Items: []string{"A", "B"}},
		},
	}

	got, err := CompileTarget(intent, rangeTarget(3, 10))
	if err != nil {
		t.Fatalf("CompileTarget failed: %v", err)
	}

	bullet := func(i int64, text string) []domain.Instruction {
		return []domain.Instruction{
			domain.InsertText{Index: i, Text: text},
			namedStyle(i, i+2, domain.StyleNormalText),
			domain.CreateBullets{Start: i, End: i + 2, Preset: domain.DefaultBulletPreset},
		}
	}
	want := []domain.Instruction{
		domain.InsertText{Index: 10, Text: "H\n"},
		namedStyle(10, 12, domain.StyleHeading2),
		domain.InsertText{Index: 12, Text: "P\n"},
	}
	want = append(want, bullet(14, "A\n")...)
	want = append(want, bullet(16, "B\n")...)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %#v, got %#v", want, got)
	}
}

func TestLayout_FinalCursor(t *testing.T) {
	items := []domain.ContentItem{
		domain.Heading{Level: 2, Text: "H"},
		domain.ParagraphItem{Text: "P"},
		domain.BulletList{Items: []string{"A", "B"}},
	}
	acc := layout(10, items)
	if acc.cursor != 18 {
		t.Errorf("Expected final cursor 18, got %d", acc.cursor)
	}
}

func TestLayout_CountsUTF16Units(t *testing.T) {
	acc := layout(1, []domain.ContentItem{domain.ParagraphItem{Text: "a😀"}})
	// a(1) + surrogate pair(2) + newline(1)
	if acc.cursor != 5 {
		t.Errorf("Expected cursor 5, got %d", acc.cursor)
	}
}

func TestLayout_DoesNotMutatePreviousBatch(t *testing.T) {
	first := batch{cursor: 1}.emit(domain.InsertText{Index: 1, Text: "x\n"})
	second := first.emit(domain.InsertText{Index: 3, Text: "y\n"})
	if len(first.instructions) != 1 {
		t.Errorf("Expected first batch to keep 1 instruction, got %d", len(first.instructions))
	}
	if len(second.instructions) != 2 {
		t.Errorf("Expected second batch to hold 2 instructions, got %d", len(second.instructions))
	}
}

func TestCompileTarget_InsertBeforeUsesStart(t *testing.T) {
	intent := domain.InsertBefore{Target: "x", Content: []domain.ContentItem{domain.ParagraphItem{Text: "P"}}}
	got, err := CompileTarget(intent, rangeTarget(7, 20))
	if err != nil {
		t.Fatalf("CompileTarget failed: %v", err)
	}
	want := []domain.Instruction{domain.InsertText{Index: 7, Text: "P\n"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %#v, got %#v", want, got)
	}
}

func TestCompileTarget_Delete(t *testing.T) {
	got, err := CompileTarget(domain.Delete{Target: "x"}, rangeTarget(50, 80))
	if err != nil {
		t.Fatalf("CompileTarget failed: %v", err)
	}
	want := []domain.Instruction{domain.DeleteRange{Start: 50, End: 80}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %#v, got %#v", want, got)
	}
}

func TestCompileTarget_Replace(t *testing.T) {
	intent := domain.Replace{Target: "x", Content: []domain.ContentItem{domain.ParagraphItem{Text: "X"}}}
	got, err := CompileTarget(intent, rangeTarget(20, 30))
	if err != nil {
		t.Fatalf("CompileTarget failed: %v", err)
	}
	want := []domain.Instruction{
		domain.DeleteRange{Start: 20, End: 30},
		domain.InsertText{Index: 20, Text: "X\n"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %#v, got %#v", want, got)
	}
}

func TestCompileTarget_UpdateTextStyleIsSparse(t *testing.T) {
	intent := domain.UpdateTextStyle{Target: "x", Style: &domain.Style{Bold: domain.Bool(true)}}
	got, err := CompileTarget(intent, rangeTarget(5, 9))
	if err != nil {
		t.Fatalf("CompileTarget failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 instruction, got %d", len(got))
	}
	set, ok := got[0].(domain.SetTextStyle)
	if !ok {
		t.Fatalf("Expected SetTextStyle, got %T", got[0])
	}
	if set.Start != 5 || set.End != 9 {
		t.Errorf("Expected range [5,9), got [%d,%d)", set.Start, set.End)
	}
	if !reflect.DeepEqual(set.Fields, []string{"bold"}) {
		t.Errorf("Expected fields [bold], got %v", set.Fields)
	}
	if set.Style.Italic != nil || set.Style.FontSize != nil {
		t.Errorf("Expected only bold in payload, got %+v", set.Style)
	}
}

func TestCompileTarget_UpdateParagraphStyle(t *testing.T) {
	intent := domain.UpdateParagraphStyle{
		Target: "x",
		Style:  &domain.ParagraphStyle{Alignment: "CENTER", SpaceAbove: &domain.Dimension{Magnitude: 6}},
	}
	got, err := CompileTarget(intent, rangeTarget(1, 7))
	if err != nil {
		t.Fatalf("CompileTarget failed: %v", err)
	}
	set := got[0].(domain.SetParagraphStyle)
	if !reflect.DeepEqual(set.Fields, []string{"alignment", "spaceAbove"}) {
		t.Errorf("Expected fields [alignment spaceAbove], got %v", set.Fields)
	}
	if set.Style.SpaceAbove.Unit != domain.UnitPoints {
		t.Errorf("Expected unit to default to %s, got %q", domain.UnitPoints, set.Style.SpaceAbove.Unit)
	}
}

func TestCompileTarget_MissingPayload(t *testing.T) {
	tests := []struct {
		name   string
		intent domain.Intent
	}{
		{"insertAfter without content", domain.InsertAfter{Target: "x"}},
		{"insertBefore without content", domain.InsertBefore{Target: "x"}},
		{"replace without content", domain.Replace{Target: "x"}},
		{"nil text style", domain.UpdateTextStyle{Target: "x"}},
		{"empty text style", domain.UpdateTextStyle{Target: "x", Style: &domain.Style{}}},
		{"nil paragraph style", domain.UpdateParagraphStyle{Target: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompileTarget(tt.intent, rangeTarget(1, 2))
			if !errors.Is(err, domain.ErrMissingPayload) {
				t.Errorf("Expected ErrMissingPayload, got %v", err)
			}
			if got != nil {
				t.Errorf("Expected no instructions, got %v", got)
			}
		})
	}
}

func TestCompileTarget_NotRangeable(t *testing.T) {
	end := int64(1)
	target := locator.Target{Expr: "$.content[0]", End: &end}

	if _, err := CompileTarget(domain.Delete{Target: "x"}, target); !errors.Is(err, domain.ErrTargetNotRangeable) {
		t.Errorf("Expected ErrTargetNotRangeable for delete, got %v", err)
	}

	before := domain.InsertBefore{Target: "x", Content: []domain.ContentItem{domain.ParagraphItem{Text: "P"}}}
	if _, err := CompileTarget(before, target); !errors.Is(err, domain.ErrTargetNotRangeable) {
		t.Errorf("Expected ErrTargetNotRangeable for insertBefore, got %v", err)
	}

	// insertAfter only needs the end index
	after := domain.InsertAfter{Target: "x", Content: []domain.ContentItem{domain.ParagraphItem{Text: "P"}}}
	got, err := CompileTarget(after, target)
	if err != nil {
		t.Fatalf("CompileTarget failed: %v", err)
	}
	want := []domain.Instruction{domain.InsertText{Index: 1, Text: "P\n"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %#v, got %#v", want, got)
	}
}

func TestCompile_ResolvesAgainstSnapshot(t *testing.T) {
	doc := domain.NewBuilder("doc", "Doc").
		Paragraph(domain.StyleHeading1, domain.Plain("Title")).
		Paragraph("", domain.Plain("Body")).
		Build()

	got, err := Compile(doc, domain.Delete{Target: "$.content[2]"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	want := []domain.Instruction{domain.DeleteRange{Start: 7, End: 12}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %#v, got %#v", want, got)
	}
}

func TestCompile_TargetErrors(t *testing.T) {
	doc := domain.NewBuilder("doc", "Doc").
		Paragraph("", domain.Plain("same")).
		Paragraph("", domain.Plain("same")).
		Build()

	tests := []struct {
		name string
		expr string
		want error
	}{
		{"not found", "$.content[9]", domain.ErrTargetNotFound},
		{"ambiguous", "$.content[?(@.endIndex > 1)]", domain.ErrAmbiguousTarget},
		{"invalid", "$.content[", domain.ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(doc, domain.Delete{Target: tt.expr})
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCompile_MissingPayloadBeforeResolution(t *testing.T) {
	doc := domain.NewBuilder("doc", "Doc").Build()
	_, err := Compile(doc, domain.InsertAfter{Target: "$.content[9]"})
	if !errors.Is(err, domain.ErrMissingPayload) {
		t.Errorf("Expected ErrMissingPayload, got %v", err)
	}
}

package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestTextLength(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"empty", "", 0},
		{"ascii", "H\n", 2},
		{"accented", "café", 4},
		{"astral plane counts as two units", "a😀b", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextLength(tt.in); got != tt.want {
				t.Errorf("TextLength(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParagraph_NamedStyleDefaultsToNormal(t *testing.T) {
	p := &Paragraph{}
	if p.NamedStyle() != StyleNormalText {
		t.Errorf("Expected %s, got %s", StyleNormalText, p.NamedStyle())
	}

	p.ParagraphStyle = &ParagraphStyle{NamedStyleType: StyleHeading2}
	if p.NamedStyle() != StyleHeading2 {
		t.Errorf("Expected %s, got %s", StyleHeading2, p.NamedStyle())
	}
}

func TestBuilder_SiblingsAreContiguous(t *testing.T) {
	doc := NewBuilder("d", "t").
		Paragraph(StyleHeading1, Plain("Title")).
		Paragraph("", Plain("Hello "), Styled("world", Style{Bold: Bool(true)})).
		ListItem(0, Plain("one")).
		Table([][]string{{"a", "b"}, {"c", "d"}}).
		SectionBreak().
		Paragraph("", Plain("tail")).
		Build()

	blocks := doc.Body.Content
	for i := 0; i+1 < len(blocks); i++ {
		if blocks[i].EndIndex != blocks[i+1].StartIndex {
			t.Errorf("block %d ends at %d, block %d starts at %d", i, blocks[i].EndIndex, i+1, blocks[i+1].StartIndex)
		}
	}

	if err := doc.CheckContiguity(); err != nil {
		t.Errorf("CheckContiguity failed: %v", err)
	}
}

func TestCheckContiguity_DetectsGap(t *testing.T) {
	doc := NewBuilder("d", "t").
		Paragraph("", Plain("one")).
		Paragraph("", Plain("two")).
		Build()
	doc.Body.Content[2].StartIndex++

	err := doc.CheckContiguity()
	if err == nil {
		t.Fatal("Expected contiguity error")
	}
	if !strings.Contains(err.Error(), "$.content") {
		t.Errorf("Expected error to name the container, got %v", err)
	}
}

func TestCheckContiguity_DetectsGapInRuns(t *testing.T) {
	doc := NewBuilder("d", "t").
		Paragraph("", Plain("one "), Plain("two")).
		Build()
	doc.Body.Content[1].Paragraph.Elements[1].StartIndex += 2

	if err := doc.CheckContiguity(); err == nil {
		t.Fatal("Expected contiguity error for runs")
	}
}

func TestWalk_ReportsPaths(t *testing.T) {
	doc := NewBuilder("d", "t").
		Paragraph("", Plain("Hello")).
		Table([][]string{{"a"}}).
		Build()

	var paths []string
	doc.Walk(func(path string, n Node) bool {
		paths = append(paths, path)
		return true
	})

	want := []string{
		"$.content[0]",
		"$.content[1]",
		"$.content[1].paragraph.elements[0]",
		"$.content[1].paragraph.elements[1]",
		"$.content[2]",
		"$.content[2].table.tableRows[0]",
		"$.content[2].table.tableRows[0].tableCells[0]",
		"$.content[2].table.tableRows[0].tableCells[0].content[0]",
		"$.content[2].table.tableRows[0].tableCells[0].content[0].paragraph.elements[0]",
		"$.content[2].table.tableRows[0].tableCells[0].content[0].paragraph.elements[1]",
	}
	if strings.Join(paths, "\n") != strings.Join(want, "\n") {
		t.Errorf("Unexpected paths:\n%s\nwant:\n%s", strings.Join(paths, "\n"), strings.Join(want, "\n"))
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	doc := NewBuilder("d", "t").Paragraph("", Plain("Hello")).Build()

	count := 0
	doc.Walk(func(path string, n Node) bool {
		count++
		return false
	})
	if count != 2 {
		t.Errorf("Expected only top-level blocks to be visited, got %d", count)
	}
}

func TestTableCell_Text(t *testing.T) {
	doc := NewBuilder("d", "t").Table([][]string{{"cell"}}).Build()
	cell := doc.Body.Content[1].Table.TableRows[0].TableCells[0]
	if cell.Text() != "cell\n" {
		t.Errorf("Expected %q, got %q", "cell\n", cell.Text())
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	all := []error{
		ErrTargetNotFound, ErrAmbiguousTarget, ErrTargetNotRangeable, ErrMissingPayload,
		ErrInvalidDocumentReference, ErrUpstream, ErrUnknownOperation, ErrInvalidPath,
		ErrMalformedSnapshot,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}

// Package compiler turns semantic edit intents into ordered, index-addressed
// mutation instructions.
//
// A compiled batch is valid only against the snapshot it was compiled from.
// Multi-item content is laid out with a running cursor that lives only for
// the duration of one compilation.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/sha1n/mcp-docs-server/internal/domain"
	"github.com/sha1n/mcp-docs-server/internal/locator"
)

// Compile resolves the intent's target in doc and compiles the intent.
// Nothing is emitted unless the whole intent compiles.
func Compile(doc *domain.Document, intent domain.Intent) ([]domain.Instruction, error) {
	if intent == nil {
		return nil, fmt.Errorf("%w: nil intent", domain.ErrUnknownOperation)
	}
	if err := checkPayload(intent); err != nil {
		return nil, err
	}

	target, err := locator.Resolve(doc, intent.TargetExpr())
	if err != nil {
		return nil, err
	}
	return CompileTarget(intent, target)
}

// CompileTarget compiles an intent against an already resolved target.
func CompileTarget(intent domain.Intent, target locator.Target) ([]domain.Instruction, error) {
	if err := checkPayload(intent); err != nil {
		return nil, err
	}

	switch in := intent.(type) {
	case domain.InsertAfter:
		anchor, err := target.EndIndex()
		if err != nil {
			return nil, err
		}
		return layout(anchor, in.Content).instructions, nil

	case domain.InsertBefore:
		anchor, err := target.StartIndex()
		if err != nil {
			return nil, err
		}
		return layout(anchor, in.Content).instructions, nil

	case domain.Replace:
		start, end, err := target.Range()
		if err != nil {
			return nil, err
		}
		// The deletion collapses the range, so new content lands at start
		out := []domain.Instruction{domain.DeleteRange{Start: start, End: end}}
		return append(out, layout(start, in.Content).instructions...), nil

	case domain.Delete:
		start, end, err := target.Range()
		if err != nil {
			return nil, err
		}
		return []domain.Instruction{domain.DeleteRange{Start: start, End: end}}, nil

	case domain.UpdateTextStyle:
		start, end, err := target.Range()
		if err != nil {
			return nil, err
		}
		payload, fields := TextStyleMask(in.Style)
		return []domain.Instruction{domain.SetTextStyle{Start: start, End: end, Style: payload, Fields: fields}}, nil

	case domain.UpdateParagraphStyle:
		start, end, err := target.Range()
		if err != nil {
			return nil, err
		}
		payload, fields := ParagraphStyleMask(in.Style)
		return []domain.Instruction{domain.SetParagraphStyle{Start: start, End: end, Style: payload, Fields: fields}}, nil
	}

	return nil, fmt.Errorf("%w: %T", domain.ErrUnknownOperation, intent)
}

// checkPayload rejects intents missing the content or style they need
// before any target is resolved.
func checkPayload(intent domain.Intent) error {
	switch in := intent.(type) {
	case domain.InsertAfter:
		return requireContent(in.Op(), in.Content)
	case domain.InsertBefore:
		return requireContent(in.Op(), in.Content)
	case domain.Replace:
		return requireContent(in.Op(), in.Content)
	case domain.UpdateTextStyle:
		if _, fields := TextStyleMask(in.Style); len(fields) == 0 {
			return fmt.Errorf("%w: %s requires a text style", domain.ErrMissingPayload, in.Op())
		}
	case domain.UpdateParagraphStyle:
		if _, fields := ParagraphStyleMask(in.Style); len(fields) == 0 {
			return fmt.Errorf("%w: %s requires a paragraph style", domain.ErrMissingPayload, in.Op())
		}
	}
	return nil
}

func requireContent(op domain.Operation, content []domain.ContentItem) error {
	if len(content) == 0 {
		return fmt.Errorf("%w: %s requires content", domain.ErrMissingPayload, op)
	}
	return nil
}

// batch is the accumulator threaded through content layout. It is a value:
// every step returns a new batch and never mutates its input.
type batch struct {
	cursor       int64
	instructions []domain.Instruction
}

// emit returns a copy of b with ins appended.
func (b batch) emit(ins ...domain.Instruction) batch {
	out := make([]domain.Instruction, 0, len(b.instructions)+len(ins))
	out = append(out, b.instructions...)
	out = append(out, ins...)
	return batch{cursor: b.cursor, instructions: out}
}

// advance returns a copy of b with the cursor moved by n.
func (b batch) advance(n int64) batch {
	return batch{cursor: b.cursor + n, instructions: b.instructions}
}

// layout folds content items into instructions starting at anchor.
func layout(anchor int64, items []domain.ContentItem) batch {
	acc := batch{cursor: anchor}
	for _, item := range items {
		acc = step(acc, item)
	}
	return acc
}

// step lays out one content item at the accumulator's cursor.
func step(acc batch, item domain.ContentItem) batch {
	switch it := item.(type) {
	case domain.Heading:
		text := it.Text + "\n"
		n := domain.TextLength(text)
		return acc.emit(
			domain.InsertText{Index: acc.cursor, Text: text},
			namedStyle(acc.cursor, acc.cursor+n, "HEADING_"+strconv.Itoa(it.Level)),
		).advance(n)

	case domain.ParagraphItem:
		text := it.Text + "\n"
		return acc.emit(domain.InsertText{Index: acc.cursor, Text: text}).advance(domain.TextLength(text))

	case domain.BulletList:
		for _, entry := range it.Items {
			text := entry + "\n"
			n := domain.TextLength(text)
			acc = acc.emit(
				domain.InsertText{Index: acc.cursor, Text: text},
				// Reset so the item does not inherit a preceding heading style
				namedStyle(acc.cursor, acc.cursor+n, domain.StyleNormalText),
				domain.CreateBullets{Start: acc.cursor, End: acc.cursor + n, Preset: domain.DefaultBulletPreset},
			).advance(n)
		}
		return acc
	}
	return acc
}

func namedStyle(start, end int64, named string) domain.SetParagraphStyle {
	return domain.SetParagraphStyle{
		Start:  start,
		End:    end,
		Style:  domain.ParagraphStyle{NamedStyleType: named},
		Fields: []string{"namedStyleType"},
	}
}

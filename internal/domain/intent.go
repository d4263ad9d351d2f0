package domain

import (
	"fmt"
	"strings"
)

// Operation is the tag of an edit intent.
type Operation string

// Supported edit operations.
const (
	OpInsertAfter          Operation = "insertAfter"
	OpInsertBefore         Operation = "insertBefore"
	OpReplace              Operation = "replace"
	OpDelete               Operation = "delete"
	OpUpdateTextStyle      Operation = "updateTextStyle"
	OpUpdateParagraphStyle Operation = "updateParagraphStyle"
)

// Intent is a semantic edit request addressed by a path expression.
// The set of implementations is closed.
type Intent interface {
	Op() Operation
	TargetExpr() string
	isIntent()
}

// InsertAfter inserts content at the target's end index.
type InsertAfter struct {
	Target  string
	Content []ContentItem
}

// InsertBefore inserts content at the target's start index.
type InsertBefore struct {
	Target  string
	Content []ContentItem
}

// Replace deletes the target's range and inserts content at its start.
type Replace struct {
	Target  string
	Content []ContentItem
}

// Delete removes the target's range.
type Delete struct {
	Target string
}

// UpdateTextStyle applies a partial character style to the target's range.
type UpdateTextStyle struct {
	Target string
	Style  *Style
}

// UpdateParagraphStyle applies a partial paragraph style to the target's range.
type UpdateParagraphStyle struct {
	Target string
	Style  *ParagraphStyle
}

func (InsertAfter) Op() Operation          { return OpInsertAfter }
func (InsertBefore) Op() Operation         { return OpInsertBefore }
func (Replace) Op() Operation              { return OpReplace }
func (Delete) Op() Operation               { return OpDelete }
func (UpdateTextStyle) Op() Operation      { return OpUpdateTextStyle }
func (UpdateParagraphStyle) Op() Operation { return OpUpdateParagraphStyle }

func (i InsertAfter) TargetExpr() string          { return i.Target }
func (i InsertBefore) TargetExpr() string         { return i.Target }
func (i Replace) TargetExpr() string              { return i.Target }
func (i Delete) TargetExpr() string               { return i.Target }
func (i UpdateTextStyle) TargetExpr() string      { return i.Target }
func (i UpdateParagraphStyle) TargetExpr() string { return i.Target }

func (InsertAfter) isIntent()          {}
func (InsertBefore) isIntent()         {}
func (Replace) isIntent()              {}
func (Delete) isIntent()               {}
func (UpdateTextStyle) isIntent()      {}
func (UpdateParagraphStyle) isIntent() {}

// ContentKind is the tag of a content item.
type ContentKind string

// Supported content item kinds.
const (
	ContentHeading    ContentKind = "heading"
	ContentParagraph  ContentKind = "paragraph"
	ContentBulletList ContentKind = "bulletList"
)

// ContentItem is one piece of new content. The set of implementations is closed.
type ContentItem interface {
	Kind() ContentKind
	isContent()
}

// Heading is a heading paragraph of the given level (1-6).
type Heading struct {
	Level int
	Text  string
}

// ParagraphItem is a plain paragraph.
type ParagraphItem struct {
	Text string
}

// BulletList is a sequence of bulleted paragraphs.
type BulletList struct {
	Items []string
}

func (Heading) Kind() ContentKind       { return ContentHeading }
func (ParagraphItem) Kind() ContentKind { return ContentParagraph }
func (BulletList) Kind() ContentKind    { return ContentBulletList }

func (Heading) isContent()       {}
func (ParagraphItem) isContent() {}
func (BulletList) isContent()    {}

// IntentRequest is the caller-facing, loosely typed shape of an edit intent.
type IntentRequest struct {
	Operation      string
	Target         string
	Content        []ContentRequest
	TextStyle      *Style
	ParagraphStyle *ParagraphStyle
}

// ContentRequest is the caller-facing shape of a content item.
type ContentRequest struct {
	Type  string
	Level int
	Text  string
	Items []string
}

// ParseIntent converts a request into a typed intent, rejecting unknown
// operation and content tags. Payload presence is checked by the compiler.
func ParseIntent(req IntentRequest) (Intent, error) {
	if strings.TrimSpace(req.Target) == "" {
		return nil, fmt.Errorf("%w: target is required", ErrInvalidPath)
	}

	content, err := parseContent(req.Content)
	if err != nil {
		return nil, err
	}

	switch Operation(req.Operation) {
	case OpInsertAfter:
		return InsertAfter{Target: req.Target, Content: content}, nil
	case OpInsertBefore:
		return InsertBefore{Target: req.Target, Content: content}, nil
	case OpReplace:
		return Replace{Target: req.Target, Content: content}, nil
	case OpDelete:
		return Delete{Target: req.Target}, nil
	case OpUpdateTextStyle:
		return UpdateTextStyle{Target: req.Target, Style: req.TextStyle}, nil
	case OpUpdateParagraphStyle:
		return UpdateParagraphStyle{Target: req.Target, Style: req.ParagraphStyle}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, req.Operation)
	}
}

func parseContent(reqs []ContentRequest) ([]ContentItem, error) {
	items := make([]ContentItem, 0, len(reqs))
	for i, r := range reqs {
		switch ContentKind(r.Type) {
		case ContentHeading:
			if r.Level < 1 || r.Level > 6 {
				return nil, fmt.Errorf("content[%d]: heading level must be between 1 and 6, got %d", i, r.Level)
			}
			items = append(items, Heading{Level: r.Level, Text: r.Text})
		case ContentParagraph:
			items = append(items, ParagraphItem{Text: r.Text})
		case ContentBulletList:
			if len(r.Items) == 0 {
				return nil, fmt.Errorf("%w: content[%d]: bulletList requires items", ErrMissingPayload, i)
			}
			items = append(items, BulletList{Items: r.Items})
		default:
			return nil, fmt.Errorf("%w: content[%d] has type %q", ErrUnknownOperation, i, r.Type)
		}
	}
	return items, nil
}

// Package locator resolves JSONPath expressions against a document snapshot.
//
// Expressions are evaluated against the document body, whose JSON shape is
// {"content": [...]}; "$.content[3].paragraph.elements[0]" addresses the
// first run of the fourth block. A resolution must match exactly one node.
package locator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/sha1n/mcp-docs-server/internal/domain"
)

const (
	fieldStartIndex = "startIndex"
	fieldEndIndex   = "endIndex"
)

// Target is the single node an expression resolved to.
type Target struct {
	// Expr is the normalized expression that produced the target.
	Expr string
	// Node is the generic JSON value of the node (usually map[string]any).
	Node any
	// Start and End are nil when the node does not carry the index.
	Start *int64
	End   *int64
}

// Range returns the target's [start, end) range.
func (t Target) Range() (int64, int64, error) {
	if t.Start == nil || t.End == nil {
		return 0, 0, fmt.Errorf("%w: %s", domain.ErrTargetNotRangeable, t.Expr)
	}
	return *t.Start, *t.End, nil
}

// StartIndex returns the target's start index.
func (t Target) StartIndex() (int64, error) {
	if t.Start == nil {
		return 0, fmt.Errorf("%w: %s has no startIndex", domain.ErrTargetNotRangeable, t.Expr)
	}
	return *t.Start, nil
}

// EndIndex returns the target's end index.
func (t Target) EndIndex() (int64, error) {
	if t.End == nil {
		return 0, fmt.Errorf("%w: %s has no endIndex", domain.ErrTargetNotRangeable, t.Expr)
	}
	return *t.End, nil
}

// Locator evaluates expressions against one snapshot.
type Locator struct {
	tree any
}

// New prepares a locator for the given snapshot.
func New(doc *domain.Document) (*Locator, error) {
	data, err := json.Marshal(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document body: %w", err)
	}
	tree, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document body: %w", err)
	}
	return &Locator{tree: tree}, nil
}

// Resolve is a convenience for New followed by Locator.Resolve.
func Resolve(doc *domain.Document, expr string) (Target, error) {
	l, err := New(doc)
	if err != nil {
		return Target{}, err
	}
	return l.Resolve(expr)
}

// Resolve returns the one node matched by expr. It fails with
// domain.ErrTargetNotFound for zero matches and domain.ErrAmbiguousTarget for
// more than one; it never picks among several candidates.
func (l *Locator) Resolve(expr string) (Target, error) {
	normalized := Normalize(expr)
	x, err := jp.ParseString(normalized)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %q: %s", domain.ErrInvalidPath, expr, err)
	}

	matches := x.Get(l.tree)
	switch len(matches) {
	case 0:
		return Target{}, fmt.Errorf("%w: %s", domain.ErrTargetNotFound, normalized)
	case 1:
		// exactly one
	default:
		return Target{}, fmt.Errorf("%w: %s matched %d nodes", domain.ErrAmbiguousTarget, normalized, len(matches))
	}

	t := Target{Expr: normalized, Node: matches[0]}
	if node, ok := matches[0].(map[string]any); ok {
		t.Start = indexField(node, fieldStartIndex)
		t.End = indexField(node, fieldEndIndex)
	}
	return t, nil
}

// Count returns how many nodes expr matches.
func (l *Locator) Count(expr string) (int, error) {
	x, err := jp.ParseString(Normalize(expr))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %s", domain.ErrInvalidPath, expr, err)
	}
	return len(x.Get(l.tree)), nil
}

// Normalize anchors a bare expression at the body root. "content[1]",
// "$.content[1]" and "$.body.content[1]" are equivalent.
func Normalize(expr string) string {
	expr = strings.TrimSpace(expr)
	switch {
	case strings.HasPrefix(expr, "$.body."):
		return "$." + strings.TrimPrefix(expr, "$.body.")
	case strings.HasPrefix(expr, "$"):
		return expr
	case strings.HasPrefix(expr, "body."):
		return "$." + strings.TrimPrefix(expr, "body.")
	case strings.HasPrefix(expr, "["), strings.HasPrefix(expr, ".."):
		return "$" + expr
	default:
		return "$." + expr
	}
}

func indexField(node map[string]any, name string) *int64 {
	switch v := node[name].(type) {
	case int64:
		return &v
	case float64:
		i := int64(v)
		return &i
	case int:
		i := int64(v)
		return &i
	}
	return nil
}

package domain

import (
	"fmt"
	"strconv"
)

// Node is the uniform view of every ranged element in a document tree.
type Node interface {
	// Start returns the first index covered by the node.
	Start() int64
	// End returns the index one past the last covered index.
	End() int64
	// Children returns the node's direct children in document order.
	Children() []Node
}

func (b *Block) Start() int64 { return b.StartIndex }
func (b *Block) End() int64   { return b.EndIndex }

// Children returns the runs of a paragraph or the rows of a table.
func (b *Block) Children() []Node {
	switch {
	case b.Paragraph != nil:
		nodes := make([]Node, len(b.Paragraph.Elements))
		for i, r := range b.Paragraph.Elements {
			nodes[i] = r
		}
		return nodes
	case b.Table != nil:
		nodes := make([]Node, len(b.Table.TableRows))
		for i, r := range b.Table.TableRows {
			nodes[i] = r
		}
		return nodes
	}
	return nil
}

func (r *TableRow) Start() int64 { return r.StartIndex }
func (r *TableRow) End() int64   { return r.EndIndex }

func (r *TableRow) Children() []Node {
	nodes := make([]Node, len(r.TableCells))
	for i, c := range r.TableCells {
		nodes[i] = c
	}
	return nodes
}

func (c *TableCell) Start() int64 { return c.StartIndex }
func (c *TableCell) End() int64   { return c.EndIndex }

func (c *TableCell) Children() []Node {
	return blockNodes(c.Content)
}

func (r *Run) Start() int64     { return r.StartIndex }
func (r *Run) End() int64       { return r.EndIndex }
func (r *Run) Children() []Node { return nil }

func blockNodes(blocks []*Block) []Node {
	nodes := make([]Node, len(blocks))
	for i, b := range blocks {
		nodes[i] = b
	}
	return nodes
}

// WalkFunc is called for every node with its JSONPath relative to the body.
// Returning false skips the node's children.
type WalkFunc func(path string, n Node) bool

// Walk visits every node of the document depth-first, in document order.
func (d *Document) Walk(fn WalkFunc) {
	walkAll("$.content", d.Body.Content, fn)
}

func walkAll(prefix string, blocks []*Block, fn WalkFunc) {
	for i, b := range blocks {
		walk(prefix+"["+strconv.Itoa(i)+"]", b, fn)
	}
}

func walk(path string, n Node, fn WalkFunc) {
	if !fn(path, n) {
		return
	}
	for i, child := range n.Children() {
		walk(path+childPath(n, i), child, fn)
	}
}

// childPath returns the JSON path segment leading from n to its i-th child.
func childPath(n Node, i int) string {
	idx := "[" + strconv.Itoa(i) + "]"
	switch v := n.(type) {
	case *Block:
		if v.Paragraph != nil {
			return ".paragraph.elements" + idx
		}
		return ".table.tableRows" + idx
	case *TableRow:
		return ".tableCells" + idx
	case *TableCell:
		return ".content" + idx
	}
	return idx
}

// CheckContiguity verifies that sibling nodes are contiguous in every
// container: the end of one element is the start of the next.
func (d *Document) CheckContiguity() error {
	if err := checkSiblings("$.content", blockNodes(d.Body.Content)); err != nil {
		return err
	}
	var firstErr error
	d.Walk(func(path string, n Node) bool {
		if firstErr != nil {
			return false
		}
		if err := checkSiblings(path, n.Children()); err != nil {
			firstErr = err
		}
		return true
	})
	return firstErr
}

func checkSiblings(path string, nodes []Node) error {
	for i := 0; i+1 < len(nodes); i++ {
		if nodes[i].End() != nodes[i+1].Start() {
			return fmt.Errorf("%s: child %d ends at %d but child %d starts at %d",
				path, i, nodes[i].End(), i+1, nodes[i+1].Start())
		}
	}
	return nil
}

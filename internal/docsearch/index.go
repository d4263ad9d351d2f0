// Package docsearch provides full-text search over the paragraphs of one
// document snapshot. Each search builds a throwaway in-memory index, so
// results always reflect the snapshot they were computed from.
package docsearch

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/sha1n/mcp-docs-server/internal/domain"
)

// Field names of indexed paragraphs
const (
	FieldPath  = "path"
	FieldText  = "text"
	FieldStyle = "style"
	FieldStart = "start_index"
	FieldEnd   = "end_index"
)

// MaxBatchSize is the maximum number of paragraphs per index batch
const MaxBatchSize = 100

// Paragraph is the indexed form of one paragraph.
type Paragraph struct {
	Path       string  `json:"path"`
	Text       string  `json:"text"`
	Style      string  `json:"style"`
	StartIndex float64 `json:"start_index"`
	EndIndex   float64 `json:"end_index"`
}

// CreateIndexMapping creates the Bleve index mapping for paragraphs.
func CreateIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	// Text - analyzed for full-text search
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = standard.Name
	textField.Store = true
	textField.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt(FieldText, textField)

	// Style - keyword, stored
	styleField := bleve.NewTextFieldMapping()
	styleField.Analyzer = keyword.Name
	styleField.Store = true
	docMapping.AddFieldMappingsAt(FieldStyle, styleField)

	// Path - stored but not indexed
	pathField := bleve.NewTextFieldMapping()
	pathField.Index = false
	pathField.Store = true
	docMapping.AddFieldMappingsAt(FieldPath, pathField)

	// Indices - numeric, stored for ranges and sorting
	startField := bleve.NewNumericFieldMapping()
	startField.Store = true
	docMapping.AddFieldMappingsAt(FieldStart, startField)

	endField := bleve.NewNumericFieldMapping()
	endField.Store = true
	docMapping.AddFieldMappingsAt(FieldEnd, endField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping
}

// Paragraphs lists every non-empty paragraph of doc, including paragraphs
// nested in table cells, with its locator path.
func Paragraphs(doc *domain.Document) []Paragraph {
	var out []Paragraph
	doc.Walk(func(path string, n domain.Node) bool {
		b, ok := n.(*domain.Block)
		if !ok || b.Paragraph == nil {
			return true
		}
		text := strings.TrimRight(b.Paragraph.Text(), "\n")
		if strings.TrimSpace(text) != "" {
			out = append(out, Paragraph{
				Path:       path,
				Text:       text,
				Style:      b.Paragraph.NamedStyle(),
				StartIndex: float64(b.StartIndex),
				EndIndex:   float64(b.EndIndex),
			})
		}
		// Runs need not be visited
		return false
	})
	return out
}

// BuildIndex indexes the paragraphs of doc into a new in-memory index.
// The caller closes the index.
func BuildIndex(doc *domain.Document) (bleve.Index, error) {
	index, err := bleve.NewMemOnly(CreateIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	batch := index.NewBatch()
	for _, p := range Paragraphs(doc) {
		if err := batch.Index(p.Path, p); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index %s: %w", p.Path, err)
		}
		if batch.Size() >= MaxBatchSize {
			if err := index.Batch(batch); err != nil {
				_ = index.Close()
				return nil, fmt.Errorf("batch index failed: %w", err)
			}
			batch = index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("final batch index failed: %w", err)
		}
	}

	return index, nil
}

package docsearch

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/sha1n/mcp-docs-server/internal/domain"
)

// Query describes a search within one document.
type Query struct {
	Text string
	// Style restricts matches to one named paragraph style (e.g. HEADING_2).
	Style string
	Limit int
}

// Hit is one matching paragraph.
type Hit struct {
	Path       string
	Text       string
	Style      string
	StartIndex int64
	EndIndex   int64
	Score      float64
	Fragments  []string
}

// Results is the outcome of a search.
type Results struct {
	Total uint64
	Hits  []Hit
}

// Search finds paragraphs of doc matching q, best match first.
func Search(doc *domain.Document, q Query) (*Results, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	index, err := BuildIndex(doc)
	if err != nil {
		return nil, err
	}
	defer func() { _ = index.Close() }()

	req := bleve.NewSearchRequest(buildQuery(q))
	if q.Limit > 0 {
		req.Size = q.Limit
	}
	req.Fields = []string{FieldPath, FieldText, FieldStyle, FieldStart, FieldEnd}
	req.SortBy([]string{"-_score", FieldStart})
	req.Highlight = bleve.NewHighlight()
	req.Highlight.AddField(FieldText)

	res, err := index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	out := &Results{Total: res.Total, Hits: make([]Hit, 0, len(res.Hits))}
	for _, h := range res.Hits {
		hit := Hit{Path: h.ID, Score: h.Score}
		if val, ok := h.Fields[FieldText].(string); ok {
			hit.Text = val
		}
		if val, ok := h.Fields[FieldStyle].(string); ok {
			hit.Style = val
		}
		if val, ok := h.Fields[FieldStart].(float64); ok {
			hit.StartIndex = int64(val)
		}
		if val, ok := h.Fields[FieldEnd].(float64); ok {
			hit.EndIndex = int64(val)
		}
		if fragments, ok := h.Fragments[FieldText]; ok {
			hit.Fragments = fragments
		}
		out.Hits = append(out.Hits, hit)
	}
	return out, nil
}

// buildQuery constructs a Bleve query from a search query.
func buildQuery(q Query) query.Query {
	textQuery := bleve.NewMatchQuery(q.Text)
	textQuery.SetField(FieldText)

	if q.Style == "" {
		return textQuery
	}

	styleQuery := bleve.NewTermQuery(strings.ToUpper(q.Style))
	styleQuery.SetField(FieldStyle)
	return bleve.NewConjunctionQuery(textQuery, styleQuery)
}

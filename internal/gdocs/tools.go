package gdocs

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-server/internal/domain"
	"github.com/sha1n/mcp-docs-server/internal/summary"
)

// errorResult builds a tool error result.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

// hint suggests how the caller can recover from err.
func hint(err error) string {
	switch {
	case errors.Is(err, domain.ErrAmbiguousTarget):
		return "Use a more specific target expression that matches exactly one node."
	case errors.Is(err, domain.ErrTargetNotFound):
		return "Read the document again and check the target expression."
	case errors.Is(err, domain.ErrTargetNotRangeable):
		return "Target a paragraph, table, run or cell that has startIndex and endIndex."
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrMalformedSnapshot):
		return "The document may have changed; read it again before retrying."
	case errors.Is(err, domain.ErrInvalidDocumentReference):
		return "Pass a document id or a docs.google.com URL."
	}
	return ""
}

// failure formats err as a tool error with an optional recovery hint.
func failure(action string, err error) *mcp.CallToolResult {
	if h := hint(err); h != "" {
		return errorResult("%s failed: %s\n%s", action, err, h)
	}
	return errorResult("%s failed: %s", action, err)
}

// resultContent renders an applied batch for the caller: the change log, and
// the refreshed snapshot when requested.
func resultContent(res *Result, withSnapshot bool) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Document**: %s (%s)\n", res.Document.Title, res.Document.DocumentID))
	if res.Document.RevisionID != "" {
		sb.WriteString(fmt.Sprintf("**Revision**: %s\n", res.Document.RevisionID))
	}
	sb.WriteString("\n")
	sb.WriteString(summary.Join(res.Summary))

	content := []mcp.Content{&mcp.TextContent{Text: sb.String()}}
	if withSnapshot {
		data, err := json.Marshal(res.Document)
		if err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		content = append(content, &mcp.TextContent{Text: string(data)})
	}
	return &mcp.CallToolResult{Content: content}, nil
}

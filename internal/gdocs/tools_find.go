package gdocs

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-server/internal/docsearch"
)

// FindArgument defines find parameters.
type FindArgument struct {
	Document string `json:"document" jsonschema:"Document id or Google Docs URL"`
	Query    string `json:"query" jsonschema:"Full-text query matched against paragraph text"`
	Style    string `json:"style,omitempty" jsonschema:"Restrict to one named paragraph style (e.g. HEADING_2, NORMAL_TEXT)"`
}

// FindHandler handles the find_in_document MCP tool.
type FindHandler struct {
	service *Service
}

// NewFindHandler creates a new find handler.
func NewFindHandler(service *Service) *FindHandler {
	return &FindHandler{
		service: service,
	}
}

// Handle searches the paragraphs of a fresh snapshot.
func (h *FindHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FindArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Document) == "" {
		return errorResult("Document cannot be empty"), nil, nil
	}
	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	doc, err := h.service.Fetch(ctx, args.Document)
	if err != nil {
		return failure("Find", err), nil, nil
	}

	results, err := docsearch.Search(doc, docsearch.Query{
		Text:  args.Query,
		Style: args.Style,
		Limit: h.service.GetSettings().MaxSearchResults,
	})
	if err != nil {
		return errorResult("Search failed: %s", err), nil, nil
	}

	return formatFindResults(results, args.Query), nil, nil
}

// formatFindResults formats hits with the target expression for each.
func formatFindResults(results *docsearch.Results, queryStr string) *mcp.CallToolResult {
	if results.Total == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("No results found for query: %s", queryStr)},
			},
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d results for '%s':\n\n", results.Total, queryStr))

	for i, hit := range results.Hits {
		sb.WriteString(fmt.Sprintf("### %d. `%s`\n", i+1, hit.Path))
		sb.WriteString(fmt.Sprintf("**Range**: [%d, %d) **Style**: %s **Score**: %.4f\n\n", hit.StartIndex, hit.EndIndex, hit.Style, hit.Score))

		if len(hit.Fragments) > 0 {
			for _, fragment := range hit.Fragments {
				sb.WriteString("> ")
				sb.WriteString(fragment)
				sb.WriteString("\n")
			}
		} else {
			sb.WriteString("> ")
			sb.WriteString(hit.Text)
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
	}

	if results.Total > uint64(len(results.Hits)) {
		sb.WriteString(fmt.Sprintf("... and %d more results\n", results.Total-uint64(len(results.Hits))))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: sb.String()},
		},
	}
}

// GetToolDefinition returns the MCP tool definition.
func (h *FindHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "find_in_document",
		Description: "Full-text search over the paragraphs of a document. Each hit carries the target expression and index range to use with edit_document.",
	}
}

// RegisterFindTool registers the find tool with an MCP server.
func RegisterFindTool(server *mcp.Server, service *Service) {
	handler := NewFindHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

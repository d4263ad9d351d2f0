package gdocs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-server/internal/config"
	"github.com/sha1n/mcp-docs-server/internal/markdown"
)

// ReadArgument defines read parameters.
type ReadArgument struct {
	Document string `json:"document" jsonschema:"Document id or Google Docs URL"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: markdown (readable) or json (structure with startIndex/endIndex for targeting edits)"`
}

// ReadHandler handles the read_document MCP tool.
type ReadHandler struct {
	service *Service
}

// NewReadHandler creates a new read handler.
func NewReadHandler(service *Service) *ReadHandler {
	return &ReadHandler{
		service: service,
	}
}

// Handle fetches a document and renders it.
func (h *ReadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReadArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Document) == "" {
		return errorResult("Document cannot be empty"), nil, nil
	}

	format := strings.ToLower(strings.TrimSpace(args.Format))
	if format == "" {
		format = h.service.GetSettings().DefaultFormat
	}
	if format != config.FormatMarkdown && format != config.FormatJSON {
		return errorResult("Unsupported format %q, expected markdown or json", args.Format), nil, nil
	}

	doc, err := h.service.Fetch(ctx, args.Document)
	if err != nil {
		return failure("Read", err), nil, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Document**: %s (%s)\n", doc.Title, doc.DocumentID))
	if doc.RevisionID != "" {
		sb.WriteString(fmt.Sprintf("**Revision**: %s\n", doc.RevisionID))
	}
	sb.WriteString("\n")

	if format == config.FormatJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return errorResult("Failed to encode document: %s", err), nil, nil
		}
		sb.WriteString(fmt.Sprintf("```json\n%s\n```", data))
	} else {
		sb.WriteString(markdown.Render(doc))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: sb.String()},
		},
	}, nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *ReadHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name: "read_document",
		Description: "Read a Google Docs document as Markdown, or as JSON structure whose nodes carry " +
			"startIndex/endIndex. Use the JSON form to write target expressions such as $.content[3] for edit_document.",
	}
}

// RegisterReadTool registers the read tool with an MCP server.
func RegisterReadTool(server *mcp.Server, service *Service) {
	handler := NewReadHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

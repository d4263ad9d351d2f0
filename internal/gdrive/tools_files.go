package gdrive

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchFilesArgument defines search_files parameters.
type SearchFilesArgument struct {
	Query    string `json:"query" jsonschema:"Text matched against file names and content"`
	DocsOnly bool   `json:"docs_only,omitempty" jsonschema:"Only return Google Docs documents"`
}

// SearchFilesHandler handles the search_files MCP tool.
type SearchFilesHandler struct {
	service *Service
}

// NewSearchFilesHandler creates a new file search handler.
func NewSearchFilesHandler(service *Service) *SearchFilesHandler {
	return &SearchFilesHandler{
		service: service,
	}
}

// Handle searches Drive and lists matching files.
func (h *SearchFilesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchFilesArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	files, err := h.service.SearchFiles(ctx, args.Query, args.DocsOnly)
	if err != nil {
		return failure("Search", err), nil, nil
	}

	if len(files) == 0 {
		return textResult(fmt.Sprintf("No files found for query: %s", args.Query)), nil, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d files for '%s':\n\n", len(files), args.Query))
	for i, f := range files {
		sb.WriteString(fmt.Sprintf("%d. **%s** (`%s`)\n", i+1, f.Name, f.ID))
		sb.WriteString(fmt.Sprintf("   Type: %s, Modified: %s\n", f.MimeType, f.ModifiedTime))
		if f.WebViewLink != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", f.WebViewLink))
		}
	}

	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchFilesHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_files",
		Description: "Search Google Drive for files by name or content. Returns file ids usable as the document argument of the document tools.",
	}
}

// RegisterSearchFilesTool registers the file search tool with an MCP server.
func RegisterSearchFilesTool(server *mcp.Server, service *Service) {
	handler := NewSearchFilesHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

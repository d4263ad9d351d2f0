package gdocs

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/docs/v1"
)

// RawArgument defines raw batch parameters.
type RawArgument struct {
	Document string           `json:"document" jsonschema:"Document id or Google Docs URL"`
	Requests []map[string]any `json:"requests" jsonschema:"Google Docs API batchUpdate requests, submitted verbatim and in order"`
}

// RawHandler handles the batch_update_document MCP tool.
type RawHandler struct {
	service *Service
}

// NewRawHandler creates a new raw batch handler.
func NewRawHandler(service *Service) *RawHandler {
	return &RawHandler{
		service: service,
	}
}

// Handle submits caller-built requests as one batch.
func (h *RawHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args RawArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Document) == "" {
		return errorResult("Document cannot be empty"), nil, nil
	}
	if len(args.Requests) == 0 {
		return errorResult("Requests cannot be empty"), nil, nil
	}

	reqs, err := decodeRequests(args.Requests)
	if err != nil {
		return errorResult("Invalid requests: %s", err), nil, nil
	}

	res, err := h.service.Raw(ctx, args.Document, reqs)
	if err != nil {
		return failure("Batch update", err), nil, nil
	}

	result, err := resultContent(res, h.service.GetSettings().ReturnSnapshot)
	if err != nil {
		return errorResult("%s", err), nil, nil
	}
	return result, nil, nil
}

func decodeRequests(raw []map[string]any) ([]*docs.Request, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var reqs []*docs.Request
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *RawHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name: "batch_update_document",
		Description: "Submit raw Google Docs API batchUpdate requests verbatim. Indices must be computed by the caller " +
			"against the current snapshot; prefer edit_document.",
	}
}

// RegisterRawTool registers the raw batch tool with an MCP server.
func RegisterRawTool(server *mcp.Server, service *Service) {
	handler := NewRawHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

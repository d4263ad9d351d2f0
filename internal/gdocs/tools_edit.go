package gdocs

import (
	"context"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-server/internal/domain"
)

// ContentArgument is one content item of an edit.
type ContentArgument struct {
	Type  string   `json:"type" jsonschema:"Content type: heading, paragraph or bulletList"`
	Level int      `json:"level,omitempty" jsonschema:"Heading level 1-6 (heading only)"`
	Text  string   `json:"text,omitempty" jsonschema:"Text of a heading or paragraph"`
	Items []string `json:"items,omitempty" jsonschema:"Items of a bulletList"`
}

// EditArgument defines edit parameters.
type EditArgument struct {
	Document       string                 `json:"document" jsonschema:"Document id or Google Docs URL"`
	Operation      string                 `json:"operation" jsonschema:"One of insertAfter, insertBefore, replace, delete, updateTextStyle, updateParagraphStyle"`
	Target         string                 `json:"target" jsonschema:"JSONPath into the document body selecting exactly one node, e.g. $.content[3] or $.content[2].paragraph.elements[0]"`
	Content        []ContentArgument      `json:"content,omitempty" jsonschema:"Content for insertAfter, insertBefore and replace"`
	TextStyle      *domain.Style          `json:"textStyle,omitempty" jsonschema:"Partial character style for updateTextStyle; only the fields given are changed"`
	ParagraphStyle *domain.ParagraphStyle `json:"paragraphStyle,omitempty" jsonschema:"Partial paragraph style for updateParagraphStyle; only the fields given are changed"`
}

// IntentRequest converts the arguments into the domain request shape.
func (a EditArgument) IntentRequest() domain.IntentRequest {
	content := make([]domain.ContentRequest, 0, len(a.Content))
	for _, c := range a.Content {
		content = append(content, domain.ContentRequest{Type: c.Type, Level: c.Level, Text: c.Text, Items: c.Items})
	}
	return domain.IntentRequest{
		Operation:      a.Operation,
		Target:         a.Target,
		Content:        content,
		TextStyle:      a.TextStyle,
		ParagraphStyle: a.ParagraphStyle,
	}
}

// EditHandler handles the edit_document MCP tool.
type EditHandler struct {
	service *Service
}

// NewEditHandler creates a new edit handler.
func NewEditHandler(service *Service) *EditHandler {
	return &EditHandler{
		service: service,
	}
}

// Handle applies one edit intent against a freshly fetched snapshot.
func (h *EditHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args EditArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Document) == "" {
		return errorResult("Document cannot be empty"), nil, nil
	}

	intent, err := domain.ParseIntent(args.IntentRequest())
	if err != nil {
		return failure("Edit", err), nil, nil
	}

	res, err := h.service.Edit(ctx, args.Document, intent)
	if err != nil {
		slog.Warn("Edit rejected", "operation", args.Operation, "target", args.Target, "error", err)
		return failure("Edit", err), nil, nil
	}

	result, err := resultContent(res, h.service.GetSettings().ReturnSnapshot)
	if err != nil {
		return errorResult("%s", err), nil, nil
	}
	return result, nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *EditHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name: "edit_document",
		Description: "Apply one semantic edit to a Google Docs document. The target is resolved against a fresh snapshot " +
			"and must match exactly one node. Returns a change log and the updated structure; issue exactly one edit per snapshot.",
	}
}

// RegisterEditTool registers the edit tool with an MCP server.
func RegisterEditTool(server *mcp.Server, service *Service) {
	handler := NewEditHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

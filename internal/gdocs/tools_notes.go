package gdocs

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-server/internal/notes"
)

// InsertNoteArgument defines insert_note parameters.
type InsertNoteArgument struct {
	Document   string `json:"document" jsonschema:"Document id or Google Docs URL"`
	AnchorText string `json:"anchor_text" jsonschema:"Text of the paragraph after which the note is inserted; must occur in exactly one paragraph"`
	Text       string `json:"text" jsonschema:"Note text"`
}

// UpdateNoteArgument defines update_note parameters.
type UpdateNoteArgument struct {
	Document   string `json:"document" jsonschema:"Document id or Google Docs URL"`
	NoteNumber int    `json:"note_number" jsonschema:"Number N of the [Note N] paragraph to replace"`
	Text       string `json:"text" jsonschema:"New note text"`
}

// NotesHandler handles the insert_note and update_note MCP tools.
type NotesHandler struct {
	service *Service
}

// NewNotesHandler creates a new notes handler.
func NewNotesHandler(service *Service) *NotesHandler {
	return &NotesHandler{
		service: service,
	}
}

// HandleInsert adds a numbered note after the paragraph containing the anchor.
func (h *NotesHandler) HandleInsert(ctx context.Context, req *mcp.CallToolRequest, args InsertNoteArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Document) == "" {
		return errorResult("Document cannot be empty"), nil, nil
	}

	doc, err := h.service.Fetch(ctx, args.Document)
	if err != nil {
		return failure("Insert note", err), nil, nil
	}

	instrs, _, err := notes.InsertInstructions(doc, args.AnchorText, args.Text)
	if err != nil {
		return failure("Insert note", err), nil, nil
	}

	res, err := h.service.Apply(ctx, doc.DocumentID, instrs)
	if err != nil {
		return failure("Insert note", err), nil, nil
	}

	result, err := resultContent(res, h.service.GetSettings().ReturnSnapshot)
	if err != nil {
		return errorResult("%s", err), nil, nil
	}
	return result, nil, nil
}

// HandleUpdate replaces the text of an existing note.
func (h *NotesHandler) HandleUpdate(ctx context.Context, req *mcp.CallToolRequest, args UpdateNoteArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Document) == "" {
		return errorResult("Document cannot be empty"), nil, nil
	}
	if args.NoteNumber < 1 {
		return errorResult("Note number must be positive"), nil, nil
	}

	doc, err := h.service.Fetch(ctx, args.Document)
	if err != nil {
		return failure("Update note", err), nil, nil
	}

	instrs, err := notes.UpdateInstructions(doc, args.NoteNumber, args.Text)
	if err != nil {
		return failure("Update note", err), nil, nil
	}

	res, err := h.service.Apply(ctx, doc.DocumentID, instrs)
	if err != nil {
		return failure("Update note", err), nil, nil
	}

	result, err := resultContent(res, h.service.GetSettings().ReturnSnapshot)
	if err != nil {
		return errorResult("%s", err), nil, nil
	}
	return result, nil, nil
}

// RegisterNoteTools registers the note tools with an MCP server.
func RegisterNoteTools(server *mcp.Server, service *Service) {
	handler := NewNotesHandler(service)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "insert_note",
		Description: "Insert a numbered [Note N] paragraph after the one paragraph containing anchor_text. N is one more than the highest existing note.",
	}, handler.HandleInsert)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_note",
		Description: "Replace the text of the [Note N] paragraph with the given number.",
	}, handler.HandleUpdate)
}

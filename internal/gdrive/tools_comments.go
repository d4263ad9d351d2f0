package gdrive

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListCommentsArgument defines list_comments parameters.
type ListCommentsArgument struct {
	Document        string `json:"document" jsonschema:"Document id or Google Docs URL"`
	IncludeResolved bool   `json:"include_resolved,omitempty" jsonschema:"Also list resolved threads"`
}

// AddCommentArgument defines add_comment parameters.
type AddCommentArgument struct {
	Document string `json:"document" jsonschema:"Document id or Google Docs URL"`
	Text     string `json:"text" jsonschema:"Comment text"`
}

// ReplyArgument defines reply_to_comment and resolve_comment parameters.
type ReplyArgument struct {
	Document  string `json:"document" jsonschema:"Document id or Google Docs URL"`
	CommentID string `json:"comment_id" jsonschema:"Id of the comment thread, as shown by list_comments"`
	Text      string `json:"text,omitempty" jsonschema:"Reply text (optional when resolving)"`
}

// DeleteCommentArgument defines delete_comment parameters.
type DeleteCommentArgument struct {
	Document  string `json:"document" jsonschema:"Document id or Google Docs URL"`
	CommentID string `json:"comment_id" jsonschema:"Id of the comment thread to delete"`
}

// CommentsHandler handles the comment MCP tools.
type CommentsHandler struct {
	service *Service
}

// NewCommentsHandler creates a new comments handler.
func NewCommentsHandler(service *Service) *CommentsHandler {
	return &CommentsHandler{
		service: service,
	}
}

// HandleList lists the comment threads of a document.
func (h *CommentsHandler) HandleList(ctx context.Context, req *mcp.CallToolRequest, args ListCommentsArgument) (*mcp.CallToolResult, any, error) {
	comments, err := h.service.Comments(ctx, args.Document, args.IncludeResolved)
	if err != nil {
		return failure("List comments", err), nil, nil
	}
	if len(comments) == 0 {
		return textResult("No comments found."), nil, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d comment threads:\n\n", len(comments)))
	for _, c := range comments {
		formatComment(&sb, c)
	}
	return textResult(sb.String()), nil, nil
}

// HandleAdd creates a comment.
func (h *CommentsHandler) HandleAdd(ctx context.Context, req *mcp.CallToolRequest, args AddCommentArgument) (*mcp.CallToolResult, any, error) {
	c, err := h.service.AddComment(ctx, args.Document, args.Text)
	if err != nil {
		return failure("Add comment", err), nil, nil
	}
	return textResult(fmt.Sprintf("Created comment %s", c.ID)), nil, nil
}

// HandleReply replies to a comment thread.
func (h *CommentsHandler) HandleReply(ctx context.Context, req *mcp.CallToolRequest, args ReplyArgument) (*mcp.CallToolResult, any, error) {
	r, err := h.service.Reply(ctx, args.Document, args.CommentID, args.Text)
	if err != nil {
		return failure("Reply", err), nil, nil
	}
	return textResult(fmt.Sprintf("Added reply %s to comment %s", r.ID, args.CommentID)), nil, nil
}

// HandleResolve resolves a comment thread.
func (h *CommentsHandler) HandleResolve(ctx context.Context, req *mcp.CallToolRequest, args ReplyArgument) (*mcp.CallToolResult, any, error) {
	if _, err := h.service.Resolve(ctx, args.Document, args.CommentID, args.Text); err != nil {
		return failure("Resolve", err), nil, nil
	}
	return textResult(fmt.Sprintf("Resolved comment %s", args.CommentID)), nil, nil
}

// HandleDelete deletes a comment thread.
func (h *CommentsHandler) HandleDelete(ctx context.Context, req *mcp.CallToolRequest, args DeleteCommentArgument) (*mcp.CallToolResult, any, error) {
	if err := h.service.Delete(ctx, args.Document, args.CommentID); err != nil {
		return failure("Delete comment", err), nil, nil
	}
	return textResult(fmt.Sprintf("Deleted comment %s", args.CommentID)), nil, nil
}

// RegisterCommentTools registers the comment tools with an MCP server.
func RegisterCommentTools(server *mcp.Server, service *Service) {
	handler := NewCommentsHandler(service)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_comments",
		Description: "List the comment threads of a document with their replies. Resolved threads are hidden unless include_resolved is set.",
	}, handler.HandleList)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_comment",
		Description: "Add a comment to a document.",
	}, handler.HandleAdd)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "reply_to_comment",
		Description: "Reply to a comment thread.",
	}, handler.HandleReply)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_comment",
		Description: "Resolve a comment thread, optionally with a closing reply.",
	}, handler.HandleResolve)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_comment",
		Description: "Delete a comment thread.",
	}, handler.HandleDelete)
}

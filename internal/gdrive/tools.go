package gdrive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-server/internal/domain"
)

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func failure(action string, err error) *mcp.CallToolResult {
	if errors.Is(err, domain.ErrInvalidDocumentReference) {
		return errorResult("%s failed: %s\nPass a document id or a docs.google.com URL.", action, err)
	}
	return errorResult("%s failed: %s", action, err)
}

// formatComment writes one thread with its replies as a Markdown list item.
func formatComment(sb *strings.Builder, c Comment) {
	state := "open"
	if c.Resolved {
		state = "resolved"
	}
	sb.WriteString(fmt.Sprintf("- **%s** (%s, %s): %s\n", c.ID, c.Author, state, c.Content))
	if c.QuotedText != "" {
		sb.WriteString(fmt.Sprintf("  > %s\n", c.QuotedText))
	}
	for _, r := range c.Replies {
		if r.Action != "" {
			sb.WriteString(fmt.Sprintf("  - %s [%s]: %s\n", r.Author, r.Action, r.Content))
			continue
		}
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", r.Author, r.Content))
	}
}

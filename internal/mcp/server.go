package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-server/internal/gdocs"
	"github.com/sha1n/mcp-docs-server/internal/gdrive"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name    string
	Version string

	// DocsSvc enables the document tools when set
	DocsSvc *gdocs.Service
	// DriveSvc enables the file search and comment tools when set
	DriveSvc *gdrive.Service
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	if cfg.DocsSvc != nil {
		gdocs.RegisterReadTool(s, cfg.DocsSvc)
		gdocs.RegisterEditTool(s, cfg.DocsSvc)
		gdocs.RegisterRawTool(s, cfg.DocsSvc)
		gdocs.RegisterFindTool(s, cfg.DocsSvc)
		gdocs.RegisterNoteTools(s, cfg.DocsSvc)
	}

	if cfg.DriveSvc != nil {
		gdrive.RegisterSearchFilesTool(s, cfg.DriveSvc)
		gdrive.RegisterCommentTools(s, cfg.DriveSvc)
	}

	return s
}

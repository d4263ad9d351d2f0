package mcp

import (
	"context"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-server/internal/config"
	"github.com/sha1n/mcp-docs-server/internal/gdocs"
	"github.com/sha1n/mcp-docs-server/internal/gdrive"
)

func TestCreateServer(t *testing.T) {
	cfg := ServerConfig{
		Name:    "test-server",
		Version: "1.0.0",
	}

	server := CreateServer(cfg)
	if server == nil {
		t.Fatal("Expected server to be created")
	}
}

func TestCreateServer_EmptyConfig(t *testing.T) {
	cfg := ServerConfig{}

	server := CreateServer(cfg)
	if server == nil {
		t.Fatal("Expected server to be created even with empty config")
	}
}

// listTools connects an in-memory client and returns the sorted tool names.
func listTools(t *testing.T, server *mcp.Server) []string {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("Server connect failed: %v", err)
	}
	defer func() { _ = serverSession.Close() }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("Client connect failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	return names
}

func TestCreateServer_ToolsRegistered(t *testing.T) {
	docsSvc, err := gdocs.NewService(gdocs.NewFakeAPI(), &config.DocsSettings{MaxSearchResults: 10, DefaultFormat: config.FormatMarkdown})
	if err != nil {
		t.Fatalf("Failed to create docs service: %v", err)
	}
	driveSvc, err := gdrive.NewService(gdrive.NewFakeAPI(), &config.DriveSettings{MaxResults: 20})
	if err != nil {
		t.Fatalf("Failed to create drive service: %v", err)
	}

	tests := []struct {
		name string
		cfg  ServerConfig
		want []string
	}{
		{
			name: "docs only",
			cfg:  ServerConfig{Name: "test-server", Version: "1.0.0", DocsSvc: docsSvc},
			want: []string{"batch_update_document", "edit_document", "find_in_document", "insert_note", "read_document", "update_note"},
		},
		{
			name: "drive only",
			cfg:  ServerConfig{Name: "test-server", Version: "1.0.0", DriveSvc: driveSvc},
			want: []string{"add_comment", "delete_comment", "list_comments", "reply_to_comment", "resolve_comment", "search_files"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := listTools(t, CreateServer(tt.cfg))
			if len(got) != len(tt.want) {
				t.Fatalf("Expected tools %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected tool '%s', got '%s'", tt.want[i], got[i])
				}
			}
		})
	}
}

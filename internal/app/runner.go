package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-server/internal/config"
	"github.com/sha1n/mcp-docs-server/internal/gauth"
	"github.com/sha1n/mcp-docs-server/internal/gdocs"
	"github.com/sha1n/mcp-docs-server/internal/gdrive"
	mcputil "github.com/sha1n/mcp-docs-server/internal/mcp"
	"github.com/spf13/pflag"
)

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	StartSSEServer    func(*mcp.Server, *config.Settings) error
	CreateServer      func(*config.Settings) (*mcp.Server, func(), error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateSettings,
		StartSSEServer: StartSSEServer,
		CreateServer:   CreateMCPServer,
	}
}

// RunWithDeps executes the server with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	// Load settings
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Validate settings for conflicting configurations
	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure logging - always use stderr to avoid buffering issues
	handler := slog.NewTextHandler(os.Stderr, nil)
	slog.SetDefault(slog.New(handler))

	slog.Info("Starting MCP Docs server", "version", version)
	config.Log(settings)

	mcpServer, cleanup, err := params.CreateServer(settings)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Start server
	if settings.Transport == "stdio" {
		// Use custom transport if provided (for testing), otherwise use stdio
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return mcpServer.Run(ctx, transport)
	} else {
		slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
		return params.StartSSEServer(mcpServer, settings)
	}
}

// GoogleClients holds the hosted service clients the tools run against
type GoogleClients struct {
	Docs  gdocs.API
	Drive gdrive.API
}

// ClientFactory creates the hosted service clients
type ClientFactory func(context.Context, *config.GoogleSettings) (*GoogleClients, error)

// NewGoogleClients authorizes with the configured credentials and creates the
// Docs and Drive clients
func NewGoogleClients(ctx context.Context, settings *config.GoogleSettings) (*GoogleClients, error) {
	opts, err := gauth.ClientOptions(ctx, settings)
	if err != nil {
		return nil, err
	}

	docsAPI, err := gdocs.NewGoogleAPI(ctx, opts...)
	if err != nil {
		return nil, err
	}

	driveAPI, err := gdrive.NewGoogleAPI(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GoogleClients{Docs: docsAPI, Drive: driveAPI}, nil
}

// CreateMCPServer creates the MCP server with registered tools
func CreateMCPServer(settings *config.Settings) (*mcp.Server, func(), error) {
	return CreateMCPServerWithClients(settings, NewGoogleClients)
}

// CreateMCPServerWithClients creates the MCP server using the given client
// factory. When credentials are unavailable the server starts without tools.
func CreateMCPServerWithClients(settings *config.Settings, newClients ClientFactory) (*mcp.Server, func(), error) {
	var docsSvc *gdocs.Service
	var driveSvc *gdrive.Service

	// Token refreshes outlive any single request
	ctx, cancel := context.WithCancel(context.Background())

	clients, err := newClients(ctx, &settings.Google)
	if err != nil {
		slog.Error("Google client initialization failed, tools are disabled",
			"credential_mode", settings.Google.CredentialMode(),
			"error", err)
	} else {
		docsSvc, err = gdocs.NewService(clients.Docs, &settings.Docs)
		if err != nil {
			cancel()
			return nil, nil, fmt.Errorf("failed to create docs service: %w", err)
		}

		driveSvc, err = gdrive.NewService(clients.Drive, &settings.Drive)
		if err != nil {
			cancel()
			return nil, nil, fmt.Errorf("failed to create drive service: %w", err)
		}
	}

	server := mcputil.CreateServer(mcputil.ServerConfig{
		Name:     "docs-mcp",
		Version:  "1.0.0",
		DocsSvc:  docsSvc,
		DriveSvc: driveSvc,
	})

	return server, cancel, nil
}

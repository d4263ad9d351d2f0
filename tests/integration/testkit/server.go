package testkit

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-server/internal/app"
	"github.com/sha1n/mcp-docs-server/internal/config"
	"github.com/spf13/pflag"
)

// PropertyBaseURL is the property holding the started server's base URL
const PropertyBaseURL = "base_url"

// ServerService runs the SSE server in-process with the given clients in
// place of the hosted Google services
type ServerService struct {
	flags   *pflag.FlagSet
	clients *app.GoogleClients
	errCh   chan error
}

// NewServerService creates a server service configured by opts
func NewServerService(t testing.TB, opts *FlagOptions, clients *app.GoogleClients) *ServerService {
	t.Helper()
	return &ServerService{
		flags:   NewTestFlags(t, opts),
		clients: clients,
		errCh:   make(chan error, 1),
	}
}

// GetName returns the service name
func (s *ServerService) GetName() string {
	return "docs-mcp"
}

// Start runs the server and waits until its health endpoint answers
func (s *ServerService) Start() (map[string]any, error) {
	params := app.DefaultRunParams()
	params.CreateServer = func(settings *config.Settings) (*mcp.Server, func(), error) {
		return app.CreateMCPServerWithClients(settings, func(context.Context, *config.GoogleSettings) (*app.GoogleClients, error) {
			return s.clients, nil
		})
	}

	go func() {
		s.errCh <- app.RunWithDeps(context.Background(), params, s.flags, "test")
	}()

	host, _ := s.flags.GetString("host")
	port, _ := s.flags.GetInt("port")
	baseURL := fmt.Sprintf("http://%s:%d", host, port)

	if err := s.waitForHealth(baseURL, 5*time.Second); err != nil {
		return nil, err
	}
	return map[string]any{PropertyBaseURL: baseURL}, nil
}

// Stop is a no-op: the listener has no shutdown hook and lives until the
// test binary exits
func (s *ServerService) Stop() error {
	return nil
}

func (s *ServerService) waitForHealth(baseURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		select {
		case err := <-s.errCh:
			return fmt.Errorf("server exited: %w", err)
		default:
		}

		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server at %s not healthy after %v", baseURL, timeout)
}

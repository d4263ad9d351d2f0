package gdocs

import (
	"context"
	"errors"
	"fmt"

	"github.com/sha1n/mcp-docs-server/internal/domain"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// API is the subset of the Google Docs service the server uses.
type API interface {
	GetDocument(ctx context.Context, documentID string) (*docs.Document, error)
	BatchUpdate(ctx context.Context, documentID string, reqs []*docs.Request) (*docs.BatchUpdateDocumentResponse, error)
}

// GoogleAPI implements API against the hosted service.
type GoogleAPI struct {
	svc *docs.Service
}

// NewGoogleAPI creates a Docs client with the given client options
// (typically option.WithTokenSource).
func NewGoogleAPI(ctx context.Context, opts ...option.ClientOption) (*GoogleAPI, error) {
	svc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs service: %w", err)
	}
	return &GoogleAPI{svc: svc}, nil
}

// GetDocument fetches a full document snapshot.
func (g *GoogleAPI) GetDocument(ctx context.Context, documentID string) (*docs.Document, error) {
	d, err := g.svc.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return nil, Upstream("get document", err)
	}
	return d, nil
}

// BatchUpdate submits reqs as one atomic batch.
func (g *GoogleAPI) BatchUpdate(ctx context.Context, documentID string, reqs []*docs.Request) (*docs.BatchUpdateDocumentResponse, error) {
	resp, err := g.svc.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{Requests: reqs}).Context(ctx).Do()
	if err != nil {
		return nil, Upstream("batch update", err)
	}
	return resp, nil
}

// Upstream wraps a service failure as domain.ErrUpstream, keeping the status
// code and message the service reported.
func Upstream(action string, err error) error {
	if errors.Is(err, domain.ErrUpstream) {
		return err
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s failed with status %d: %s", domain.ErrUpstream, action, apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("%w: %s failed: %v", domain.ErrUpstream, action, err)
}

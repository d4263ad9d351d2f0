package gdocs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sha1n/mcp-docs-server/internal/compiler"
	"github.com/sha1n/mcp-docs-server/internal/config"
	"github.com/sha1n/mcp-docs-server/internal/domain"
	"github.com/sha1n/mcp-docs-server/internal/summary"
	"google.golang.org/api/docs/v1"
)

// Result is the outcome of one applied batch.
type Result struct {
	// Summary has one line per submitted instruction.
	Summary []string
	// Document is the snapshot fetched after the batch was applied.
	Document *domain.Document
}

// Service runs edit intents against the hosted document service. It holds no
// document state between calls: every call fetches its own snapshot.
type Service struct {
	api      API
	settings *config.DocsSettings
}

// NewService creates a new documents service.
func NewService(api API, settings *config.DocsSettings) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	return &Service{api: api, settings: settings}, nil
}

// GetSettings returns the service settings.
func (s *Service) GetSettings() *config.DocsSettings {
	return s.settings
}

// Fetch returns a fresh snapshot of the referenced document. Snapshots whose
// sibling ranges do not abut are rejected.
func (s *Service) Fetch(ctx context.Context, ref string) (*domain.Document, error) {
	id, err := ParseDocumentID(ref)
	if err != nil {
		return nil, err
	}
	d, err := s.api.GetDocument(ctx, id)
	if err != nil {
		return nil, Upstream("get document", err)
	}
	doc := FromDocs(d)
	if doc == nil {
		return nil, fmt.Errorf("%w: document %s has no content", domain.ErrMalformedSnapshot, id)
	}
	if err := doc.CheckContiguity(); err != nil {
		slog.Error("Rejecting snapshot", "document_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedSnapshot, err)
	}
	return doc, nil
}

// Edit applies one intent: fetch, compile against that snapshot, submit one
// batch, then fetch the result. Nothing is submitted if compilation fails.
func (s *Service) Edit(ctx context.Context, ref string, intent domain.Intent) (*Result, error) {
	doc, err := s.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	instrs, err := compiler.Compile(doc, intent)
	if err != nil {
		return nil, err
	}

	return s.Apply(ctx, doc.DocumentID, instrs)
}

// Apply submits already compiled instructions as one batch and returns the
// refreshed snapshot.
func (s *Service) Apply(ctx context.Context, documentID string, instrs []domain.Instruction) (*Result, error) {
	reqs, err := ToRequests(instrs)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, documentID, instrs, reqs)
}

// Raw submits caller-built requests verbatim, bypassing compilation.
func (s *Service) Raw(ctx context.Context, ref string, reqs []*docs.Request) (*Result, error) {
	id, err := ParseDocumentID(ref)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no requests to submit", domain.ErrMissingPayload)
	}

	instrs := make([]domain.Instruction, 0, len(reqs))
	for _, r := range reqs {
		instrs = append(instrs, FromRequest(r))
	}
	return s.submit(ctx, id, instrs, reqs)
}

func (s *Service) submit(ctx context.Context, documentID string, instrs []domain.Instruction, reqs []*docs.Request) (*Result, error) {
	slog.Info("Submitting batch", "document_id", documentID, "instructions", len(reqs))

	resp, err := s.api.BatchUpdate(ctx, documentID, reqs)
	if err != nil {
		slog.Error("Batch rejected", "document_id", documentID, "error", err)
		return nil, Upstream("batch update", err)
	}

	fresh, err := s.api.GetDocument(ctx, documentID)
	if err != nil {
		return nil, Upstream("get document", err)
	}

	return &Result{
		Summary:  summary.Build(instrs, replyObjects(resp)),
		Document: FromDocs(fresh),
	}, nil
}

package gdrive

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sha1n/mcp-docs-server/internal/config"
	"github.com/sha1n/mcp-docs-server/internal/domain"
	"github.com/sha1n/mcp-docs-server/internal/gdocs"
)

const (
	// MimeTypeDocument is the Drive mime type of a Google Docs document.
	MimeTypeDocument = "application/vnd.google-apps.document"

	// ActionResolve is the reply action that resolves a comment thread.
	ActionResolve = "resolve"
)

var queryEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Service provides file search and comment management on top of an API.
type Service struct {
	api      API
	settings *config.DriveSettings
}

// NewService creates a new Drive service.
func NewService(api API, settings *config.DriveSettings) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	return &Service{api: api, settings: settings}, nil
}

// GetSettings returns the service settings.
func (s *Service) GetSettings() *config.DriveSettings {
	return s.settings
}

// BuildQuery builds a Drive search expression matching text in file names or
// content. Trashed files are always excluded.
func BuildQuery(text string, docsOnly bool) string {
	clauses := []string{"trashed = false"}
	if t := strings.TrimSpace(text); t != "" {
		q := "'" + queryEscaper.Replace(t) + "'"
		clauses = append(clauses, fmt.Sprintf("(name contains %s or fullText contains %s)", q, q))
	}
	if docsOnly {
		clauses = append(clauses, fmt.Sprintf("mimeType = '%s'", MimeTypeDocument))
	}
	return strings.Join(clauses, " and ")
}

// SearchFiles finds files matching text, capped at the configured limit.
func (s *Service) SearchFiles(ctx context.Context, text string, docsOnly bool) ([]File, error) {
	query := BuildQuery(text, docsOnly)
	slog.Debug("Searching files", "query", query)
	return s.api.SearchFiles(ctx, query, s.settings.MaxResults)
}

// Comments lists the comment threads of a document. Resolved threads are
// skipped unless includeResolved is set.
func (s *Service) Comments(ctx context.Context, ref string, includeResolved bool) ([]Comment, error) {
	id, err := gdocs.ParseDocumentID(ref)
	if err != nil {
		return nil, err
	}
	all, err := s.api.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	if includeResolved {
		return all, nil
	}

	open := make([]Comment, 0, len(all))
	for _, c := range all {
		if !c.Resolved {
			open = append(open, c)
		}
	}
	return open, nil
}

// AddComment creates a comment on a document.
func (s *Service) AddComment(ctx context.Context, ref, text string) (*Comment, error) {
	id, err := gdocs.ParseDocumentID(ref)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is empty", domain.ErrMissingPayload)
	}
	return s.api.CreateComment(ctx, id, text)
}

// Reply adds a reply to a comment thread.
func (s *Service) Reply(ctx context.Context, ref, commentID, text string) (*Reply, error) {
	id, err := s.thread(ref, commentID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: reply text is empty", domain.ErrMissingPayload)
	}
	return s.api.ReplyToComment(ctx, id, commentID, text)
}

// Resolve marks a comment thread resolved. text is an optional closing reply.
func (s *Service) Resolve(ctx context.Context, ref, commentID, text string) (*Reply, error) {
	id, err := s.thread(ref, commentID)
	if err != nil {
		return nil, err
	}
	return s.api.ResolveComment(ctx, id, commentID, strings.TrimSpace(text))
}

// Delete removes a comment thread.
func (s *Service) Delete(ctx context.Context, ref, commentID string) error {
	id, err := s.thread(ref, commentID)
	if err != nil {
		return err
	}
	return s.api.DeleteComment(ctx, id, commentID)
}

func (s *Service) thread(ref, commentID string) (string, error) {
	id, err := gdocs.ParseDocumentID(ref)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(commentID) == "" {
		return "", fmt.Errorf("%w: comment id is empty", domain.ErrMissingPayload)
	}
	return id, nil
}

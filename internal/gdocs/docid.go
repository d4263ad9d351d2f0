package gdocs

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/sha1n/mcp-docs-server/internal/domain"
)

var (
	// Matches: https://docs.google.com/document/d/<id>/edit and the drive
	// file viewer https://drive.google.com/file/d/<id>/view
	pathIDPattern = regexp.MustCompile(`/(?:document|file)/(?:u/\d+/)?d/([a-zA-Z0-9_-]+)`)

	// Matches a bare document id
	bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{10,}$`)
)

// ParseDocumentID extracts a document id from a bare id or a Google Docs /
// Drive URL.
//
// Examples:
//   - 1AbC...xyz -> 1AbC...xyz
//   - https://docs.google.com/document/d/1AbC...xyz/edit -> 1AbC...xyz
//   - https://drive.google.com/open?id=1AbC...xyz -> 1AbC...xyz
func ParseDocumentID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", domain.ErrInvalidDocumentReference)
	}

	if bareIDPattern.MatchString(ref) {
		return ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDocumentReference, ref)
	}
	if !strings.HasSuffix(u.Host, "google.com") {
		return "", fmt.Errorf("%w: unsupported host %q", domain.ErrInvalidDocumentReference, u.Host)
	}

	if matches := pathIDPattern.FindStringSubmatch(u.Path); matches != nil {
		return matches[1], nil
	}
	if id := u.Query().Get("id"); bareIDPattern.MatchString(id) {
		return id, nil
	}

	return "", fmt.Errorf("%w: no document id in %q", domain.ErrInvalidDocumentReference, ref)
}

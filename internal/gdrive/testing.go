package gdrive

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/sha1n/mcp-docs-server/internal/gdocs"
	"google.golang.org/api/googleapi"
)

// FakeAPI is an in-memory stand-in for the Drive service. It does not
// evaluate search expressions: SearchFiles records the query and returns the
// stored files in insertion order up to the limit.
// This is exported for use in integration tests.
type FakeAPI struct {
	mu       sync.Mutex
	files    []File
	comments map[string][]Comment
	queries  []string
	nextID   int
}

// NewFakeAPI creates an empty fake.
func NewFakeAPI() *FakeAPI {
	return &FakeAPI{comments: make(map[string][]Comment)}
}

// AddFile stores a file. Comments can only be made on stored files.
func (f *FakeAPI) AddFile(file File) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append(f.files, file)
	if _, ok := f.comments[file.ID]; !ok {
		f.comments[file.ID] = nil
	}
}

// Queries returns every search expression received, in order.
func (f *FakeAPI) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.queries))
	copy(out, f.queries)
	return out
}

// SearchFiles records query and returns up to limit stored files.
func (f *FakeAPI) SearchFiles(_ context.Context, query string, limit int) ([]File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)

	n := len(f.files)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]File, n)
	copy(out, f.files[:n])
	return out, nil
}

// ListComments returns the comment threads of a stored file.
func (f *FakeAPI) ListComments(_ context.Context, fileID string) ([]Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	threads, ok := f.comments[fileID]
	if !ok {
		return nil, notFound("list comments", "file", fileID)
	}
	out := make([]Comment, len(threads))
	for i, c := range threads {
		out[i] = c
		out[i].Replies = append([]Reply(nil), c.Replies...)
	}
	return out, nil
}

// CreateComment adds a comment thread to a stored file.
func (f *FakeAPI) CreateComment(_ context.Context, fileID, content string) (*Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.comments[fileID]; !ok {
		return nil, notFound("create comment", "file", fileID)
	}
	c := Comment{ID: f.id("comment"), Author: "me", Content: content}
	f.comments[fileID] = append(f.comments[fileID], c)
	return &c, nil
}

// ReplyToComment appends a reply to a thread.
func (f *FakeAPI) ReplyToComment(_ context.Context, fileID, commentID, content string) (*Reply, error) {
	return f.reply(fileID, commentID, Reply{Content: content})
}

// ResolveComment appends a resolving reply and marks the thread resolved.
func (f *FakeAPI) ResolveComment(_ context.Context, fileID, commentID, content string) (*Reply, error) {
	return f.reply(fileID, commentID, Reply{Content: content, Action: ActionResolve})
}

func (f *FakeAPI) reply(fileID, commentID string, r Reply) (*Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.find(fileID, commentID)
	if err != nil {
		return nil, err
	}
	r.ID = f.id("reply")
	r.Author = "me"
	c.Replies = append(c.Replies, r)
	if r.Action == ActionResolve {
		c.Resolved = true
	}
	return &r, nil
}

// DeleteComment removes a thread.
func (f *FakeAPI) DeleteComment(_ context.Context, fileID, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.find(fileID, commentID); err != nil {
		return err
	}
	threads := f.comments[fileID]
	for i := range threads {
		if threads[i].ID == commentID {
			f.comments[fileID] = append(threads[:i:i], threads[i+1:]...)
			break
		}
	}
	return nil
}

func (f *FakeAPI) find(fileID, commentID string) (*Comment, error) {
	threads, ok := f.comments[fileID]
	if !ok {
		return nil, notFound("find comment", "file", fileID)
	}
	for i := range threads {
		if threads[i].ID == commentID {
			return &threads[i], nil
		}
	}
	return nil, notFound("find comment", "comment", commentID)
}

func (f *FakeAPI) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func notFound(action, kind, id string) error {
	return gdocs.Upstream(action, &googleapi.Error{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s not found: %s", kind, id),
	})
}

package gdrive

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sha1n/mcp-docs-server/internal/domain"
	"google.golang.org/api/option"
)

func newTestGoogleAPI(t *testing.T, handler http.HandlerFunc) *GoogleAPI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api, err := NewGoogleAPI(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("NewGoogleAPI failed: %v", err)
	}
	return api
}

func TestGoogleAPI_SearchFiles(t *testing.T) {
	var gotQuery, gotSize string
	api := newTestGoogleAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("q")
		gotSize = r.URL.Query().Get("pageSize")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files":[{"id":"abc","name":"Plan","mimeType":"application/vnd.google-apps.document","webViewLink":"https://docs.google.com/document/d/abc/edit"}]}`))
	})

	files, err := api.SearchFiles(context.Background(), "trashed = false", 5)
	if err != nil {
		t.Fatalf("SearchFiles failed: %v", err)
	}
	if gotQuery != "trashed = false" || gotSize != "5" {
		t.Errorf("Unexpected request q=%q pageSize=%q", gotQuery, gotSize)
	}
	if len(files) != 1 || files[0].ID != "abc" || files[0].Name != "Plan" || files[0].MimeType != MimeTypeDocument {
		t.Errorf("Unexpected files %+v", files)
	}
}

func TestGoogleAPI_ListComments(t *testing.T) {
	api := newTestGoogleAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/abc/comments" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"comments":[{"id":"c1","content":"Check","author":{"displayName":"Ann"},"resolved":true,` +
			`"quotedFileContent":{"value":"the plan"},"replies":[{"id":"r1","content":"Done","action":"resolve","author":{"emailAddress":"bob@example.com"}}]}]}`))
	})

	comments, err := api.ListComments(context.Background(), "abc")
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(comments))
	}

	c := comments[0]
	if c.ID != "c1" || c.Author != "Ann" || !c.Resolved || c.QuotedText != "the plan" {
		t.Errorf("Unexpected comment %+v", c)
	}
	if len(c.Replies) != 1 || c.Replies[0].Author != "bob@example.com" || c.Replies[0].Action != ActionResolve {
		t.Errorf("Unexpected replies %+v", c.Replies)
	}
}

func TestGoogleAPI_Mutations(t *testing.T) {
	var calls []string
	api := newTestGoogleAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/files/abc/comments":
			_, _ = w.Write([]byte(`{"id":"c2","content":"New"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/files/abc/comments/c2/replies":
			_, _ = w.Write([]byte(`{"id":"r2","content":"ok"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/files/abc/comments/c2":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	c, err := api.CreateComment(ctx, "abc", "New")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if c.ID != "c2" {
		t.Errorf("Expected comment c2, got %q", c.ID)
	}

	r, err := api.ReplyToComment(ctx, "abc", "c2", "ok")
	if err != nil {
		t.Fatalf("ReplyToComment failed: %v", err)
	}
	if r.ID != "r2" {
		t.Errorf("Expected reply r2, got %q", r.ID)
	}

	if _, err := api.ResolveComment(ctx, "abc", "c2", ""); err != nil {
		t.Fatalf("ResolveComment failed: %v", err)
	}

	if err := api.DeleteComment(ctx, "abc", "c2"); err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}

	if len(calls) != 4 {
		t.Errorf("Expected 4 calls, got %v", calls)
	}
}

func TestGoogleAPI_Error(t *testing.T) {
	api := newTestGoogleAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	})

	_, err := api.ListComments(context.Background(), "abc")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("Expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "permission") {
		t.Errorf("Expected status and message, got %v", err)
	}
}

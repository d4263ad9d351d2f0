// Package gdrive exposes Google Drive file search and document comments.
package gdrive

import (
	"context"
	"fmt"

	"github.com/sha1n/mcp-docs-server/internal/gdocs"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	fileFields    googleapi.Field = "files(id,name,mimeType,modifiedTime,webViewLink)"
	commentFields googleapi.Field = "comments(id,content,author(displayName,emailAddress),createdTime,resolved,quotedFileContent(value),replies(id,content,author(displayName,emailAddress),action,createdTime))"
	oneComment    googleapi.Field = "id,content,author(displayName,emailAddress),createdTime,resolved"
	oneReply      googleapi.Field = "id,content,author(displayName,emailAddress),action,createdTime"
)

// File is a Drive file matched by a search.
type File struct {
	ID           string
	Name         string
	MimeType     string
	ModifiedTime string
	WebViewLink  string
}

// Comment is a comment thread on a file.
type Comment struct {
	ID          string
	Author      string
	Content     string
	QuotedText  string
	CreatedTime string
	Resolved    bool
	Replies     []Reply
}

// Reply is one reply in a comment thread. Action is "resolve" or "reopen"
// for replies that changed the thread state.
type Reply struct {
	ID          string
	Author      string
	Content     string
	Action      string
	CreatedTime string
}

// API is the subset of the Google Drive service the server uses.
type API interface {
	SearchFiles(ctx context.Context, query string, limit int) ([]File, error)
	ListComments(ctx context.Context, fileID string) ([]Comment, error)
	CreateComment(ctx context.Context, fileID, content string) (*Comment, error)
	ReplyToComment(ctx context.Context, fileID, commentID, content string) (*Reply, error)
	ResolveComment(ctx context.Context, fileID, commentID, content string) (*Reply, error)
	DeleteComment(ctx context.Context, fileID, commentID string) error
}

// GoogleAPI implements API against the hosted service.
type GoogleAPI struct {
	svc *drive.Service
}

// NewGoogleAPI creates a Drive client with the given client options.
func NewGoogleAPI(ctx context.Context, opts ...option.ClientOption) (*GoogleAPI, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &GoogleAPI{svc: svc}, nil
}

// SearchFiles runs a Drive query, most recently modified first.
func (g *GoogleAPI) SearchFiles(ctx context.Context, query string, limit int) ([]File, error) {
	list, err := g.svc.Files.List().
		Q(query).
		PageSize(int64(limit)).
		OrderBy("modifiedTime desc").
		Fields(fileFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, gdocs.Upstream("search files", err)
	}

	files := make([]File, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, File{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			ModifiedTime: f.ModifiedTime,
			WebViewLink:  f.WebViewLink,
		})
	}
	return files, nil
}

// ListComments returns every comment thread on a file.
func (g *GoogleAPI) ListComments(ctx context.Context, fileID string) ([]Comment, error) {
	var out []Comment
	call := g.svc.Comments.List(fileID).PageSize(100).Fields(commentFields, "nextPageToken")
	err := call.Pages(ctx, func(page *drive.CommentList) error {
		for _, c := range page.Comments {
			out = append(out, fromComment(c))
		}
		return nil
	})
	if err != nil {
		return nil, gdocs.Upstream("list comments", err)
	}
	return out, nil
}

// CreateComment adds an unanchored comment to a file.
func (g *GoogleAPI) CreateComment(ctx context.Context, fileID, content string) (*Comment, error) {
	c, err := g.svc.Comments.Create(fileID, &drive.Comment{Content: content}).
		Fields(oneComment).
		Context(ctx).
		Do()
	if err != nil {
		return nil, gdocs.Upstream("create comment", err)
	}
	out := fromComment(c)
	return &out, nil
}

// ReplyToComment appends a reply to a comment thread.
func (g *GoogleAPI) ReplyToComment(ctx context.Context, fileID, commentID, content string) (*Reply, error) {
	return g.reply(ctx, fileID, commentID, &drive.Reply{Content: content})
}

// ResolveComment marks a comment thread resolved, optionally with a final reply.
func (g *GoogleAPI) ResolveComment(ctx context.Context, fileID, commentID, content string) (*Reply, error) {
	return g.reply(ctx, fileID, commentID, &drive.Reply{Content: content, Action: ActionResolve})
}

func (g *GoogleAPI) reply(ctx context.Context, fileID, commentID string, r *drive.Reply) (*Reply, error) {
	created, err := g.svc.Replies.Create(fileID, commentID, r).
		Fields(oneReply).
		Context(ctx).
		Do()
	if err != nil {
		return nil, gdocs.Upstream("create reply", err)
	}
	out := fromReply(created)
	return &out, nil
}

// DeleteComment removes a comment thread.
func (g *GoogleAPI) DeleteComment(ctx context.Context, fileID, commentID string) error {
	if err := g.svc.Comments.Delete(fileID, commentID).Context(ctx).Do(); err != nil {
		return gdocs.Upstream("delete comment", err)
	}
	return nil
}

func fromComment(c *drive.Comment) Comment {
	out := Comment{
		ID:          c.Id,
		Author:      authorName(c.Author),
		Content:     c.Content,
		CreatedTime: c.CreatedTime,
		Resolved:    c.Resolved,
	}
	if c.QuotedFileContent != nil {
		out.QuotedText = c.QuotedFileContent.Value
	}
	for _, r := range c.Replies {
		out.Replies = append(out.Replies, fromReply(r))
	}
	return out
}

func fromReply(r *drive.Reply) Reply {
	return Reply{
		ID:          r.Id,
		Author:      authorName(r.Author),
		Content:     r.Content,
		Action:      r.Action,
		CreatedTime: r.CreatedTime,
	}
}

func authorName(u *drive.User) string {
	switch {
	case u == nil:
		return ""
	case u.DisplayName != "":
		return u.DisplayName
	default:
		return u.EmailAddress
	}
}

package gdocs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/sha1n/mcp-docs-server/internal/compiler"
	"github.com/sha1n/mcp-docs-server/internal/domain"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
)

// FakeAPI is an in-memory stand-in for the Docs service. It models the body
// of paragraph-only documents character by character and applies batches
// atomically, rejecting out-of-range requests the way the service does.
// This is exported for use in integration tests.
type FakeAPI struct {
	mu        sync.Mutex
	documents map[string]*fakeDocument
	batches   [][]*docs.Request
	gets      int
	failNext  error
}

type fakeDocument struct {
	id       string
	title    string
	revision int
	chars    []fakeChar
}

// fakeChar is one code point of the body. Newlines carry the attributes of
// the paragraph they terminate.
type fakeChar struct {
	r         rune
	style     docs.TextStyle
	paragraph docs.ParagraphStyle
	bullet    *docs.Bullet
}

func (c fakeChar) width() int64 {
	return int64(utf16.RuneLen(c.r))
}

// NewFakeAPI creates an empty fake.
func NewFakeAPI() *FakeAPI {
	return &FakeAPI{documents: make(map[string]*fakeDocument)}
}

// Put stores a copy of doc. Only paragraphs are kept; other blocks are
// dropped and indices are recomputed from the text.
func (f *FakeAPI) Put(doc *domain.Document) {
	fd := &fakeDocument{id: doc.DocumentID, title: doc.Title, revision: 1}
	for _, b := range doc.Body.Content {
		if b.Paragraph == nil {
			continue
		}
		para := docs.ParagraphStyle{NamedStyleType: b.Paragraph.NamedStyle()}
		var bullet *docs.Bullet
		if b.Paragraph.Bullet != nil {
			bullet = &docs.Bullet{ListId: b.Paragraph.Bullet.ListID, NestingLevel: b.Paragraph.Bullet.NestingLevel}
		}
		for _, run := range b.Paragraph.Elements {
			runStyle := run.Style()
			payload, fields := compiler.TextStyleMask(&runStyle)
			style, err := toTextStyle(payload, fields)
			if err != nil || style == nil {
				style = &docs.TextStyle{}
			}
			for _, r := range run.Text() {
				fd.chars = append(fd.chars, fakeChar{r: r, style: cleanStyle(*style), paragraph: para, bullet: bullet})
			}
		}
	}
	if len(fd.chars) == 0 || fd.chars[len(fd.chars)-1].r != '\n' {
		fd.chars = append(fd.chars, fakeChar{r: '\n', paragraph: docs.ParagraphStyle{NamedStyleType: domain.StyleNormalText}})
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents[doc.DocumentID] = fd
}

// FailNextBatch makes the next BatchUpdate return err without applying.
func (f *FakeAPI) FailNextBatch(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext = err
}

// Batches returns every batch received, in order.
func (f *FakeAPI) Batches() [][]*docs.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]*docs.Request, len(f.batches))
	copy(out, f.batches)
	return out
}

// GetCount returns the number of GetDocument calls.
func (f *FakeAPI) GetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

// GetDocument returns the current snapshot of a stored document.
func (f *FakeAPI) GetDocument(_ context.Context, documentID string) (*docs.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++

	fd, ok := f.documents[documentID]
	if !ok {
		return nil, &googleapi.Error{Code: http.StatusNotFound, Message: "Requested entity was not found."}
	}
	return fd.render(), nil
}

// BatchUpdate applies reqs in order. Either all requests apply or none do.
func (f *FakeAPI) BatchUpdate(_ context.Context, documentID string, reqs []*docs.Request) (*docs.BatchUpdateDocumentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, reqs)

	if err := f.failNext; err != nil {
		f.failNext = nil
		return nil, err
	}

	fd, ok := f.documents[documentID]
	if !ok {
		return nil, &googleapi.Error{Code: http.StatusNotFound, Message: "Requested entity was not found."}
	}

	work := &fakeDocument{id: fd.id, title: fd.title, revision: fd.revision}
	work.chars = append([]fakeChar(nil), fd.chars...)

	resp := &docs.BatchUpdateDocumentResponse{DocumentId: documentID}
	for i, req := range reqs {
		if err := work.apply(req); err != nil {
			return nil, &googleapi.Error{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("Invalid requests[%d]: %s", i, err),
			}
		}
		resp.Replies = append(resp.Replies, &docs.Response{})
	}

	work.revision++
	f.documents[documentID] = work
	return resp, nil
}

func (d *fakeDocument) end() int64 {
	n := int64(1)
	for _, c := range d.chars {
		n += c.width()
	}
	return n
}

// pos maps a document index to a slice position; ok is false when the index
// falls inside a surrogate pair or outside the body.
func (d *fakeDocument) pos(index int64) (int, bool) {
	at := int64(1)
	for i, c := range d.chars {
		if at == index {
			return i, true
		}
		if at > index {
			return 0, false
		}
		at += c.width()
	}
	return len(d.chars), at == index
}

func (d *fakeDocument) checkRange(r *docs.Range) (int, int, error) {
	if r == nil {
		return 0, 0, fmt.Errorf("range is required")
	}
	if r.StartIndex < 1 || r.StartIndex >= r.EndIndex {
		return 0, 0, fmt.Errorf("invalid range [%d, %d)", r.StartIndex, r.EndIndex)
	}
	if r.EndIndex > d.end() {
		return 0, 0, fmt.Errorf("index %d must be less than the end index of the referenced segment, %d", r.EndIndex, d.end())
	}
	start, ok := d.pos(r.StartIndex)
	if !ok {
		return 0, 0, fmt.Errorf("start index %d splits a character", r.StartIndex)
	}
	end, ok := d.pos(r.EndIndex)
	if !ok {
		return 0, 0, fmt.Errorf("end index %d splits a character", r.EndIndex)
	}
	return start, end, nil
}

// paragraphsIn returns the positions of the newlines terminating every
// paragraph overlapping [start, end).
func (d *fakeDocument) paragraphsIn(start, end int) []int {
	var out []int
	for i := start; i < len(d.chars); i++ {
		if d.chars[i].r == '\n' {
			out = append(out, i)
			if i >= end-1 {
				break
			}
		}
	}
	return out
}

func (d *fakeDocument) apply(req *docs.Request) error {
	switch {
	case req == nil:
		return fmt.Errorf("request is empty")

	case req.InsertText != nil:
		if req.InsertText.Location == nil {
			return fmt.Errorf("insertText requires a location")
		}
		idx := req.InsertText.Location.Index
		if idx < 1 || idx >= d.end() {
			return fmt.Errorf("index %d must be less than the end index of the referenced segment, %d", idx, d.end())
		}
		at, ok := d.pos(idx)
		if !ok {
			return fmt.Errorf("index %d splits a character", idx)
		}
		d.insert(at, req.InsertText.Text)
		return nil

	case req.DeleteContentRange != nil:
		start, end, err := d.checkRange(req.DeleteContentRange.Range)
		if err != nil {
			return err
		}
		if end == len(d.chars) {
			return fmt.Errorf("the range cannot include the newline character at the end of the segment")
		}
		d.chars = append(d.chars[:start], d.chars[end:]...)
		return nil

	case req.UpdateTextStyle != nil:
		u := req.UpdateTextStyle
		start, end, err := d.checkRange(u.Range)
		if err != nil {
			return err
		}
		if u.TextStyle == nil || u.Fields == "" {
			return fmt.Errorf("updateTextStyle requires a style and fields")
		}
		for i := start; i < end; i++ {
			if err := setTextFields(&d.chars[i].style, u.TextStyle, u.Fields); err != nil {
				return err
			}
		}
		return nil

	case req.UpdateParagraphStyle != nil:
		u := req.UpdateParagraphStyle
		start, end, err := d.checkRange(u.Range)
		if err != nil {
			return err
		}
		if u.ParagraphStyle == nil || u.Fields == "" {
			return fmt.Errorf("updateParagraphStyle requires a style and fields")
		}
		for _, nl := range d.paragraphsIn(start, end) {
			if err := setParagraphFields(&d.chars[nl].paragraph, u.ParagraphStyle, u.Fields); err != nil {
				return err
			}
		}
		return nil

	case req.CreateParagraphBullets != nil:
		start, end, err := d.checkRange(req.CreateParagraphBullets.Range)
		if err != nil {
			return err
		}
		for _, nl := range d.paragraphsIn(start, end) {
			d.chars[nl].bullet = &docs.Bullet{ListId: "fake-list"}
		}
		return nil
	}

	return fmt.Errorf("request %s is not supported", requestName(req))
}

// insert places text at slice position at. Inserted characters take the text
// style of the preceding character in the paragraph; inserted newlines split
// the paragraph and copy its attributes.
func (d *fakeDocument) insert(at int, text string) {
	var style docs.TextStyle
	if at > 0 && d.chars[at-1].r != '\n' {
		style = d.chars[at-1].style
	} else if at < len(d.chars) {
		style = d.chars[at].style
	}

	host := d.chars[len(d.chars)-1]
	for i := at; i < len(d.chars); i++ {
		if d.chars[i].r == '\n' {
			host = d.chars[i]
			break
		}
	}

	added := make([]fakeChar, 0, len(text))
	for _, r := range text {
		c := fakeChar{r: r, style: style}
		if r == '\n' {
			c.paragraph = host.paragraph
			c.bullet = host.bullet
		}
		added = append(added, c)
	}

	rest := append(added, d.chars[at:]...)
	d.chars = append(d.chars[:at:at], rest...)
}

func setTextFields(dst *docs.TextStyle, src *docs.TextStyle, mask string) error {
	for _, f := range strings.Split(mask, ",") {
		switch strings.TrimSpace(f) {
		case "bold":
			dst.Bold = src.Bold
		case "italic":
			dst.Italic = src.Italic
		case "underline":
			dst.Underline = src.Underline
		case "strikethrough":
			dst.Strikethrough = src.Strikethrough
		case "fontSize":
			dst.FontSize = src.FontSize
		case "foregroundColor":
			dst.ForegroundColor = presentColor(src.ForegroundColor)
		case "backgroundColor":
			dst.BackgroundColor = presentColor(src.BackgroundColor)
		case "link":
			dst.Link = src.Link
		case "weightedFontFamily":
			dst.WeightedFontFamily = src.WeightedFontFamily
		default:
			return fmt.Errorf("unknown text style field %q", f)
		}
	}
	return nil
}

func setParagraphFields(dst *docs.ParagraphStyle, src *docs.ParagraphStyle, mask string) error {
	for _, f := range strings.Split(mask, ",") {
		switch strings.TrimSpace(f) {
		case "namedStyleType":
			dst.NamedStyleType = src.NamedStyleType
		case "alignment":
			dst.Alignment = src.Alignment
		case "direction":
			dst.Direction = src.Direction
		case "lineSpacing":
			dst.LineSpacing = src.LineSpacing
		case "indentStart":
			dst.IndentStart = src.IndentStart
		case "indentEnd":
			dst.IndentEnd = src.IndentEnd
		case "indentFirstLine":
			dst.IndentFirstLine = src.IndentFirstLine
		case "spaceAbove":
			dst.SpaceAbove = src.SpaceAbove
		case "spaceBelow":
			dst.SpaceBelow = src.SpaceBelow
		default:
			return fmt.Errorf("unknown paragraph style field %q", f)
		}
	}
	return nil
}

// presentColor maps a cleared color to nil.
func presentColor(c *docs.OptionalColor) *docs.OptionalColor {
	if c == nil || c.Color == nil {
		return nil
	}
	return c
}

// cleanStyle drops explicit false flags so equal styles compare equal.
func cleanStyle(s docs.TextStyle) docs.TextStyle {
	s.ForceSendFields = nil
	s.NullFields = nil
	return s
}

func styleKey(s docs.TextStyle) string {
	data, _ := json.Marshal(cleanStyle(s))
	return string(data)
}

// render builds the API document: the leading section break followed by one
// structural element per paragraph, with runs split on style changes.
func (d *fakeDocument) render() *docs.Document {
	out := &docs.Document{
		DocumentId: d.id,
		Title:      d.title,
		RevisionId: fmt.Sprintf("rev-%d", d.revision),
		Body: &docs.Body{Content: []*docs.StructuralElement{{
			EndIndex:     1,
			SectionBreak: &docs.SectionBreak{SectionStyle: &docs.SectionStyle{SectionType: "CONTINUOUS"}},
		}}},
	}

	index := int64(1)
	paraStart := index
	var elements []*docs.ParagraphElement
	var run *docs.ParagraphElement
	var runKey string

	for _, c := range d.chars {
		key := styleKey(c.style)
		if run == nil || key != runKey {
			style := cleanStyle(c.style)
			run = &docs.ParagraphElement{StartIndex: index, EndIndex: index, TextRun: &docs.TextRun{TextStyle: &style}}
			runKey = key
			elements = append(elements, run)
		}
		run.TextRun.Content += string(c.r)
		index += c.width()
		run.EndIndex = index

		if c.r != '\n' {
			continue
		}
		para := c.paragraph
		if para.NamedStyleType == "" {
			para.NamedStyleType = domain.StyleNormalText
		}
		p := &docs.Paragraph{Elements: elements, ParagraphStyle: &para}
		if c.bullet != nil {
			b := *c.bullet
			p.Bullet = &b
		}
		out.Body.Content = append(out.Body.Content, &docs.StructuralElement{
			StartIndex: paraStart,
			EndIndex:   index,
			Paragraph:  p,
		})
		paraStart = index
		elements = nil
		run = nil
	}
	return out
}

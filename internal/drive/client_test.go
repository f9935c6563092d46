package drive

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync"
	"testing"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/drivelabels/v2"
	"google.golang.org/api/option"
)

// ---------------------------------------------------------------------------
// Test infrastructure
// ---------------------------------------------------------------------------

var (
	parentRe = regexp.MustCompile(`'([^']+)' in parents`)
	nameRe   = regexp.MustCompile(`name = '([^']+)'`)
)

// fakeDrive emulates the handful of Drive v3 and Drive Labels v2
// endpoints the client touches, with deterministic pagination.
type fakeDrive struct {
	mu sync.Mutex

	// children maps parent ID to child files, in listing order.
	children map[string][]*drive.File

	// schema is returned by the labels list endpoint.
	schema []*drivelabels.GoogleAppsDriveLabelsV2Label

	// selections is the applied-label state: file → label → field → choices.
	selections map[string]map[string]map[string][]string

	pageSize   int
	lookupHits int // folder-lookup list calls
	listHits   int // children-listing list calls
	failLabels bool
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		children:   map[string][]*drive.File{},
		selections: map[string]map[string]map[string][]string{},
		pageSize:   2,
	}
}

var fileEndpointRe = regexp.MustCompile(`^/files/([^/]+)/(listLabels|modifyLabels)$`)

func (f *fakeDrive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/files":
		f.handleList(w, r)
	case r.URL.Path == "/v2/labels":
		f.handleSchema(w, r)
	case fileEndpointRe.MatchString(r.URL.Path):
		m := fileEndpointRe.FindStringSubmatch(r.URL.Path)
		if m[2] == "listLabels" {
			f.handleListLabels(w, m[1])
		} else {
			f.handleModifyLabels(w, r, m[1])
		}
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeDrive) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	pm := parentRe.FindStringSubmatch(q)
	if pm == nil {
		http.Error(w, "missing parent in query", http.StatusBadRequest)
		return
	}
	parent := pm[1]

	if nm := nameRe.FindStringSubmatch(q); nm != nil {
		// Folder lookup: exact name match among folder children.
		f.lookupHits++
		var matches []*drive.File
		for _, child := range f.children[parent] {
			if child.MimeType == folderMIME && child.Name == nm[1] {
				matches = append(matches, child)
			}
		}
		writeJSON(w, &drive.FileList{Files: matches})
		return
	}

	// Children listing, paged.
	f.listHits++
	all := f.children[parent]
	offset := 0
	if tok := r.URL.Query().Get("pageToken"); tok != "" {
		offset, _ = strconv.Atoi(tok)
	}
	end := offset + f.pageSize
	if end > len(all) {
		end = len(all)
	}
	res := &drive.FileList{Files: all[offset:end]}
	if end < len(all) {
		res.NextPageToken = strconv.Itoa(end)
	}
	writeJSON(w, res)
}

func (f *fakeDrive) handleSchema(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if tok := r.URL.Query().Get("pageToken"); tok != "" {
		offset, _ = strconv.Atoi(tok)
	}
	end := offset + f.pageSize
	if end > len(f.schema) {
		end = len(f.schema)
	}
	res := &drivelabels.GoogleAppsDriveLabelsV2ListLabelsResponse{
		Labels: f.schema[offset:end],
	}
	if end < len(f.schema) {
		res.NextPageToken = strconv.Itoa(end)
	}
	writeJSON(w, res)
}

func (f *fakeDrive) handleListLabels(w http.ResponseWriter, fileID string) {
	if f.failLabels {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	var labels []*drive.Label
	for labelID, fields := range f.selections[fileID] {
		l := &drive.Label{Id: labelID, Fields: map[string]drive.LabelField{}}
		for fieldID, choices := range fields {
			l.Fields[fieldID] = drive.LabelField{Id: fieldID, Selection: choices, ValueType: "selection"}
		}
		labels = append(labels, l)
	}
	writeJSON(w, &drive.LabelList{Labels: labels})
}

func (f *fakeDrive) handleModifyLabels(w http.ResponseWriter, r *http.Request, fileID string) {
	var req drive.ModifyLabelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, lm := range req.LabelModifications {
		if f.selections[fileID] == nil {
			f.selections[fileID] = map[string]map[string][]string{}
		}
		if f.selections[fileID][lm.LabelId] == nil {
			f.selections[fileID][lm.LabelId] = map[string][]string{}
		}
		for _, fm := range lm.FieldModifications {
			// Set semantics: the new value set replaces the old one.
			f.selections[fileID][lm.LabelId][fm.FieldId] = fm.SetSelectionValues
		}
	}
	writeJSON(w, &drive.ModifyLabelsResponse{})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func folder(id, name string) *drive.File {
	return &drive.File{Id: id, Name: name, MimeType: folderMIME}
}

func newTestClient(t *testing.T, fake *fakeDrive) *Client {
	t.Helper()
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	c, err := New(context.Background(), "drive-root", 2,
		option.WithoutAuthentication(),
		option.WithEndpoint(ts.URL))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// Folder path resolution
// ---------------------------------------------------------------------------

func TestResolvePath_EmptyPathIsRoot(t *testing.T) {
	fake := newFakeDrive()
	c := newTestClient(t, fake)

	for _, path := range []string{"", "/", "///"} {
		got, err := c.ResolvePath(path)
		if err != nil {
			t.Fatalf("ResolvePath(%q) returned error: %v", path, err)
		}
		if got != "drive-root" {
			t.Errorf("ResolvePath(%q) = %q, want drive-root", path, got)
		}
	}
	if fake.lookupHits != 0 {
		t.Errorf("empty paths performed %d lookups, want 0", fake.lookupHits)
	}
}

func TestResolvePath_WalksSegments(t *testing.T) {
	fake := newFakeDrive()
	fake.children["drive-root"] = []*drive.File{folder("idA", "A")}
	fake.children["idA"] = []*drive.File{folder("idB", "B")}
	fake.children["idB"] = []*drive.File{folder("idC", "C")}
	c := newTestClient(t, fake)

	got, err := c.ResolvePath("A/B/C")
	if err != nil {
		t.Fatalf("ResolvePath() returned error: %v", err)
	}
	if got != "idC" {
		t.Errorf("ResolvePath(A/B/C) = %q, want idC", got)
	}

	// Doubled and trailing slashes change nothing.
	got2, err := c.ResolvePath("A//B/C/")
	if err != nil {
		t.Fatalf("ResolvePath() returned error: %v", err)
	}
	if got2 != "idC" {
		t.Errorf("ResolvePath(A//B/C/) = %q, want idC", got2)
	}
}

func TestResolvePath_AssociativeOverSegments(t *testing.T) {
	fake := newFakeDrive()
	fake.children["drive-root"] = []*drive.File{folder("idA", "A")}
	fake.children["idA"] = []*drive.File{folder("idB", "B")}
	fake.children["idB"] = []*drive.File{folder("idC", "C")}
	c := newTestClient(t, fake)

	full, err := c.ResolvePath("A/B/C")
	if err != nil {
		t.Fatalf("ResolvePath(A/B/C) returned error: %v", err)
	}

	step, err := c.ResolvePath("A")
	if err != nil {
		t.Fatalf("ResolvePath(A) returned error: %v", err)
	}
	step, err = c.childFolderID(step, "B")
	if err != nil {
		t.Fatalf("childFolderID(B) returned error: %v", err)
	}
	step, err = c.childFolderID(step, "C")
	if err != nil {
		t.Fatalf("childFolderID(C) returned error: %v", err)
	}

	if full != step {
		t.Errorf("segment-wise resolution = %q, full path = %q, want equal", step, full)
	}
}

func TestResolvePath_SegmentNotFound(t *testing.T) {
	fake := newFakeDrive()
	fake.children["drive-root"] = []*drive.File{folder("idA", "A")}
	c := newTestClient(t, fake)

	_, err := c.ResolvePath("A/Missing")
	var nf *SegmentNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("ResolvePath() error = %v, want *SegmentNotFoundError", err)
	}
	if nf.Segment != "Missing" || nf.ParentID != "idA" {
		t.Errorf("SegmentNotFoundError = %+v, want segment Missing under idA", nf)
	}
}

func TestResolvePath_CaseSensitiveSegments(t *testing.T) {
	fake := newFakeDrive()
	fake.children["drive-root"] = []*drive.File{folder("idA", "Reports")}
	c := newTestClient(t, fake)

	_, err := c.ResolvePath("reports")
	var nf *SegmentNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("ResolvePath(reports) error = %v, want *SegmentNotFoundError (matching is case-sensitive)", err)
	}
}

// Duplicate sibling names resolve to the first listed match. This pins
// the documented behavior; it is not a uniqueness guarantee.
func TestResolvePath_DuplicateNamesFirstMatchWins(t *testing.T) {
	fake := newFakeDrive()
	fake.children["drive-root"] = []*drive.File{
		folder("dup1", "Reports"),
		folder("dup2", "Reports"),
	}
	c := newTestClient(t, fake)

	got, err := c.ResolvePath("Reports")
	if err != nil {
		t.Fatalf("ResolvePath() returned error: %v", err)
	}
	if got != "dup1" {
		t.Errorf("ResolvePath(Reports) = %q, want the first listed match dup1", got)
	}
}

// ---------------------------------------------------------------------------
// File listing
// ---------------------------------------------------------------------------

func TestListChildren_PagesUntilExhausted(t *testing.T) {
	fake := newFakeDrive()
	fake.children["folderX"] = []*drive.File{
		{Id: "f1", Name: "one", MimeType: "application/pdf", Size: 10},
		{Id: "f2", Name: "two", MimeType: "application/pdf"},
		{Id: "f3", Name: "three", MimeType: "application/pdf"},
		{Id: "f4", Name: "four", MimeType: "application/pdf", Owners: []*drive.User{{DisplayName: "Ada"}}},
		{Id: "f5", Name: "five", MimeType: "application/pdf"},
	}
	c := newTestClient(t, fake)

	got, err := c.ListChildren("folderX")
	if err != nil {
		t.Fatalf("ListChildren() returned error: %v", err)
	}

	if len(got) != 5 {
		t.Fatalf("ListChildren() returned %d records, want 5", len(got))
	}
	if fake.listHits != 3 {
		t.Errorf("listing used %d page calls, want 3", fake.listHits)
	}
	for i, want := range []string{"f1", "f2", "f3", "f4", "f5"} {
		if got[i].ID != want {
			t.Errorf("record %d = %q, want %q (server order must be preserved)", i, got[i].ID, want)
		}
	}
	if got[0].Size != 10 {
		t.Errorf("record 0 size = %d, want 10", got[0].Size)
	}
	if len(got[3].Owners) != 1 || got[3].Owners[0].DisplayName != "Ada" {
		t.Errorf("record 3 owners = %v, want [Ada]", got[3].Owners)
	}
}

func TestListChildren_EmptyFolder(t *testing.T) {
	fake := newFakeDrive()
	c := newTestClient(t, fake)

	got, err := c.ListChildren("empty")
	if err != nil {
		t.Fatalf("ListChildren() returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListChildren() returned %d records, want 0", len(got))
	}
}

// ---------------------------------------------------------------------------
// Label schema and label mutation
// ---------------------------------------------------------------------------

func TestListLabelSchema_PagesUntilExhausted(t *testing.T) {
	fake := newFakeDrive()
	fake.schema = []*drivelabels.GoogleAppsDriveLabelsV2Label{
		{Id: "L1"}, {Id: "L2"}, {Id: "L3"},
	}
	c := newTestClient(t, fake)

	got, err := c.ListLabelSchema()
	if err != nil {
		t.Fatalf("ListLabelSchema() returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListLabelSchema() returned %d labels, want 3", len(got))
	}
}

func TestSetSelection_IdempotentAndReplacing(t *testing.T) {
	fake := newFakeDrive()
	c := newTestClient(t, fake)

	readBack := func() []string {
		t.Helper()
		labels, err := c.FileLabels("file1")
		if err != nil {
			t.Fatalf("FileLabels() returned error: %v", err)
		}
		if len(labels) != 1 {
			t.Fatalf("FileLabels() returned %d labels, want 1", len(labels))
		}
		return labels[0].Fields["F1"].Selection
	}

	// Applying the same choice twice leaves the same single-value set.
	for i := 0; i < 2; i++ {
		if err := c.SetSelection("file1", "L1", "F1", "C1"); err != nil {
			t.Fatalf("SetSelection() attempt %d returned error: %v", i+1, err)
		}
	}
	if got := readBack(); len(got) != 1 || got[0] != "C1" {
		t.Errorf("after applying C1 twice, selection = %v, want [C1]", got)
	}

	// A different choice replaces the prior selection entirely.
	if err := c.SetSelection("file1", "L1", "F1", "C2"); err != nil {
		t.Fatalf("SetSelection(C2) returned error: %v", err)
	}
	if got := readBack(); len(got) != 1 || got[0] != "C2" {
		t.Errorf("after applying C2, selection = %v, want [C2] only", got)
	}
}

func TestFileLabels_PropagatesErrors(t *testing.T) {
	fake := newFakeDrive()
	fake.failLabels = true
	c := newTestClient(t, fake)

	if _, err := c.FileLabels("file1"); err == nil {
		t.Fatal("FileLabels() returned nil error, want remote failure to propagate")
	}
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNew_RequiresDriveID(t *testing.T) {
	_, err := New(context.Background(), "", 100, option.WithoutAuthentication())
	if err == nil {
		t.Fatal("New() with empty drive ID returned nil error")
	}
}

func TestEscapeQueryString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "it's", want: `it\'s`},
		{in: `back\slash`, want: `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeQueryString(tt.in); got != tt.want {
			t.Errorf("escapeQueryString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package api

import (
	"bytes"
	"encoding/binary"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/intheon/xdf-tagger/internal/logger"
	"github.com/intheon/xdf-tagger/pkg/xdf"
)

const testMetaDoc = `<info><name>Metadata</name><type>Metadata</type><desc><subject><age>29</age></subject></desc></info>`

func writeTestXDF(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString(xdf.Magic)
	content := make([]byte, 4+len(testMetaDoc))
	binary.LittleEndian.PutUint32(content[:4], 9)
	copy(content[4:], testMetaDoc)
	if err := xdf.WriteChunk(&buf, xdf.TagStreamHeader, content); err != nil {
		t.Fatalf("write stream header: %v", err)
	}
	if err := xdf.WriteChunk(&buf, xdf.TagSamples, []byte("sampledata")); err != nil {
		t.Fatalf("write samples: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	dir := t.TempDir()
	writeTestXDF(t, filepath.Join(dir, "rec.xdf"))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not xdf"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	e := echo.New()
	NewServer(dir, logger.Setup(io.Discard, "error", "text")).Register(e)
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListFiles(t *testing.T) {
	t.Parallel()

	rec := get(newTestEcho(t), "/v1/files")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Files []FileEntry `json:"files"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Files) != 1 || resp.Files[0].Name != "rec.xdf" {
		t.Fatalf("files: got %v, want only rec.xdf", resp.Files)
	}
	if resp.Files[0].Size == 0 {
		t.Errorf("file size missing from listing")
	}
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	rec := get(newTestEcho(t), "/v1/metadata?file=rec.xdf")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		File     string            `json:"file"`
		StreamID uint32            `json:"stream_id"`
		Present  bool              `json:"present"`
		Tags     map[string]string `json:"tags"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.File != "rec.xdf" || !resp.Present || resp.StreamID != 9 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Tags["subject.age"] != "29" {
		t.Errorf("tags: got %v, want subject.age=29", resp.Tags)
	}
}

func TestMetadataRequiresFileParam(t *testing.T) {
	t.Parallel()

	rec := get(newTestEcho(t), "/v1/metadata")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestMetadataUnknownFile(t *testing.T) {
	t.Parallel()

	rec := get(newTestEcho(t), "/v1/metadata?file=missing.xdf")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestMetadataPathConfinedToRoot(t *testing.T) {
	t.Parallel()

	rec := get(newTestEcho(t), "/v1/metadata?file=..%2F..%2Fetc%2Fpasswd")
	if rec.Code == http.StatusOK {
		t.Fatalf("path escape served a file outside the root")
	}
}

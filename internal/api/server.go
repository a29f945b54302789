// Package api serves read-only metadata inspection for a directory of
// XDF files over HTTP.
package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/intheon/xdf-tagger/internal/logger"
	"github.com/intheon/xdf-tagger/internal/tagger"
)

// Server exposes the XDF files under a root directory.
type Server struct {
	root string
	log  logger.Logger
}

// NewServer creates a Server rooted at dir.
func NewServer(dir string, log logger.Logger) *Server {
	return &Server{root: dir, log: log}
}

// Register attaches the API routes to e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/files", s.handleListFiles)
	e.GET("/v1/metadata", s.handleMetadata)
}

// FileEntry is one XDF file in the listing.
type FileEntry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

func (s *Server) handleListFiles(c *echo.Context) error {
	ents, err := os.ReadDir(s.root)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err.Error())
	}
	files := make([]FileEntry, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".xdf") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, FileEntry{Name: e.Name(), Size: info.Size()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return writeJSON(c, http.StatusOK, map[string]any{"files": files})
}

func (s *Server) handleMetadata(c *echo.Context) error {
	name := c.QueryParam("file")
	path, err := s.resolve(name)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err.Error())
	}
	info, err := tagger.Inspect(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return writeError(c, http.StatusNotFound, "no such file: "+name)
		}
		s.log.Error("inspect failed", "file", path, "error", err)
		return writeError(c, http.StatusUnprocessableEntity, err.Error())
	}
	info.File = name
	return writeJSON(c, http.StatusOK, info)
}

// resolve maps a request's file name onto a path confined to the root
// directory.
func (s *Server) resolve(name string) (string, error) {
	if name == "" {
		return "", errors.New("file query parameter is required")
	}
	return filepath.Join(s.root, filepath.Clean("/"+name)), nil
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.JSONBlob(status, b)
}

func writeError(c *echo.Context, status int, msg string) error {
	return writeJSON(c, status, map[string]any{"error": msg})
}

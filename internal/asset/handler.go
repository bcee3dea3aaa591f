package asset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/typeid"
)

const maxUploadSize = 10 << 20 // 10MB

var ErrUnsupported = errors.New("only PNG, JPEG and GIF images are supported")

// Asset is a stored image.
type Asset struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Name   string `json:"name,omitempty"`
}

// Element returns an image element template at (x, y) sized to the image's
// natural dimensions, ready for AddElement.
func (a Asset) Element(x, y float64) document.Element {
	return document.Element{
		Type:     document.ElementTypeImage,
		X:        x,
		Y:        y,
		Width:    float64(a.Width),
		Height:   float64(a.Height),
		ImageURL: a.URL,
		Style:    document.DefaultStyle(document.ElementTypeImage),
	}
}

type uploadResponse struct {
	Asset
	Element document.Element `json:"element"`
}

// Handler stores uploaded images on disk and serves them under /assets/.
type Handler struct {
	dir string
}

// NewHandler creates a handler that stores files in dir.
func NewHandler(dir string) *Handler {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Error("create asset dir", "error", err, "dir", dir)
	}
	return &Handler{dir: dir}
}

// Save checks that r holds a supported image and writes it unchanged.
func (h *Handler) Save(r io.Reader, name string) (*Asset, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxUploadSize {
		return nil, fmt.Errorf("file too large (max %d bytes)", maxUploadSize)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupported
	}

	id := typeid.NewAssetID()
	filename := id + "." + format
	if err := os.WriteFile(filepath.Join(h.dir, filename), data, 0o644); err != nil {
		return nil, fmt.Errorf("write asset: %w", err)
	}

	return &Asset{
		ID:     id,
		URL:    "/assets/" + filename,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		Name:   name,
	}, nil
}

// Upload handles POST /api/assets (multipart form with a "file" field).
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	a, err := h.Save(file, header.Filename)
	if errors.Is(err, ErrUnsupported) {
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}
	if err != nil {
		slog.Error("save asset", "error", err)
		http.Error(w, "failed to save file", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(uploadResponse{Asset: *a, Element: a.Element(0, 0)})
}

// Serve returns an http.Handler that serves stored files with caching headers.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix("/assets/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Asset IDs are unique, so files are immutable
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

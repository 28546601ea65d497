package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"geotodo/pkg/claims"
)

const maxImageSize = 10 << 20 // 10 MiB

// ImageHandler stores uploaded photos on local disk and hands back the URL
// they will be served under.
type ImageHandler struct {
	Dir     string
	BaseURL string
	Logger  *slog.Logger
}

func NewImageHandler(dir, baseURL string, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		Dir:     dir,
		BaseURL: baseURL,
		Logger:  logger,
	}
}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		h.Logger.Error("read upload", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	key := uuid.NewString() + filepath.Ext(header.Filename)

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		h.Logger.Error("create upload dir", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	}
	if err := os.WriteFile(filepath.Join(h.Dir, key), data, 0o644); err != nil {
		h.Logger.Error("store upload", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	ok := writeData(w, h.Logger, map[string]any{
		"url":         h.BaseURL + "/uploads/" + key,
		"key":         key,
		"size":        len(data),
		"contentType": contentType,
	}, nil)
	if ok {
		h.Logger.Info("image uploaded", "user", c.Subject, "key", key)
	}
}

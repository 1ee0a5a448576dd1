package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// maxUploadSize caps avatar uploads at 5 MiB.
const maxUploadSize = 5 << 20

// Upload handles POST /api/upload: stores an avatar under a fresh random
// name and returns its public URL.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	name := "avatar-" + uuid.NewString() + ext

	err = os.MkdirAll(h.uploadsDir, 0o755)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dst, err := os.Create(filepath.Join(h.uploadsDir, name))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	defer dst.Close()

	_, err = io.Copy(dst, file)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": "/uploads/" + name})
}

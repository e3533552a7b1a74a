package api

import (
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/saborlab/sabor/internal/images"
)

const maxImageBytes = 20 << 20 // 20 MB

// ImageHandler serves and accepts recipe illustration files.
type ImageHandler struct {
	dir *images.Dir
}

// NewImageHandler creates a handler over the image directory.
func NewImageHandler(dir *images.Dir) *ImageHandler {
	return &ImageHandler{dir: dir}
}

// ServeFile handles GET /images/{filename}.
func (h *ImageHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	abs, err := h.dir.Path(chi.URLParam(r, "filename"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}

// Upload handles POST /api/images (multipart/form-data, field "file").
// Storage is content-addressed, so uploading the same bytes twice returns the
// same URL.
//
//	@Summary		Upload a recipe illustration
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Image file"
//	@Success		201		{object}	ImageUploadResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/images [post]
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read upload"))
		return
	}
	url, err := h.dir.WriteImage(r.Context(), header.Header.Get("Content-Type"), data)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to store image"))
		return
	}
	writeJSON(w, http.StatusCreated, ImageUploadResponse{URL: url})
}

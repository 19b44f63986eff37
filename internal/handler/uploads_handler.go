package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/service"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

// multipart overhead allowed on top of the file size limit
const multipartSlack = 64 << 10

// Upload stores a receipt or payment proof sent as multipart form fields
// "file" and "kind".
func (h *HTTPHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartSlack)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, h.log, errors.InvalidInput("file", "file exceeds "+strconv.FormatInt(h.maxUploadBytes, 10)+" bytes"))
			return
		}
		writeError(w, h.log, errors.InvalidInput("file", "file is required"))
		return
	}
	defer file.Close()

	res, err := h.uploads.UploadProof(r.Context(), &service.UploadRequest{
		OwnerID: uc.UserID,
		Kind:    r.FormValue("kind"),
		Size:    header.Size,
		Body:    file,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Activity returns the newest activity entries.
func (h *HTTPHandler) Activity(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.activity.List(r.Context(), repository.ActivityFilter{
		ResourceType: optionalQuery(r, "resource_type"),
		ResourceID:   optionalQuery(r, "resource_id"),
		Limit:        limit,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// BlobReader reads objects back from an in-process blob store.
type BlobReader interface {
	Get(path string) ([]byte, string, bool)
}

// BlobHandler serves objects of an in-process blob store under prefix.
func BlobHandler(blobs BlobReader, prefix string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodGet, http.MethodHead) {
			return
		}
		data, contentType, ok := blobs.Get(strings.TrimPrefix(r.URL.Path, prefix))
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(data)
		}
	})
}

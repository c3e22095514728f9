package httpserver

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidbz/howl/internal/document"
	"github.com/davidbz/howl/internal/observability"
)

const (
	uploadField        = "file"
	multipartOverhead  = 1 << 20
	multipartMemoryCap = 32 << 20
	defaultMaxDocBytes = 10 << 20
)

// DocumentHandler serves the document API.
type DocumentHandler struct {
	docs *document.Service
}

// NewDocumentHandler creates a new document handler (DI constructor).
func NewDocumentHandler(docs *document.Service) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

// HandleUpload stores a multipart upload.
func (h *DocumentHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	maxBytes := h.docs.MaxUploadBytes()
	if maxBytes <= 0 {
		maxBytes = defaultMaxDocBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(min(maxBytes, multipartMemoryCap)); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read file: %v", err))
		return
	}

	contentType := mediaType(header.Header.Get("Content-Type"))
	doc, err := h.docs.Upload(ctx, document.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Content:     content,
	})
	if errors.Is(err, document.ErrUnsupportedType) {
		writeError(w, http.StatusBadRequest, "Unsupported file type: "+contentType)
		return
	}
	if err != nil {
		writeDocumentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// HandleList lists stored documents.
func (h *DocumentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docs.List(r.Context())
	if err != nil {
		writeDocumentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"total":     len(docs),
	})
}

// HandleGet returns one document.
func (h *DocumentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := h.docs.Get(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		writeDocumentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// HandleDelete removes a document.
func (h *DocumentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentID")
	if err := h.docs.Delete(r.Context(), id); err != nil {
		writeDocumentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
		"id":     id,
	})
}

// HandleSummarize summarizes a document.
func (h *DocumentHandler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	summary, err := h.docs.Summarize(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		writeDocumentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleAsk answers the question query parameter about a document.
func (h *DocumentHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	answer, err := h.docs.Ask(r.Context(), chi.URLParam(r, "documentID"), r.URL.Query().Get("question"))
	if err != nil {
		writeDocumentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func writeDocumentError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, document.ErrNotFound):
		writeError(w, http.StatusNotFound, "Document not found")
	case errors.Is(err, document.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, document.ErrInvalidInput), errors.Is(err, document.ErrUnsupportedType):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		observability.FromContext(r.Context()).Error("document request failed", observability.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// mediaType strips parameters from a Content-Type value.
func mediaType(contentType string) string {
	parsed, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}
	return parsed
}

package handlers

import (
	"net/http"

	"scholarhub/internal/app"
	"scholarhub/internal/domain/document"
	"scholarhub/internal/http/middleware"
	"scholarhub/internal/http/response"
)

type DocumentHandler struct {
	documents *app.DocumentService
}

func NewDocumentHandler(documents *app.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

type uploadDocumentRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
}

func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req uploadDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.documents.Upload(r.Context(), ownerID, app.DocumentUpload{
		Name:     req.Name,
		Type:     document.Type(req.Type),
		URL:      req.URL,
		MimeType: req.MimeType,
		FileSize: req.FileSize,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

type verifyDocumentRequest struct {
	Status   string `json:"status"`
	Comments string `json:"comments"`
}

func (h *DocumentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	documentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req verifyDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.documents.Review(r.Context(), documentID, document.Status(req.Status), req.Comments, actorID, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	documentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	doc, err := h.documents.Get(r.Context(), documentID, actorID, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.documents.ListByOwner(r.Context(), ownerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	documentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.documents.Delete(r.Context(), documentID, actorID, role); err != nil {
		response.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

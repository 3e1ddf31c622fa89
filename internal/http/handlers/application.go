package handlers

import (
	"net/http"
	"strings"
	"time"

	"scholarhub/internal/app"
	"scholarhub/internal/common"
	"scholarhub/internal/domain/application"
	"scholarhub/internal/domain/document"
	"scholarhub/internal/domain/user"
	"scholarhub/internal/http/middleware"
	"scholarhub/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type submitRequest struct {
	ScholarshipID string                     `json:"scholarship_id"`
	Draft         bool                       `json:"draft"`
	CustomAnswers []application.CustomAnswer `json:"custom_answers"`
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.ScholarshipID) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"scholarship_id": "scholarship_id is required"}))
		return
	}
	scholarshipID, err := common.ParseUUID(req.ScholarshipID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"scholarship_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil {
		key := "apply:" + scholarshipID.String() + ":" + studentID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	var created *application.Application
	if req.Draft {
		created, err = h.applications.CreateDraft(r.Context(), studentID, scholarshipID, req.CustomAnswers)
	} else {
		created, err = h.applications.Submit(r.Context(), studentID, scholarshipID, req.CustomAnswers)
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	switch role {
	case user.RoleStudent:
		items, err := h.applications.ListByStudent(r.Context(), actorID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
	case user.RoleProvider:
		items, err := h.applications.ListByProvider(r.Context(), actorID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
	case user.RoleAdmin:
		limit, offset := paginationFromQuery(r, 50)
		items, err := h.applications.ListAll(r.Context(), limit, offset)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
	default:
		response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
	}
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), applicationID, actorID, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type updateApplicationRequest struct {
	CustomAnswers []application.CustomAnswer `json:"custom_answers"`
}

func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.Update(r.Context(), applicationID, studentID, req.CustomAnswers)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type updateStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewError(common.CodeValidation, "status is required", nil))
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), applicationID, application.Status(req.Status), req.Comment, actorID, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type attachDocumentRequest struct {
	DocumentType string `json:"document_type"`
	DocumentID   string `json:"document_id"`
}

func (h *ApplicationHandler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req attachDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	var documentID common.UUID
	if req.DocumentID != "" {
		documentID, err = common.ParseUUID(req.DocumentID)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid request", map[string]string{"document_id": "invalid uuid"}))
			return
		}
	}
	updated, err := h.applications.AttachDocument(r.Context(), applicationID, studentID, document.Type(req.DocumentType), documentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type commentRequest struct {
	Comment string `json:"comment"`
}

func (h *ApplicationHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.AddComment(r.Context(), applicationID, req.Comment, actorID, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) ListByScholarship(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	scholarshipID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListByScholarship(r.Context(), scholarshipID, actorID, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

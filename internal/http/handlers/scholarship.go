package handlers

import (
	"net/http"
	"time"

	"scholarhub/internal/app"
	"scholarhub/internal/common"
	"scholarhub/internal/domain/scholarship"
	"scholarhub/internal/http/middleware"
	"scholarhub/internal/http/response"
)

type ScholarshipHandler struct {
	scholarships *app.ScholarshipService
}

func NewScholarshipHandler(scholarships *app.ScholarshipService) *ScholarshipHandler {
	return &ScholarshipHandler{scholarships: scholarships}
}

type scholarshipRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Amount            float64  `json:"amount"`
	Deadline          string   `json:"deadline"`
	Status            string   `json:"status"`
	MinGPA            float64  `json:"min_gpa"`
	MaxIncome         *float64 `json:"max_income"`
	MinAge            *int     `json:"min_age"`
	MaxAge            *int     `json:"max_age"`
	AllowedCourses    []string `json:"allowed_courses"`
	Gender            string   `json:"gender"`
	RequiredDocuments []string `json:"required_documents"`
}

func (req scholarshipRequest) toScholarship(providerID common.UUID) (scholarship.Scholarship, error) {
	var deadline time.Time
	if req.Deadline != "" {
		parsed, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			return scholarship.Scholarship{}, common.NewValidationError("invalid deadline", map[string]string{"deadline": "deadline must be RFC3339"})
		}
		deadline = parsed
	}
	return scholarship.Scholarship{
		ProviderID:  providerID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Deadline:    deadline,
		Status:      scholarship.Status(req.Status),
		Criteria: scholarship.Criteria{
			MinGPA:         req.MinGPA,
			MaxIncome:      req.MaxIncome,
			MinAge:         req.MinAge,
			MaxAge:         req.MaxAge,
			AllowedCourses: req.AllowedCourses,
			Gender:         req.Gender,
		},
		RequiredDocuments: req.RequiredDocuments,
	}, nil
}

func (h *ScholarshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req scholarshipRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	sch, err := req.toScholarship(providerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.scholarships.Create(r.Context(), sch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ScholarshipHandler) Update(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	scholarshipID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req scholarshipRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	sch, err := req.toScholarship(providerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	sch.ID = scholarshipID
	updated, err := h.scholarships.Update(r.Context(), sch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ScholarshipHandler) Get(w http.ResponseWriter, r *http.Request) {
	scholarshipID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.scholarships.Get(r.Context(), scholarshipID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *ScholarshipHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationFromQuery(r, 20)
	items, err := h.scholarships.ListActive(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ScholarshipHandler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.scholarships.ListByProvider(r.Context(), providerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ScholarshipHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	scholarshipID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.scholarships.CheckEligibility(r.Context(), scholarshipID, studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

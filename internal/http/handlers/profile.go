package handlers

import (
	"net/http"

	"scholarhub/internal/app"
	"scholarhub/internal/domain/profile"
	"scholarhub/internal/http/middleware"
	"scholarhub/internal/http/response"
)

type ProfileHandler struct {
	profiles *app.ProfileService
}

func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileRequest struct {
	Institution  string   `json:"institution"`
	Course       string   `json:"course"`
	GPA          float64  `json:"gpa"`
	YearOfStudy  int      `json:"year_of_study"`
	AnnualIncome *float64 `json:"annual_income"`
	Currency     string   `json:"currency"`
}

func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	saved, err := h.profiles.UpsertStudent(r.Context(), profile.StudentProfile{
		UserID:       userID,
		Institution:  req.Institution,
		Course:       req.Course,
		GPA:          req.GPA,
		YearOfStudy:  req.YearOfStudy,
		AnnualIncome: req.AnnualIncome,
		Currency:     req.Currency,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, saved)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	item, err := h.profiles.GetStudent(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

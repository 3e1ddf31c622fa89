package handlers

import (
	"net/http"
	"time"

	"scholarhub/internal/app"
	"scholarhub/internal/common"
	"scholarhub/internal/domain/user"
	"scholarhub/internal/http/middleware"
	"scholarhub/internal/http/response"
)

type AuthHandler struct {
	auth    *app.AuthService
	limiter middleware.Limiter
}

func NewAuthHandler(auth *app.AuthService, limiter middleware.Limiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil && !h.limiter.Allow("register:"+middleware.ClientIP(r), 5, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many registration attempts", nil))
		return
	}
	role := user.Role(req.Role)
	if role == "" {
		role = user.RoleStudent
	}
	result, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, result)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil && !h.limiter.Allow("login:"+middleware.ClientIP(r), 10, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many login attempts", nil))
		return
	}
	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

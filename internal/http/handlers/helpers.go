package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"scholarhub/internal/common"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath extracts the path segment at the given index as a UUID, e.g.
// index 1 for /applications/{id} and index 1 for /documents/{id}/verify.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index >= len(parts) {
		return "", common.NewError(common.CodeValidation, "missing id in path", nil)
	}
	parsed, err := common.ParseUUID(parts[index])
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return parsed, nil
}

func paginationFromQuery(r *http.Request, defaultLimit int) (int, int) {
	limit := defaultLimit
	offset := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if value := r.URL.Query().Get("offset"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

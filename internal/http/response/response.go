package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"scholarhub/internal/common"
)

type ErrorCollector interface {
	IncErrors()
}

var collector ErrorCollector

func SetErrorCollector(c ErrorCollector) {
	collector = c
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error translates a typed service error into the HTTP response. Untyped
// errors are reported as internal without leaking their message.
func Error(w http.ResponseWriter, err error) {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		appErr = common.NewError(common.CodeInternal, "internal error", err)
	}
	status := statusFor(appErr.Code)
	if status >= http.StatusInternalServerError && collector != nil {
		collector.IncErrors()
	}
	JSON(w, status, errorBody{Error: errorPayload{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details}})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict, common.CodeInvalidTransition:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

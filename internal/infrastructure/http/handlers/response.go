package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps domain sentinel errors to status and code. Unknown
// errors are logged in full and returned sanitized as 500.
func writeDomainErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domerrors.ErrValidation):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, domerrors.ErrEmailMismatch):
		writeErr(w, http.StatusBadRequest, ErrCodeEmailMismatch, err.Error())
	case errors.Is(err, domerrors.ErrExpired):
		writeErr(w, http.StatusBadRequest, ErrCodeInvitationExpired, err.Error())
	case errors.Is(err, domerrors.ErrNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domerrors.ErrAlreadyMember):
		writeErr(w, http.StatusConflict, ErrCodeAlreadyMember, err.Error())
	case errors.Is(err, domerrors.ErrConflict):
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domerrors.ErrInvalidState):
		writeErr(w, http.StatusConflict, ErrCodeInvalidState, err.Error())
	case errors.Is(err, domerrors.ErrAllocationFailed):
		writeErr(w, http.StatusInternalServerError, ErrCodeAllocationFailed, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

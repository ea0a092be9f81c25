package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

func TestWriteDomainErrStatusAndCode(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domerrors.ErrValidation, http.StatusBadRequest, ErrCodeInvalidRequest},
		{domerrors.ErrExpired, http.StatusBadRequest, ErrCodeInvitationExpired},
		{domerrors.ErrEmailMismatch, http.StatusBadRequest, ErrCodeEmailMismatch},
		{domerrors.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{domerrors.ErrAlreadyMember, http.StatusConflict, ErrCodeAlreadyMember},
		{domerrors.ErrConflict, http.StatusConflict, ErrCodeConflict},
		{domerrors.ErrInvalidState, http.StatusConflict, ErrCodeInvalidState},
		{domerrors.ErrAllocationFailed, http.StatusInternalServerError, ErrCodeAllocationFailed},
		{errors.New("pg: connection refused"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeDomainErr(rec, zerolog.Nop(), tc.err)
		if rec.Code != tc.wantStatus {
			t.Errorf("%v: status = %d, want %d", tc.err, rec.Code, tc.wantStatus)
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%v: decode body: %v", tc.err, err)
		}
		if body["code"] != tc.wantCode {
			t.Errorf("%v: code = %q, want %q", tc.err, body["code"], tc.wantCode)
		}
	}
}

func TestWriteDomainErrHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainErr(rec, zerolog.Nop(), errors.New("pq: password authentication failed for user trackd"))
	if body := rec.Body.String(); strings.Contains(body, "password") {
		t.Errorf("internal error detail leaked to client: %s", body)
	}
}

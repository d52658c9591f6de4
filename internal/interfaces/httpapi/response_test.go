package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/matchpulse/trend-api/internal/usecase"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeSuccess(t.Context(), rec, http.StatusOK, map[string]int{"count": 3})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}

	var envelope testEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.APIVersion != googleAPIVersion || envelope.Error != nil {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestWriteErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
		reason string
		label  string
	}{
		{fmt.Errorf("%w: bad", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
		{fmt.Errorf("%w: gone", usecase.ErrNotFound), http.StatusNotFound, "notFound", "NOT_FOUND"},
		{fmt.Errorf("%w: who", usecase.ErrUnauthorized), http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
		{fmt.Errorf("%w: down", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internalError", "INTERNAL"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(t.Context(), rec, tc.err)

		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}

		var body struct {
			Error googleErrorBody `json:"error"`
		}
		if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if body.Error.Code != tc.status || body.Error.Status != tc.label {
			t.Fatalf("%v: unexpected error body %+v", tc.err, body.Error)
		}
		if len(body.Error.Errors) != 1 || body.Error.Errors[0].Reason != tc.reason || body.Error.Errors[0].Domain != errorDomain {
			t.Fatalf("%v: unexpected error items %+v", tc.err, body.Error.Errors)
		}
	}
}

func TestWriteInternalErrorHidesDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeInternalError(t.Context(), rec)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body struct {
		Error googleErrorBody `json:"error"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if body.Error.Message != "internal server error" || body.Error.Status != "INTERNAL" {
		t.Fatalf("unexpected error body: %+v", body.Error)
	}
}

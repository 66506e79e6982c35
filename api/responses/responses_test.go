package responses_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/harikrishnagadicharla/unicart/api/responses"
	pkgerrors "github.com/harikrishnagadicharla/unicart/pkg/errors"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
)

func TestWriteSuccessSerializesPayloadAsIs(t *testing.T) {
	rec := httptest.NewRecorder()
	responses.WriteSuccess(rec, map[string]any{"success": true, "count": 3})

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true, got %v", body["success"])
	}
	if body["count"] != float64(3) {
		t.Fatalf("expected count=3, got %v", body["count"])
	}
}

func TestWriteErrorMapsCodeToStatus(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive"), 400, "VALIDATION_ERROR"},
		{"unauthorized", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"), 401, "UNAUTHORIZED"},
		{"not found", pkgerrors.New(pkgerrors.CodeNotFound, "product not found"), 404, "NOT_FOUND"},
		{"email taken", pkgerrors.New(pkgerrors.CodeEmailTaken, "email already registered"), 409, "EMAIL_TAKEN"},
		{"untyped", context.DeadlineExceeded, 500, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			responses.WriteError(context.Background(), nil, rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			var envelope types.ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if envelope.Success {
				t.Fatal("expected success=false")
			}
			if envelope.Error.Code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, envelope.Error.Code)
			}
		})
	}
}

func TestWriteErrorHidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	responses.WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "dsn leaked here"))

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Message == "dsn leaked here" {
		t.Fatal("internal message must not reach the client")
	}
}

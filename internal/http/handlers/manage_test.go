package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NileMind-Team/pahray-sub001/internal/config"
	"github.com/NileMind-Team/pahray-sub001/internal/upstream"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func withChiParam(r *http.Request, key, value string) *http.Request {
	rc := chi.NewRouteContext()
	rc.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rc))
}

func newManageHandler(backendURL string) *Handler {
	return &Handler{
		Backend: upstream.New(backendURL, "", 0, zap.NewNop()),
		Logger:  zap.NewNop(),
		Config:  config.Config{TimeOffsetHours: 0},
	}
}

func envelopeServer(t *testing.T, data any, capture *struct {
	Method string
	Path   string
	Body   string
}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			body, _ := io.ReadAll(r.Body)
			capture.Method, capture.Path, capture.Body = r.Method, r.URL.Path, string(body)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	}))
}

func TestBranchSaveValidation(t *testing.T) {
	h := newManageHandler("http://backend.invalid")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/branches", strings.NewReader(`{"name":"  "}`))
	rec := httptest.NewRecorder()
	h.BranchSave(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "VALIDATION_ERROR") {
		t.Fatalf("expected validation error, got %s", rec.Body.String())
	}
}

func TestBranchSavePassesThrough(t *testing.T) {
	var capture struct {
		Method string
		Path   string
		Body   string
	}
	server := envelopeServer(t, map[string]any{"id": "b-1", "name": "فرع المعادي", "active": true}, &capture)
	defer server.Close()

	h := newManageHandler(server.URL)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/branches/b-1", strings.NewReader(`{"name":"فرع المعادي","active":true}`))
	req = withChiParam(req, "branchId", "b-1")
	rec := httptest.NewRecorder()
	h.BranchSave(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if capture.Method != http.MethodPut || capture.Path != "/api/branches/b-1" {
		t.Fatalf("backend saw %s %s", capture.Method, capture.Path)
	}
	if !strings.Contains(capture.Body, "فرع المعادي") {
		t.Fatalf("payload not forwarded: %s", capture.Body)
	}
}

func TestDeliveryAreaSaveRejectsNegativeFee(t *testing.T) {
	h := newManageHandler("http://backend.invalid")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/delivery-areas", strings.NewReader(`{"name":"المعادي","fee":-5}`))
	rec := httptest.NewRecorder()
	h.DeliveryAreaSave(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestShiftSaveRejectsBadTimes(t *testing.T) {
	h := newManageHandler("http://backend.invalid")

	cases := []struct {
		name string
		body string
	}{
		{name: "garbage open time", body: `{"name":"صباحي","opensAt":"soon","closesAt":"17:00"}`},
		{name: "missing close time", body: `{"name":"صباحي","opensAt":"09:00"}`},
		{name: "out of range hour", body: `{"name":"صباحي","opensAt":"25:00","closesAt":"17:00"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/shifts", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.ShiftSave(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestShiftsListAddsDisplayTimes(t *testing.T) {
	server := envelopeServer(t, []map[string]any{
		{"id": "s-1", "name": "مسائي", "opensAt": "16:00", "closesAt": "23:30", "isEnabled": true},
	}, nil)
	defer server.Close()

	h := newManageHandler(server.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/shifts", nil)
	rec := httptest.NewRecorder()
	h.ShiftsList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"opensAtDisplay":"٠٤:٠٠ م"`) {
		t.Fatalf("expected localized open time, got %s", body)
	}
	if !strings.Contains(body, `"closesAtDisplay":"١١:٣٠ م"`) {
		t.Fatalf("expected localized close time, got %s", body)
	}
}

func TestBranchesListUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	h := newManageHandler(server.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/branches", nil)
	rec := httptest.NewRecorder()
	h.BranchesList(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "UPSTREAM_ERROR") {
		t.Fatalf("expected UPSTREAM_ERROR, got %s", rec.Body.String())
	}
}

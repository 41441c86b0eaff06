package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/model"

	"go.uber.org/zap"
)

func branchFixture(id string) model.Branch {
	return model.Branch{ID: id, Name: "فرع وسط البلد", Active: true}
}

func TestListOrdersSendsDateRange(t *testing.T) {
	var gotQuery map[string]string
	var gotAPIKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = map[string]string{
			"startDate": r.URL.Query().Get("startDate"),
			"endDate":   r.URL.Query().Get("endDate"),
		}
		gotAPIKey = r.Header.Get("Api-Key")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": "o-1", "orderNumber": "1001", "totalWithFee": 120.5, "deliveryFee": map[string]any{"fee": 15.0, "areaName": "المعادي"}},
				{"id": "o-2", "orderNumber": "1002"},
			},
		})
	}))
	defer server.Close()

	client := New(server.URL, "secret-key", 0, zap.NewNop())
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	orders, err := client.ListOrders(context.Background(), start, end)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if gotQuery["startDate"] != "2026-02-01" || gotQuery["endDate"] != "2026-02-28" {
		t.Fatalf("unexpected query %+v", gotQuery)
	}
	if gotAPIKey != "secret-key" {
		t.Fatalf("expected api key header, got %q", gotAPIKey)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].DeliveryFee == nil || orders[0].DeliveryFee.Fee != 15 {
		t.Fatalf("delivery fee not decoded: %+v", orders[0])
	}
	if orders[1].TotalWithFee != nil {
		t.Fatalf("absent total must stay nil, got %v", *orders[1].TotalWithFee)
	}
}

func TestErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "NOT_FOUND",
			"message": "Order not found",
		})
	}))
	defer server.Close()

	client := New(server.URL, "", 0, zap.NewNop())

	_, err := client.OrderByID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	var upErr *Error
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if upErr.Status != http.StatusNotFound || upErr.Code != "NOT_FOUND" {
		t.Fatalf("unexpected error %+v", upErr)
	}
}

func TestSaveBranchCreateVersusUpdate(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": "b-1", "name": "فرع وسط البلد", "active": true},
		})
	}))
	defer server.Close()

	client := New(server.URL, "", 0, zap.NewNop())

	if _, err := client.SaveBranch(context.Background(), branchFixture("")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/branches" {
		t.Fatalf("create used %s %s", gotMethod, gotPath)
	}

	if _, err := client.SaveBranch(context.Background(), branchFixture("b-1")); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/branches/b-1" {
		t.Fatalf("update used %s %s", gotMethod, gotPath)
	}
}

func TestNewAppliesConfiguredTimeout(t *testing.T) {
	client := New("http://backend.local", "", 5*time.Second, zap.NewNop())
	if client.httpc.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v, want 5s", client.httpc.Timeout)
	}

	fallback := New("http://backend.local", "", 0, zap.NewNop())
	if fallback.httpc.Timeout != 20*time.Second {
		t.Fatalf("default timeout = %v, want 20s", fallback.httpc.Timeout)
	}
}

package directory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestHTTPDirectoryGetAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/api/v1/accounts/ACC-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"ACC-1","balance":"150.25","currency":"USD","status":"ACTIVE"}`))
	}))
	defer srv.Close()

	dir := NewHTTPDirectory(srv.URL, 2*time.Second)
	a, err := dir.GetAccount(context.Background(), "ACC-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if a.ID != "ACC-1" || a.Status != "ACTIVE" {
		t.Fatalf("unexpected account %+v", a)
	}
	if !a.Balance.Equal(decimal.RequireFromString("150.25")) {
		t.Fatalf("unexpected balance %s", a.Balance)
	}
}

func TestHTTPDirectoryUpdateAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method %s", r.Method)
		}
		var update Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			t.Errorf("decode update: %v", err)
		}
		if !update.Balance.Equal(decimal.RequireFromString("75.00")) {
			t.Errorf("unexpected balance %s", update.Balance)
		}
		if update.Status != "ACTIVE" {
			t.Errorf("unexpected status %q", update.Status)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"ACC-1","balance":"75.00","currency":"USD","status":"ACTIVE"}`))
	}))
	defer srv.Close()

	dir := NewHTTPDirectory(srv.URL, 2*time.Second)
	a, err := dir.UpdateAccount(context.Background(), "ACC-1", Update{
		Balance: decimal.RequireFromString("75.00"),
		Status:  "ACTIVE",
	})
	if err != nil {
		t.Fatalf("update account: %v", err)
	}
	if !a.Balance.Equal(decimal.RequireFromString("75.00")) {
		t.Fatalf("unexpected balance %s", a.Balance)
	}
}

func TestHTTPDirectoryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dir := NewHTTPDirectory(srv.URL, 2*time.Second)
	if _, err := dir.GetAccount(context.Background(), "missing"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestHTTPDirectoryServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := NewHTTPDirectory(srv.URL, 2*time.Second)
	if _, err := dir.GetAccount(context.Background(), "ACC-1"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestHTTPDirectoryTransportFaultIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	dir := NewHTTPDirectory(srv.URL, time.Second)
	if _, err := dir.GetAccount(context.Background(), "ACC-1"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type registrarStub struct {
	path string
}

func (s registrarStub) RegisterRoutes(mux *http.ServeMux, middleware func(http.Handler) http.Handler) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if middleware != nil {
		handler = middleware(handler)
	}
	mux.Handle(s.path, handler)
}

func deny(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestNewAppliesMiddlewarePerFamily(t *testing.T) {
	handler := New(Controllers{
		Program: registrarStub{path: "/program"},
		Wallet:  registrarStub{path: "/me/wallet"},
		Admin:   registrarStub{path: "/admin/withdrawals"},
	}, Middlewares{Bearer: deny, Admin: deny})

	if rr := get(handler, "/program"); rr.Code != http.StatusOK {
		t.Fatalf("program: expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr := get(handler, "/me/wallet"); rr.Code != http.StatusUnauthorized {
		t.Fatalf("wallet: expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if rr := get(handler, "/admin/withdrawals"); rr.Code != http.StatusUnauthorized {
		t.Fatalf("admin: expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestNewServesDocsAndMetrics(t *testing.T) {
	handler := New(Controllers{}, Middlewares{})

	rr := get(handler, "/swagger/openapi.json")
	if rr.Code != http.StatusOK {
		t.Fatalf("openapi: expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("openapi document is not valid json: %v", err)
	}
	paths, _ := doc["paths"].(map[string]any)
	if _, ok := paths["/me/subscription"]; !ok {
		t.Fatal("expected /me/subscription in openapi paths")
	}

	if rr := get(handler, "/metrics"); rr.Code != http.StatusOK {
		t.Fatalf("metrics: expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

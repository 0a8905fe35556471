package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"geekynerds/internal/cart"
	"geekynerds/internal/catalog"
	apphttp "geekynerds/internal/http"
	"geekynerds/internal/platform/itbook"
	"geekynerds/internal/store"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	// Unroutable base URL so catalog routes exercise the fallback path
	// without reaching the network.
	client := itbook.NewClientWithBaseURL("geekynerds-test/1.0", 100, "http://127.0.0.1:1")
	catalogService := catalog.NewService(client, nil)
	cartStore := cart.NewStore(context.Background(), store.NewCartMemory(), nil)

	return buildRouter(apphttp.NewBookHandler(catalogService, nil), apphttp.NewCartHandler(cartStore, nil))
}

func TestRouting(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"healthz", http.MethodGet, "/healthz", http.StatusOK},
		{"categories", http.MethodGet, "/categories", http.StatusOK},
		{"books fallback", http.MethodGet, "/books", http.StatusOK},
		{"new fallback", http.MethodGet, "/new", http.StatusOK},
		{"cart get", http.MethodGet, "/cart", http.StatusOK},
		{"cart wrong method", http.MethodPost, "/cart", http.StatusMethodNotAllowed},
		{"cart items wrong method", http.MethodGet, "/cart/items", http.StatusMethodNotAllowed},
		{"cart item wrong method", http.MethodPost, "/cart/items/abc", http.StatusMethodNotAllowed},
		{"checkout wrong method", http.MethodGet, "/cart/checkout", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorEnvelopeMapsToCodedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"CONFLICT","message":"product already in wishlist"}}`))
	}))
	defer server.Close()

	api, err := New(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	_, err = api.AddWishlistItem(context.Background(), "token", "p1")
	if err == nil {
		t.Fatal("expected error")
	}
	if CodeOf(err) != CodeConflict {
		t.Fatalf("expected CONFLICT, got %q", CodeOf(err))
	}
	if IsNetwork(err) {
		t.Fatal("a decoded envelope is not a network failure")
	}
}

func TestUnreadableFailureIsNetworkClass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	api, err := New(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	if err := api.AddCartItem(context.Background(), "token", "p1", 1); !IsNetwork(err) {
		t.Fatalf("expected network-class error, got %v", err)
	}
}

func TestTransportFailureIsNetworkClass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	api, err := New(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := api.GetCart(context.Background(), "token"); !IsNetwork(err) {
		t.Fatalf("expected network-class error, got %v", err)
	}
}

func TestBearerTokenInjected(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"cart":{"items":[]}}`))
	}))
	defer server.Close()

	api, err := New(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := api.GetCart(context.Background(), "abc123"); err != nil {
		t.Fatal(err)
	}
	if got != "Bearer abc123" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestClearCartIssuesBulkDelete(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	api, err := New(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if err := api.ClearCart(context.Background(), "token"); err != nil {
		t.Fatal(err)
	}
	if method != http.MethodDelete || path != "/api/v1/cart" {
		t.Fatalf("expected DELETE /api/v1/cart, got %s %s", method, path)
	}
}

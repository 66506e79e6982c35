package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/harikrishnagadicharla/unicart/api/middleware"
	cartsvc "github.com/harikrishnagadicharla/unicart/internal/cart"
	pkgerrors "github.com/harikrishnagadicharla/unicart/pkg/errors"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
)

type stubCartService struct {
	payload *cartsvc.CartPayload
	err     error

	added   []cartsvc.AddItemRequest
	updated map[string]int
	removed []string
	cleared bool
}

func (s *stubCartService) GetCart(context.Context, uuid.UUID) (*cartsvc.CartPayload, error) {
	return s.payload, s.err
}

func (s *stubCartService) AddItem(_ context.Context, _ uuid.UUID, req cartsvc.AddItemRequest) error {
	s.added = append(s.added, req)
	return s.err
}

func (s *stubCartService) SetQuantity(_ context.Context, _ uuid.UUID, productID string, req cartsvc.UpdateQuantityRequest) error {
	if s.updated == nil {
		s.updated = map[string]int{}
	}
	s.updated[productID] = req.Quantity
	return s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, _ uuid.UUID, productID string) error {
	s.removed = append(s.removed, productID)
	return s.err
}

func (s *stubCartService) Clear(context.Context, uuid.UUID) error {
	s.cleared = true
	return s.err
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
}

func TestCartGetReturnsEnvelope(t *testing.T) {
	payload := &cartsvc.CartPayload{Items: []types.CartItemPayload{{
		ID:        uuid.NewString(),
		ProductID: uuid.NewString(),
		Quantity:  2,
	}}}
	handler := CartGet(&stubCartService{payload: payload}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var envelope struct {
		Success bool `json:"success"`
		Cart    struct {
			Items []types.CartItemPayload `json:"items"`
		} `json:"cart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success || len(envelope.Cart.Items) != 1 {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestCartAddItemReturnsSuccessOnly(t *testing.T) {
	svc := &stubCartService{}
	handler := CartAddItem(svc, nil)

	body := `{"product_id":"` + uuid.NewString() + `","quantity":2}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope["success"] != true {
		t.Fatalf("expected success envelope, got %v", envelope)
	}
	if _, hasCart := envelope["cart"]; hasCart {
		t.Fatal("mutations must not return the cart body")
	}
	if len(svc.added) != 1 || svc.added[0].Quantity != 2 {
		t.Fatalf("unexpected add calls: %+v", svc.added)
	}
}

func TestCartAddItemRejectsUnknownFields(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, nil)

	body := `{"product_id":"` + uuid.NewString() + `","quantity":1,"bogus":true}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCartUpdateItemUsesRouteProduct(t *testing.T) {
	svc := &stubCartService{}
	productID := uuid.NewString()

	router := chi.NewRouter()
	router.Put("/cart/{productID}", CartUpdateItem(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPut, "/cart/"+productID, `{"quantity":4}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.updated[productID] != 4 {
		t.Fatalf("expected update keyed by product id, got %v", svc.updated)
	}
}

func TestCartRemoveItemNotFound(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")}

	router := chi.NewRouter()
	router.Delete("/cart/{productID}", CartRemoveItem(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodDelete, "/cart/"+uuid.NewString(), ""))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Success || envelope.Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected error envelope: %+v", envelope)
	}
}

func TestCartRequiresUserContext(t *testing.T) {
	handler := CartGet(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestCartClear(t *testing.T) {
	svc := &stubCartService{}
	handler := CartClear(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodDelete, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !svc.cleared {
		t.Fatal("expected clear call")
	}
}

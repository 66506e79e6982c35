package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/harikrishnagadicharla/unicart/internal/wishlist"
	pkgerrors "github.com/harikrishnagadicharla/unicart/pkg/errors"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
)

type stubWishlistService struct {
	items   []types.WishlistItemPayload
	created *types.WishlistItemPayload
	err     error

	removed []string
}

func (s *stubWishlistService) List(context.Context, uuid.UUID) ([]types.WishlistItemPayload, error) {
	return s.items, s.err
}

func (s *stubWishlistService) Add(context.Context, uuid.UUID, wishlist.AddItemRequest) (*types.WishlistItemPayload, error) {
	return s.created, s.err
}

func (s *stubWishlistService) Remove(_ context.Context, _ uuid.UUID, productID string) error {
	s.removed = append(s.removed, productID)
	return s.err
}

func TestWishlistListReturnsArray(t *testing.T) {
	svc := &stubWishlistService{items: []types.WishlistItemPayload{
		{ID: uuid.NewString(), ProductID: uuid.NewString(), CreatedAt: time.Now()},
	}}
	handler := WishlistList(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/wishlist", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Success  bool                        `json:"success"`
		Wishlist []types.WishlistItemPayload `json:"wishlist"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success || len(envelope.Wishlist) != 1 {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestWishlistAddReturnsCreatedItem(t *testing.T) {
	productID := uuid.NewString()
	svc := &stubWishlistService{created: &types.WishlistItemPayload{
		ID:        uuid.NewString(),
		ProductID: productID,
	}}
	handler := WishlistAdd(svc, nil)

	body := `{"product_id":"` + productID + `"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/wishlist", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Success bool                       `json:"success"`
		Item    *types.WishlistItemPayload `json:"item"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success || envelope.Item == nil || envelope.Item.ProductID != productID {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestWishlistAddDuplicateConflict(t *testing.T) {
	svc := &stubWishlistService{err: pkgerrors.New(pkgerrors.CodeConflict, "product already in wishlist")}
	handler := WishlistAdd(svc, nil)

	body := `{"product_id":"` + uuid.NewString() + `"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/wishlist", body))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeConflict) {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}

func TestWishlistRemovePassesProductID(t *testing.T) {
	svc := &stubWishlistService{}
	productID := uuid.NewString()

	router := chi.NewRouter()
	router.Delete("/api/v1/wishlist/{productID}", WishlistRemove(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodDelete, "/api/v1/wishlist/"+productID, ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if len(svc.removed) != 1 || svc.removed[0] != productID {
		t.Fatalf("expected remove of %s, got %v", productID, svc.removed)
	}
}

func TestWishlistRequiresAuth(t *testing.T) {
	handler := WishlistList(&stubWishlistService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

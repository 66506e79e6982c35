package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/harikrishnagadicharla/unicart/api/responses"
	"github.com/harikrishnagadicharla/unicart/api/validators"
	"github.com/harikrishnagadicharla/unicart/internal/wishlist"
	"github.com/harikrishnagadicharla/unicart/pkg/logger"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
)

type wishlistResponse struct {
	Success  bool                        `json:"success"`
	Wishlist []types.WishlistItemPayload `json:"wishlist"`
}

type wishlistItemResponse struct {
	Success bool                       `json:"success"`
	Item    *types.WishlistItemPayload `json:"item"`
}

// WishlistList returns the caller's saved products.
func WishlistList(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistResponse{Success: true, Wishlist: items})
	}
}

// WishlistAdd saves a product; duplicates are rejected.
func WishlistAdd(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body wishlist.AddItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Add(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, wishlistItemResponse{Success: true, Item: item})
	}
}

// WishlistRemove unsaves a product.
func WishlistRemove(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), userID, chi.URLParam(r, "productID")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, okResponse{Success: true})
	}
}

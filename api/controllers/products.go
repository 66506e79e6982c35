package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/harikrishnagadicharla/unicart/api/responses"
	"github.com/harikrishnagadicharla/unicart/internal/products"
	"github.com/harikrishnagadicharla/unicart/pkg/logger"
)

type productListResponse struct {
	Success bool                   `json:"success"`
	Data    *products.ListResponse `json:"data"`
}

type productDetailResponse struct {
	Success bool               `json:"success"`
	Product *products.ListItem `json:"product"`
}

// ProductsList serves the public catalog listing.
func ProductsList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		params := products.ListParams{
			Search: query.Get("search"),
		}
		if raw := query.Get("featured"); raw != "" {
			featured := raw == "true" || raw == "1"
			params.Featured = &featured
		}
		if raw := query.Get("limit"); raw != "" {
			if limit, err := strconv.Atoi(raw); err == nil {
				params.Limit = limit
			}
		}
		if raw := query.Get("offset"); raw != "" {
			if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
				params.Offset = offset
			}
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, productListResponse{Success: true, Data: result})
	}
}

// ProductsGet serves a single catalog entry.
func ProductsGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Get(r.Context(), chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, productDetailResponse{Success: true, Product: result})
	}
}

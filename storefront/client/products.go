package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/harikrishnagadicharla/unicart/pkg/types"
)

// ProductListItem is one catalog entry.
type ProductListItem struct {
	types.ProductSnapshot
	IsFeatured bool `json:"is_featured"`
}

// ProductList pages the catalog listing.
type ProductList struct {
	Items  []ProductListItem `json:"items"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// ProductQuery filters the catalog listing. Zero values are omitted.
type ProductQuery struct {
	Search   string
	Featured *bool
	Limit    int
	Offset   int
}

type productListEnvelope struct {
	Success bool         `json:"success"`
	Data    *ProductList `json:"data"`
}

type productDetailEnvelope struct {
	Success bool             `json:"success"`
	Product *ProductListItem `json:"product"`
}

// ListProducts fetches a page of the public catalog.
func (c *Client) ListProducts(ctx context.Context, query ProductQuery) (*ProductList, error) {
	values := url.Values{}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.Featured != nil {
		values.Set("featured", strconv.FormatBool(*query.Featured))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		values.Set("offset", strconv.Itoa(query.Offset))
	}

	path := "/products"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out productListEnvelope
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetProduct fetches a single catalog entry by id.
func (c *Client) GetProduct(ctx context.Context, productID string) (*ProductListItem, error) {
	path := fmt.Sprintf("/products/%s", url.PathEscape(productID))
	var out productDetailEnvelope
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

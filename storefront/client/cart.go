package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/harikrishnagadicharla/unicart/pkg/types"
)

type cartEnvelope struct {
	Success bool `json:"success"`
	Cart    struct {
		Items []types.CartItemPayload `json:"items"`
	} `json:"cart"`
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the authoritative cart lines for the session.
func (c *Client) GetCart(ctx context.Context, token string) ([]types.CartItemPayload, error) {
	var out cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Cart.Items, nil
}

// AddCartItem upserts the product's line; an existing line gains quantity.
func (c *Client) AddCartItem(ctx context.Context, token, productID string, quantity int) error {
	body := addCartItemRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPost, "/cart", token, body, nil)
}

// UpdateCartItem overwrites the quantity of the product's line.
func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, quantity int) error {
	path := fmt.Sprintf("/cart/%s", url.PathEscape(productID))
	return c.do(ctx, http.MethodPut, path, token, updateCartItemRequest{Quantity: quantity}, nil)
}

// RemoveCartItem deletes the product's line.
func (c *Client) RemoveCartItem(ctx context.Context, token, productID string) error {
	path := fmt.Sprintf("/cart/%s", url.PathEscape(productID))
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// ClearCart empties the whole cart in one call.
func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/cart", token, nil, nil)
}

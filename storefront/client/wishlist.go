package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/harikrishnagadicharla/unicart/pkg/types"
)

type wishlistEnvelope struct {
	Success  bool                        `json:"success"`
	Wishlist []types.WishlistItemPayload `json:"wishlist"`
}

type wishlistItemEnvelope struct {
	Success bool                       `json:"success"`
	Item    *types.WishlistItemPayload `json:"item"`
}

type addWishlistItemRequest struct {
	ProductID string `json:"product_id"`
}

// GetWishlist returns the session's saved products.
func (c *Client) GetWishlist(ctx context.Context, token string) ([]types.WishlistItemPayload, error) {
	var out wishlistEnvelope
	if err := c.do(ctx, http.MethodGet, "/wishlist", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Wishlist, nil
}

// AddWishlistItem saves a product and returns the stored entry.
func (c *Client) AddWishlistItem(ctx context.Context, token, productID string) (*types.WishlistItemPayload, error) {
	var out wishlistItemEnvelope
	body := addWishlistItemRequest{ProductID: productID}
	if err := c.do(ctx, http.MethodPost, "/wishlist", token, body, &out); err != nil {
		return nil, err
	}
	return out.Item, nil
}

// RemoveWishlistItem unsaves a product.
func (c *Client) RemoveWishlistItem(ctx context.Context, token, productID string) error {
	path := fmt.Sprintf("/wishlist/%s", url.PathEscape(productID))
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

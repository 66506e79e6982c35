package cart

import "github.com/harikrishnagadicharla/unicart/pkg/types"

// AddItemRequest is the payload for adding a product to the remote cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateQuantityRequest overwrites a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartPayload is the remote cart body embedded in responses.
type CartPayload struct {
	Items []types.CartItemPayload `json:"items"`
}

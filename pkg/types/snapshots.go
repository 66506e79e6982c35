package types

import "time"

// RatingSummary aggregates review scores for a product.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ProductSnapshot is the read-only product view embedded in cart and
// wishlist items at the time the item is added. Prices travel as cents.
type ProductSnapshot struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Slug                string         `json:"slug"`
	Brand               string         `json:"brand,omitempty"`
	PriceCents          int64          `json:"price_cents"`
	CompareAtPriceCents *int64         `json:"compare_at_price_cents,omitempty"`
	StockQuantity       int            `json:"stock_quantity"`
	Images              []string       `json:"images,omitempty"`
	Rating              *RatingSummary `json:"rating,omitempty"`
}

// VariantSnapshot captures the variant chosen when a cart line was created.
// Variants exist only on the client side; the remote cart is keyed by product.
type VariantSnapshot struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	PriceCents int64  `json:"price_cents"`
}

// CartItemPayload is the wire shape of a single cart line.
type CartItemPayload struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	VariantID  *string         `json:"variant_id,omitempty"`
	Product    ProductSnapshot `json:"product"`
	Variant    *VariantSnapshot `json:"variant,omitempty"`
	Quantity   int             `json:"quantity"`
	PriceCents int64           `json:"price_cents"`
}

// WishlistItemPayload is the wire shape of a saved product.
type WishlistItemPayload struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Product   ProductSnapshot `json:"product"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserPayload is the sanitized user record returned by auth endpoints.
type UserPayload struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

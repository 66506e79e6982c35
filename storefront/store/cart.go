package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/harikrishnagadicharla/unicart/pkg/kvstore"
	"github.com/harikrishnagadicharla/unicart/pkg/logger"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
	"github.com/harikrishnagadicharla/unicart/storefront/client"
	"github.com/shopspring/decimal"
)

const cartSnapshotKey = "unicart_cart"

// TokenSource supplies the current bearer token; an empty token means guest
// mode. AuthStore satisfies this.
type TokenSource interface {
	Token() string
}

// CartItem is one cart line as held by the store. The unit price is the
// variant price when a variant was chosen, else the product price, frozen at
// add time.
type CartItem struct {
	ID         string                 `json:"id"`
	ProductID  string                 `json:"product_id"`
	VariantID  string                 `json:"variant_id,omitempty"`
	Product    types.ProductSnapshot  `json:"product"`
	Variant    *types.VariantSnapshot `json:"variant,omitempty"`
	Quantity   int                    `json:"quantity"`
	PriceCents int64                  `json:"price_cents"`
}

// cartBackend is the per-operation strategy. The local implementation
// transforms the item slice in place; the remote one mirrors the mutation to
// the service and returns its authoritative state.
type cartBackend interface {
	Add(ctx context.Context, items []CartItem, product types.ProductSnapshot, variant *types.VariantSnapshot, quantity int) ([]CartItem, error)
	UpdateQuantity(ctx context.Context, items []CartItem, itemID string, quantity int) ([]CartItem, error)
	Remove(ctx context.Context, items []CartItem, itemID string) ([]CartItem, error)
	Clear(ctx context.Context, items []CartItem) ([]CartItem, error)
}

// CartStore holds the cart lines and derived totals. Mutations pick the
// local or remote backend by session presence at call time; remote failures
// are logged and leave the current state untouched.
type CartStore struct {
	notifier

	mu      sync.Mutex
	items   []CartItem
	loading bool

	api     *client.Client
	kv      kvstore.Store
	tokens  TokenSource
	pricing Pricing
	logg    *logger.Logger
}

// CartStoreParams bundles the cart store's dependencies.
type CartStoreParams struct {
	API     *client.Client
	KV      kvstore.Store
	Tokens  TokenSource
	Pricing Pricing
	Logger  *logger.Logger
}

// NewCartStore builds the store and rehydrates the persisted guest snapshot.
// A corrupt snapshot is discarded and the store starts empty.
func NewCartStore(ctx context.Context, params CartStoreParams) *CartStore {
	s := &CartStore{
		api:     params.API,
		kv:      params.KV,
		tokens:  params.Tokens,
		pricing: params.Pricing,
		logg:    params.Logger,
	}

	raw, err := s.kv.Get(cartSnapshotKey)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			s.logg.Error(ctx, "cart.snapshot_read_failed", err)
		}
		return s
	}
	var snapshot struct {
		Items []CartItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		s.logg.Warn(ctx, "cart.snapshot_corrupt")
		if err := s.kv.Delete(cartSnapshotKey); err != nil {
			s.logg.Error(ctx, "cart.snapshot_delete_failed", err)
		}
		return s
	}
	s.items = snapshot.Items
	return s
}

// AddItem adds quantity of the product, merging into an existing line with
// the same product and variant.
func (s *CartStore) AddItem(ctx context.Context, product types.ProductSnapshot, quantity int, variant *types.VariantSnapshot) {
	if product.ID == "" || quantity < 1 {
		return
	}
	s.mutate(ctx, "cart.add_failed", func(backend cartBackend, items []CartItem) ([]CartItem, error) {
		return backend.Add(ctx, items, product, variant, quantity)
	})
}

// UpdateQuantity overwrites a line's quantity. Quantities below one are
// ignored.
func (s *CartStore) UpdateQuantity(ctx context.Context, itemID string, quantity int) {
	if quantity < 1 {
		return
	}
	s.mutate(ctx, "cart.update_failed", func(backend cartBackend, items []CartItem) ([]CartItem, error) {
		return backend.UpdateQuantity(ctx, items, itemID, quantity)
	})
}

// RemoveItem deletes a line. Unknown ids are a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, itemID string) {
	s.mutate(ctx, "cart.remove_failed", func(backend cartBackend, items []CartItem) ([]CartItem, error) {
		return backend.Remove(ctx, items, itemID)
	})
}

// ClearCart removes every line.
func (s *CartStore) ClearCart(ctx context.Context) {
	s.mutate(ctx, "cart.clear_failed", func(backend cartBackend, items []CartItem) ([]CartItem, error) {
		return backend.Clear(ctx, items)
	})
}

// Fetch replaces the in-memory state with the service's cart. A no-op in
// guest mode.
func (s *CartStore) Fetch(ctx context.Context) {
	token := s.tokens.Token()
	if token == "" {
		s.logg.Debug(ctx, "cart.fetch_skipped_guest")
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	payloads, err := s.api.GetCart(ctx, token)
	if err != nil {
		s.logg.Error(ctx, "cart.fetch_failed", err)
		return
	}
	s.replace(ctx, itemsFromPayloads(payloads), false)
}

// mutate runs one operation against the backend chosen by session presence.
// The lock is not held across the remote call; the final replace wins, which
// matches the read-after-write refresh pattern.
func (s *CartStore) mutate(ctx context.Context, failEvent string, op func(cartBackend, []CartItem) ([]CartItem, error)) {
	s.setLoading(true)
	defer s.setLoading(false)

	backend, guest := s.backend()

	s.mu.Lock()
	snapshot := make([]CartItem, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	next, err := op(backend, snapshot)
	if err != nil {
		s.logg.Error(ctx, failEvent, err)
		return
	}
	s.replace(ctx, next, guest)
}

func (s *CartStore) backend() (cartBackend, bool) {
	if token := s.tokens.Token(); token != "" {
		return &remoteCart{api: s.api, token: token}, false
	}
	return localCart{}, true
}

func (s *CartStore) replace(ctx context.Context, items []CartItem, persist bool) {
	s.mu.Lock()
	s.items = items
	if persist {
		snapshot := struct {
			Items []CartItem `json:"items"`
		}{Items: items}
		raw, err := json.Marshal(snapshot)
		if err == nil {
			err = s.kv.Set(cartSnapshotKey, string(raw))
		}
		if err != nil {
			s.logg.Error(ctx, "cart.snapshot_write_failed", err)
		}
	}
	s.mu.Unlock()
	s.notify()
}

// Items returns a copy of the current lines.
func (s *CartStore) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount is the sum of all line quantities.
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of unit price times quantity across all lines.
func (s *CartStore) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for _, item := range s.items {
		price := decimal.NewFromInt(item.PriceCents).Div(hundred)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// Shipping is zero at or above the free-shipping threshold, else the flat fee.
func (s *CartStore) Shipping() decimal.Decimal {
	return s.pricing.Shipping(s.Subtotal())
}

// Tax is the subtotal times the tax rate.
func (s *CartStore) Tax() decimal.Decimal {
	return s.pricing.Tax(s.Subtotal())
}

// Total is subtotal plus shipping plus tax.
func (s *CartStore) Total() decimal.Decimal {
	subtotal := s.Subtotal()
	return subtotal.Add(s.pricing.Shipping(subtotal)).Add(s.pricing.Tax(subtotal))
}

// IsLoading reports whether a remote operation is in flight.
func (s *CartStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *CartStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func newCartItemID(productID, variantID string) string {
	return fmt.Sprintf("%s-%s-%d", productID, variantID, time.Now().UnixNano())
}

func itemsFromPayloads(payloads []types.CartItemPayload) []CartItem {
	items := make([]CartItem, 0, len(payloads))
	for _, p := range payloads {
		variantID := ""
		if p.VariantID != nil {
			variantID = *p.VariantID
		}
		items = append(items, CartItem{
			ID:         p.ID,
			ProductID:  p.ProductID,
			VariantID:  variantID,
			Product:    p.Product,
			Variant:    p.Variant,
			Quantity:   p.Quantity,
			PriceCents: p.PriceCents,
		})
	}
	return items
}

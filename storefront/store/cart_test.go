package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/harikrishnagadicharla/unicart/pkg/kvstore"
	"github.com/harikrishnagadicharla/unicart/pkg/logger"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
	"github.com/harikrishnagadicharla/unicart/storefront/client"
	"github.com/shopspring/decimal"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type staticTokens struct {
	token string
}

func (s staticTokens) Token() string { return s.token }

func testProduct(id string, priceCents int64) types.ProductSnapshot {
	return types.ProductSnapshot{
		ID:            id,
		Name:          "Product " + id,
		Slug:          "product-" + id,
		PriceCents:    priceCents,
		StockQuantity: 10,
	}
}

func newGuestCart(t *testing.T) *CartStore {
	t.Helper()
	return NewCartStore(context.Background(), CartStoreParams{
		KV:      kvstore.NewMemory(),
		Tokens:  staticTokens{},
		Pricing: DefaultPricing(),
		Logger:  testLogger(),
	})
}

func TestCartAddSameProductAccumulates(t *testing.T) {
	ctx := context.Background()
	cart := newGuestCart(t)
	product := testProduct("p1", 2000)

	cart.AddItem(ctx, product, 1, nil)
	cart.AddItem(ctx, product, 2, nil)

	items := cart.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
	if got := cart.Subtotal(); !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected subtotal 60.00, got %s", got)
	}
}

func TestCartAddDistinctVariantsSeparateLines(t *testing.T) {
	ctx := context.Background()
	cart := newGuestCart(t)
	product := testProduct("p1", 2000)

	cart.AddItem(ctx, product, 1, nil)
	cart.AddItem(ctx, product, 1, &types.VariantSnapshot{ID: "v1", PriceCents: 2500})

	items := cart.Items()
	if len(items) != 2 {
		t.Fatalf("expected two lines, got %d", len(items))
	}
	if items[1].PriceCents != 2500 {
		t.Fatalf("expected variant price 2500, got %d", items[1].PriceCents)
	}
}

func TestCartRemoveUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	cart := newGuestCart(t)
	cart.AddItem(ctx, testProduct("p1", 1000), 2, nil)

	cart.RemoveItem(ctx, "does-not-exist")

	if count := cart.ItemCount(); count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
}

func TestCartUpdateQuantityBelowOneIgnored(t *testing.T) {
	ctx := context.Background()
	cart := newGuestCart(t)
	cart.AddItem(ctx, testProduct("p1", 1000), 2, nil)
	itemID := cart.Items()[0].ID

	cart.UpdateQuantity(ctx, itemID, 0)
	cart.UpdateQuantity(ctx, itemID, -5)

	if got := cart.Items()[0].Quantity; got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
}

func TestCartTotalIdentity(t *testing.T) {
	ctx := context.Background()
	cart := newGuestCart(t)
	cart.AddItem(ctx, testProduct("p1", 1999), 3, nil)
	cart.AddItem(ctx, testProduct("p2", 4250), 1, nil)

	want := cart.Subtotal().Add(cart.Shipping()).Add(cart.Tax())
	if got := cart.Total(); !got.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, got)
	}
}

func TestCartShippingBoundary(t *testing.T) {
	ctx := context.Background()

	atThreshold := newGuestCart(t)
	atThreshold.AddItem(ctx, testProduct("p1", 10000), 1, nil)
	if got := atThreshold.Shipping(); !got.IsZero() {
		t.Fatalf("expected free shipping at 100.00, got %s", got)
	}

	belowThreshold := newGuestCart(t)
	belowThreshold.AddItem(ctx, testProduct("p2", 9999), 1, nil)
	if got := belowThreshold.Shipping(); !got.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("expected flat fee 9.99 below threshold, got %s", got)
	}
}

func TestCartClearEmptiesAndPersists(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	cart := NewCartStore(ctx, CartStoreParams{
		KV:      kv,
		Tokens:  staticTokens{},
		Pricing: DefaultPricing(),
		Logger:  testLogger(),
	})
	cart.AddItem(ctx, testProduct("p1", 500), 4, nil)

	cart.ClearCart(ctx)

	if count := cart.ItemCount(); count != 0 {
		t.Fatalf("expected empty cart, got count %d", count)
	}
	reopened := NewCartStore(ctx, CartStoreParams{
		KV:      kv,
		Tokens:  staticTokens{},
		Pricing: DefaultPricing(),
		Logger:  testLogger(),
	})
	if count := reopened.ItemCount(); count != 0 {
		t.Fatalf("expected persisted empty cart, got count %d", count)
	}
}

func TestCartGuestSnapshotSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	cart := NewCartStore(ctx, CartStoreParams{
		KV:      kv,
		Tokens:  staticTokens{},
		Pricing: DefaultPricing(),
		Logger:  testLogger(),
	})
	cart.AddItem(ctx, testProduct("p1", 2000), 3, nil)

	reopened := NewCartStore(ctx, CartStoreParams{
		KV:      kv,
		Tokens:  staticTokens{},
		Pricing: DefaultPricing(),
		Logger:  testLogger(),
	})
	if count := reopened.ItemCount(); count != 3 {
		t.Fatalf("expected count 3 after reopen, got %d", count)
	}
}

func TestCartCorruptSnapshotDiscarded(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	if err := kv.Set(cartSnapshotKey, "{not json"); err != nil {
		t.Fatal(err)
	}

	cart := NewCartStore(ctx, CartStoreParams{
		KV:      kv,
		Tokens:  staticTokens{},
		Pricing: DefaultPricing(),
		Logger:  testLogger(),
	})

	if count := cart.ItemCount(); count != 0 {
		t.Fatalf("expected empty cart, got count %d", count)
	}
	if _, err := kv.Get(cartSnapshotKey); !kvstore.IsNotFound(err) {
		t.Fatalf("expected corrupt snapshot removed, got %v", err)
	}
}

func TestCartSubscribeNotifies(t *testing.T) {
	ctx := context.Background()
	cart := newGuestCart(t)

	fired := 0
	unsubscribe := cart.Subscribe(func() { fired++ })
	cart.AddItem(ctx, testProduct("p1", 1000), 1, nil)
	if fired != 1 {
		t.Fatalf("expected one notification, got %d", fired)
	}

	unsubscribe()
	cart.AddItem(ctx, testProduct("p2", 1000), 1, nil)
	if fired != 1 {
		t.Fatalf("expected no notification after unsubscribe, got %d", fired)
	}
}

// remoteCartServer fakes the cart endpoints with an in-memory line map so
// the authenticated mode's read-after-write refresh can be observed.
type remoteCartServer struct {
	mu    sync.Mutex
	lines map[string]int
	price map[string]int64
	fail  bool
}

func (s *remoteCartServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/cart", func(w http.ResponseWriter, r *http.Request) {
		if s.fail {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			items := make([]types.CartItemPayload, 0, len(s.lines))
			for id, qty := range s.lines {
				items = append(items, types.CartItemPayload{
					ID:         "line-" + id,
					ProductID:  id,
					Product:    types.ProductSnapshot{ID: id, PriceCents: s.price[id]},
					Quantity:   qty,
					PriceCents: s.price[id],
				})
			}
			payload := map[string]any{"success": true, "cart": map[string]any{"items": items}}
			_ = json.NewEncoder(w).Encode(payload)
		case http.MethodPost:
			var body struct {
				ProductID string `json:"product_id"`
				Quantity  int    `json:"quantity"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			s.lines[body.ProductID] += body.Quantity
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/api/v1/cart/", func(w http.ResponseWriter, r *http.Request) {
		if s.fail {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		productID := r.URL.Path[len("/api/v1/cart/"):]
		s.mu.Lock()
		defer s.mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			var body struct {
				Quantity int `json:"quantity"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			s.lines[productID] = body.Quantity
		case http.MethodDelete:
			delete(s.lines, productID)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	return mux
}

func newRemoteCart(t *testing.T, server *remoteCartServer) (*CartStore, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(server.handler())
	t.Cleanup(ts.Close)

	api, err := client.New(ts.URL)
	if err != nil {
		t.Fatal(err)
	}
	cart := NewCartStore(context.Background(), CartStoreParams{
		API:     api,
		KV:      kvstore.NewMemory(),
		Tokens:  staticTokens{token: "test-token"},
		Pricing: DefaultPricing(),
		Logger:  testLogger(),
	})
	return cart, ts
}

func TestCartRemoteAddRefreshesFromService(t *testing.T) {
	ctx := context.Background()
	server := &remoteCartServer{
		lines: map[string]int{},
		price: map[string]int64{"p1": 2000},
	}
	cart, _ := newRemoteCart(t, server)

	cart.AddItem(ctx, testProduct("p1", 2000), 1, nil)
	cart.AddItem(ctx, testProduct("p1", 2000), 2, nil)

	items := cart.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected upserted quantity 3, got %d", items[0].Quantity)
	}
}

func TestCartRemoteRemoveKeyedByProduct(t *testing.T) {
	ctx := context.Background()
	server := &remoteCartServer{
		lines: map[string]int{"p1": 2},
		price: map[string]int64{"p1": 2000},
	}
	cart, _ := newRemoteCart(t, server)
	cart.Fetch(ctx)

	itemID := cart.Items()[0].ID
	cart.RemoveItem(ctx, itemID)

	if count := cart.ItemCount(); count != 0 {
		t.Fatalf("expected empty cart, got count %d", count)
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	if len(server.lines) != 0 {
		t.Fatalf("expected service line removed, got %v", server.lines)
	}
}

func TestCartRemoteFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	server := &remoteCartServer{
		lines: map[string]int{"p1": 2},
		price: map[string]int64{"p1": 2000},
	}
	cart, _ := newRemoteCart(t, server)
	cart.Fetch(ctx)

	server.fail = true
	cart.AddItem(ctx, testProduct("p2", 1000), 1, nil)

	items := cart.Items()
	if len(items) != 1 || items[0].ProductID != "p1" {
		t.Fatalf("expected prior state preserved, got %+v", items)
	}
	if cart.IsLoading() {
		t.Fatal("expected loading flag cleared after failure")
	}
}

func TestCartRemoteClearDeletesPerItem(t *testing.T) {
	ctx := context.Background()
	server := &remoteCartServer{
		lines: map[string]int{"p1": 1, "p2": 2},
		price: map[string]int64{"p1": 1000, "p2": 2000},
	}
	cart, _ := newRemoteCart(t, server)
	cart.Fetch(ctx)

	cart.ClearCart(ctx)

	if count := cart.ItemCount(); count != 0 {
		t.Fatalf("expected empty cart, got count %d", count)
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	if len(server.lines) != 0 {
		t.Fatalf("expected all service lines removed, got %v", server.lines)
	}
}

func TestCartFetchSkippedForGuest(t *testing.T) {
	ctx := context.Background()
	cart := newGuestCart(t)
	cart.AddItem(ctx, testProduct("p1", 1000), 1, nil)

	// no API client is configured; a network call would panic
	cart.Fetch(ctx)

	if count := cart.ItemCount(); count != 1 {
		t.Fatalf("expected local state untouched, got count %d", count)
	}
}

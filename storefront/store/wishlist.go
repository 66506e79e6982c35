package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harikrishnagadicharla/unicart/pkg/kvstore"
	"github.com/harikrishnagadicharla/unicart/pkg/logger"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
)

const wishlistSnapshotKey = "unicart_wishlist"

// WishlistItem is one saved product.
type WishlistItem struct {
	ID        string                `json:"id"`
	ProductID string                `json:"product_id"`
	Product   types.ProductSnapshot `json:"product"`
	CreatedAt time.Time             `json:"created_at"`
}

// WishlistStore keeps saved products locally. Mutations persist to the
// key-value store under a dedicated namespace; there is no remote mirroring.
type WishlistStore struct {
	notifier

	mu    sync.Mutex
	items []WishlistItem
	kv    kvstore.Store
	logg  *logger.Logger
}

// NewWishlistStore builds the store and rehydrates the persisted snapshot.
func NewWishlistStore(ctx context.Context, kv kvstore.Store, logg *logger.Logger) *WishlistStore {
	s := &WishlistStore{kv: kv, logg: logg}

	raw, err := kv.Get(wishlistSnapshotKey)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			logg.Error(ctx, "wishlist.snapshot_read_failed", err)
		}
		return s
	}
	var snapshot struct {
		Items []WishlistItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		logg.Warn(ctx, "wishlist.snapshot_corrupt")
		if err := kv.Delete(wishlistSnapshotKey); err != nil {
			logg.Error(ctx, "wishlist.snapshot_delete_failed", err)
		}
		return s
	}
	s.items = snapshot.Items
	return s
}

// AddItem saves a product. Returns false when the product is already saved.
func (s *WishlistStore) AddItem(ctx context.Context, product types.ProductSnapshot) bool {
	if product.ID == "" {
		return false
	}

	s.mu.Lock()
	for _, item := range s.items {
		if item.ProductID == product.ID {
			s.mu.Unlock()
			return false
		}
	}
	s.items = append(s.items, WishlistItem{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		Product:   product,
		CreatedAt: time.Now().UTC(),
	})
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
	return true
}

// RemoveItem unsaves a product. Unknown ids are a no-op.
func (s *WishlistStore) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	kept := s.items[:0]
	removed := false
	for _, item := range s.items {
		if item.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	if removed {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()
	if removed {
		s.notify()
	}
}

// Contains reports whether the product is saved.
func (s *WishlistStore) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Clear removes every saved product.
func (s *WishlistStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// Items returns a copy of the saved products.
func (s *WishlistStore) Items() []WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]WishlistItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the number of saved products.
func (s *WishlistStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *WishlistStore) persistLocked(ctx context.Context) {
	snapshot := struct {
		Items []WishlistItem `json:"items"`
	}{Items: s.items}
	raw, err := json.Marshal(snapshot)
	if err == nil {
		err = s.kv.Set(wishlistSnapshotKey, string(raw))
	}
	if err != nil {
		s.logg.Error(ctx, "wishlist.snapshot_write_failed", err)
	}
}

package store

import (
	"context"
	"testing"

	"github.com/harikrishnagadicharla/unicart/pkg/kvstore"
)

func TestWishlistDuplicateAddRejected(t *testing.T) {
	ctx := context.Background()
	wishlist := NewWishlistStore(ctx, kvstore.NewMemory(), testLogger())
	product := testProduct("p1", 2000)

	if !wishlist.AddItem(ctx, product) {
		t.Fatal("expected first add to succeed")
	}
	if wishlist.AddItem(ctx, product) {
		t.Fatal("expected duplicate add to be rejected")
	}
	if count := wishlist.Count(); count != 1 {
		t.Fatalf("expected one saved product, got %d", count)
	}
}

func TestWishlistRemoveAndContains(t *testing.T) {
	ctx := context.Background()
	wishlist := NewWishlistStore(ctx, kvstore.NewMemory(), testLogger())
	wishlist.AddItem(ctx, testProduct("p1", 2000))
	wishlist.AddItem(ctx, testProduct("p2", 3000))

	if !wishlist.Contains("p1") {
		t.Fatal("expected p1 saved")
	}

	wishlist.RemoveItem(ctx, "p1")
	if wishlist.Contains("p1") {
		t.Fatal("expected p1 removed")
	}
	if !wishlist.Contains("p2") {
		t.Fatal("expected p2 untouched")
	}

	// unknown id is a no-op
	wishlist.RemoveItem(ctx, "missing")
	if count := wishlist.Count(); count != 1 {
		t.Fatalf("expected one saved product, got %d", count)
	}
}

func TestWishlistSnapshotSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	wishlist := NewWishlistStore(ctx, kv, testLogger())
	wishlist.AddItem(ctx, testProduct("p1", 2000))

	reopened := NewWishlistStore(ctx, kv, testLogger())
	if !reopened.Contains("p1") {
		t.Fatal("expected snapshot rehydrated after reopen")
	}
}

func TestWishlistCorruptSnapshotDiscarded(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	if err := kv.Set(wishlistSnapshotKey, "not-json"); err != nil {
		t.Fatal(err)
	}

	wishlist := NewWishlistStore(ctx, kv, testLogger())

	if count := wishlist.Count(); count != 0 {
		t.Fatalf("expected empty wishlist, got %d", count)
	}
	if _, err := kv.Get(wishlistSnapshotKey); !kvstore.IsNotFound(err) {
		t.Fatalf("expected corrupt snapshot removed, got %v", err)
	}
}

func TestWishlistClear(t *testing.T) {
	ctx := context.Background()
	wishlist := NewWishlistStore(ctx, kvstore.NewMemory(), testLogger())
	wishlist.AddItem(ctx, testProduct("p1", 2000))
	wishlist.AddItem(ctx, testProduct("p2", 3000))

	wishlist.Clear(ctx)

	if count := wishlist.Count(); count != 0 {
		t.Fatalf("expected empty wishlist, got %d", count)
	}
}

package store

import (
	"context"

	"github.com/harikrishnagadicharla/unicart/pkg/types"
	"github.com/harikrishnagadicharla/unicart/storefront/client"
	"go.uber.org/multierr"
)

// remoteCart is the authenticated backend. Every mutation is mirrored to the
// service keyed by product id, then the cart is re-fetched so the returned
// state is the service's truth.
type remoteCart struct {
	api   *client.Client
	token string
}

func (r *remoteCart) Add(ctx context.Context, items []CartItem, product types.ProductSnapshot, _ *types.VariantSnapshot, quantity int) ([]CartItem, error) {
	if err := r.api.AddCartItem(ctx, r.token, product.ID, quantity); err != nil {
		return nil, err
	}
	return r.refresh(ctx)
}

func (r *remoteCart) UpdateQuantity(ctx context.Context, items []CartItem, itemID string, quantity int) ([]CartItem, error) {
	item, ok := findItem(items, itemID)
	if !ok {
		return items, nil
	}
	if err := r.api.UpdateCartItem(ctx, r.token, item.ProductID, quantity); err != nil {
		return nil, err
	}
	return r.refresh(ctx)
}

func (r *remoteCart) Remove(ctx context.Context, items []CartItem, itemID string) ([]CartItem, error) {
	// the remote model is keyed by product, so the line id is resolved
	// locally first
	item, ok := findItem(items, itemID)
	if !ok {
		return items, nil
	}
	if err := r.api.RemoveCartItem(ctx, r.token, item.ProductID); err != nil {
		return nil, err
	}
	return r.refresh(ctx)
}

func (r *remoteCart) Clear(ctx context.Context, items []CartItem) ([]CartItem, error) {
	var errs error
	for _, item := range items {
		errs = multierr.Append(errs, r.api.RemoveCartItem(ctx, r.token, item.ProductID))
	}
	if errs != nil {
		return nil, errs
	}
	return r.refresh(ctx)
}

func (r *remoteCart) refresh(ctx context.Context) ([]CartItem, error) {
	payloads, err := r.api.GetCart(ctx, r.token)
	if err != nil {
		return nil, err
	}
	return itemsFromPayloads(payloads), nil
}

func findItem(items []CartItem, itemID string) (CartItem, bool) {
	for _, item := range items {
		if item.ID == itemID {
			return item, true
		}
	}
	return CartItem{}, false
}

package store

import (
	"context"

	"github.com/harikrishnagadicharla/unicart/pkg/types"
)

// localCart is the guest-mode backend: pure transforms over the item slice,
// persisted by the store after each mutation.
type localCart struct{}

func (localCart) Add(_ context.Context, items []CartItem, product types.ProductSnapshot, variant *types.VariantSnapshot, quantity int) ([]CartItem, error) {
	variantID := ""
	if variant != nil {
		variantID = variant.ID
	}

	for i := range items {
		if items[i].ProductID == product.ID && items[i].VariantID == variantID {
			items[i].Quantity += quantity
			return items, nil
		}
	}

	price := product.PriceCents
	if variant != nil {
		price = variant.PriceCents
	}
	return append(items, CartItem{
		ID:         newCartItemID(product.ID, variantID),
		ProductID:  product.ID,
		VariantID:  variantID,
		Product:    product,
		Variant:    variant,
		Quantity:   quantity,
		PriceCents: price,
	}), nil
}

func (localCart) UpdateQuantity(_ context.Context, items []CartItem, itemID string, quantity int) ([]CartItem, error) {
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			break
		}
	}
	return items, nil
}

func (localCart) Remove(_ context.Context, items []CartItem, itemID string) ([]CartItem, error) {
	out := items[:0]
	for _, item := range items {
		if item.ID != itemID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (localCart) Clear(context.Context, []CartItem) ([]CartItem, error) {
	return []CartItem{}, nil
}

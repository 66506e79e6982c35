package products

import (
	"github.com/harikrishnagadicharla/unicart/pkg/db/models"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
)

// SnapshotFromModel maps a catalog row to the read-only snapshot embedded in
// cart and wishlist payloads.
func SnapshotFromModel(p *models.Product, rating *types.RatingSummary) types.ProductSnapshot {
	if p == nil {
		return types.ProductSnapshot{}
	}

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.URL)
	}

	return types.ProductSnapshot{
		ID:                  p.ID.String(),
		Name:                p.Name,
		Slug:                p.Slug,
		Brand:               p.Brand,
		PriceCents:          p.PriceCents,
		CompareAtPriceCents: p.CompareAtPriceCents,
		StockQuantity:       p.StockQuantity,
		Images:              images,
		Rating:              rating,
	}
}

// ListItem is one entry of the catalog listing response.
type ListItem struct {
	types.ProductSnapshot
	IsFeatured bool `json:"is_featured"`
}

// ListResponse pages the catalog.
type ListResponse struct {
	Items  []ListItem `json:"items"`
	Total  int64      `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

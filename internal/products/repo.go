package products

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/harikrishnagadicharla/unicart/pkg/db/models"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
	"gorm.io/gorm"
)

// Repository exposes catalog reads. The storefront never mutates products
// through this surface; writes happen through migrations and seeds.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a products repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListParams filters and pages the catalog listing.
type ListParams struct {
	Search   string
	Featured *bool
	Limit    int
	Offset   int
}

// List returns active products with their images, newest first.
func (r *Repository) List(ctx context.Context, params ListParams) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true)

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR brand LIKE ?", like, like)
	}
	if params.Featured != nil {
		query = query.Where("is_featured = ?", *params.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 24
	}

	var rows []models.Product
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Limit(limit).
		Offset(params.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID loads a single product with its images.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindActiveByID loads a product and reports gorm.ErrRecordNotFound for
// inactive listings so callers treat them as absent.
func (r *Repository) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

type ratingRow struct {
	ProductID uuid.UUID
	Average   float64
	Count     int
}

// RatingSummaries aggregates review scores for the given products. Products
// without reviews are absent from the result map.
func (r *Repository) RatingSummaries(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]types.RatingSummary, error) {
	summaries := make(map[uuid.UUID]types.RatingSummary, len(productIDs))
	if len(productIDs) == 0 {
		return summaries, nil
	}

	var rows []ratingRow
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("product_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		summaries[row.ProductID] = types.RatingSummary{
			Average: roundToTenth(row.Average),
			Count:   row.Count,
		}
	}
	return summaries, nil
}

func roundToTenth(value float64) float64 {
	return math.Round(value*10) / 10
}

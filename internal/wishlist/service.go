package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harikrishnagadicharla/unicart/internal/products"
	"github.com/harikrishnagadicharla/unicart/pkg/db"
	"github.com/harikrishnagadicharla/unicart/pkg/db/models"
	pkgerrors "github.com/harikrishnagadicharla/unicart/pkg/errors"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
	"gorm.io/gorm"
)

// AddItemRequest is the payload for saving a product.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// Service defines the behavior needed by the wishlist controller.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]types.WishlistItemPayload, error)
	Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*types.WishlistItemPayload, error)
	Remove(ctx context.Context, userID uuid.UUID, productID string) error
}

type wishlistRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	ExistsByUserProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Create(ctx context.Context, item *models.WishlistItem) error
	DeleteByUserProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error)
}

type productRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	RatingSummaries(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]types.RatingSummary, error)
}

type service struct {
	wishlists wishlistRepository
	products  productRepository
}

// ServiceParams bundles the dependencies required to build a wishlist service.
type ServiceParams struct {
	WishlistRepo wishlistRepository
	ProductRepo  productRepository
}

// NewService constructs a wishlist service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{
		wishlists: params.WishlistRepo,
		products:  params.ProductRepo,
	}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]types.WishlistItemPayload, error) {
	entries, err := s.wishlists.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list wishlist")
	}

	productIDs := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		productIDs = append(productIDs, entry.ProductID)
	}
	ratings, err := s.products.RatingSummaries(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate ratings")
	}

	items := make([]types.WishlistItemPayload, 0, len(entries))
	for _, entry := range entries {
		product, err := s.products.FindByID(ctx, entry.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}
		var rating *types.RatingSummary
		if summary, ok := ratings[entry.ProductID]; ok {
			rating = &summary
		}
		items = append(items, types.WishlistItemPayload{
			ID:        entry.ID.String(),
			ProductID: entry.ProductID.String(),
			Product:   products.SnapshotFromModel(product, rating),
			CreatedAt: entry.CreatedAt,
		})
	}

	return items, nil
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*types.WishlistItemPayload, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}

	product, err := s.products.FindActiveByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	exists, err := s.wishlists.ExistsByUserProduct(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check wishlist")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already in wishlist")
	}

	item := &models.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.wishlists.Create(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "wishlist_items_user_product_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already in wishlist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create wishlist entry")
	}

	ratings, err := s.products.RatingSummaries(ctx, []uuid.UUID{productID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate ratings")
	}
	var rating *types.RatingSummary
	if summary, ok := ratings[productID]; ok {
		rating = &summary
	}

	return &types.WishlistItemPayload{
		ID:        item.ID.String(),
		ProductID: productID.String(),
		Product:   products.SnapshotFromModel(product, rating),
		CreatedAt: item.CreatedAt,
	}, nil
}

func (s *service) Remove(ctx context.Context, userID uuid.UUID, productID string) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}

	affected, err := s.wishlists.DeleteByUserProduct(ctx, userID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete wishlist entry")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not in wishlist")
	}
	return nil
}

package cart

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

// Service defines the behavior needed by the cart controller. Mutations do
// not return the cart; clients refresh with GetCart after each write.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartPayload, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) error
	SetQuantity(ctx context.Context, userID uuid.UUID, productID string, req UpdateQuantityRequest) error
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindByUserProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	DeleteByUserProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error)
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type productRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	RatingSummaries(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]types.RatingSummary, error)
}

type service struct {
	carts    cartRepository
	products productRepository
}

// ServiceParams bundles the dependencies required to build a cart service.
type ServiceParams struct {
	CartRepo    cartRepository
	ProductRepo productRepository
}

// NewService constructs a cart service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{
		carts:    params.CartRepo,
		products: params.ProductRepo,
	}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartPayload, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}

	productIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}
	ratings, err := s.products.RatingSummaries(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate ratings")
	}

	items := make([]types.CartItemPayload, 0, len(lines))
	for _, line := range lines {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// product withdrawn after the line was created; skip it
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}
		var rating *types.RatingSummary
		if summary, ok := ratings[line.ProductID]; ok {
			rating = &summary
		}
		items = append(items, types.CartItemPayload{
			ID:         line.ID.String(),
			ProductID:  line.ProductID.String(),
			Product:    products.SnapshotFromModel(product, rating),
			Quantity:   line.Quantity,
			PriceCents: line.UnitPriceCents,
		})
	}

	return &CartPayload{Items: items}, nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) error {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	if req.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindActiveByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	existing, err := s.carts.FindByUserProduct(ctx, userID, productID)
	switch {
	case err == nil:
		// one line per product: adding again accumulates quantity
		if err := s.carts.UpdateQuantity(ctx, existing.ID, existing.Quantity+req.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment cart line")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			UserID:         userID,
			ProductID:      productID,
			Quantity:       req.Quantity,
			UnitPriceCents: product.PriceCents,
		}
		if err := s.carts.Create(ctx, item); err != nil {
			if db.IsUniqueViolation(err, "cart_items_user_product_key") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "cart line already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart line")
		}
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cart line")
	}

	return nil
}

func (s *service) SetQuantity(ctx context.Context, userID uuid.UUID, productID string, req UpdateQuantityRequest) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	if req.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	item, err := s.carts.FindByUserProduct(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cart line")
	}

	if err := s.carts.UpdateQuantity(ctx, item.ID, req.Quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart line")
	}
	return nil
}

func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}

	affected, err := s.carts.DeleteByUserProduct(ctx, userID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.carts.DeleteAllForUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harikrishnagadicharla/unicart/pkg/db/models"
	pkgerrors "github.com/harikrishnagadicharla/unicart/pkg/errors"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the products controller.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResponse, error)
	Get(ctx context.Context, id string) (*ListItem, error)
}

type repository interface {
	List(ctx context.Context, params ListParams) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	RatingSummaries(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]types.RatingSummary, error)
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build a products service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a catalog read service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("products repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResponse, error) {
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	ratings, err := s.repo.RatingSummaries(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate ratings")
	}

	items := make([]ListItem, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		var rating *types.RatingSummary
		if summary, ok := ratings[row.ID]; ok {
			rating = &summary
		}
		items = append(items, ListItem{
			ProductSnapshot: SnapshotFromModel(row, rating),
			IsFeatured:      row.IsFeatured,
		})
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 24
	}

	return &ListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: params.Offset,
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (*ListItem, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	ratings, err := s.repo.RatingSummaries(ctx, []uuid.UUID{product.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate ratings")
	}
	var rating *types.RatingSummary
	if summary, ok := ratings[product.ID]; ok {
		rating = &summary
	}

	return &ListItem{
		ProductSnapshot: SnapshotFromModel(product, rating),
		IsFeatured:      product.IsFeatured,
	}, nil
}

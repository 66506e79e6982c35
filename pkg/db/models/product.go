package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents the canonical catalog listing. Stores never mutate a
// product; cart and wishlist lines embed a snapshot taken at add time.
type Product struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name                string         `gorm:"column:name;not null"`
	Slug                string         `gorm:"column:slug;not null;uniqueIndex"`
	Description         *string        `gorm:"column:description"`
	Brand               string         `gorm:"column:brand;not null;default:''"`
	PriceCents          int64          `gorm:"column:price_cents;not null"`
	CompareAtPriceCents *int64         `gorm:"column:compare_at_price_cents"`
	StockQuantity       int            `gorm:"column:stock_quantity;not null;default:0"`
	IsActive            bool           `gorm:"column:is_active;not null;default:true"`
	IsFeatured          bool           `gorm:"column:is_featured;not null;default:false"`
	Images              []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews             []Review       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the canonical catalog listing. Price is stored in minor
// currency units; money never touches floating point.
type Product struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Title       string         `gorm:"column:title;not null"`
	Slug        string         `gorm:"column:slug;not null;uniqueIndex:products_slug_key"`
	Description string         `gorm:"column:description;not null;default:''"`
	PriceCents  int            `gorm:"column:price_cents;not null"`
	Active      bool           `gorm:"column:active;not null;default:true"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage stores ordered imagery for a product. Exactly one of URL
// (external link) or FileKey (uploaded object reference) is set.
type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	URL       *string   `gorm:"column:url"`
	FileKey   *string   `gorm:"column:file_key"`
	IsPrimary bool      `gorm:"column:is_primary;not null;default:false"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

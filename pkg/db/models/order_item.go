package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is one product/quantity pairing inside an order.
// PriceCentsAtPurchase is a snapshot taken when the order was created and is
// immutable regardless of later price changes on the product.
type OrderItem struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID              uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID            uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Product              *Product  `gorm:"foreignKey:ProductID"`
	Quantity             int       `gorm:"column:quantity;not null"`
	PriceCentsAtPurchase int       `gorm:"column:price_cents_at_purchase;not null"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
}

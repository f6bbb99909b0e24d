package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/charmworks/charm-catalog-backend/pkg/enums"
)

// Order is a customer's captured order request together with its line items.
// TotalCents is always recomputed from the items, never edited directly.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CustomerName    string              `gorm:"column:customer_name;not null"`
	CustomerPhone   string              `gorm:"column:customer_phone;not null"`
	CustomerEmail   *string             `gorm:"column:customer_email"`
	CustomerAddress *string             `gorm:"column:customer_address"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;not null;default:'cash_on_delivery'"`
	Status          enums.OrderStatus   `gorm:"column:status;not null;default:'new'"`
	TotalCents      int                 `gorm:"column:total_cents;not null"`
	Notes           *string             `gorm:"column:notes"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

package orders

import (
	"time"

	"github.com/charmworks/charm-catalog-backend/internal/catalog"
	"github.com/charmworks/charm-catalog-backend/pkg/db/models"
	"github.com/google/uuid"
)

// OrderDTO is the API projection of a captured order.
type OrderDTO struct {
	ID              uuid.UUID      `json:"id"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerEmail   *string        `json:"customer_email"`
	CustomerAddress *string        `json:"customer_address"`
	PaymentMethod   string         `json:"payment_method"`
	Status          string         `json:"status"`
	TotalCents      int            `json:"total_cents"`
	Notes           *string        `json:"notes"`
	Items           []OrderItemDTO `json:"order_items"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// OrderItemDTO carries the immutable price snapshot next to the product's
// current catalog state.
type OrderItemDTO struct {
	ID                   uuid.UUID           `json:"id"`
	OrderID              uuid.UUID           `json:"order_id"`
	ProductID            uuid.UUID           `json:"product_id"`
	Product              *catalog.ProductDTO `json:"product"`
	Quantity             int                 `json:"quantity"`
	PriceCentsAtPurchase int                 `json:"price_cents_at_purchase"`
	CreatedAt            time.Time           `json:"created_at"`
}

func toOrderDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:              order.ID,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerEmail:   order.CustomerEmail,
		CustomerAddress: order.CustomerAddress,
		PaymentMethod:   order.PaymentMethod.String(),
		Status:          order.Status.String(),
		TotalCents:      order.TotalCents,
		Notes:           order.Notes,
		Items:           make([]OrderItemDTO, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	for _, item := range order.Items {
		itemDTO := OrderItemDTO{
			ID:                   item.ID,
			OrderID:              item.OrderID,
			ProductID:            item.ProductID,
			Quantity:             item.Quantity,
			PriceCentsAtPurchase: item.PriceCentsAtPurchase,
			CreatedAt:            item.CreatedAt,
		}
		if item.Product != nil {
			itemDTO.Product = catalog.NewProductDTO(item.Product)
		}
		dto.Items = append(dto.Items, itemDTO)
	}
	return dto
}

func toOrderDTOs(orders []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *toOrderDTO(&orders[i]))
	}
	return dtos
}

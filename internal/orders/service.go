package orders

import (
	"context"
	"strings"

	"github.com/charmworks/charm-catalog-backend/pkg/db"
	"github.com/charmworks/charm-catalog-backend/pkg/db/models"
	"github.com/charmworks/charm-catalog-backend/pkg/enums"
	pkgerrors "github.com/charmworks/charm-catalog-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// priceSnapshotter reads the current unit price of an active product within
// the caller's transaction.
type priceSnapshotter interface {
	SnapshotPrice(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int, error)
}

// Service exposes order capture and the read-side query surface.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context) ([]OrderDTO, error)
}

// CreateOrderInput holds the validated payload to capture an order.
// Status is never caller-settable; new orders always start as "new".
type CreateOrderInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	CustomerAddress *string
	PaymentMethod   *string
	Notes           *string
	Items           []OrderItemInput
}

// OrderItemInput is one cart line. Duplicate product IDs across lines are
// allowed and persisted independently.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type service struct {
	repo                 *Repository
	dbClient             *db.Client
	prices               priceSnapshotter
	defaultPaymentMethod enums.PaymentMethod
}

// NewService wires the order service with its persistence dependencies.
func NewService(repo *Repository, dbClient *db.Client, prices priceSnapshotter, defaultPaymentMethod string) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repository is required")
	}
	if dbClient == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client is required")
	}
	if prices == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "price snapshotter is required")
	}
	method, err := enums.ParsePaymentMethod(defaultPaymentMethod)
	if err != nil {
		method = enums.PaymentMethodCashOnDelivery
	}
	return &service{repo: repo, dbClient: dbClient, prices: prices, defaultPaymentMethod: method}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_name is required")
	}
	phone := strings.TrimSpace(input.CustomerPhone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_phone is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}
	for i, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required").
				WithDetails(map[string]any{"index": i})
		}
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer").
				WithDetails(map[string]any{"index": i})
		}
	}

	method := s.defaultPaymentMethod
	if input.PaymentMethod != nil && strings.TrimSpace(*input.PaymentMethod) != "" {
		parsed, err := enums.ParsePaymentMethod(strings.TrimSpace(*input.PaymentMethod))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown payment_method")
		}
		method = parsed
	}

	var orderID uuid.UUID
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		total := 0
		items := make([]models.OrderItem, 0, len(input.Items))
		for i, line := range input.Items {
			price, err := s.prices.SnapshotPrice(ctx, tx, line.ProductID)
			if err != nil {
				if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeProductUnavailable {
					return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "product not found or inactive").
						WithDetails(map[string]any{"index": i, "product_id": line.ProductID.String()})
				}
				return err
			}
			total += line.Quantity * price
			items = append(items, models.OrderItem{
				ProductID:            line.ProductID,
				Quantity:             line.Quantity,
				PriceCentsAtPurchase: price,
			})
		}
		if total <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "order total must be positive")
		}

		order := &models.Order{
			CustomerName:    name,
			CustomerPhone:   phone,
			CustomerEmail:   input.CustomerEmail,
			CustomerAddress: input.CustomerAddress,
			PaymentMethod:   method,
			Status:          enums.OrderStatusNew,
			TotalCents:      total,
			Notes:           input.Notes,
		}
		if err := txRepo.CreateOrder(ctx, order); err != nil {
			return err
		}
		if err := txRepo.CreateOrderItems(ctx, order.ID, items); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(order), nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(order), nil
}

func (s *service) ListOrders(ctx context.Context) ([]OrderDTO, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderDTOs(orders), nil
}

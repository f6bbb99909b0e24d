package orders

import (
	"context"
	"testing"
	"time"

	"github.com/charmworks/charm-catalog-backend/internal/catalog"
	"github.com/charmworks/charm-catalog-backend/pkg/db"
	"github.com/charmworks/charm-catalog-backend/pkg/db/models"
	pkgerrors "github.com/charmworks/charm-catalog-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := setupOrdersTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), catalog.NewRepository(conn), "cash_on_delivery")
	require.NoError(t, err)
	return svc, conn
}

func TestCreateOrderComputesTotalAndSnapshotsPrices(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	rose := mustCreateTestProduct(t, conn, "Rose Bouquet", 2000, true)
	tulip := mustCreateTestProduct(t, conn, "Tulip Mix", 1000, true)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{
		CustomerName:  "Ada Lovelace",
		CustomerPhone: "+1 555 0100",
		CustomerEmail: strptr("ada@example.com"),
		Items: []OrderItemInput{
			{ProductID: rose.ID, Quantity: 2},
			{ProductID: tulip.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "new", order.Status)
	assert.Equal(t, "cash_on_delivery", order.PaymentMethod)
	assert.Equal(t, 5000, order.TotalCents)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		require.NotNil(t, item.Product, "items come back with current product detail")
		assert.Equal(t, order.ID, item.OrderID)
	}
}

func TestCreateOrderPriceSnapshotSurvivesPriceChange(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	rose := mustCreateTestProduct(t, conn, "Rose Bouquet", 2000, true)
	order, err := svc.CreateOrder(ctx, CreateOrderInput{
		CustomerName:  "Ada Lovelace",
		CustomerPhone: "+1 555 0100",
		Items:         []OrderItemInput{{ProductID: rose.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, conn.Model(&models.Product{}).
		Where("id = ?", rose.ID).
		Update("price_cents", 9999).Error)

	reloaded, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 2000, reloaded.Items[0].PriceCentsAtPurchase, "snapshot is immutable")
	assert.Equal(t, 2000, reloaded.TotalCents)
	require.NotNil(t, reloaded.Items[0].Product)
	assert.Equal(t, 9999, reloaded.Items[0].Product.PriceCents, "nested product shows current state")
}

func TestCreateOrderRejectsEmptyCartAndBadLines(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	rose := mustCreateTestProduct(t, conn, "Rose Bouquet", 2000, true)

	cases := []struct {
		name  string
		input CreateOrderInput
	}{
		{"blank name", CreateOrderInput{
			CustomerName: "  ", CustomerPhone: "+1 555 0100",
			Items: []OrderItemInput{{ProductID: rose.ID, Quantity: 1}},
		}},
		{"blank phone", CreateOrderInput{
			CustomerName: "Ada", CustomerPhone: "",
			Items: []OrderItemInput{{ProductID: rose.ID, Quantity: 1}},
		}},
		{"empty cart", CreateOrderInput{
			CustomerName: "Ada", CustomerPhone: "+1 555 0100",
		}},
		{"missing product id", CreateOrderInput{
			CustomerName: "Ada", CustomerPhone: "+1 555 0100",
			Items: []OrderItemInput{{Quantity: 1}},
		}},
		{"zero quantity", CreateOrderInput{
			CustomerName: "Ada", CustomerPhone: "+1 555 0100",
			Items: []OrderItemInput{{ProductID: rose.ID, Quantity: 0}},
		}},
		{"unknown payment method", CreateOrderInput{
			CustomerName: "Ada", CustomerPhone: "+1 555 0100",
			PaymentMethod: strptr("barter"),
			Items:         []OrderItemInput{{ProductID: rose.ID, Quantity: 1}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, tc.input)
			require.Error(t, err)
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
		})
	}
}

func TestCreateOrderAbortsWholeCartOnUnavailableProduct(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	rose := mustCreateTestProduct(t, conn, "Rose Bouquet", 2000, true)
	retired := mustCreateTestProduct(t, conn, "Retired", 500, false)

	_, err := svc.CreateOrder(ctx, CreateOrderInput{
		CustomerName:  "Ada Lovelace",
		CustomerPhone: "+1 555 0100",
		Items: []OrderItemInput{
			{ProductID: rose.ID, Quantity: 1},
			{ProductID: retired.ID, Quantity: 1},
		},
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	assert.Equal(t, "product not found or inactive", appErr.Message())

	var orderCount, itemCount int64
	require.NoError(t, conn.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, conn.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount, "no partial persistence")
	assert.Zero(t, itemCount, "no partial persistence")

	_, err = svc.CreateOrder(ctx, CreateOrderInput{
		CustomerName:  "Ada Lovelace",
		CustomerPhone: "+1 555 0100",
		Items:         []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.Error(t, err)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCreateOrderKeepsDuplicateProductLinesDistinct(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	rose := mustCreateTestProduct(t, conn, "Rose Bouquet", 2000, true)
	order, err := svc.CreateOrder(ctx, CreateOrderInput{
		CustomerName:  "Ada Lovelace",
		CustomerPhone: "+1 555 0100",
		Items: []OrderItemInput{
			{ProductID: rose.ID, Quantity: 1},
			{ProductID: rose.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2, "duplicate lines are not merged")
	assert.Equal(t, 8000, order.TotalCents)
}

func TestGetOrderNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetOrder(context.Background(), uuid.New())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestListOrdersNewestFirst(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	rose := mustCreateTestProduct(t, conn, "Rose Bouquet", 2000, true)

	first, err := svc.CreateOrder(ctx, CreateOrderInput{
		CustomerName: "Ada", CustomerPhone: "+1 555 0100",
		Items: []OrderItemInput{{ProductID: rose.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, conn.Model(&models.Order{}).
		Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	second, err := svc.CreateOrder(ctx, CreateOrderInput{
		CustomerName: "Grace", CustomerPhone: "+1 555 0101",
		Items: []OrderItemInput{{ProductID: rose.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	listed, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
	require.Len(t, listed[0].Items, 1)
	require.NotNil(t, listed[0].Items[0].Product)
}

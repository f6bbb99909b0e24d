package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	ordersvc "github.com/charmworks/charm-catalog-backend/internal/orders"
	pkgerrors "github.com/charmworks/charm-catalog-backend/pkg/errors"
)

type stubOrderService struct {
	created *ordersvc.CreateOrderInput
	order   *ordersvc.OrderDTO
	orders  []ordersvc.OrderDTO
	err     error
}

func (s *stubOrderService) CreateOrder(_ context.Context, input ordersvc.CreateOrderInput) (*ordersvc.OrderDTO, error) {
	s.created = &input
	return s.order, s.err
}

func (s *stubOrderService) GetOrder(_ context.Context, _ uuid.UUID) (*ordersvc.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubOrderService) ListOrders(_ context.Context) ([]ordersvc.OrderDTO, error) {
	return s.orders, s.err
}

func TestCreateOrderController(t *testing.T) {
	logg := testLogger()
	productID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubOrderService{order: &ordersvc.OrderDTO{Status: "new", TotalCents: 5000}}
		body := `{"customer_name":"Ada","customer_phone":"+1 555 0100","items":[{"product_id":"` + productID.String() + `","quantity":2}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.created == nil || len(stub.created.Items) != 1 {
			t.Fatalf("service received wrong input: %+v", stub.created)
		}
		if stub.created.Items[0].ProductID != productID || stub.created.Items[0].Quantity != 2 {
			t.Fatalf("item not forwarded: %+v", stub.created.Items[0])
		}
	})

	t.Run("empty items", func(t *testing.T) {
		stub := &stubOrderService{}
		body := `{"customer_name":"Ada","customer_phone":"+1 555 0100","items":[]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
		if stub.created != nil {
			t.Fatalf("service should not be called for empty cart")
		}
	})

	t.Run("malformed product id", func(t *testing.T) {
		stub := &stubOrderService{}
		body := `{"customer_name":"Ada","customer_phone":"+1 555 0100","items":[{"product_id":"nope","quantity":1}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})

	t.Run("unavailable product maps to 400", func(t *testing.T) {
		stub := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeValidation, "product not found or inactive")}
		body := `{"customer_name":"Ada","customer_phone":"+1 555 0100","items":[{"product_id":"` + productID.String() + `","quantity":1}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})
}

func TestGetOrderController(t *testing.T) {
	logg := testLogger()

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders/nope", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", "nope")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		GetOrder(&stubOrderService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+id.String(), nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", id.String())
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		GetOrder(&stubOrderService{err: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 got %d", rec.Code)
		}
	})
}

func TestListOrdersController(t *testing.T) {
	stub := &stubOrderService{orders: []ordersvc.OrderDTO{{Status: "new"}}}
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	ListOrders(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

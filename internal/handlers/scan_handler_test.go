package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/models"
	"stockqr/internal/services"
)

// --- mock scan service ---

type mockScanService struct {
	resolveFn func(text string) (*models.ProductView, bool)
	confirmFn func(productID string, mode models.MovementType, quantity int) (*models.Product, *models.Transaction, error)
}

func (m *mockScanService) Resolve(_ context.Context, text string) (*models.ProductView, bool) {
	if m.resolveFn != nil {
		return m.resolveFn(text)
	}
	return nil, false
}

func (m *mockScanService) Confirm(_ context.Context, productID string, mode models.MovementType, quantity int) (*models.Product, *models.Transaction, error) {
	if m.confirmFn != nil {
		return m.confirmFn(productID, mode, quantity)
	}
	return &models.Product{ID: productID}, &models.Transaction{ProductID: productID, Type: mode}, nil
}

var _ services.ScanServicer = (*mockScanService)(nil)

func setupScanRouter(handler *ScanHandler) *gin.Engine {
	r := gin.New()
	r.POST("/scan/resolve", handler.Resolve)
	r.POST("/scan/confirm", handler.Confirm)
	return r
}

func TestScanHandler_Resolve(t *testing.T) {
	t.Run("returns the matched product", func(t *testing.T) {
		var gotText string
		svc := &mockScanService{
			resolveFn: func(text string) (*models.ProductView, bool) {
				gotText = text
				return &models.ProductView{Product: models.Product{ID: "p1", QRCode: "PRD-p1"}}, true
			},
		}
		r := setupScanRouter(NewScanHandler(svc))

		rec := doRequest(r, "POST", "/scan/resolve", `{"text":"PRD-p1"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotText != "PRD-p1" {
			t.Errorf("expected text forwarded verbatim, got %q", gotText)
		}
		if parseJSON(t, rec)["product"].(map[string]interface{})["id"] != "p1" {
			t.Errorf("expected product p1")
		}
	})

	t.Run("returns 404 when nothing matches", func(t *testing.T) {
		r := setupScanRouter(NewScanHandler(&mockScanService{}))

		rec := doRequest(r, "POST", "/scan/resolve", `{"text":"garbage"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PRODUCT_NOT_FOUND")
	})

	t.Run("returns 400 on missing text", func(t *testing.T) {
		r := setupScanRouter(NewScanHandler(&mockScanService{}))

		rec := doRequest(r, "POST", "/scan/resolve", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestScanHandler_Confirm(t *testing.T) {
	t.Run("forwards mode and quantity", func(t *testing.T) {
		var gotMode models.MovementType
		gotQty := -1
		svc := &mockScanService{
			confirmFn: func(productID string, mode models.MovementType, quantity int) (*models.Product, *models.Transaction, error) {
				gotMode, gotQty = mode, quantity
				return &models.Product{ID: productID}, &models.Transaction{Type: mode, Quantity: 1}, nil
			},
		}
		r := setupScanRouter(NewScanHandler(svc))

		rec := doRequest(r, "POST", "/scan/confirm", `{"productId":"p1","mode":"out"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotMode != models.MovementOut {
			t.Errorf("expected out, got %q", gotMode)
		}
		if gotQty != 0 {
			t.Errorf("expected omitted quantity to arrive as 0, got %d", gotQty)
		}
	})

	t.Run("returns 400 on unknown mode", func(t *testing.T) {
		r := setupScanRouter(NewScanHandler(&mockScanService{}))

		rec := doRequest(r, "POST", "/scan/confirm", `{"productId":"p1","mode":"both","quantity":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on insufficient stock", func(t *testing.T) {
		svc := &mockScanService{
			confirmFn: func(string, models.MovementType, int) (*models.Product, *models.Transaction, error) {
				return nil, nil, apperrors.ErrInsufficientStock
			},
		}
		r := setupScanRouter(NewScanHandler(svc))

		rec := doRequest(r, "POST", "/scan/confirm", `{"productId":"p1","mode":"out","quantity":5}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

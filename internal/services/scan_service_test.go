package services

import (
	"context"
	"testing"

	"stockqr/internal/models"
	"stockqr/internal/qr"
	"stockqr/internal/testutil"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()
	s, _ := testutil.SetupTestStore(t)
	svc := NewScanService(s, NewStockService(s, 0), 10)
	cat := testutil.CreateTestCategory(t, s)
	byID := testutil.CreateTestProduct(t, s, cat.ID)
	byCode := testutil.CreateTestProduct(t, s, cat.ID)

	t.Run("id_takes_precedence", func(t *testing.T) {
		text := `{"id":"` + byID.ID + `","qrCode":"` + byCode.QRCode + `"}`
		view, found := svc.Resolve(ctx, text)
		if !found || view.ID != byID.ID {
			t.Fatalf("expected %s, got %+v", byID.ID, view)
		}
		if view.CategoryName != cat.Name {
			t.Errorf("expected category name %s, got %s", cat.Name, view.CategoryName)
		}
	})

	t.Run("falls_back_to_qr_code", func(t *testing.T) {
		text := `{"id":"unknown","qrCode":"` + byCode.QRCode + `"}`
		view, found := svc.Resolve(ctx, text)
		if !found || view.ID != byCode.ID {
			t.Fatalf("expected %s, got %+v", byCode.ID, view)
		}
	})

	t.Run("non_string_fields_are_ignored", func(t *testing.T) {
		text := `{"id":"` + byID.ID + `","qrCode":"` + byCode.QRCode + `","name":123}`
		view, found := svc.Resolve(ctx, text)
		if !found || view.ID != byID.ID {
			t.Fatalf("expected %s, got %+v", byID.ID, view)
		}
	})

	t.Run("numeric_id_falls_back_to_qr_code", func(t *testing.T) {
		text := `{"id":42,"qrCode":"` + byCode.QRCode + `"}`
		view, found := svc.Resolve(ctx, text)
		if !found || view.ID != byCode.ID {
			t.Fatalf("expected %s, got %+v", byCode.ID, view)
		}
	})

	t.Run("plain_text_is_qr_code", func(t *testing.T) {
		view, found := svc.Resolve(ctx, byCode.QRCode)
		if !found || view.ID != byCode.ID {
			t.Fatalf("expected %s, got %+v", byCode.ID, view)
		}
	})

	t.Run("generated_payload", func(t *testing.T) {
		text, err := qr.PayloadFor(*byID).Encode()
		testutil.AssertNoError(t, err)
		view, found := svc.Resolve(ctx, text)
		if !found || view.ID != byID.ID {
			t.Fatalf("expected %s, got %+v", byID.ID, view)
		}
	})

	t.Run("no_match", func(t *testing.T) {
		if _, found := svc.Resolve(ctx, "PRD-nothing"); found {
			t.Error("expected no match")
		}
		if _, found := svc.Resolve(ctx, `{"name":"only a name"}`); found {
			t.Error("expected no match for payload without id or qrCode")
		}
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("zero_quantity_counts_as_one", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewScanService(s, NewStockService(s, 0), 10)
		cat := testutil.CreateTestCategory(t, s)
		p := testutil.CreateTestProduct(t, s, cat.ID)

		product, tx, err := svc.Confirm(ctx, p.ID, models.MovementIn, 0)
		testutil.AssertNoError(t, err)
		if product.Stock != 1 || tx.Quantity != 1 {
			t.Errorf("expected one unit, got stock %d qty %d", product.Stock, tx.Quantity)
		}
		if tx.Notes != ScanNotes {
			t.Errorf("expected notes %q, got %q", ScanNotes, tx.Notes)
		}
	})

	t.Run("out_guard", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewScanService(s, NewStockService(s, 0), 10)
		cat := testutil.CreateTestCategory(t, s)
		p := testutil.CreateTestProductWithStock(t, s, cat.ID, 2)

		_, _, err := svc.Confirm(ctx, p.ID, models.MovementOut, 3)
		testutil.AssertAppError(t, err, "INSUFFICIENT_STOCK")
	})

	t.Run("unknown_product", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewScanService(s, NewStockService(s, 0), 10)

		_, _, err := svc.Confirm(ctx, "missing", models.MovementIn, 1)
		testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
	})
}

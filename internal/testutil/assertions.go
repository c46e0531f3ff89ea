package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/models"
	"stockqr/internal/store"
)

// AssertAppError checks that err is an *AppError carrying code. Handlers
// render the status as-is, so a matching error must also carry one.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()

	appErr := requireAppError(t, err, code)
	if appErr.Code != code {
		t.Errorf("error code = %q (%s), want %q", appErr.Code, appErr.Message, code)
	}
	if appErr.StatusCode == 0 {
		t.Errorf("error %q has no HTTP status", appErr.Code)
	}
}

// AssertErrorIs checks err against a sentinel by code and HTTP status.
func AssertErrorIs(t *testing.T, err error, sentinel *apperrors.AppError) {
	t.Helper()

	appErr := requireAppError(t, err, sentinel.Code)
	if !errors.Is(err, sentinel) {
		t.Errorf("error code = %q, want %q", appErr.Code, sentinel.Code)
	}
	if appErr.StatusCode != sentinel.StatusCode {
		t.Errorf("%s: status = %d, want %d", appErr.Code, appErr.StatusCode, sentinel.StatusCode)
	}
}

func requireAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected %s, got %T: %v", code, err, err)
	}
	return appErr
}

// AssertNoError fails the test if err is not nil. Application errors are
// reported with their code and the storage error they wrap.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		return
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		t.Fatalf("unexpected %s: %s (internal: %v)", appErr.Code, appErr.Message, appErr.Internal)
	}
	t.Fatalf("unexpected error: %v", err)
}

// AssertCounters checks the stored stock counters of a product and that
// stock still equals totalIn - totalOut. It returns the stored product.
func AssertCounters(t *testing.T, s *store.Store, productID string, stock, totalIn, totalOut int) models.Product {
	t.Helper()

	p, found := s.Products.FindByID(context.Background(), productID)
	if !found {
		t.Fatalf("product %s not stored", productID)
	}
	if p.Stock != stock || p.TotalIn != totalIn || p.TotalOut != totalOut {
		t.Errorf("counters = %d/%d/%d, want %d/%d/%d", p.Stock, p.TotalIn, p.TotalOut, stock, totalIn, totalOut)
	}
	if p.Stock != p.TotalIn-p.TotalOut {
		t.Errorf("stock %d != totalIn %d - totalOut %d", p.Stock, p.TotalIn, p.TotalOut)
	}
	return p
}

// AssertLogLength checks how many transactions the log holds.
func AssertLogLength(t *testing.T, s *store.Store, want int) {
	t.Helper()

	if got := len(s.Transactions.List(context.Background())); got != want {
		t.Errorf("transaction log has %d entries, want %d", got, want)
	}
}

// AssertDecimal compares a money value against its decimal text.
func AssertDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("got %s, want %s", got.String(), want)
	}
}

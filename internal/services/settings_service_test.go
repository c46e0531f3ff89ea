package services

import (
	"context"
	"testing"

	"stockqr/internal/models"
	"stockqr/internal/testutil"
)

func TestSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("empty_by_default", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewSettingsService(s)

		got, err := svc.GetSettings(ctx)
		testutil.AssertNoError(t, err)
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty settings, got %v", got)
		}
	})

	t.Run("save_and_read", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewSettingsService(s)

		_, err := svc.SaveSettings(ctx, models.Settings{"currency": "SAR", "lowStockAlerts": true})
		testutil.AssertNoError(t, err)

		got, err := svc.GetSettings(ctx)
		testutil.AssertNoError(t, err)
		if got["currency"] != "SAR" || got["lowStockAlerts"] != true {
			t.Errorf("unexpected settings: %v", got)
		}
	})

	t.Run("storage_failure", func(t *testing.T) {
		s, backend := testutil.SetupTestStore(t)
		svc := NewSettingsService(s)
		backend.FailWrites(true)

		_, err := svc.SaveSettings(ctx, models.Settings{"a": 1})
		testutil.AssertAppError(t, err, "STORAGE_FAILURE")
	})
}

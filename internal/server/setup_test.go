package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"stockqr/internal/config"
	"stockqr/internal/logger"
	"stockqr/internal/qr"
	"stockqr/internal/store"
	"stockqr/internal/testutil"
	"stockqr/internal/validator"
)

// testApp holds the full application stack for flow tests.
type testApp struct {
	Store   *store.Store
	Backend *testutil.FlakyStore
	Router  *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func newTestApp(s *store.Store) *gin.Engine {
	cfg := config.Default()
	renderer := qr.NewPNGRenderer(qr.Options{
		Size:       cfg.QRSize,
		Foreground: cfg.QRForeground,
		Background: cfg.QRBackground,
	})
	return New(NewServices(s, cfg, renderer))
}

// setupApp creates a full application stack over an in-memory backend.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	s, backend := testutil.SetupTestStore(t)
	return &testApp{Store: s, Backend: backend, Router: newTestApp(s)}
}

// setupSQLApp creates a full application stack over in-memory SQLite.
func setupSQLApp(t *testing.T) *testApp {
	t.Helper()

	s, db := testutil.SetupSQLStore(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return &testApp{Store: s, Router: newTestApp(s)}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	return errObj["code"].(string)
}

// createCategory creates a category through the API and returns its id.
func (app *testApp) createCategory(t *testing.T, name string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/categories", fmt.Sprintf(`{"name":%q}`, name))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["category"].(map[string]interface{})["id"].(string)
}

// createProduct creates a product through the API and returns it.
func (app *testApp) createProduct(t *testing.T, categoryID, name, extra string) map[string]interface{} {
	t.Helper()
	body := fmt.Sprintf(`{"categoryId":%q,"name":%q%s}`, categoryID, name, extra)
	rec := app.request("POST", "/api/v1/products", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["product"].(map[string]interface{})
}

// move posts a stock movement and returns the recorder.
func (app *testApp) move(direction, productID string, quantity int) *httptest.ResponseRecorder {
	return app.request("POST", "/api/v1/stock/"+direction,
		fmt.Sprintf(`{"productId":%q,"quantity":%d}`, productID, quantity))
}

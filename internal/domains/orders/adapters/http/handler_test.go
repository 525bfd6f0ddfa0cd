package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/orderstack/inventory-service/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/orderstack/inventory-service/internal/domains/catalog/domain"
	ordersmemory "github.com/orderstack/inventory-service/internal/domains/orders/adapters/memory"
	"github.com/orderstack/inventory-service/internal/domains/orders/application"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := catalogmemory.NewRepository()
	for _, p := range []struct {
		desc  string
		price float64
		stock int64
	}{
		{"Laptop", 999.99, 10},
		{"Mouse", 24.99, 2},
	} {
		product, err := catalogdomain.NewProduct(0, p.desc, p.price, p.stock)
		require.NoError(t, err)
		_, err = catalog.Save(t.Context(), product)
		require.NoError(t, err)
	}

	service := application.NewService(ordersmemory.NewRepository(), catalog)
	router := gin.New()
	NewHandler(service).Register(router)
	return router
}

func TestFulfillEndpoint_CreatesOrder(t *testing.T) {
	router := newTestRouter(t)

	body := `{"lines":[{"productId":1,"quantity":2},{"productId":2,"quantity":1}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)
	assert.Contains(t, rec.Body.String(), `"unitPrice":999.99`)
}

func TestFulfillEndpoint_InsufficientStockIsConflict(t *testing.T) {
	router := newTestRouter(t)

	body := `{"lines":[{"productId":2,"quantity":5}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient-stock")
}

func TestFulfillEndpoint_MalformedRequestIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	body := `{"lines":[{"productId":1,"quantity":0}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFulfillEndpoint_UnknownProductIsNotFound(t *testing.T) {
	router := newTestRouter(t)

	body := `{"lines":[{"productId":99,"quantity":1}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderEndpoint_UnknownIDIsNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

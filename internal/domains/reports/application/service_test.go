package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/orderstack/inventory-service/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/orderstack/inventory-service/internal/domains/catalog/domain"
	ordersmemory "github.com/orderstack/inventory-service/internal/domains/orders/adapters/memory"
	ordersdomain "github.com/orderstack/inventory-service/internal/domains/orders/domain"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func seedCatalog(t *testing.T, repo *catalogmemory.Repository) {
	t.Helper()
	for _, p := range []struct {
		desc  string
		price float64
		stock int64
	}{
		{"Laptop", 999.99, 10},
		{"Mouse", 24.99, 3},
		{"Webcam", 59.99, 0},
	} {
		product, err := catalogdomain.NewProduct(0, p.desc, p.price, p.stock)
		require.NoError(t, err)
		_, err = repo.Save(context.Background(), product)
		require.NoError(t, err)
	}
}

func TestGenerate_InventoryReport(t *testing.T) {
	catalog := catalogmemory.NewRepository()
	seedCatalog(t, catalog)
	svc := NewService(catalog, ordersmemory.NewRepository(), WithClock(fixedClock))

	report, err := svc.Generate(context.Background(), "inventory")
	require.NoError(t, err)

	assert.Contains(t, report, "INVENTORY REPORT")
	assert.Contains(t, report, "Products:       3")
	assert.Contains(t, report, "Units on hand:  13")
	assert.Contains(t, report, "Low stock:      1")
	assert.Contains(t, report, "Out of stock:   1")
	assert.Contains(t, report, "(LOW)")
	assert.Contains(t, report, "(OUT)")
	assert.Contains(t, report, "2025-06-01T12:00:00Z")
}

func TestGenerate_SalesReport(t *testing.T) {
	orders := ordersmemory.NewRepository()
	for _, lines := range [][]ordersdomain.Line{
		{{ProductID: 1, Quantity: 2, UnitPrice: 999.99}},
		{{ProductID: 1, Quantity: 1, UnitPrice: 999.99}, {ProductID: 2, Quantity: 4, UnitPrice: 24.99}},
	} {
		order := &ordersdomain.Order{
			Reference: "ref",
			Lines:     lines,
			Status:    ordersdomain.StatusCompleted,
			PlacedAt:  fixedClock(),
		}
		_, err := orders.Create(context.Background(), order)
		require.NoError(t, err)
	}

	svc := NewService(catalogmemory.NewRepository(), orders, WithClock(fixedClock))

	report, err := svc.Generate(context.Background(), "sales")
	require.NoError(t, err)

	assert.Contains(t, report, "SALES REPORT")
	assert.Contains(t, report, "Orders:         2")
	assert.Contains(t, report, "Units sold:     7")
	assert.Contains(t, report, "Total revenue:  3099.93")
}

func TestGenerate_UnknownKind(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository(), ordersmemory.NewRepository())

	_, err := svc.Generate(context.Background(), "payroll")
	require.ErrorIs(t, err, ErrUnknownReport)
}

package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderstack/inventory-service/internal/domains/catalog/domain"
	"github.com/orderstack/inventory-service/internal/domains/catalog/ports"
)

func seedProduct(t *testing.T, repo *Repository, description string, price float64, stock int64) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(0, description, price, stock)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func TestSave_AssignsIDs(t *testing.T) {
	repo := NewRepository()
	first := seedProduct(t, repo, "Widget", 5.00, 10)
	second := seedProduct(t, repo, "Gadget", 9.99, 3)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestGetByID_ReturnsClone(t *testing.T) {
	repo := NewRepository()
	saved := seedProduct(t, repo, "Widget", 5.00, 10)

	fetched, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	fetched.Stock = 999

	again, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), again.Stock, "mutating a returned product must not leak into the store")
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewRepository()
	_, err := repo.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAdjustStock_RefusesNegativeResult(t *testing.T) {
	repo := NewRepository()
	saved := seedProduct(t, repo, "Widget", 5.00, 10)

	newStock, err := repo.AdjustStock(context.Background(), saved.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), newStock)

	_, err = repo.AdjustStock(context.Background(), saved.ID, -1)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	fetched, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fetched.Stock, "a refused adjustment must leave the row untouched")
}

func TestAdjustStock_UnknownProduct(t *testing.T) {
	repo := NewRepository()
	_, err := repo.AdjustStock(context.Background(), 42, -1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAdjustStock_NeverDrivesStockNegativeUnderConcurrency(t *testing.T) {
	repo := NewRepository()
	saved := seedProduct(t, repo, "Widget", 5.00, 100)

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AdjustStock(context.Background(), saved.ID, -3); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	fetched, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, fetched.Stock, int64(0))
	assert.Equal(t, int64(100-succeeded*3), fetched.Stock)
	assert.Equal(t, 33, succeeded, "only 33 debits of 3 fit into 100 units")
}

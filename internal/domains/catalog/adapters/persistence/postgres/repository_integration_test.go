//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/orderstack/inventory-service/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/orderstack/inventory-service/internal/domains/catalog/domain"
	"github.com/orderstack/inventory-service/internal/domains/catalog/ports"
	"github.com/orderstack/inventory-service/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("inventory_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedProduct(t *testing.T, repo ports.Repository, description string, price float64, stock int64) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(0, description, price, stock)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	saved := seedProduct(t, repo, "Laptop", 999.99, 10)
	assert.NotZero(t, saved.ID)

	retrieved, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", retrieved.Description)
	assert.Equal(t, 999.99, retrieved.Price)
	assert.Equal(t, int64(10), retrieved.Stock)

	_, err = repo.GetByID(context.Background(), saved.ID+100)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_List(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	seedProduct(t, repo, "Laptop", 999.99, 10)
	seedProduct(t, repo, "Mouse", 24.99, 3)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPostgresRepository_AdjustStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	saved := seedProduct(t, repo, "Webcam", 59.99, 10)
	ctx := context.Background()

	remaining, err := repo.AdjustStock(ctx, saved.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), remaining)

	remaining, err = repo.AdjustStock(ctx, saved.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(8), remaining)

	_, err = repo.AdjustStock(ctx, saved.ID, -9)
	assert.ErrorIs(t, err, ports.ErrInsufficientStock)

	retrieved, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), retrieved.Stock)

	_, err = repo.AdjustStock(ctx, saved.ID+100, -1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_AdjustStockConcurrently(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	saved := seedProduct(t, repo, "SSD", 120.00, 100)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	var succeeded int

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AdjustStock(ctx, saved.ID, -3); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// 100 units cover exactly 33 debits of 3.
	assert.Equal(t, 33, succeeded)

	retrieved, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), retrieved.Stock)
}

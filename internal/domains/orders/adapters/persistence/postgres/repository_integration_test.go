//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderspostgres "github.com/orderstack/inventory-service/internal/domains/orders/adapters/persistence/postgres"
	"github.com/orderstack/inventory-service/internal/domains/orders/domain"
	"github.com/orderstack/inventory-service/internal/domains/orders/ports"
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

func buildOrder(lines []domain.Line) *domain.Order {
	return &domain.Order{
		Reference: uuid.NewString(),
		Lines:     lines,
		Status:    domain.StatusCompleted,
		PlacedAt:  time.Now().UTC(),
	}
}

func TestPostgresRepository_CreateAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, buildOrder([]domain.Line{
		{ProductID: 1, Quantity: 2, UnitPrice: 999.99},
		{ProductID: 2, Quantity: 1, UnitPrice: 24.99},
	}))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	retrieved, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Reference, retrieved.Reference)
	assert.Equal(t, domain.StatusCompleted, retrieved.Status)
	require.Len(t, retrieved.Lines, 2)
	assert.Equal(t, int64(2), retrieved.Lines[0].Quantity)
	assert.Equal(t, 999.99, retrieved.Lines[0].UnitPrice)

	_, err = repo.GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_ListPreservesLines(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, buildOrder([]domain.Line{
			{ProductID: int64(i + 1), Quantity: 1, UnitPrice: 10.00},
		}))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, order := range all {
		assert.Len(t, order.Lines, 1)
		assert.NotEmpty(t, order.Reference)
	}
}

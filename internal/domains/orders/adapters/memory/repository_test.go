package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderstack/inventory-service/internal/domains/orders/domain"
	"github.com/orderstack/inventory-service/internal/domains/orders/ports"
)

func sampleOrder() *domain.Order {
	return &domain.Order{
		Reference: "ref-123",
		Status:    domain.StatusCompleted,
		PlacedAt:  time.Now().UTC(),
		Lines: []domain.Line{
			{ProductID: 1, Quantity: 2, UnitPrice: 5.00},
			{ProductID: 2, Quantity: 1, UnitPrice: 9.99},
		},
	}
}

func TestCreate_AssignsSequentialIDs(t *testing.T) {
	repo := NewRepository()

	first, err := repo.Create(context.Background(), sampleOrder())
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreate_RejectsInvalidOrder(t *testing.T) {
	repo := NewRepository()

	_, err := repo.Create(context.Background(), &domain.Order{Status: domain.StatusCompleted})
	require.ErrorIs(t, err, domain.ErrNoLines)
}

func TestGetByID_ReturnsDeepClone(t *testing.T) {
	repo := NewRepository()
	created, err := repo.Create(context.Background(), sampleOrder())
	require.NoError(t, err)

	fetched, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	fetched.Lines[0].Quantity = 999

	again, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), again.Lines[0].Quantity)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewRepository()
	_, err := repo.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestList_ReturnsAllOrders(t *testing.T) {
	repo := NewRepository()
	for i := 0; i < 3; i++ {
		_, err := repo.Create(context.Background(), sampleOrder())
		require.NoError(t, err)
	}

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

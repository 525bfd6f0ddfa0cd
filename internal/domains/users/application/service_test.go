package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderstack/inventory-service/internal/domains/users/adapters/memory"
	"github.com/orderstack/inventory-service/internal/domains/users/domain"
	"github.com/orderstack/inventory-service/internal/domains/users/ports"
)

func seedUser(t *testing.T, repo ports.Repository, username, password string, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser(0, username, password, role)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), user)
	require.NoError(t, err)
	return saved
}

func TestLogin_Succeeds(t *testing.T) {
	repo := memory.NewRepository()
	seedUser(t, repo, "alice", "s3cret", domain.RoleAdmin)
	svc := NewService(repo)

	user, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := memory.NewRepository()
	seedUser(t, repo, "alice", "s3cret", domain.RoleAdmin)
	svc := NewService(repo)

	_, err := svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.Login(context.Background(), "nobody", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, domain.RoleAdmin.CanManageProducts())
	assert.True(t, domain.RoleAdmin.CanManageOrders())
	assert.True(t, domain.RoleAdmin.CanViewReport("sales"))
	assert.True(t, domain.RoleAdmin.CanViewReport("inventory"))

	assert.True(t, domain.RoleInventory.CanManageProducts())
	assert.False(t, domain.RoleInventory.CanManageOrders())
	assert.True(t, domain.RoleInventory.CanViewReport("inventory"))
	assert.False(t, domain.RoleInventory.CanViewReport("sales"))

	assert.False(t, domain.RoleSales.CanManageProducts())
	assert.True(t, domain.RoleSales.CanManageOrders())
	assert.True(t, domain.RoleSales.CanViewReport("sales"))
	assert.False(t, domain.RoleSales.CanViewReport("inventory"))
}

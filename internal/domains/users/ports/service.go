package ports

import (
	"context"

	"github.com/orderstack/inventory-service/internal/domains/users/domain"
)

// Service exposes login and role lookups to adapters.
type Service interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

package ports

import (
	"context"
	"errors"

	"github.com/orderstack/inventory-service/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")

// Repository persists operator accounts.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

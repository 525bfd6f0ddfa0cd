package application

import (
	"context"
	"errors"

	"github.com/orderstack/inventory-service/internal/domains/users/domain"
	"github.com/orderstack/inventory-service/internal/domains/users/ports"
)

// Service handles login and role lookups. Authorization itself is a pure
// permission check on the role; HTTP middleware consults it per route.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Login validates the credential pair and returns the matching account.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByUsername loads an account for authorization checks.
func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

var _ ports.Service = (*Service)(nil)

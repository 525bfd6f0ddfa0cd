package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/orderstack/inventory-service/internal/domains/users/domain"
	"github.com/orderstack/inventory-service/internal/domains/users/ports"
)

type userRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRecord) TableName() string { return "users" }

func toUserRecord(user *domain.User) *userRecord {
	return &userRecord{
		ID:       user.ID,
		Username: strings.ToLower(user.Username),
		Password: user.Password,
		Role:     string(user.Role),
	}
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:       r.ID,
		Username: r.Username,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// Repository stores operator accounts in Postgres.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	record := toUserRecord(user)
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var record userRecord
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("loading user %q: %w", username, err)
	}
	return record.toDomain(), nil
}

var _ ports.Repository = (*Repository)(nil)

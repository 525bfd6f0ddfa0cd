package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/orderstack/inventory-service/internal/domains/catalog/domain"
	"github.com/orderstack/inventory-service/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the product catalog in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog repository. Caller manages
// the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

// productRecord maps the product aggregate to a relational table.
type productRecord struct {
	ID          int64     `gorm:"primaryKey;column:id;autoIncrement"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	Stock       int64     `gorm:"column:stock"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at;index"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts a new catalog entry.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all products.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// AdjustStock applies the delta with a single conditional UPDATE, so the
// stock check and mutation are atomic on the database side. The row is left
// untouched when the result would be negative.
func (r *Repository) AdjustStock(ctx context.Context, id int64, delta int64) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var newStock int64
	row := r.db.WithContext(ctx).Raw(
		`UPDATE products SET stock = stock + ?, updated_at = NOW() WHERE id = ? AND stock + ? >= 0 RETURNING stock`,
		delta, id, delta,
	).Row()
	if err := row.Scan(&newStock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.classifyRejection(ctx, id)
		}
		return 0, err
	}
	return newStock, nil
}

// classifyRejection distinguishes a missing row from a refused decrement.
func (r *Repository) classifyRejection(ctx context.Context, id int64) (int64, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return product.Stock, ports.ErrInsufficientStock
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}

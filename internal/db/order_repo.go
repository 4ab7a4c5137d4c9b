package db

import (
	"context" // Request scoped context
	"errors"  // Error inspection

	"pizza_pos/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Association control
)

// OrderRepository stores finalized orders
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository returns a repository on db
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts o in a single transaction and fills in its ID
func (r *OrderRepository) CreateOrder(ctx context.Context, o *domain.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(o).Error // Never touch the users row
	})
	if err != nil {
		return domain.Persistence("create order", err)
	}
	return nil
}

// FindOrder loads one order with its items
func (r *OrderRepository) FindOrder(ctx context.Context, id uint) (domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Select("id", "COALESCE(user_id, 0) AS user_id", "items", "subtotal", "tax", "total", "created_at").
		First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, domain.Persistence("find order", err)
	}
	return o, nil
}

// ListOrders returns the latest orders, newest first. Orders of deleted
// accounts are kept and listed without a username.
func (r *OrderRepository) ListOrders(ctx context.Context, limit int) ([]domain.OrderSummary, error) {
	var out []domain.OrderSummary
	err := r.db.WithContext(ctx).
		Table("orders AS o").
		Select("o.id AS id, COALESCE(u.username, '') AS username, o.total AS total, o.created_at AS created_at").
		Joins("LEFT JOIN users u ON u.id = o.user_id").
		Order("o.created_at desc").Order("o.id desc").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, domain.Persistence("list orders", err)
	}
	return out, nil
}

// CountOrders returns the number of stored orders
func (r *OrderRepository) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&n).Error; err != nil {
		return 0, domain.Persistence("count orders", err)
	}
	return n, nil
}

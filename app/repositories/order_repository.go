package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/rakhshan/go-storefront/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status string) error
	GetAll(ctx context.Context, usernameFilter string) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
	SumTotalPrice(ctx context.Context) (decimal.Decimal, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("OrderItems.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, orderID string, status string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}

// GetAll returns every order, most recent first. A non-empty usernameFilter
// keeps only orders whose owner's username contains the filter substring.
func (r *gormOrderRepository) GetAll(ctx context.Context, usernameFilter string) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Joins("JOIN users ON users.id = orders.user_id")

	if usernameFilter != "" {
		query = query.Where("users.username LIKE ?", "%"+usernameFilter+"%")
	}

	var orders []models.Order
	err := query.
		Preload("User").
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Order("orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error
	return total, err
}

func (r *gormOrderRepository) SumTotalPrice(ctx context.Context) (decimal.Decimal, error) {
	var raw *string
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("SUM(total_price)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}

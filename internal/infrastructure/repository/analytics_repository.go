package repository

import (
	"context"
	"time"

	"github.com/zymoune/feedstore-api/internal/domain/entity"
	domainRepo "github.com/zymoune/feedstore-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetProductCounts(ctx context.Context) (*domainRepo.ProductCounts, error) {
	var counts domainRepo.ProductCounts

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) as total,
			COUNT(*) FILTER (WHERE is_active) as active,
			COUNT(*) FILTER (WHERE is_featured) as featured
		FROM products
		WHERE deleted_at IS NULL
	`).Scan(&counts).Error

	if err != nil {
		return nil, err
	}

	return &counts, nil
}

func (r *analyticsRepository) GetOrderRevenueBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = 'completed'
		AND deleted_at IS NULL
		AND order_date >= ? AND order_date <= ?
	`, start, end).Scan(&revenue).Error

	return revenue, err
}

func (r *analyticsRepository) GetOrderCountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE status = 'completed'
		AND deleted_at IS NULL
		AND order_date >= ? AND order_date <= ?
	`, start, end).Scan(&count).Error

	return count, err
}

func (r *analyticsRepository) GetRecentOrders(ctx context.Context, limit int) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

package repository

import (
	"context"
	"time"

	"github.com/zymoune/feedstore-api/internal/domain/entity"
)

// ProductCounts summarizes catalog size for the admin dashboard
type ProductCounts struct {
	Total    int64
	Active   int64
	Featured int64
}

// AnalyticsRepository defines interface for dashboard aggregation queries.
// The sales analytics merge itself lives in the sales service because its
// de-duplication rules cannot be expressed as a single aggregate query.
type AnalyticsRepository interface {
	// GetProductCounts returns catalog totals
	GetProductCounts(ctx context.Context) (*ProductCounts, error)

	// GetOrderRevenueBetween sums completed order totals in cents for a window
	GetOrderRevenueBetween(ctx context.Context, start, end time.Time) (int64, error)

	// GetOrderCountBetween counts completed orders for a window
	GetOrderCountBetween(ctx context.Context, start, end time.Time) (int64, error)

	// GetRecentOrders returns the latest orders with items preloaded
	GetRecentOrders(ctx context.Context, limit int) ([]entity.Order, error)
}

package service

import (
	"context"
	"time"

	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/repository"
)

// DashboardService provides the customer shop view and the admin overview
type DashboardService struct {
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	productRepo repository.ProductRepository,
	analyticsRepo repository.AnalyticsRepository,
) *DashboardService {
	return &DashboardService{
		productRepo:   productRepo,
		analyticsRepo: analyticsRepo,
	}
}

// CustomerDashboard is the shop landing view: featured products plus the
// active catalog grouped by animal type and category.
type CustomerDashboard struct {
	Featured []entity.Product                       `json:"featured"`
	Catalog  map[string]map[string][]entity.Product `json:"catalog"`
}

// GetCustomerDashboard returns the shop view for customers
func (s *DashboardService) GetCustomerDashboard(ctx context.Context) (*CustomerDashboard, error) {
	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &CustomerDashboard{
		Featured: make([]entity.Product, 0),
		Catalog:  make(map[string]map[string][]entity.Product),
	}

	for _, product := range products {
		if product.IsFeatured {
			dashboard.Featured = append(dashboard.Featured, product)
		}

		animal := product.AnimalType.String()
		category := product.Category.String()
		if dashboard.Catalog[animal] == nil {
			dashboard.Catalog[animal] = make(map[string][]entity.Product)
		}
		dashboard.Catalog[animal][category] = append(dashboard.Catalog[animal][category], product)
	}

	return dashboard, nil
}

// AdminDashboard is the management overview
type AdminDashboard struct {
	TotalProducts    int64            `json:"total_products"`
	ActiveProducts   int64            `json:"active_products"`
	FeaturedProducts int64            `json:"featured_products"`
	LowStockCount    int64            `json:"low_stock_count"`
	LowStockProducts []entity.Product `json:"low_stock_products"`
	TodayRevenue     float64          `json:"today_revenue"`
	TodayOrders      int64            `json:"today_orders"`
	MonthRevenue     float64          `json:"month_revenue"`
	RecentOrders     []entity.Order   `json:"recent_orders"`
}

// GetAdminDashboard returns the management overview
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	counts, err := s.analyticsRepo.GetProductCounts(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	todayRevenue, err := s.analyticsRepo.GetOrderRevenueBetween(ctx, startOfDay, now)
	if err != nil {
		return nil, err
	}
	todayOrders, err := s.analyticsRepo.GetOrderCountBetween(ctx, startOfDay, now)
	if err != nil {
		return nil, err
	}
	monthRevenue, err := s.analyticsRepo.GetOrderRevenueBetween(ctx, startOfMonth, now)
	if err != nil {
		return nil, err
	}

	recentOrders, err := s.analyticsRepo.GetRecentOrders(ctx, recentSalesLimit)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalProducts:    counts.Total,
		ActiveProducts:   counts.Active,
		FeaturedProducts: counts.Featured,
		LowStockCount:    int64(len(lowStock)),
		LowStockProducts: lowStock,
		TodayRevenue:     float64(todayRevenue) / 100,
		TodayOrders:      todayOrders,
		MonthRevenue:     float64(monthRevenue) / 100,
		RecentOrders:     recentOrders,
	}, nil
}

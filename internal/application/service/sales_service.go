package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/internal/domain/repository"
	"github.com/zymoune/feedstore-api/pkg/apperror"
	"github.com/zymoune/feedstore-api/pkg/pagination"
)

// SalesService handles self-serve sale capture, cost recalculation and the
// merged sales analytics.
type SalesService struct {
	saleRepo    repository.SaleRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	stockAlerts *StockAlertService
}

// NewSalesService creates a new sales service
func NewSalesService(
	saleRepo repository.SaleRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	stockAlerts *StockAlertService,
) *SalesService {
	return &SalesService{
		saleRepo:    saleRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		stockAlerts: stockAlerts,
	}
}

// RecordSaleInput represents a single-item sale from the QR flow
type RecordSaleInput struct {
	ProductID     uuid.UUID
	Quantity      float64
	Unit          enum.SaleUnit
	CustomerName  string
	CustomerPhone string
}

// RecordSale captures a single-item sale. Stock is decremented atomically so
// concurrent sales cannot oversell, and the sale snapshots the product's
// current price and cost basis.
func (s *SalesService) RecordSale(ctx context.Context, input *RecordSaleInput) (*entity.Sale, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be greater than zero")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !product.IsActive {
		return nil, apperror.NewBadRequestError("Product is not available for sale")
	}

	if err := validateSaleUnit(product.Category, input.Unit); err != nil {
		return nil, err
	}

	pricePerUnit := product.PricePerUnit(input.Unit)
	if pricePerUnit <= 0 {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("%s has no price for unit %s", product.Name, input.Unit))
	}

	ok, err := s.productRepo.AtomicDecrementStock(ctx, repository.StockDecrement{
		ProductID: product.ID,
		Amount:    product.SackEquivalent(input.Quantity, input.Unit),
		Category:  product.Category,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewBadRequestError(fmt.Sprintf(
			"Insufficient stock for %s: %.2f %s available",
			product.Name, product.AvailableInUnit(input.Unit), input.Unit,
		))
	}

	costPerUnit := product.CostPerUnit(input.Unit)
	totalAmount := lineTotal(pricePerUnit, input.Quantity)
	totalCost := product.LineCost(input.Unit, input.Quantity)

	sale := &entity.Sale{
		ProductID:     product.ID,
		ProductName:   product.Name,
		AnimalType:    product.AnimalType,
		Category:      product.Category,
		Quantity:      input.Quantity,
		Unit:          input.Unit,
		PricePerUnit:  pricePerUnit,
		TotalAmount:   totalAmount,
		CostPerUnit:   costPerUnit,
		TotalCost:     totalCost,
		Profit:        totalAmount - totalCost,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Status:        enum.OrderStatusCompleted,
		SaleDate:      time.Now(),
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	s.stockAlerts.CheckAndNotifyAsync()

	return sale, nil
}

// validateSaleUnit rejects units that do not apply to the product's category
func validateSaleUnit(category enum.ProductCategory, unit enum.SaleUnit) error {
	if !unit.IsValid() {
		return apperror.NewBadRequestError("Invalid sale unit")
	}
	if category == enum.CategorySupplements {
		if unit != enum.UnitPiece {
			return apperror.NewBadRequestError("Supplements are sold by piece")
		}
		return nil
	}
	if unit == enum.UnitPiece {
		return apperror.NewBadRequestError("Feeds are sold by sack, kilo or half kilo")
	}
	return nil
}

// lineTotal multiplies a cent price by a fractional quantity, rounding to the
// nearest cent.
func lineTotal(unitPriceCents int64, quantity float64) int64 {
	return int64(math.Round(float64(unitPriceCents) * quantity))
}

// ListSales lists sales with filtering
func (s *SalesService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// GetSale retrieves a sale by ID
func (s *SalesService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// RecalculationResult summarizes a cost recalculation run
type RecalculationResult struct {
	UpdatedCount int `json:"updated_count"`
	TotalSales   int `json:"total_sales"`
}

// RecalculateForProduct recomputes cost and profit for every completed sale
// of a product from its current cost basis. A product with no cost basis is
// left untouched. Individual update failures are logged and skipped so one
// bad row never aborts the run.
func (s *SalesService) RecalculateForProduct(ctx context.Context, productID uuid.UUID) (*RecalculationResult, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	sales, err := s.saleRepo.ListCompletedByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	result := &RecalculationResult{TotalSales: len(sales)}
	if !hasCostBasis(product) {
		return result, nil
	}

	for i := range sales {
		if s.recalculateSale(ctx, &sales[i], product) {
			result.UpdatedCount++
		}
	}

	return result, nil
}

// RecalculateAll recomputes cost and profit for every completed sale
func (s *SalesService) RecalculateAll(ctx context.Context) (*RecalculationResult, error) {
	sales, err := s.saleRepo.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}

	result := &RecalculationResult{TotalSales: len(sales)}
	if len(sales) == 0 {
		return result, nil
	}

	products, err := s.productsByID(ctx, saleProductIDs(sales))
	if err != nil {
		return nil, err
	}

	for i := range sales {
		product, ok := products[sales[i].ProductID]
		if !ok || !hasCostBasis(product) {
			continue
		}
		if s.recalculateSale(ctx, &sales[i], product) {
			result.UpdatedCount++
		}
	}

	return result, nil
}

// recalculateSale rewrites one sale's cost fields from the product's current
// basis. Returns true when the row changed and was persisted.
func (s *SalesService) recalculateSale(ctx context.Context, sale *entity.Sale, product *entity.Product) bool {
	costPerUnit := product.CostPerUnit(sale.Unit)
	totalCost := product.LineCost(sale.Unit, sale.Quantity)
	profit := sale.TotalAmount - totalCost

	if sale.CostPerUnit == costPerUnit && sale.TotalCost == totalCost && sale.Profit == profit {
		return false
	}

	sale.CostPerUnit = costPerUnit
	sale.TotalCost = totalCost
	sale.Profit = profit

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		log.Printf("Failed to recalculate sale %s: %v", sale.ID, err)
		return false
	}
	return true
}

// hasCostBasis reports whether the product carries a usable cost
func hasCostBasis(p *entity.Product) bool {
	if p.Category == enum.CategorySupplements {
		return p.Cost > 0
	}
	return p.CostPerSack > 0
}

func (s *SalesService) productsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*entity.Product{}, nil
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

func saleProductIDs(sales []entity.Sale) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(sales))
	ids := make([]uuid.UUID, 0, len(sales))
	for i := range sales {
		if _, ok := seen[sales[i].ProductID]; ok {
			continue
		}
		seen[sales[i].ProductID] = struct{}{}
		ids = append(ids, sales[i].ProductID)
	}
	return ids
}

// ProductSalesSummary aggregates one product's sales for the top-products list
type ProductSalesSummary struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
	Profit      float64 `json:"profit"`
}

// AnalyticsRecord is one transaction in the recent-sales feed, normalized
// across the sale and order sources.
type AnalyticsRecord struct {
	ID           uuid.UUID `json:"id"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	CustomerName string    `json:"customer_name"`
	Total        float64   `json:"total"`
	Source       string    `json:"source"`
}

// SalesAnalytics is the merged sales report over a date window
type SalesAnalytics struct {
	TotalSales      int                   `json:"total_sales"`
	TotalRevenue    float64               `json:"total_revenue"`
	TotalCost       float64               `json:"total_cost"`
	TotalProfit     float64               `json:"total_profit"`
	SalesByAnimal   map[string]float64    `json:"sales_by_animal"`
	SalesByCategory map[string]float64    `json:"sales_by_category"`
	TopProducts     []ProductSalesSummary `json:"top_products"`
	RecentSales     []AnalyticsRecord     `json:"recent_sales"`
}

const (
	topProductsLimit = 10
	recentSalesLimit = 10
	dedupDayFormat   = "2006-01-02"
)

// dedupLine is one item of a transaction, used to build de-duplication keys
type dedupLine struct {
	name string
	qty  float64
	unit string
}

// buildDedupKey builds the transaction fingerprint used to avoid counting an
// order and the sale recorded for the same purchase twice. Item order must
// not matter, so lines are sorted.
func buildDedupKey(customer string, lines []dedupLine, totalCents int64, day time.Time) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s-%g-%s", strings.ToLower(strings.TrimSpace(l.name)), l.qty, l.unit))
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s|%s|%d|%s",
		strings.ToLower(strings.TrimSpace(customer)),
		strings.Join(parts, ","),
		totalCents,
		day.Format(dedupDayFormat),
	)
}

// buildSimpleDedupKey is the fallback fingerprint for transactions with no
// customer name: same total on the same day.
func buildSimpleDedupKey(totalCents int64, day time.Time) string {
	return fmt.Sprintf("%d|%s", totalCents, day.Format(dedupDayFormat))
}

// Analytics merges completed sales and completed orders over a window into a
// single report. Sales contribute their stored amounts; orders are valued at
// current product prices. Orders whose fingerprint matches an already counted
// sale or order are skipped so the same purchase is never counted twice.
func (s *SalesService) Analytics(ctx context.Context, from, to time.Time) (*SalesAnalytics, error) {
	sales, err := s.saleRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListByDateRange(ctx, from, to, []enum.OrderStatus{enum.OrderStatusCompleted})
	if err != nil {
		return nil, err
	}

	s.healZeroCostSales(ctx, sales)

	report := &SalesAnalytics{
		SalesByAnimal:   make(map[string]float64),
		SalesByCategory: make(map[string]float64),
	}
	perProduct := make(map[string]*ProductSalesSummary)
	var records []AnalyticsRecord
	seen := make(map[string]struct{})

	var revenueCents, costCents, profitCents int64

	for i := range sales {
		sale := &sales[i]
		if sale.Status != enum.OrderStatusCompleted {
			continue
		}

		lines := []dedupLine{{name: sale.ProductName, qty: sale.Quantity, unit: sale.Unit.String()}}
		seen[buildDedupKey(sale.CustomerName, lines, sale.TotalAmount, sale.SaleDate)] = struct{}{}
		seen[buildSimpleDedupKey(sale.TotalAmount, sale.SaleDate)] = struct{}{}

		report.TotalSales++
		revenueCents += sale.TotalAmount
		costCents += sale.TotalCost
		profitCents += sale.Profit
		report.SalesByAnimal[sale.AnimalType.String()] += float64(sale.TotalAmount) / 100
		report.SalesByCategory[sale.Category.String()] += float64(sale.TotalAmount) / 100

		addProductSummary(perProduct, sale.ProductName, sale.Quantity, sale.TotalAmount, sale.Profit)
		records = append(records, AnalyticsRecord{
			ID:           sale.ID,
			Date:         sale.SaleDate,
			Description:  sale.ProductName,
			CustomerName: sale.CustomerName,
			Total:        float64(sale.TotalAmount) / 100,
			Source:       "sale",
		})
	}

	products, err := s.productsByID(ctx, orderProductIDs(orders))
	if err != nil {
		return nil, err
	}

	for i := range orders {
		order := &orders[i]

		lines := make([]dedupLine, 0, len(order.Items))
		for _, item := range order.Items {
			lines = append(lines, dedupLine{name: item.ProductName, qty: item.Quantity, unit: item.Unit.String()})
		}
		key := buildDedupKey(order.CustomerName, lines, order.Total, order.OrderDate)
		simpleKey := buildSimpleDedupKey(order.Total, order.OrderDate)
		if _, dup := seen[key]; dup {
			continue
		}
		if order.CustomerName == "" {
			if _, dup := seen[simpleKey]; dup {
				continue
			}
		}
		seen[key] = struct{}{}
		seen[simpleKey] = struct{}{}

		report.TotalSales++
		var orderRevenue int64

		for _, item := range order.Items {
			itemRevenue := item.Total
			var itemCost int64

			if product, ok := products[item.ProductID]; ok {
				itemRevenue = lineTotal(product.PricePerUnit(item.Unit), item.Quantity)
				itemCost = product.LineCost(item.Unit, item.Quantity)
				report.SalesByAnimal[product.AnimalType.String()] += float64(itemRevenue) / 100
				report.SalesByCategory[product.Category.String()] += float64(itemRevenue) / 100
			}

			orderRevenue += itemRevenue
			revenueCents += itemRevenue
			costCents += itemCost
			profitCents += itemRevenue - itemCost
			addProductSummary(perProduct, item.ProductName, item.Quantity, itemRevenue, itemRevenue-itemCost)
		}

		records = append(records, AnalyticsRecord{
			ID:           order.ID,
			Date:         order.OrderDate,
			Description:  orderDescription(order),
			CustomerName: order.CustomerName,
			Total:        float64(orderRevenue) / 100,
			Source:       "order",
		})
	}

	report.TotalRevenue = float64(revenueCents) / 100
	report.TotalCost = float64(costCents) / 100
	report.TotalProfit = float64(profitCents) / 100
	report.TopProducts = topProducts(perProduct, topProductsLimit)

	sort.Slice(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
	if len(records) > recentSalesLimit {
		records = records[:recentSalesLimit]
	}
	report.RecentSales = records

	return report, nil
}

// DailySales returns the merged report for a single calendar day
func (s *SalesService) DailySales(ctx context.Context, day time.Time) (*SalesAnalytics, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return s.Analytics(ctx, start, end)
}

// ResetAll deletes every sale record. Admin reset only.
func (s *SalesService) ResetAll(ctx context.Context) error {
	return s.saleRepo.DeleteAll(ctx)
}

// healZeroCostSales backfills cost and profit on sales captured before the
// product had a cost basis. Failures are logged and the stored zeros kept.
func (s *SalesService) healZeroCostSales(ctx context.Context, sales []entity.Sale) {
	var needing []int
	for i := range sales {
		if sales[i].Status == enum.OrderStatusCompleted && sales[i].TotalCost == 0 && sales[i].TotalAmount > 0 {
			needing = append(needing, i)
		}
	}
	if len(needing) == 0 {
		return
	}

	ids := make([]uuid.UUID, 0, len(needing))
	for _, i := range needing {
		ids = append(ids, sales[i].ProductID)
	}
	products, err := s.productsByID(ctx, ids)
	if err != nil {
		log.Printf("Failed to load products for cost backfill: %v", err)
		return
	}

	for _, i := range needing {
		product, ok := products[sales[i].ProductID]
		if !ok || !hasCostBasis(product) {
			continue
		}
		s.recalculateSale(ctx, &sales[i], product)
	}
}

func addProductSummary(perProduct map[string]*ProductSalesSummary, name string, qty float64, revenueCents, profitCents int64) {
	summary, ok := perProduct[name]
	if !ok {
		summary = &ProductSalesSummary{ProductName: name}
		perProduct[name] = summary
	}
	summary.Quantity += qty
	summary.Revenue += float64(revenueCents) / 100
	summary.Profit += float64(profitCents) / 100
}

func topProducts(perProduct map[string]*ProductSalesSummary, limit int) []ProductSalesSummary {
	summaries := make([]ProductSalesSummary, 0, len(perProduct))
	for _, summary := range perProduct {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Revenue > summaries[j].Revenue })
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}

func orderProductIDs(orders []entity.Order) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for i := range orders {
		for _, item := range orders[i].Items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

func orderDescription(order *entity.Order) string {
	if len(order.Items) == 0 {
		return order.OrderNumber
	}
	first := order.Items[0].ProductName
	if len(order.Items) == 1 {
		return first
	}
	return fmt.Sprintf("%s +%d more", first, len(order.Items)-1)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/pkg/apperror"
)

func testFeedProduct() *entity.Product {
	return &entity.Product{
		Name:             "Layers Mash",
		AnimalType:       enum.AnimalTypeChicken,
		Category:         enum.CategoryFeeds,
		PricePerSack:     15000,
		PricePerKilo:     700,
		CostPerSack:      10000,
		StockSacks:       10,
		NetWeightPerSack: 25,
		IsActive:         true,
	}
}

func testSupplementProduct() *entity.Product {
	return &entity.Product{
		Name:       "Pig Booster",
		AnimalType: enum.AnimalTypePig,
		Category:   enum.CategorySupplements,
		Price:      5000,
		Cost:       3000,
		Stock:      20,
		StockSacks: 20,
		IsActive:   true,
	}
}

func newSalesFixture(products ...*entity.Product) (*SalesService, *fakeSaleRepo, *fakeOrderRepo, *fakeProductRepo) {
	productRepo := newFakeProductRepo(products...)
	saleRepo := &fakeSaleRepo{}
	orderRepo := &fakeOrderRepo{}
	alerts := NewStockAlertService(productRepo, &fakeSettingsRepo{}, &fakeEmailSender{})
	svc := NewSalesService(saleRepo, orderRepo, productRepo, alerts)
	return svc, saleRepo, orderRepo, productRepo
}

func TestRecordSaleFeed(t *testing.T) {
	product := testFeedProduct()
	svc, saleRepo, _, productRepo := newSalesFixture(product)

	sale, err := svc.RecordSale(context.Background(), &RecordSaleInput{
		ProductID:    product.ID,
		Quantity:     2,
		Unit:         enum.UnitSack,
		CustomerName: " Jane ",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(30000), sale.TotalAmount)
	assert.Equal(t, int64(20000), sale.TotalCost)
	assert.Equal(t, int64(10000), sale.Profit)
	assert.Equal(t, "Jane", sale.CustomerName)
	assert.Equal(t, enum.OrderStatusCompleted, sale.Status)

	stored, _, err := saleRepo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	updated, err := productRepo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, updated.StockSacks)
	assert.Equal(t, 200.0, updated.StockKilos)
}

func TestRecordSaleByKiloConvertsToSacks(t *testing.T) {
	product := testFeedProduct()
	product.CostPerSack = 10990 // not evenly divisible per kilo
	svc, _, _, productRepo := newSalesFixture(product)

	sale, err := svc.RecordSale(context.Background(), &RecordSaleInput{
		ProductID: product.ID,
		Quantity:  25,
		Unit:      enum.UnitKilo,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(17500), sale.TotalAmount)
	// 25 kilos cost exactly one sack, no per-kilo truncation
	assert.Equal(t, int64(10990), sale.TotalCost)

	updated, err := productRepo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.0, updated.StockSacks)
}

func TestRecordSaleSupplementSellsOut(t *testing.T) {
	supplement := testSupplementProduct()
	svc, _, _, productRepo := newSalesFixture(supplement)
	ctx := context.Background()

	// Both legacy counters drop by the full sold quantity
	_, err := svc.RecordSale(ctx, &RecordSaleInput{ProductID: supplement.ID, Quantity: 5, Unit: enum.UnitPiece})
	require.NoError(t, err)

	updated, err := productRepo.GetByID(ctx, supplement.ID)
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.Stock)
	assert.Equal(t, 15.0, updated.StockSacks)

	// Selling the remainder exhausts the product entirely
	_, err = svc.RecordSale(ctx, &RecordSaleInput{ProductID: supplement.ID, Quantity: 15, Unit: enum.UnitPiece})
	require.NoError(t, err)

	updated, err = productRepo.GetByID(ctx, supplement.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.Stock)
	assert.Zero(t, updated.StockSacks)

	_, err = svc.RecordSale(ctx, &RecordSaleInput{ProductID: supplement.ID, Quantity: 1, Unit: enum.UnitPiece})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	product := testFeedProduct()
	product.StockSacks = 1
	svc, saleRepo, _, productRepo := newSalesFixture(product)

	_, err := svc.RecordSale(context.Background(), &RecordSaleInput{
		ProductID: product.ID,
		Quantity:  2,
		Unit:      enum.UnitSack,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, product.Name)

	// Nothing recorded, nothing decremented
	stored, _, err := saleRepo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, stored)

	unchanged, err := productRepo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, unchanged.StockSacks)
}

func TestRecordSaleUnitValidation(t *testing.T) {
	feed := testFeedProduct()
	supplement := testSupplementProduct()
	svc, _, _, _ := newSalesFixture(feed, supplement)

	_, err := svc.RecordSale(context.Background(), &RecordSaleInput{
		ProductID: feed.ID,
		Quantity:  1,
		Unit:      enum.UnitPiece,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.RecordSale(context.Background(), &RecordSaleInput{
		ProductID: supplement.ID,
		Quantity:  1,
		Unit:      enum.UnitSack,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestRecordSaleInactiveProduct(t *testing.T) {
	product := testFeedProduct()
	product.IsActive = false
	svc, _, _, _ := newSalesFixture(product)

	_, err := svc.RecordSale(context.Background(), &RecordSaleInput{
		ProductID: product.ID,
		Quantity:  1,
		Unit:      enum.UnitSack,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestRecalculateForProduct(t *testing.T) {
	product := testFeedProduct()
	svc, _, _, productRepo := newSalesFixture(product)
	ctx := context.Background()

	_, err := svc.RecordSale(ctx, &RecordSaleInput{ProductID: product.ID, Quantity: 2, Unit: enum.UnitSack})
	require.NoError(t, err)

	// Cost basis unchanged, recalculation touches nothing
	result, err := svc.RecalculateForProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalSales)
	assert.Zero(t, result.UpdatedCount)

	// Raise the sack cost and recalculate
	stored, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	stored.CostPerSack = 12000
	require.NoError(t, productRepo.Update(ctx, stored))

	result, err = svc.RecalculateForProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedCount)

	sales, err := svc.saleRepo.ListCompletedByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, int64(24000), sales[0].TotalCost)
	assert.Equal(t, int64(6000), sales[0].Profit)

	// A second run is a no-op
	result, err = svc.RecalculateForProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, result.UpdatedCount)
}

func TestRecalculateSkipsProductsWithoutCostBasis(t *testing.T) {
	product := testFeedProduct()
	product.CostPerSack = 0
	svc, saleRepo, _, _ := newSalesFixture(product)
	ctx := context.Background()

	_, err := svc.RecordSale(ctx, &RecordSaleInput{ProductID: product.ID, Quantity: 1, Unit: enum.UnitSack})
	require.NoError(t, err)

	result, err := svc.RecalculateForProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalSales)
	assert.Zero(t, result.UpdatedCount)

	sales, err := saleRepo.ListCompleted(ctx)
	require.NoError(t, err)
	assert.Zero(t, sales[0].TotalCost)
}

func TestAnalyticsMergesSalesAndOrders(t *testing.T) {
	product := testFeedProduct()
	svc, _, orderRepo, _ := newSalesFixture(product)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.RecordSale(ctx, &RecordSaleInput{ProductID: product.ID, Quantity: 2, Unit: enum.UnitSack})
	require.NoError(t, err)

	require.NoError(t, orderRepo.Create(ctx, &entity.Order{
		OrderNumber:  "ORD-1",
		CustomerName: "Bob",
		Status:       enum.OrderStatusCompleted,
		SubTotal:     15000,
		Total:        15000,
		OrderDate:    now,
		Items: []entity.OrderItem{{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    1,
			Unit:        enum.UnitSack,
			Price:       15000,
			Total:       15000,
		}},
	}))

	report, err := svc.Analytics(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalSales)
	assert.Equal(t, 450.0, report.TotalRevenue)
	assert.Equal(t, 300.0, report.TotalCost)
	assert.Equal(t, 150.0, report.TotalProfit)
	assert.Equal(t, 450.0, report.SalesByAnimal["chicken"])
	assert.Equal(t, 450.0, report.SalesByCategory["feeds"])
	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, 3.0, report.TopProducts[0].Quantity)
	assert.Len(t, report.RecentSales, 2)
}

func TestAnalyticsSkipsOrderMatchingSale(t *testing.T) {
	product := testFeedProduct()
	svc, _, orderRepo, _ := newSalesFixture(product)
	ctx := context.Background()
	now := time.Now()

	sale, err := svc.RecordSale(ctx, &RecordSaleInput{
		ProductID:    product.ID,
		Quantity:     1,
		Unit:         enum.UnitSack,
		CustomerName: "Jane",
	})
	require.NoError(t, err)

	// The same purchase captured again through the order flow: same
	// customer, same line, same total, same day.
	require.NoError(t, orderRepo.Create(ctx, &entity.Order{
		OrderNumber:  "ORD-2",
		CustomerName: "jane ",
		Status:       enum.OrderStatusCompleted,
		SubTotal:     sale.TotalAmount,
		Total:        sale.TotalAmount,
		OrderDate:    sale.SaleDate,
		Items: []entity.OrderItem{{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    1,
			Unit:        enum.UnitSack,
			Price:       15000,
			Total:       15000,
		}},
	}))

	report, err := svc.Analytics(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalSales)
	assert.Equal(t, 150.0, report.TotalRevenue)
}

func TestAnalyticsSkipsDuplicateOrders(t *testing.T) {
	product := testFeedProduct()
	svc, _, orderRepo, _ := newSalesFixture(product)
	ctx := context.Background()
	now := time.Now()

	makeOrder := func(number string) *entity.Order {
		return &entity.Order{
			OrderNumber:  number,
			CustomerName: "Jane",
			Status:       enum.OrderStatusCompleted,
			SubTotal:     15000,
			Total:        15000,
			OrderDate:    now,
			Items: []entity.OrderItem{{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    1,
				Unit:        enum.UnitSack,
				Price:       15000,
				Total:       15000,
			}},
		}
	}

	// The same purchase captured twice through the order flow on the same day
	require.NoError(t, orderRepo.Create(ctx, makeOrder("ORD-4")))
	require.NoError(t, orderRepo.Create(ctx, makeOrder("ORD-5")))

	report, err := svc.Analytics(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalSales)
	assert.Equal(t, 150.0, report.TotalRevenue)
	assert.Len(t, report.RecentSales, 1)
}

func TestAnalyticsOrdersValuedAtCurrentPrices(t *testing.T) {
	product := testFeedProduct()
	svc, _, orderRepo, productRepo := newSalesFixture(product)
	ctx := context.Background()
	now := time.Now()

	// Order captured at the old sack price
	require.NoError(t, orderRepo.Create(ctx, &entity.Order{
		OrderNumber:  "ORD-3",
		CustomerName: "Ann",
		Status:       enum.OrderStatusCompleted,
		SubTotal:     12000,
		Total:        12000,
		OrderDate:    now,
		Items: []entity.OrderItem{{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    1,
			Unit:        enum.UnitSack,
			Price:       12000,
			Total:       12000,
		}},
	}))

	stored, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	stored.PricePerSack = 16000
	require.NoError(t, productRepo.Update(ctx, stored))

	report, err := svc.Analytics(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 160.0, report.TotalRevenue)
	assert.Equal(t, 100.0, report.TotalCost)
}

func TestAnalyticsHealsZeroCostSales(t *testing.T) {
	product := testFeedProduct()
	product.CostPerSack = 0
	svc, saleRepo, _, productRepo := newSalesFixture(product)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.RecordSale(ctx, &RecordSaleInput{ProductID: product.ID, Quantity: 1, Unit: enum.UnitSack})
	require.NoError(t, err)

	stored, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	stored.CostPerSack = 10000
	require.NoError(t, productRepo.Update(ctx, stored))

	report, err := svc.Analytics(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 100.0, report.TotalCost)

	sales, err := saleRepo.ListCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), sales[0].TotalCost)
}

func TestResetAll(t *testing.T) {
	product := testFeedProduct()
	svc, saleRepo, _, _ := newSalesFixture(product)
	ctx := context.Background()

	_, err := svc.RecordSale(ctx, &RecordSaleInput{ProductID: product.ID, Quantity: 1, Unit: enum.UnitSack})
	require.NoError(t, err)

	require.NoError(t, svc.ResetAll(ctx))

	sales, err := saleRepo.ListCompleted(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/pkg/apperror"
)

// recalcRecorder stands in for the sales service and records which products
// were recalculated
type recalcRecorder struct {
	productIDs []uuid.UUID
}

func (r *recalcRecorder) RecalculateForProduct(ctx context.Context, productID uuid.UUID) (*RecalculationResult, error) {
	r.productIDs = append(r.productIDs, productID)
	return &RecalculationResult{}, nil
}

func TestCreateProductConvertsToCents(t *testing.T) {
	productRepo := newFakeProductRepo()
	svc := NewProductService(productRepo, nil)

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:             "Growers Mash",
		AnimalType:       enum.AnimalTypeChicken,
		Category:         enum.CategoryFeeds,
		PricePerSack:     150.50,
		PricePerKilo:     7,
		CostPerSack:      100,
		StockSacks:       10,
		NetWeightPerSack: 25,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15050), product.PricePerSack)
	assert.Equal(t, int64(700), product.PricePerKilo)
	assert.Equal(t, int64(10000), product.CostPerSack)
	assert.True(t, product.IsActive)
	assert.Equal(t, 250.0, product.StockKilos)
}

func TestCreateProductPricingValidation(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil)
	ctx := context.Background()

	// Feeds need both a sack and a kilo price
	_, err := svc.CreateProduct(ctx, &CreateProductInput{
		Name:         "Broken Feed",
		AnimalType:   enum.AnimalTypePig,
		Category:     enum.CategoryFeeds,
		PricePerSack: 150,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "price_per_kilo", appErr.Errors[0].Field)

	// Supplements need a piece price
	_, err = svc.CreateProduct(ctx, &CreateProductInput{
		Name:       "Broken Supplement",
		AnimalType: enum.AnimalTypePig,
		Category:   enum.CategorySupplements,
	})
	require.Error(t, err)
	appErr = apperror.GetAppError(err)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "price", appErr.Errors[0].Field)
}

func TestUpdateProductRecalculatesOnCostChange(t *testing.T) {
	product := testFeedProduct()
	productRepo := newFakeProductRepo(product)
	recorder := &recalcRecorder{}
	svc := NewProductService(productRepo, recorder)
	ctx := context.Background()

	// A price change alone does not trigger recalculation
	newPrice := 160.0
	_, err := svc.UpdateProduct(ctx, &UpdateProductInput{ProductID: product.ID, PricePerSack: &newPrice})
	require.NoError(t, err)
	assert.Empty(t, recorder.productIDs)

	// Same cost written back does not trigger either
	sameCost := 100.0
	_, err = svc.UpdateProduct(ctx, &UpdateProductInput{ProductID: product.ID, CostPerSack: &sameCost})
	require.NoError(t, err)
	assert.Empty(t, recorder.productIDs)

	newCost := 120.0
	updated, err := svc.UpdateProduct(ctx, &UpdateProductInput{ProductID: product.ID, CostPerSack: &newCost})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), updated.CostPerSack)
	require.Len(t, recorder.productIDs, 1)
	assert.Equal(t, product.ID, recorder.productIDs[0])
}

func TestBulkUpdateCosts(t *testing.T) {
	feed := testFeedProduct()
	supplement := testSupplementProduct()
	productRepo := newFakeProductRepo(feed, supplement)
	recorder := &recalcRecorder{}
	svc := NewProductService(productRepo, recorder)

	sackCost := 110.0
	pieceCost := 32.0
	result, err := svc.BulkUpdateCosts(context.Background(), []BulkCostItem{
		{ProductID: feed.ID, CostPerSack: &sackCost},
		{ProductID: supplement.ID, Cost: &pieceCost},
		{ProductID: uuid.New(), CostPerSack: &sackCost},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Product not found", result.Errors[0].Message)
	assert.Len(t, recorder.productIDs, 2)

	updated, err := productRepo.GetByID(context.Background(), feed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11000), updated.CostPerSack)
}

func TestDeleteProduct(t *testing.T) {
	product := testFeedProduct()
	productRepo := newFakeProductRepo(product)
	svc := NewProductService(productRepo, nil)
	ctx := context.Background()

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	_, err := svc.GetProduct(ctx, product.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

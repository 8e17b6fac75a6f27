package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/pkg/apperror"
)

func newOrderFixture(products ...*entity.Product) (*OrderService, *fakeOrderRepo, *fakeProductRepo, *fakeEmailSender) {
	productRepo := newFakeProductRepo(products...)
	orderRepo := &fakeOrderRepo{}
	sender := &fakeEmailSender{}
	alerts := NewStockAlertService(productRepo, &fakeSettingsRepo{}, sender)
	svc := NewOrderService(orderRepo, productRepo, sender, alerts)
	return svc, orderRepo, productRepo, sender
}

func TestCreateOrder(t *testing.T) {
	feed := testFeedProduct()
	supplement := testSupplementProduct()
	svc, _, productRepo, _ := newOrderFixture(feed, supplement)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, &CreateOrderInput{
		StaffID:      uuid.New(),
		CustomerName: "Jane",
		Tax:          10,
		Items: []OrderItemInput{
			{ProductID: feed.ID, Quantity: 2, Unit: enum.UnitSack},
			{ProductID: supplement.ID, Quantity: 3, Unit: enum.UnitPiece},
		},
	})
	require.NoError(t, err)

	// 2 sacks at 150.00 plus 3 pieces at 50.00, 10.00 tax
	assert.Equal(t, int64(45000), order.SubTotal)
	assert.Equal(t, int64(1000), order.Tax)
	assert.Equal(t, int64(46000), order.Total)
	assert.Equal(t, enum.OrderStatusCompleted, order.Status)
	assert.NotEmpty(t, order.OrderNumber)
	assert.NotEmpty(t, order.DedupKey)
	require.Len(t, order.Items, 2)

	updatedFeed, err := productRepo.GetByID(ctx, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, updatedFeed.StockSacks)

	updatedSupplement, err := productRepo.GetByID(ctx, supplement.ID)
	require.NoError(t, err)
	assert.Equal(t, 17.0, updatedSupplement.Stock)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	feed := testFeedProduct()
	supplement := testSupplementProduct()
	supplement.Stock = 1
	supplement.StockSacks = 1
	svc, orderRepo, productRepo, _ := newOrderFixture(feed, supplement)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, &CreateOrderInput{
		StaffID: uuid.New(),
		Items: []OrderItemInput{
			{ProductID: feed.ID, Quantity: 2, Unit: enum.UnitSack},
			{ProductID: supplement.ID, Quantity: 5, Unit: enum.UnitPiece},
		},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, supplement.Name)

	// No order persisted and the feed stock untouched
	orders, _, err := orderRepo.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, orders)

	unchanged, err := productRepo.GetByID(ctx, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, unchanged.StockSacks)
}

func TestCreateOrderRestoresStockWhenPersistFails(t *testing.T) {
	feed := testFeedProduct()
	svc, orderRepo, productRepo, _ := newOrderFixture(feed)
	orderRepo.createErr = errDBDown
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, &CreateOrderInput{
		StaffID: uuid.New(),
		Items:   []OrderItemInput{{ProductID: feed.ID, Quantity: 2, Unit: enum.UnitSack}},
	})
	require.Error(t, err)

	restored, err := productRepo.GetByID(ctx, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, restored.StockSacks)
}

func TestCreateOrderRejectsEmptyAndInvalidItems(t *testing.T) {
	feed := testFeedProduct()
	svc, _, _, _ := newOrderFixture(feed)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, &CreateOrderInput{StaffID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.CreateOrder(ctx, &CreateOrderInput{
		StaffID: uuid.New(),
		Items:   []OrderItemInput{{ProductID: uuid.New(), Quantity: 1, Unit: enum.UnitSack}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	feed := testFeedProduct()
	svc, _, productRepo, _ := newOrderFixture(feed)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, &CreateOrderInput{
		StaffID: uuid.New(),
		Items:   []OrderItemInput{{ProductID: feed.ID, Quantity: 3, Unit: enum.UnitSack}},
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, cancelled.Status)

	restored, err := productRepo.GetByID(ctx, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, restored.StockSacks)

	// Cancelling twice is rejected
	_, err = svc.CancelOrder(ctx, order.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestDeleteOrderRequiresCancelled(t *testing.T) {
	feed := testFeedProduct()
	svc, _, _, _ := newOrderFixture(feed)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, &CreateOrderInput{
		StaffID: uuid.New(),
		Items:   []OrderItemInput{{ProductID: feed.ID, Quantity: 1, Unit: enum.UnitSack}},
	})
	require.NoError(t, err)

	err = svc.DeleteOrder(ctx, order.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteOrder(ctx, order.ID))
}

func TestCompleteOrderIsIdempotent(t *testing.T) {
	feed := testFeedProduct()
	svc, _, _, _ := newOrderFixture(feed)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, &CreateOrderInput{
		StaffID: uuid.New(),
		Items:   []OrderItemInput{{ProductID: feed.ID, Quantity: 1, Unit: enum.UnitSack}},
	})
	require.NoError(t, err)

	completed, err := svc.CompleteOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, completed.Status)

	// Cancelled orders cannot be completed
	_, err = svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	_, err = svc.CompleteOrder(ctx, order.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zymoune/feedstore-api/pkg/apperror"
)

func TestTriggerQueueIsFIFO(t *testing.T) {
	q := NewTriggerQueue()
	assert.Nil(t, q.Next())

	first := ProductTrigger{ID: uuid.New(), ProductName: "first"}
	second := ProductTrigger{ID: uuid.New(), ProductName: "second"}
	q.Push(first)
	q.Push(second)
	assert.Equal(t, 2, q.Len())

	got := q.Next()
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)

	got = q.Next()
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)

	assert.Nil(t, q.Next())
}

func TestQRServiceProductURL(t *testing.T) {
	product := testFeedProduct()
	svc := NewQRService(newFakeProductRepo(product), "https://shop.example.com", NewTriggerQueue())

	assert.Equal(t, "https://shop.example.com/shop/products/"+product.ID.String(), svc.ProductURL(product.ID))
}

func TestGenerateProductQR(t *testing.T) {
	product := testFeedProduct()
	svc := NewQRService(newFakeProductRepo(product), "https://shop.example.com", NewTriggerQueue())

	png, err := svc.GenerateProductQR(context.Background(), product.ID, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = svc.GenerateProductQR(context.Background(), uuid.New(), DefaultQRSize)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestTriggerProduct(t *testing.T) {
	active := testFeedProduct()
	inactive := testSupplementProduct()
	inactive.IsActive = false
	svc := NewQRService(newFakeProductRepo(active, inactive), "https://shop.example.com", NewTriggerQueue())
	ctx := context.Background()

	trigger, err := svc.TriggerProduct(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.Name, trigger.ProductName)

	pending := svc.CheckTriggers()
	require.NotNil(t, pending)
	assert.Equal(t, trigger.ID, pending.ID)
	assert.Nil(t, svc.CheckTriggers())

	_, err = svc.TriggerProduct(ctx, inactive.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

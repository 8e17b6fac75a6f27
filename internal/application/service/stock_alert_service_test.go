package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
)

func TestCheckAndNotifySendsAlert(t *testing.T) {
	product := testFeedProduct()
	product.MaxStock = 20
	product.StockSacks = 2 // threshold is ceil(0.15 * 20) = 3
	productRepo := newFakeProductRepo(product)
	settingsRepo := &fakeSettingsRepo{settings: &entity.NotificationSettings{
		LowStockRecipient: "owner@example.com",
		LowStockEnabled:   true,
	}}
	sender := &fakeEmailSender{}
	svc := NewStockAlertService(productRepo, settingsRepo, sender)

	require.NoError(t, svc.CheckAndNotify(context.Background()))

	require.Len(t, sender.alerts, 1)
	require.Len(t, sender.alerts[0], 1)
	line := sender.alerts[0][0]
	assert.Equal(t, product.Name, line.Name)
	assert.Equal(t, 2.0, line.Current)
	assert.Equal(t, 3.0, line.Threshold)
	assert.Equal(t, "sacks", line.Unit)
}

func TestCheckAndNotifySkipsWhenDisabled(t *testing.T) {
	product := testFeedProduct()
	product.MaxStock = 20
	product.StockSacks = 1
	productRepo := newFakeProductRepo(product)
	sender := &fakeEmailSender{}

	// Alerts switched off
	svc := NewStockAlertService(productRepo, &fakeSettingsRepo{settings: &entity.NotificationSettings{
		LowStockRecipient: "owner@example.com",
		LowStockEnabled:   false,
	}}, sender)
	require.NoError(t, svc.CheckAndNotify(context.Background()))
	assert.Empty(t, sender.alerts)

	// No recipient configured
	svc = NewStockAlertService(productRepo, &fakeSettingsRepo{settings: &entity.NotificationSettings{
		LowStockEnabled: true,
	}}, sender)
	require.NoError(t, svc.CheckAndNotify(context.Background()))
	assert.Empty(t, sender.alerts)
}

func TestCheckAndNotifySkipsWhenNothingLow(t *testing.T) {
	product := testFeedProduct()
	productRepo := newFakeProductRepo(product)
	sender := &fakeEmailSender{}
	svc := NewStockAlertService(productRepo, &fakeSettingsRepo{settings: &entity.NotificationSettings{
		LowStockRecipient: "owner@example.com",
		LowStockEnabled:   true,
	}}, sender)

	require.NoError(t, svc.CheckAndNotify(context.Background()))
	assert.Empty(t, sender.alerts)
}

package service

import (
	"context"
	"log"

	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/internal/domain/repository"
	"github.com/zymoune/feedstore-api/pkg/email"
)

// StockAlertService watches stock levels after sales and orders and emails
// the configured recipient when products fall to their low-stock threshold.
type StockAlertService struct {
	productRepo  repository.ProductRepository
	settingsRepo repository.SettingsRepository
	emailService email.Sender
}

// NewStockAlertService creates a new stock alert service
func NewStockAlertService(
	productRepo repository.ProductRepository,
	settingsRepo repository.SettingsRepository,
	emailService email.Sender,
) *StockAlertService {
	return &StockAlertService{
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		emailService: emailService,
	}
}

// CheckAndNotify sends a low-stock alert if any active product is at or below
// its threshold and alerts are enabled. A failed send is logged, never
// propagated to the transaction that triggered the check.
func (s *StockAlertService) CheckAndNotify(ctx context.Context) error {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if settings == nil || !settings.LowStockEnabled || settings.LowStockRecipient == "" {
		return nil
	}

	products, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}

	lines := make([]email.LowStockProduct, 0, len(products))
	for i := range products {
		lines = append(lines, email.LowStockProduct{
			Name:      products[i].Name,
			Current:   products[i].PrimaryStock(),
			Threshold: products[i].LowStockThreshold(),
			Unit:      stockUnitLabel(&products[i]),
		})
	}

	return s.emailService.SendLowStockAlert(settings.LowStockRecipient, lines)
}

// CheckAndNotifyAsync runs the check in the background so checkout latency
// never depends on SMTP.
func (s *StockAlertService) CheckAndNotifyAsync() {
	go func() {
		if err := s.CheckAndNotify(context.Background()); err != nil {
			log.Printf("Low stock alert failed: %v", err)
		}
	}()
}

func stockUnitLabel(p *entity.Product) string {
	if p.Category == enum.CategorySupplements {
		return "pieces"
	}
	return "sacks"
}

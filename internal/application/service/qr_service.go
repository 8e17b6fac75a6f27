package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/zymoune/feedstore-api/internal/domain/repository"
	"github.com/zymoune/feedstore-api/pkg/apperror"
)

// DefaultQRSize is the side length in pixels of generated QR codes
const DefaultQRSize = 256

// ProductTrigger is one pending QR scan waiting for the counter screen
type ProductTrigger struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	TriggeredAt time.Time `json:"triggered_at"`
}

// TriggerQueue holds QR scan events until the counter screen polls them.
// State is scoped to the queue instance handed to the service, not package
// level, so tests and multiple servers stay isolated.
type TriggerQueue struct {
	mu      sync.Mutex
	pending []ProductTrigger
}

// NewTriggerQueue creates an empty trigger queue
func NewTriggerQueue() *TriggerQueue {
	return &TriggerQueue{}
}

// Push appends a scan event
func (q *TriggerQueue) Push(t ProductTrigger) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, t)
}

// Next pops the oldest pending scan, or nil when the queue is empty
func (q *TriggerQueue) Next() *ProductTrigger {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	next := q.pending[0]
	q.pending = q.pending[1:]
	return &next
}

// Len reports how many scans are waiting
func (q *TriggerQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// QRService generates product QR codes and relays scan events to the counter
// screen
type QRService struct {
	productRepo repository.ProductRepository
	baseURL     string
	triggers    *TriggerQueue
}

// NewQRService creates a new QR service
func NewQRService(productRepo repository.ProductRepository, baseURL string, triggers *TriggerQueue) *QRService {
	return &QRService{
		productRepo: productRepo,
		baseURL:     baseURL,
		triggers:    triggers,
	}
}

// ProductURL is the self-serve page a printed QR code points at
func (s *QRService) ProductURL(productID uuid.UUID) string {
	return fmt.Sprintf("%s/shop/products/%s", s.baseURL, productID)
}

// GenerateProductQR renders the product's self-serve URL as a PNG
func (s *QRService) GenerateProductQR(ctx context.Context, productID uuid.UUID, size int) ([]byte, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if size <= 0 {
		size = DefaultQRSize
	}

	png, err := qrcode.Encode(s.ProductURL(product.ID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// TriggerProduct records a QR scan so the counter screen can open the sale
// modal for the product
func (s *QRService) TriggerProduct(ctx context.Context, productID uuid.UUID) (*ProductTrigger, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !product.IsActive {
		return nil, apperror.NewBadRequestError("Product is not available for sale")
	}

	trigger := ProductTrigger{
		ID:          uuid.New(),
		ProductID:   product.ID,
		ProductName: product.Name,
		TriggeredAt: time.Now(),
	}
	s.triggers.Push(trigger)
	return &trigger, nil
}

// CheckTriggers returns the oldest pending scan, or nil when there is none
func (s *QRService) CheckTriggers() *ProductTrigger {
	return s.triggers.Next()
}

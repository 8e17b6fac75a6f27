package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/internal/domain/repository"
	"github.com/zymoune/feedstore-api/pkg/apperror"
	"github.com/zymoune/feedstore-api/pkg/email"
	"github.com/zymoune/feedstore-api/pkg/pagination"
	"github.com/zymoune/feedstore-api/pkg/utils"
)

// OrderService handles staff checkout operations
type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	emailService email.Sender
	stockAlerts  *StockAlertService
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	emailService email.Sender,
	stockAlerts *StockAlertService,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		emailService: emailService,
		stockAlerts:  stockAlerts,
	}
}

// OrderItemInput represents an item in an order
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  float64
	Unit      enum.SaleUnit
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	StaffID       uuid.UUID
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Tax           float64
	Items         []OrderItemInput
}

// CreateOrder creates an order with its items. Stock for every item is
// decremented in one transaction: if any product has insufficient stock the
// whole order is rejected and no counter changes.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order must contain at least one item")
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var subTotal int64
	orderItems := make([]entity.OrderItem, 0, len(input.Items))
	decrements := make([]repository.StockDecrement, 0, len(input.Items))

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be greater than zero")
		}

		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !product.IsActive {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("%s is not available for sale", product.Name))
		}
		if err := validateSaleUnit(product.Category, item.Unit); err != nil {
			return nil, err
		}

		price := product.PricePerUnit(item.Unit)
		if price <= 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("%s has no price for unit %s", product.Name, item.Unit))
		}

		itemTotal := lineTotal(price, item.Quantity)
		subTotal += itemTotal

		orderItems = append(orderItems, entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Price:       price,
			Total:       itemTotal,
		})

		decrements = append(decrements, repository.StockDecrement{
			ProductID: product.ID,
			Amount:    product.SackEquivalent(item.Quantity, item.Unit),
			Category:  product.Category,
		})
	}

	// Atomically decrement stock. If any product has insufficient stock the
	// whole batch rolls back.
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failed []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failed = append(failed, fmt.Sprintf("%s (%.2f available)", product.Name, product.PrimaryStock()))
			}
		}
		return nil, apperror.NewBadRequestError("Insufficient stock for: " + strings.Join(failed, ", "))
	}

	tax := toCents(input.Tax)
	total := subTotal + tax
	orderDate := time.Now()

	dedupLines := make([]dedupLine, 0, len(orderItems))
	for _, item := range orderItems {
		dedupLines = append(dedupLines, dedupLine{name: item.ProductName, qty: item.Quantity, unit: item.Unit.String()})
	}

	order := &entity.Order{
		OrderNumber:   utils.GenerateOrderNumber(),
		StaffID:       input.StaffID,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		Status:        enum.OrderStatusCompleted,
		SubTotal:      subTotal,
		Tax:           tax,
		Total:         total,
		DedupKey:      buildDedupKey(input.CustomerName, dedupLines, total, orderDate),
		OrderDate:     orderDate,
		Items:         orderItems,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// Stock was already decremented, restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}

	s.stockAlerts.CheckAndNotifyAsync()

	if order.CustomerEmail != "" {
		s.sendReceiptAsync(order)
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// sendReceiptAsync emails the order receipt in the background
func (s *OrderService) sendReceiptAsync(order *entity.Order) {
	receipt := email.OrderReceipt{
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		SubTotal:     float64(order.SubTotal) / 100,
		Tax:          float64(order.Tax) / 100,
		Total:        float64(order.Total) / 100,
	}
	for _, item := range order.Items {
		receipt.Items = append(receipt.Items, email.ReceiptItem{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Unit:     item.Unit.String(),
			Price:    float64(item.Price) / 100,
			Total:    float64(item.Total) / 100,
		})
	}

	to := order.CustomerEmail
	go func() {
		if err := s.emailService.SendOrderReceipt(to, receipt); err != nil {
			log.Printf("Failed to send receipt for order %s: %v", receipt.OrderNumber, err)
		}
	}()
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// CompleteOrder marks a pending order as completed and sends the receipt
func (s *OrderService) CompleteOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewBadRequestError("Cancelled orders cannot be completed")
	}
	if order.Status == enum.OrderStatusCompleted {
		return order, nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusCompleted); err != nil {
		return nil, err
	}
	order.Status = enum.OrderStatusCompleted

	if order.CustomerEmail != "" {
		s.sendReceiptAsync(order)
	}

	return order, nil
}

// CancelOrder cancels an order and restores its stock
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewBadRequestError("Order is already cancelled")
	}

	increments, err := s.stockIncrementsFor(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = enum.OrderStatusCancelled
	return order, nil
}

// stockIncrementsFor rebuilds the sack-equivalent amounts consumed by an
// order so a cancellation restores exactly what the checkout took.
func (s *OrderService) stockIncrementsFor(ctx context.Context, order *entity.Order) ([]repository.StockDecrement, error) {
	productIDs := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	increments := make([]repository.StockDecrement, 0, len(order.Items))
	for _, item := range order.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			// Product deleted since the order, nothing to restore
			continue
		}
		increments = append(increments, repository.StockDecrement{
			ProductID: product.ID,
			Amount:    product.SackEquivalent(item.Quantity, item.Unit),
			Category:  product.Category,
		})
	}
	return increments, nil
}

// DeleteOrder removes a cancelled order
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusCancelled {
		return apperror.NewBadRequestError("Only cancelled orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, orderID)
}

package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/internal/domain/repository"
	"github.com/zymoune/feedstore-api/pkg/email"
	"github.com/zymoune/feedstore-api/pkg/pagination"
)

var (
	errSMTPDown = errors.New("smtp connection refused")
	errDBDown   = errors.New("database unavailable")
)

// In-memory fakes for the repository interfaces. All fakes are mutex-guarded
// because the stock alert check runs on a background goroutine.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		p.NormalizeStock()
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.NormalizeStock()
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.NormalizeStock()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListActive(ctx context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, p := range r.products {
		if p.IsActive && p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AtomicDecrementStock(ctx context.Context, dec repository.StockDecrement) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decrement(dec), nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements []repository.StockDecrement) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var failed []uuid.UUID
	for _, dec := range decrements {
		p, ok := r.products[dec.ProductID]
		if !ok || p.PrimaryStock() < dec.Amount {
			failed = append(failed, dec.ProductID)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for _, dec := range decrements {
		r.decrement(dec)
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments []repository.StockDecrement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inc := range increments {
		if p, ok := r.products[inc.ProductID]; ok {
			if inc.Category == enum.CategorySupplements {
				p.Stock += inc.Amount
				p.StockSacks += inc.Amount
			} else {
				p.StockSacks += inc.Amount
			}
			p.NormalizeStock()
		}
	}
	return nil
}

func (r *fakeProductRepo) decrement(dec repository.StockDecrement) bool {
	p, ok := r.products[dec.ProductID]
	if !ok || p.PrimaryStock() < dec.Amount {
		return false
	}
	if dec.Category == enum.CategorySupplements {
		combined := math.Max(p.Stock, p.StockSacks) - dec.Amount
		p.Stock = combined
		p.StockSacks = combined
	} else {
		p.StockSacks -= dec.Amount
	}
	p.NormalizeStock()
	return true
}

type fakeSaleRepo struct {
	mu        sync.Mutex
	sales     []entity.Sale
	updateErr error
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sales {
		if r.sales[i].ID == id {
			cp := r.sales[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.sales {
		if r.sales[i].ID == sale.ID {
			r.sales[i] = *sale
			return nil
		}
	}
	return nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]entity.Sale(nil), r.sales...)
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListCompleted(ctx context.Context) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, s := range r.sales {
		if s.Status == enum.OrderStatusCompleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListCompletedByProduct(ctx context.Context, productID uuid.UUID) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, s := range r.sales {
		if s.Status == enum.OrderStatusCompleted && s.ProductID == productID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, s := range r.sales {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = nil
	return nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    []entity.Order
	createErr error
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.orders = append(r.orders, *order)
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			cp := r.orders[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].OrderNumber == orderNumber {
			cp := r.orders[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == order.ID {
			r.orders[i] = *order
			return nil
		}
	}
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]entity.Order(nil), r.orders...)
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ListByDateRange(ctx context.Context, start, end time.Time, statuses []enum.OrderStatus) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Order
	for _, o := range r.orders {
		if o.OrderDate.Before(start) || o.OrderDate.After(end) {
			continue
		}
		for _, status := range statuses {
			if o.Status == status {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings *entity.NotificationSettings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.NotificationSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings == nil {
		return nil, nil
	}
	cp := *r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) Create(ctx context.Context, settings *entity.NotificationSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
	return nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, settings *entity.NotificationSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.CreateWithRole(ctx, user, "")
}

func (r *fakeUserRepo) CreateWithRole(ctx context.Context, user *entity.User, roleName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if roleName != "" {
		user.Roles = append(user.Roles, entity.Role{ID: uint(len(r.users) + 1), Name: roleName})
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.GetWithRoles(ctx, id)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) ListByRoles(ctx context.Context, roles []string, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.User
	for _, u := range r.users {
		for _, roleName := range roles {
			if u.HasRole(roleName) {
				out = append(out, *u)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) AssignRole(ctx context.Context, userID uuid.UUID, roleID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.Roles = append(u.Roles, entity.Role{ID: roleID})
	}
	return nil
}

func (r *fakeUserRepo) RemoveRole(ctx context.Context, userID uuid.UUID, roleID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		var kept []entity.Role
		for _, role := range u.Roles {
			if role.ID != roleID {
				kept = append(kept, role)
			}
		}
		u.Roles = kept
	}
	return nil
}

type fakeRoleRepo struct {
	roles map[string]*entity.Role
}

func (r *fakeRoleRepo) Create(ctx context.Context, role *entity.Role) error { return nil }

func (r *fakeRoleRepo) GetByID(ctx context.Context, id uint) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.ID == id {
			return role, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	if role, ok := r.roles[name]; ok {
		return role, nil
	}
	return nil, nil
}

func (r *fakeRoleRepo) List(ctx context.Context) ([]entity.Role, error) { return nil, nil }

func (r *fakeRoleRepo) GetWithPermissions(ctx context.Context, id uint) (*entity.Role, error) {
	return r.GetByID(ctx, id)
}

// fakeEmailSender records outbound mail and can be told to fail
type fakeEmailSender struct {
	mu          sync.Mutex
	failInvites bool
	invitations []email.StaffInvitation
	alerts      [][]email.LowStockProduct
	receipts    []email.OrderReceipt
}

func (s *fakeEmailSender) SendPasswordResetEmail(toEmail, token string) error { return nil }

func (s *fakeEmailSender) SendStaffInvitation(inv email.StaffInvitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInvites {
		return errSMTPDown
	}
	s.invitations = append(s.invitations, inv)
	return nil
}

func (s *fakeEmailSender) SendLowStockAlert(toEmail string, products []email.LowStockProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, products)
	return nil
}

func (s *fakeEmailSender) SendOrderReceipt(toEmail string, receipt email.OrderReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, receipt)
	return nil
}

func (s *fakeEmailSender) invitationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invitations)
}

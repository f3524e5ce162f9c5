package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/internal/domain/enum"
	"github.com/peakers/pos-api/internal/domain/repository"
	"github.com/peakers/pos-api/pkg/pagination"
)

// mockProductRepo keeps products in a map and records the stock batch
// calls so tests can assert on the decrement sets.
type mockProductRepo struct {
	products map[uuid.UUID]*entity.Product

	decrements    []map[uuid.UUID]int
	increments    []map[uuid.UUID]int
	failDecrement []uuid.UUID
	decrementErr  error
}

func newMockProductRepo(products ...*entity.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return m.products[id], nil
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) GetByNumber(_ context.Context, number string) (*entity.Product, error) {
	for _, p := range m.products {
		if p.Number == number {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockProductRepo) Update(_ context.Context, p *entity.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (m *mockProductRepo) List(context.Context, uuid.UUID, *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func (m *mockProductRepo) ListSellable(_ context.Context, _ uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) GetLowStock(context.Context, uuid.UUID) ([]entity.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) AtomicDecrementBatch(_ context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	m.decrements = append(m.decrements, decrements)
	if m.decrementErr != nil {
		return nil, m.decrementErr
	}
	if len(m.failDecrement) > 0 {
		return m.failDecrement, nil
	}
	for id, qty := range decrements {
		if p, ok := m.products[id]; ok {
			p.Stock -= qty
		}
	}
	return nil, nil
}

func (m *mockProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]int) error {
	m.increments = append(m.increments, increments)
	for id, qty := range increments {
		if p, ok := m.products[id]; ok {
			p.Stock += qty
		}
	}
	return nil
}

// mockSaleRepo persists sales in memory.
type mockSaleRepo struct {
	sales      map[uuid.UUID]*entity.Sale
	nextNumber int64
	createErr  error
}

func newMockSaleRepo() *mockSaleRepo {
	return &mockSaleRepo{sales: make(map[uuid.UUID]*entity.Sale), nextNumber: 1}
}

func (m *mockSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	m.sales[sale.ID] = sale
	return nil
}

func (m *mockSaleRepo) CreateWithItems(_ context.Context, sale *entity.Sale, items []entity.SaleItem) error {
	if m.createErr != nil {
		return m.createErr
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	sale.Items = items
	m.sales[sale.ID] = sale
	return nil
}

func (m *mockSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return m.sales[id], nil
}

func (m *mockSaleRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return m.sales[id], nil
}

func (m *mockSaleRepo) List(context.Context, uuid.UUID, *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, s := range m.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (m *mockSaleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.SaleStatus) error {
	if s, ok := m.sales[id]; ok {
		s.Status = status
	}
	return nil
}

func (m *mockSaleRepo) SumTotals(context.Context, uuid.UUID, time.Time, time.Time) (int64, int64, error) {
	var count, sum int64
	for _, s := range m.sales {
		if s.Status == enum.SaleStatusCompleted {
			count++
			sum += s.Total
		}
	}
	return count, sum, nil
}

func (m *mockSaleRepo) NextNumber(context.Context, uuid.UUID) (int64, error) {
	n := m.nextNumber
	m.nextNumber++
	return n, nil
}

// mockCustomerRepo keeps customers in a map.
type mockCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
	createErr error
}

func newMockCustomerRepo(customers ...*entity.Customer) *mockCustomerRepo {
	m := &mockCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		m.customers[c.ID] = c
	}
	return m
}

func (m *mockCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	if m.createErr != nil {
		return m.createErr
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.customers[c.ID] = c
	return nil
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return m.customers[id], nil
}

func (m *mockCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	m.customers[c.ID] = c
	return nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.customers, id)
	return nil
}

func (m *mockCustomerRepo) List(_ context.Context, _ uuid.UUID, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range m.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (m *mockCustomerRepo) Count(context.Context, uuid.UUID) (int64, error) {
	return int64(len(m.customers)), nil
}

// mockUserRepo keeps users in a map.
type mockUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newMockUserRepo(users ...*entity.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *entity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) Count(context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// mockMaterialRepo keeps materials in a map.
type mockMaterialRepo struct {
	materials map[uuid.UUID]*entity.Material
}

func newMockMaterialRepo(materials ...*entity.Material) *mockMaterialRepo {
	m := &mockMaterialRepo{materials: make(map[uuid.UUID]*entity.Material)}
	for _, mat := range materials {
		m.materials[mat.ID] = mat
	}
	return m
}

func (m *mockMaterialRepo) Create(_ context.Context, mat *entity.Material) error {
	if mat.ID == uuid.Nil {
		mat.ID = uuid.New()
	}
	m.materials[mat.ID] = mat
	return nil
}

func (m *mockMaterialRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Material, error) {
	return m.materials[id], nil
}

func (m *mockMaterialRepo) Update(_ context.Context, mat *entity.Material) error {
	m.materials[mat.ID] = mat
	return nil
}

func (m *mockMaterialRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.materials, id)
	return nil
}

func (m *mockMaterialRepo) List(context.Context, uuid.UUID, *pagination.PaginationParams, string) ([]entity.Material, int64, error) {
	var out []entity.Material
	for _, mat := range m.materials {
		out = append(out, *mat)
	}
	return out, int64(len(out)), nil
}

// mockSupplierRepo keeps suppliers in a map.
type mockSupplierRepo struct {
	suppliers map[uuid.UUID]*entity.Supplier
}

func newMockSupplierRepo(suppliers ...*entity.Supplier) *mockSupplierRepo {
	m := &mockSupplierRepo{suppliers: make(map[uuid.UUID]*entity.Supplier)}
	for _, s := range suppliers {
		m.suppliers[s.ID] = s
	}
	return m
}

func (m *mockSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.suppliers[s.ID] = s
	return nil
}

func (m *mockSupplierRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Supplier, error) {
	return m.suppliers[id], nil
}

func (m *mockSupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	m.suppliers[s.ID] = s
	return nil
}

func (m *mockSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.suppliers, id)
	return nil
}

func (m *mockSupplierRepo) List(context.Context, uuid.UUID, *pagination.PaginationParams, string) ([]entity.Supplier, int64, error) {
	var out []entity.Supplier
	for _, s := range m.suppliers {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

// mockPrinter captures printed bytes.
type mockPrinter struct {
	printed  [][]byte
	printErr error
}

func (m *mockPrinter) Print(data []byte) error {
	if m.printErr != nil {
		return m.printErr
	}
	m.printed = append(m.printed, data)
	return nil
}

func (m *mockPrinter) Close() error { return nil }

func (m *mockPrinter) IsConnected() bool { return true }

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/pkg/apperror"
	"github.com/peakers/pos-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (m *mockCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	return m.categories[id], nil
}

func (m *mockCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepo) List(context.Context, uuid.UUID, *pagination.PaginationParams, string) ([]entity.Category, int64, error) {
	return nil, 0, nil
}

func newProductService(products ...*entity.Product) (*ProductService, *mockProductRepo) {
	repo := newMockProductRepo(products...)
	return NewProductService(repo, newMockCategoryRepo()), repo
}

func TestCreateProductStoresPriceInCents(t *testing.T) {
	svc, _ := newProductService()

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		UserID: uuid.New(),
		Number: "P-001",
		Name:   "Widget",
		Price:  19.99,
		Stock:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1999), product.Price)
	assert.Equal(t, 5, product.EffectiveStock())
}

func TestCreateProductRejectsDuplicateNumber(t *testing.T) {
	existing := plainProduct("Widget", 1000, 5)
	existing.Number = "P-001"
	svc, _ := newProductService(existing)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		UserID: uuid.New(),
		Number: "P-001",
		Name:   "Other",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestCreateBundleDerivesStockFromComponents(t *testing.T) {
	bolt := plainProduct("Bolt", 100, 20)
	nut := plainProduct("Nut", 50, 9)
	svc, repo := newProductService(bolt, nut)

	bundle, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		UserID:   uuid.New(),
		Number:   "B-001",
		Name:     "Fastener Kit",
		Price:    5,
		Stock:    99, // ignored for bundles
		IsBundle: true,
		Components: []BundleComponentInput{
			{ComponentID: bolt.ID, Quantity: 4},
			{ComponentID: nut.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	// The stock column stays zero; effective stock comes from components
	assert.Equal(t, 0, bundle.Stock)
	stored := repo.products[bundle.ID]
	require.NotNil(t, stored)
	require.Len(t, stored.Components, 2)

	// min(20/4, 9/2) = 4
	bundle.Components[0].Component = *bolt
	bundle.Components[1].Component = *nut
	assert.Equal(t, 4, bundle.EffectiveStock())
}

func TestCreateBundleValidation(t *testing.T) {
	bolt := plainProduct("Bolt", 100, 20)
	kit := bundleOf("Kit", 500, map[*entity.Product]int{bolt: 1})

	tests := []struct {
		name       string
		components []BundleComponentInput
		wantCode   int
	}{
		{
			name:     "no components",
			wantCode: http.StatusBadRequest,
		},
		{
			name:       "unknown component",
			components: []BundleComponentInput{{ComponentID: uuid.New(), Quantity: 1}},
			wantCode:   http.StatusNotFound,
		},
		{
			name:       "nested bundle",
			components: []BundleComponentInput{{ComponentID: kit.ID, Quantity: 1}},
			wantCode:   http.StatusBadRequest,
		},
		{
			name:       "zero quantity",
			components: []BundleComponentInput{{ComponentID: bolt.ID, Quantity: 0}},
			wantCode:   http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newProductService(bolt, kit)

			_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
				UserID:     uuid.New(),
				Number:     "B-002",
				Name:       "Broken Kit",
				IsBundle:   true,
				Components: tt.components,
			})

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestCreatePlainProductRejectsComponents(t *testing.T) {
	bolt := plainProduct("Bolt", 100, 20)
	svc, _ := newProductService(bolt)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		UserID:     uuid.New(),
		Number:     "P-002",
		Name:       "Not a bundle",
		Components: []BundleComponentInput{{ComponentID: bolt.ID, Quantity: 1}},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestUpdateProductRejectsBundleStockChange(t *testing.T) {
	bolt := plainProduct("Bolt", 100, 20)
	kit := bundleOf("Kit", 500, map[*entity.Product]int{bolt: 1})
	svc, _ := newProductService(bolt, kit)

	stock := 10
	_, err := svc.UpdateProduct(context.Background(), kit.ID, &UpdateProductInput{Stock: &stock})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	// Plain products take stock updates normally
	updated, err := svc.UpdateProduct(context.Background(), bolt.ID, &UpdateProductInput{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Stock)
}

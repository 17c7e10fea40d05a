package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/account"
	domain "github.com/BolivianProgrammer/RazorPedidos/internal/domain/catalog"
)

// MockProductRepository is shared by the service and feed-sync tests.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySupplierRef(ctx context.Context, ref string) (*domain.Product, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	staff    = account.Principal{UserID: 1, Role: account.RoleEmployee}
	customer = account.Principal{UserID: 2, Role: account.RoleCustomer}
)

func TestService_Create(t *testing.T) {
	// Arrange
	mockRepo := new(MockProductRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == "Milk" && p.Stock == 10
	})).Return(nil)

	// Act
	p, err := svc.Create(ctx, staff, ProductInput{
		Name:  "Milk",
		Price: decimal.NewFromFloat(6.50),
		Stock: 10,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Milk", p.Name)
	mockRepo.AssertExpectations(t)
}

func TestService_Create_Validation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	_, err := svc.Create(ctx, staff, ProductInput{Name: "Milk", Price: decimal.Zero, Stock: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.Create(ctx, staff, ProductInput{Name: "Milk", Price: decimal.NewFromInt(1), Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_ForbiddenForCustomer(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := NewService(mockRepo)

	_, err := svc.Create(context.Background(), customer, ProductInput{
		Name:  "Milk",
		Price: decimal.NewFromInt(1),
		Stock: 1,
	})

	assert.ErrorIs(t, err, account.ErrForbidden)
}

func TestService_Update_PreservesCreatedAt(t *testing.T) {
	// Arrange
	mockRepo := new(MockProductRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	existing, err := domain.NewProduct("Bread", "", decimal.NewFromInt(3), 5)
	require.NoError(t, err)
	existing.ID = 4
	createdAt := existing.CreatedAt

	mockRepo.On("FindByID", ctx, int64(4)).Return(existing, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Product) bool {
		return p.CreatedAt.Equal(createdAt) && p.UpdatedAt != nil && p.Stock == 8
	})).Return(nil)

	// Act
	updated, err := svc.Update(ctx, staff, 4, ProductInput{
		Name:  "Bread",
		Price: decimal.NewFromFloat(3.50),
		Stock: 8,
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.NewFromFloat(3.50)))
	mockRepo.AssertExpectations(t)
}

func TestService_Update_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, int64(99)).Return(nil, nil)

	_, err := svc.Update(ctx, staff, 99, ProductInput{
		Name:  "Ghost",
		Price: decimal.NewFromInt(1),
		Stock: 1,
	})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestService_Delete(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	existing := &domain.Product{ID: 4, Name: "Bread"}
	mockRepo.On("FindByID", ctx, int64(4)).Return(existing, nil)
	mockRepo.On("Delete", ctx, int64(4)).Return(nil)

	err := svc.Delete(ctx, staff, 4)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	err = svc.Delete(ctx, customer, 4)
	assert.ErrorIs(t, err, account.ErrForbidden)
}

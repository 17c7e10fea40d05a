package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/BolivianProgrammer/RazorPedidos/internal/domain/account"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	admin    = domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	employee = domain.Principal{UserID: 2, Role: domain.RoleEmployee}
	customer = domain.Principal{UserID: 3, Role: domain.RoleCustomer}
)

func TestService_Create_HashesPassword(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	var created *domain.User
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		created = u
		return u.Email == "ana@example.com" && u.Role == domain.RoleCustomer
	})).Return(nil)

	// Act
	_, err := svc.Create(ctx, admin, CreateInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "hunter22",
		Role:     domain.RoleCustomer,
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, "hunter22", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter22")))
}

func TestService_Create_RoleAssignmentMatrix(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		role      domain.Role
		wantErr   error
	}{
		{"admin creates admin", admin, domain.RoleAdmin, nil},
		{"admin creates employee", admin, domain.RoleEmployee, nil},
		{"employee creates customer", employee, domain.RoleCustomer, nil},
		{"employee creates employee", employee, domain.RoleEmployee, domain.ErrForbidden},
		{"employee creates admin", employee, domain.RoleAdmin, domain.ErrForbidden},
		{"customer creates anything", customer, domain.RoleCustomer, domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			svc := NewService(mockRepo)
			if tt.wantErr == nil {
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			}

			_, err := svc.Create(context.Background(), tt.principal, CreateInput{
				Name:     "Someone",
				Email:    "someone@example.com",
				Password: "secret123",
				Role:     tt.role,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Create_EmailTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailTaken)

	_, err := svc.Create(ctx, admin, CreateInput{
		Name:     "Dup",
		Email:    "dup@example.com",
		Password: "secret123",
		Role:     domain.RoleCustomer,
	})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestService_Update_EmployeeCannotTouchStaff(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	target := &domain.User{ID: 9, Name: "Boss", Email: "boss@example.com", Role: domain.RoleAdmin}
	mockRepo.On("FindByID", ctx, int64(9)).Return(target, nil)

	_, err := svc.Update(ctx, employee, 9, UpdateInput{
		Name:  "Boss",
		Email: "boss@example.com",
		Role:  domain.RoleAdmin,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Update_OwnProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	self := &domain.User{ID: 3, Name: "Cliente", Email: "c@example.com", Role: domain.RoleCustomer}
	mockRepo.On("FindByID", ctx, int64(3)).Return(self, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Cliente Nuevo" && u.UpdatedAt != nil
	})).Return(nil)

	updated, err := svc.Update(ctx, customer, 3, UpdateInput{
		Name:  "Cliente Nuevo",
		Email: "c@example.com",
		Role:  domain.RoleCustomer,
	})

	require.NoError(t, err)
	assert.Equal(t, "Cliente Nuevo", updated.Name)
}

func TestService_Update_OwnRoleChangeNeedsAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	self := &domain.User{ID: 3, Name: "Cliente", Email: "c@example.com", Role: domain.RoleCustomer}
	mockRepo.On("FindByID", ctx, int64(3)).Return(self, nil)

	_, err := svc.Update(ctx, customer, 3, UpdateInput{
		Name:  "Cliente",
		Email: "c@example.com",
		Role:  domain.RoleAdmin,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_Delete_Matrix(t *testing.T) {
	staffTarget := &domain.User{ID: 8, Role: domain.RoleEmployee}
	customerTarget := &domain.User{ID: 9, Role: domain.RoleCustomer}

	tests := []struct {
		name      string
		principal domain.Principal
		target    *domain.User
		wantErr   error
	}{
		{"admin deletes staff", admin, staffTarget, nil},
		{"admin deletes customer", admin, customerTarget, nil},
		{"employee deletes customer", employee, customerTarget, nil},
		{"employee deletes staff", employee, staffTarget, domain.ErrForbidden},
		{"customer deletes anyone", customer, customerTarget, domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			svc := NewService(mockRepo)
			ctx := context.Background()

			mockRepo.On("FindByID", ctx, tt.target.ID).Return(tt.target, nil)
			if tt.wantErr == nil {
				mockRepo.On("Delete", ctx, tt.target.ID).Return(nil)
			}

			err := svc.Delete(ctx, tt.principal, tt.target.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_List_StaffOnly(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return([]domain.User{{ID: 1}}, nil)

	_, err := svc.List(ctx, customer)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	users, err := svc.List(ctx, employee)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

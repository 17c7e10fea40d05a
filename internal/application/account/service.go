package account

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BolivianProgrammer/RazorPedidos/internal/domain/account"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
)

// Service manages user accounts under the role capability matrix: admins
// manage anyone, employees only customer accounts, customers only their own
// profile.
type Service struct {
	users repository.UserRepository
}

func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

type CreateInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type UpdateInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password,omitempty"`
	Role     domain.Role `json:"role"`
}

func (s *Service) List(ctx context.Context, principal domain.Principal) ([]domain.User, error) {
	caps := domain.CapabilitiesFor(principal.Role)
	if !caps.ManageUsers {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx)
}

// Get returns a user record. Staff may look up anyone, others only themselves.
func (s *Service) Get(ctx context.Context, principal domain.Principal, id int64) (*domain.User, error) {
	caps := domain.CapabilitiesFor(principal.Role)
	if !caps.ManageUsers && principal.UserID != id {
		return nil, domain.ErrForbidden
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) Create(ctx context.Context, principal domain.Principal, in CreateInput) (*domain.User, error) {
	caps := domain.CapabilitiesFor(principal.Role)
	if !caps.ManageUsers || !caps.MayAssign(in.Role) {
		return nil, domain.ErrForbidden
	}
	if in.Password == "" {
		return nil, domain.ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := domain.NewUser(in.Name, in.Email, string(hash), in.Role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update edits a user record. Everyone may edit their own profile; changing
// one's own role takes the change-own-role capability. Editing others follows
// the staff rules: employees never touch admin or employee accounts and can
// only hand out the customer role.
func (s *Service) Update(ctx context.Context, principal domain.Principal, id int64, in UpdateInput) (*domain.User, error) {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}

	caps := domain.CapabilitiesFor(principal.Role)
	if err := authorizeAccountWrite(caps, principal, target); err != nil {
		return nil, err
	}

	if in.Role != target.Role {
		if principal.UserID == id {
			if !caps.ChangeOwnRole {
				return nil, domain.ErrForbidden
			}
		} else if !caps.MayAssign(in.Role) {
			return nil, domain.ErrForbidden
		}
		if _, err := domain.ParseRole(string(in.Role)); err != nil {
			return nil, err
		}
	}

	if in.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if in.Email == "" {
		return nil, domain.ErrEmailRequired
	}

	target.Name = in.Name
	target.Email = in.Email
	target.Role = in.Role
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		target.PasswordHash = string(hash)
	}
	now := time.Now().UTC()
	target.UpdatedAt = &now

	if err := s.users.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *Service) Delete(ctx context.Context, principal domain.Principal, id int64) error {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if target == nil {
		return domain.ErrUserNotFound
	}

	caps := domain.CapabilitiesFor(principal.Role)
	if !caps.ManageUsers {
		return domain.ErrForbidden
	}
	if target.Role.IsStaff() && !caps.ManageStaffAccounts {
		return domain.ErrForbidden
	}
	return s.users.Delete(ctx, id)
}

func authorizeAccountWrite(caps domain.Capabilities, principal domain.Principal, target *domain.User) error {
	if principal.UserID == target.ID {
		return nil
	}
	if !caps.ManageUsers {
		return domain.ErrForbidden
	}
	if target.Role.IsStaff() && !caps.ManageStaffAccounts {
		return domain.ErrForbidden
	}
	return nil
}

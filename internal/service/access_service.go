package service

import (
	"context"
	"errors"
	"fmt"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/internal/store"

	"github.com/sirupsen/logrus"
)

// OwnerAccount describes the account created when none exists for Email.
type OwnerAccount struct {
	Email    string
	Password string
	FullName string
}

// AccessService maintains roles, privileges and the owner account.
type AccessService interface {
	Seed(ctx context.Context, owner OwnerAccount) error
	Roles(ctx context.Context) ([]model.Role, error)
	Privileges(ctx context.Context) ([]model.Privilege, error)
}

type accessService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	privileges repository.PrivilegeRepository
	log        *logrus.Entry
}

func NewAccessService(users repository.UserRepository, roles repository.RoleRepository, privileges repository.PrivilegeRepository, log *logrus.Entry) AccessService {
	return &accessService{users: users, roles: roles, privileges: privileges, log: log}
}

// Seed is idempotent: existing privileges, role grants and accounts are kept.
func (s *accessService) Seed(ctx context.Context, owner OwnerAccount) error {
	if err := s.privileges.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed privileges: %w", err)
	}
	if err := s.roles.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	all, err := s.privileges.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load privileges: %w", err)
	}

	ownerRole, err := s.grant(ctx, model.RoleOwner, all)
	if err != nil {
		return err
	}
	staff := make([]model.Privilege, 0, len(all))
	for _, p := range all {
		if model.StaffPrivilege(p.Code) {
			staff = append(staff, p)
		}
	}
	if _, err := s.grant(ctx, model.RoleStaff, staff); err != nil {
		return err
	}

	if owner.Email == "" {
		return nil
	}
	_, err = s.users.FindByEmail(ctx, owner.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("check owner: %w", err)
	}

	user := &model.User{
		Email:    owner.Email,
		FullName: owner.FullName,
		RoleID:   &ownerRole.ID,
		IsActive: true,
	}
	user.CreatedBy = "system"
	user.UpdatedBy = "system"
	if err := user.SetPassword(owner.Password); err != nil {
		return fmt.Errorf("hash owner password: %w", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("create owner: %w", err)
	}
	s.log.WithField("email", owner.Email).Info("owner account created")
	return nil
}

// grant gives a role its default privileges unless it already has some.
func (s *accessService) grant(ctx context.Context, code string, privileges []model.Privilege) (*model.Role, error) {
	role, err := s.roles.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("load role %s: %w", code, err)
	}
	if len(role.Privileges) > 0 {
		return role, nil
	}
	if err := s.roles.AssignPrivileges(ctx, role, privileges); err != nil {
		return nil, fmt.Errorf("grant %s: %w", code, err)
	}
	s.log.WithField("role", code).WithField("privileges", len(privileges)).Info("role privileges granted")
	return role, nil
}

func (s *accessService) Roles(ctx context.Context) ([]model.Role, error) {
	return s.roles.FindAll(ctx)
}

func (s *accessService) Privileges(ctx context.Context) ([]model.Privilege, error) {
	return s.privileges.FindAll(ctx)
}

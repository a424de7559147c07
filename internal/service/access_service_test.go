package service

import (
	"context"
	"testing"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoleRepository struct {
	mock.Mock
}

var _ repository.RoleRepository = (*MockRoleRepository)(nil)

func (m *MockRoleRepository) FindAll(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByCode(ctx context.Context, code string) (*model.Role, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) AssignPrivileges(ctx context.Context, role *model.Role, privileges []model.Privilege) error {
	return m.Called(ctx, role, privileges).Error(0)
}

func (m *MockRoleRepository) SeedDefaults(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockPrivilegeRepository struct {
	mock.Mock
}

var _ repository.PrivilegeRepository = (*MockPrivilegeRepository)(nil)

func (m *MockPrivilegeRepository) FindAll(ctx context.Context) ([]model.Privilege, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Privilege), args.Error(1)
}

func (m *MockPrivilegeRepository) SeedDefaults(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestSeed_GrantsRolesAndCreatesOwner(t *testing.T) {
	users := new(MockUserRepository)
	roles := new(MockRoleRepository)
	privs := new(MockPrivilegeRepository)
	svc := NewAccessService(users, roles, privs, quietLog())

	owner := &model.Role{ID: 1, Code: model.RoleOwner}
	staff := &model.Role{ID: 2, Code: model.RoleStaff}
	privs.On("SeedDefaults", mock.Anything).Return(nil)
	roles.On("SeedDefaults", mock.Anything).Return(nil)
	privs.On("FindAll", mock.Anything).Return(model.DefaultPrivileges, nil)
	roles.On("FindByCode", mock.Anything, model.RoleOwner).Return(owner, nil)
	roles.On("FindByCode", mock.Anything, model.RoleStaff).Return(staff, nil)
	roles.On("AssignPrivileges", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	users.On("FindByEmail", mock.Anything, "owner@example.com").Return(nil, store.ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := svc.Seed(context.Background(), OwnerAccount{Email: "owner@example.com", Password: "pw123456", FullName: "Owner"})
	require.NoError(t, err)

	roles.AssertCalled(t, "AssignPrivileges", mock.Anything, owner, model.DefaultPrivileges)
	staffCall := roles.Calls[len(roles.Calls)-1]
	granted := staffCall.Arguments.Get(2).([]model.Privilege)
	assert.Len(t, granted, len(model.DefaultPrivileges)-3)

	created := users.Calls[1].Arguments.Get(1).(*model.User)
	assert.Equal(t, uint(1), *created.RoleID)
	assert.True(t, created.CheckPassword("pw123456"))
}

func TestSeed_ExistingOwnerKept(t *testing.T) {
	users := new(MockUserRepository)
	roles := new(MockRoleRepository)
	privs := new(MockPrivilegeRepository)
	svc := NewAccessService(users, roles, privs, quietLog())

	granted := []model.Privilege{{Code: model.PrivOrderView}}
	privs.On("SeedDefaults", mock.Anything).Return(nil)
	roles.On("SeedDefaults", mock.Anything).Return(nil)
	privs.On("FindAll", mock.Anything).Return(model.DefaultPrivileges, nil)
	roles.On("FindByCode", mock.Anything, mock.Anything).Return(&model.Role{ID: 1, Privileges: granted}, nil)
	users.On("FindByEmail", mock.Anything, "owner@example.com").Return(&model.User{}, nil)

	require.NoError(t, svc.Seed(context.Background(), OwnerAccount{Email: "owner@example.com"}))
	roles.AssertNotCalled(t, "AssignPrivileges", mock.Anything, mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

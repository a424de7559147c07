package service

import (
	"context"
	"testing"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/store"
	"go-inventory-orders/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeUser(t *testing.T, password string) *model.User {
	t.Helper()
	u := &model.User{
		Email:    "owner@example.com",
		FullName: "Owner",
		IsActive: true,
		Role: &model.Role{Code: model.RoleOwner, Privileges: []model.Privilege{
			{Code: model.PrivOrderView},
		}},
	}
	u.ID = uuid.New()
	require.NoError(t, u.SetPassword(password))
	return u
}

func TestLogin_IssuesTokenAndRotatesVersion(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users)
	u := activeUser(t, "secret1")
	users.On("FindByEmail", mock.Anything, u.Email).Return(u, nil)
	users.On("UpdateTokenVersion", mock.Anything, u.ID, mock.AnythingOfType("string")).Return(nil)

	resp, err := svc.Login(context.Background(), u.Email, "secret1")
	require.NoError(t, err)

	claims, err := jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, model.RoleOwner, claims.RoleCode)
	assert.Equal(t, []string{model.PrivOrderView}, resp.Privileges)
	users.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users)
	u := activeUser(t, "secret1")
	users.On("FindByEmail", mock.Anything, u.Email).Return(u, nil)

	_, err := svc.Login(context.Background(), u.Email, "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Inactive(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users)
	u := activeUser(t, "secret1")
	u.IsActive = false
	users.On("FindByEmail", mock.Anything, u.Email).Return(u, nil)

	_, err := svc.Login(context.Background(), u.Email, "secret1")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestValidateToken_ReplacedSession(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users)
	u := activeUser(t, "secret1")
	u.TokenVersion = "newer"
	token, err := jwt.GenerateToken(u.ID, u.Email, u.FullName, "", nil, "older")
	require.NoError(t, err)
	users.On("FindByID", mock.Anything, u.ID).Return(u, nil)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionReplaced)
}

func TestResetPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users)
	u := activeUser(t, "secret1")
	users.On("FindByEmail", mock.Anything, u.Email).Return(u, nil)
	users.On("UpdatePassword", mock.Anything, u.ID, mock.AnythingOfType("string")).Return(nil)
	users.On("UpdateTokenVersion", mock.Anything, u.ID, mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, svc.ResetPassword(context.Background(), u.Email, "secret1", "secret2"))
	assert.True(t, u.CheckPassword("secret2"))

	assert.True(t, IsValidation(svc.ResetPassword(context.Background(), u.Email, "secret2", "123")))
	assert.ErrorIs(t, svc.ResetPassword(context.Background(), u.Email, "wrong", "secret3"), ErrWrongPassword)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, store.ErrNotFound)

	_, err := svc.Login(context.Background(), "ghost@example.com", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func mustParse(t *testing.T, id string) uuid.UUID {
	t.Helper()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	return parsed
}

func newAuthFixture(t *testing.T) (AuthService, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo()
	svc := NewAuthService(users, "test-secret", 8*time.Hour, 24*time.Hour)
	return svc, users
}

func seedUser(t *testing.T, svc AuthService) dto.UserResponse {
	t.Helper()
	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username:  "mjovanovic",
		Email:     "mjovanovic@example.com",
		Password:  "tajna123",
		FirstName: "Milan",
		LastName:  "Jovanović",
		Role:      "user",
	})
	require.NoError(t, err)
	return *resp
}

func TestAuthLoginAndRefresh(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUser(t, svc)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mjovanovic", Password: "tajna123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "mjovanovic", resp.User.Username)

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUser(t, svc)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mjovanovic", Password: "pogresna"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthLoginInactiveUser(t *testing.T) {
	svc, _ := newAuthFixture(t)
	created := seedUser(t, svc)

	active := false
	_, err := svc.UpdateUser(context.Background(), mustParse(t, created.ID), dto.UpdateUserRequest{Active: &active})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "mjovanovic", Password: "tajna123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUser(t, svc)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mjovanovic", Password: "tajna123"})
	require.NoError(t, err)

	// An access token lacks the refresh marker and must be rejected.
	_, err = svc.Refresh(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthCreateUserDuplicate(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUser(t, svc)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username:  "mjovanovic",
		Email:     "other@example.com",
		Password:  "tajna123",
		FirstName: "Milan",
		LastName:  "Jovanović",
		Role:      "user",
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestAuthResetPassword(t *testing.T) {
	svc, users := newAuthFixture(t)
	created := seedUser(t, svc)
	id := mustParse(t, created.ID)

	require.NoError(t, svc.ResetPassword(context.Background(), id, "novaLozinka1"))

	u, err := users.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("novaLozinka1")))

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "mjovanovic", Password: "tajna123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

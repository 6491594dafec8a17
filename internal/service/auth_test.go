package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/repository"
	"rentify-backend/internal/security"
)

func newAuthFixture() (*MockVerifier, *MockUserRepo, AuthService) {
	verifier := new(MockVerifier)
	userRepo := new(MockUserRepo)
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour, 7*24*time.Hour)
	return verifier, userRepo, NewAuthService(verifier, userRepo, tokens)
}

func TestAuthService_Register(t *testing.T) {
	verifier, userRepo, svc := newAuthFixture()
	ctx := context.Background()

	verifier.On("VerifyIDToken", ctx, "id-token").Return(&Identity{UID: "uid-1", Email: "a@b.nl"}, nil)
	userRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Register(ctx, "id-token", RegisterInput{
		Username:  "alice",
		Address:   "Dam 1, Amsterdam",
		Latitude:  "52.3731",
		Longitude: "4.8926",
	})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.ID)
	assert.Equal(t, "a@b.nl", user.Email)
	assert.Equal(t, "52.3731", user.Latitude)
}

func TestAuthService_Register_DropsMalformedCoordinate(t *testing.T) {
	verifier, userRepo, svc := newAuthFixture()
	ctx := context.Background()

	verifier.On("VerifyIDToken", ctx, "id-token").Return(&Identity{UID: "uid-1"}, nil)
	userRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Register(ctx, "id-token", RegisterInput{
		Username:  "alice",
		Latitude:  "not-a-number",
		Longitude: "4.89",
	})
	require.NoError(t, err)
	assert.Empty(t, user.Latitude)
	assert.Empty(t, user.Longitude)
}

func TestAuthService_Login(t *testing.T) {
	verifier, userRepo, svc := newAuthFixture()
	ctx := context.Background()

	verifier.On("VerifyIDToken", ctx, "id-token").Return(&Identity{UID: "uid-1", Email: "a@b.nl"}, nil)
	userRepo.On("GetByID", ctx, "uid-1").Return(&domain.User{ID: "uid-1", Email: "a@b.nl"}, nil)
	userRepo.On("SetFCMToken", ctx, "uid-1", "device-token").Return(nil)

	user, session, err := svc.Login(ctx, "id-token", "device-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.ID)
	assert.Equal(t, "device-token", user.FCMToken)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	userRepo.AssertCalled(t, "SetFCMToken", ctx, "uid-1", "device-token")
}

func TestAuthService_Login_NoProfile(t *testing.T) {
	verifier, userRepo, svc := newAuthFixture()
	ctx := context.Background()

	verifier.On("VerifyIDToken", ctx, "id-token").Return(&Identity{UID: "uid-1"}, nil)
	userRepo.On("GetByID", ctx, "uid-1").Return(nil, repository.ErrNotFound)

	_, _, err := svc.Login(ctx, "id-token", "")
	assert.ErrorIs(t, err, ErrProfileMissing)
}

func TestAuthService_Login_InvalidToken(t *testing.T) {
	verifier, userRepo, svc := newAuthFixture()
	ctx := context.Background()

	verifier.On("VerifyIDToken", ctx, "bad").Return(nil, ErrInvalidCredentials)

	_, _, err := svc.Login(ctx, "bad", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAuthService_Refresh(t *testing.T) {
	_, userRepo, svc := newAuthFixture()
	ctx := context.Background()

	verifier := new(MockVerifier)
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour, 7*24*time.Hour)
	svc = NewAuthService(verifier, userRepo, tokens)

	refresh, err := tokens.GenerateRefreshToken("uid-1", "a@b.nl")
	require.NoError(t, err)
	userRepo.On("GetByID", ctx, "uid-1").Return(&domain.User{ID: "uid-1"}, nil)

	session, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	verifier := new(MockVerifier)
	userRepo := new(MockUserRepo)
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour, 7*24*time.Hour)
	svc := NewAuthService(verifier, userRepo, tokens)

	access, err := tokens.GenerateAccessToken("uid-1", "")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, security.ErrWrongTokenType)
}

package service

import (
	"context"
	"errors"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/logger"
	"rentify-backend/internal/repository"
	"rentify-backend/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid or expired credential")
	ErrProfileMissing     = errors.New("account has no profile, register first")
)

// Identity is a verified auth-provider identity.
type Identity struct {
	UID   string
	Email string
}

// IdentityVerifier checks a provider-issued ID token and returns the
// identity it asserts.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}

// FirebaseVerifier adapts the Firebase Auth client to IdentityVerifier.
type FirebaseVerifier struct {
	Client *firebaseauth.Client
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	logger.ExternalServiceCall("firebase-auth", "VerifyIDToken")
	token, err := v.Client.VerifyIDToken(ctx, idToken)
	logger.ExternalServiceResult("firebase-auth", "VerifyIDToken", err)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	ident := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		ident.Email = email
	}
	return ident, nil
}

type authService struct {
	verifier IdentityVerifier
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(verifier IdentityVerifier, userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		verifier: verifier,
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, idToken string, input RegisterInput) (*domain.User, error) {
	ident, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Username) == "" {
		return nil, errors.New("username is required")
	}

	// The coordinate is whatever the client resolved for the address.
	// A blank or unparseable pair is stored as empty: the user simply
	// has no location until they register again with one.
	lat, lon := input.Latitude, input.Longitude
	if _, err := domain.ParseCoordinate(lat, lon); err != nil {
		lat, lon = "", ""
	}

	user := &domain.User{
		ID:        ident.UID,
		Username:  input.Username,
		Email:     ident.Email,
		Address:   input.Address,
		Latitude:  lat,
		Longitude: lon,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, idToken, fcmToken string) (*domain.User, *Session, error) {
	ident, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByID(ctx, ident.UID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrProfileMissing
		}
		return nil, nil, err
	}

	// The device token is refreshed on every login so pushes follow the
	// user to their current device. Failure here must not block login.
	if fcmToken != "" && fcmToken != user.FCMToken {
		if err := s.userRepo.SetFCMToken(ctx, user.ID, fcmToken); err != nil {
			logger.Warn("Storing FCM token failed", "user_id", user.ID, "error", err)
		} else {
			user.FCMToken = fcmToken
		}
	}

	session, err := s.issueSession(user.ID, user.Email)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if claims.Type != security.TokenTypeRefresh {
		return nil, security.ErrWrongTokenType
	}
	// The profile must still exist; a deleted account cannot keep
	// refreshing sessions.
	if _, err := s.userRepo.GetByID(ctx, claims.UserID); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(claims.UserID, claims.Email)
}

func (s *authService) issueSession(userID, email string) (*Session, error) {
	access, err := s.tokens.GenerateAccessToken(userID, email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(userID, email)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: access, RefreshToken: refresh}, nil
}

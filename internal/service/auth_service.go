// Package service implements the business logic between handlers and repositories.
package service

import (
	"context"
	"strconv"
	"time"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is the lifetime of an issued access token.
const tokenTTL = 7 * 24 * time.Hour

// tokenName labels issued token rows, mirroring the device name on personal
// access tokens.
const tokenName = "user-token"

// AuthService handles registration, login, and the current-user lookup.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtSecret string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new user with a bcrypt-hashed password. A duplicate
// email surfaces as a validation error from the repository.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		observability.RecordAuthAttempt("register", "error")
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		observability.RecordAuthAttempt("register", "failure")
		return nil, err
	}

	observability.RecordAuthAttempt("register", "success")
	return user, nil
}

// Login verifies credentials and issues a fresh access token. All previous
// tokens for the user are revoked first, so a user has at most one live
// session. Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		observability.RecordAuthAttempt("login", "error")
		return nil, "", err
	}
	if user == nil {
		observability.RecordAuthAttempt("login", "failure")
		return nil, "", models.NewUnauthorizedError("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		observability.RecordAuthAttempt("login", "failure")
		return nil, "", models.NewUnauthorizedError("Invalid username or password")
	}

	if err := s.tokenRepo.RevokeAllForUser(ctx, user.ID); err != nil {
		observability.RecordAuthAttempt("login", "error")
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		observability.RecordAuthAttempt("login", "error")
		return nil, "", err
	}

	observability.RecordAuthAttempt("login", "success")
	return user, token, nil
}

// GetUser returns the user for the authenticated user ID.
func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// issueToken persists a token row keyed by a fresh jti and returns the signed
// JWT carrying sub and jti claims.
func (s *AuthService) issueToken(ctx context.Context, userID uint) (string, error) {
	jti := uuid.NewString()
	expiresAt := time.Now().Add(tokenTTL)

	row := &models.AccessToken{
		UserID:    userID,
		Name:      tokenName,
		JTI:       jti,
		ExpiresAt: expiresAt,
	}
	if err := s.tokenRepo.Create(ctx, row); err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"jti": jti,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

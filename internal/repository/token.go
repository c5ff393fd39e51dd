package repository

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
)

// TokenRepository defines persistence operations for access tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *models.AccessToken) error
	GetByJTI(ctx context.Context, jti string) (*models.AccessToken, error)
	RevokeAllForUser(ctx context.Context, userID uint) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository returns a new TokenRepository implementation.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	defer observability.TrackQuery("create", "access_tokens")()

	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByJTI returns (nil, nil) when no token row matches, which callers treat
// as a revoked token.
func (r *tokenRepository) GetByJTI(ctx context.Context, jti string) (*models.AccessToken, error) {
	defer observability.TrackQuery("get_by_jti", "access_tokens")()

	var token models.AccessToken
	if err := r.db.WithContext(ctx).Where("jti = ?", jti).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &token, nil
}

// RevokeAllForUser hard-deletes every token row for the user. Login calls this
// before issuing a fresh token so at most one session is active per user.
func (r *tokenRepository) RevokeAllForUser(ctx context.Context, userID uint) error {
	defer observability.TrackQuery("revoke_all", "access_tokens")()

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.AccessToken{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

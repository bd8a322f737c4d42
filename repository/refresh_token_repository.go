package repository

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/techmaster-vietnam/sapkit/models"
	"gorm.io/gorm"
)

// RefreshTokenRepository handles refresh token database operations
type RefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// HashToken tạo hash của token để lưu trong database
// Không lưu plain token để bảo mật
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// Create tạo mới refresh token trong database
// token: plain refresh token (sẽ được hash trước khi lưu)
func (r *RefreshTokenRepository) Create(token string, userID uuid.UUID, expiresAt time.Time) (*models.RefreshToken, error) {
	refreshToken := &models.RefreshToken{
		Token:     HashToken(token),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}

	if err := r.db.Create(refreshToken).Error; err != nil {
		return nil, err
	}

	return refreshToken, nil
}

// GetByToken tìm refresh token theo plain token (hash trước khi tìm)
func (r *RefreshTokenRepository) GetByToken(token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	err := r.db.Where("token = ?", HashToken(token)).First(&refreshToken).Error
	if err != nil {
		return nil, err
	}
	return &refreshToken, nil
}

// DeleteByToken xóa refresh token theo plain token
func (r *RefreshTokenRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", HashToken(token)).Delete(&models.RefreshToken{}).Error
}

// DeleteByUserID xóa tất cả refresh tokens của một user (khi logout hoặc bị khóa)
func (r *RefreshTokenRepository) DeleteByUserID(userID uuid.UUID) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

// DeleteExpired xóa tất cả refresh tokens đã hết hạn (cleanup job)
func (r *RefreshTokenRepository) DeleteExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{}).Error
}

package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/techmaster-vietnam/sapkit/models"
	"gorm.io/gorm"
)

// PasswordResetTokenRepository handles password reset token database operations
type PasswordResetTokenRepository struct {
	db *gorm.DB
}

// NewPasswordResetTokenRepository creates a new password reset token repository
func NewPasswordResetTokenRepository(db *gorm.DB) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db}
}

// Create tạo mới password reset token trong database
// token: plain reset token (sẽ được hash trước khi lưu)
func (r *PasswordResetTokenRepository) Create(token string, userID uuid.UUID, expiresAt time.Time) (*models.PasswordResetToken, error) {
	passwordResetToken := &models.PasswordResetToken{
		Token:     HashToken(token),
		UserID:    userID,
		ExpiresAt: expiresAt,
		Used:      false,
	}

	if err := r.db.Create(passwordResetToken).Error; err != nil {
		return nil, err
	}

	return passwordResetToken, nil
}

// GetByToken tìm password reset token theo plain token (hash trước khi tìm)
func (r *PasswordResetTokenRepository) GetByToken(token string) (*models.PasswordResetToken, error) {
	var resetToken models.PasswordResetToken
	err := r.db.Where("token = ?", HashToken(token)).First(&resetToken).Error
	if err != nil {
		return nil, err
	}
	return &resetToken, nil
}

// MarkAsUsed đánh dấu token đã được sử dụng (sau khi reset password thành công)
func (r *PasswordResetTokenRepository) MarkAsUsed(token string) error {
	return r.db.Model(&models.PasswordResetToken{}).
		Where("token = ?", HashToken(token)).
		Update("used", true).Error
}

// InvalidateUserTokens đánh dấu tất cả tokens chưa dùng của user là đã sử dụng
func (r *PasswordResetTokenRepository) InvalidateUserTokens(userID uuid.UUID) error {
	return r.db.Model(&models.PasswordResetToken{}).
		Where("user_id = ? AND used = ?", userID, false).
		Update("used", true).Error
}

// DeleteExpired xóa tất cả password reset tokens đã hết hạn (cleanup job)
func (r *PasswordResetTokenRepository) DeleteExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.PasswordResetToken{}).Error
}

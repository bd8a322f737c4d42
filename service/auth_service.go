package service

import (
	"errors"
	"time"

	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/sapkit/config"
	"github.com/techmaster-vietnam/sapkit/core"
	"github.com/techmaster-vietnam/sapkit/models"
	"github.com/techmaster-vietnam/sapkit/repository"
	"github.com/techmaster-vietnam/sapkit/utils"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo           *repository.UserRepository
	refreshTokenRepo   *repository.RefreshTokenRepository
	passwordResetRepo  *repository.PasswordResetTokenRepository
	notificationSender core.NotificationSender
	config             *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo *repository.UserRepository,
	refreshTokenRepo *repository.RefreshTokenRepository,
	passwordResetRepo *repository.PasswordResetTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		refreshTokenRepo:  refreshTokenRepo,
		passwordResetRepo: passwordResetRepo,
		config:            cfg,
	}
}

// SetNotificationSender set sender để gửi password reset token qua email/SMS.
// Không set thì token chỉ được lưu vào database (dùng cho test/development).
func (s *AuthService) SetNotificationSender(sender core.NotificationSender) {
	s.notificationSender = sender
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents login response.
// RefreshToken chỉ đi vào cookie HttpOnly, không bao giờ vào JSON body.
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"-"`
	User         *models.User `json:"user"`
}

// RefreshResponse represents refresh token response
type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"-"`
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	CustomRole string `json:"custom_role"`
}

// Login authenticates a user and returns a JWT token carrying the role fields
func (s *AuthService) Login(req LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateEmail(req.Email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewAuthError(401, "Email hoặc mật khẩu không đúng")
		}
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi đăng nhập")
	}

	if !user.IsActive {
		return nil, goerrorkit.NewAuthError(403, "Tài khoản đã bị vô hiệu hóa").WithData(map[string]interface{}{
			"user_id": user.ID,
		})
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, goerrorkit.NewAuthError(401, "Email hoặc mật khẩu không đúng")
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Email, user.Role, user.CustomRole, s.config.JWT.Secret, s.config.JWT.Expiration)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi tạo token")
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi tạo refresh token")
	}

	expiresAt := time.Now().Add(s.config.JWT.RefreshExpiration)
	if _, err := s.refreshTokenRepo.Create(refreshToken, user.ID, expiresAt); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi lưu refresh token")
	}

	return &LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh đổi một refresh token hợp lệ lấy access token mới.
// Refresh token cũ bị xóa và thay bằng token mới (rotation).
func (s *AuthService) Refresh(refreshToken string) (*RefreshResponse, error) {
	tokenRecord, err := s.refreshTokenRepo.GetByToken(refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewAuthError(401, "Refresh token không hợp lệ")
		}
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi kiểm tra refresh token")
	}

	if tokenRecord.IsExpired() {
		_ = s.refreshTokenRepo.DeleteByToken(refreshToken)
		return nil, goerrorkit.NewAuthError(401, "Refresh token đã hết hạn")
	}

	user, err := s.userRepo.GetByID(tokenRecord.UserID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewAuthError(401, "Người dùng không tồn tại")
		}
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi lấy thông tin người dùng")
	}

	if !user.IsActive {
		_ = s.refreshTokenRepo.DeleteByUserID(user.ID)
		return nil, goerrorkit.NewAuthError(403, "Tài khoản đã bị vô hiệu hóa")
	}

	newAccessToken, err := utils.GenerateToken(user.ID.String(), user.Email, user.Role, user.CustomRole, s.config.JWT.Secret, s.config.JWT.Expiration)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi tạo access token")
	}

	newRefreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi tạo refresh token mới")
	}

	_ = s.refreshTokenRepo.DeleteByToken(refreshToken)
	expiresAt := time.Now().Add(s.config.JWT.RefreshExpiration)
	if _, err := s.refreshTokenRepo.Create(newRefreshToken, user.ID, expiresAt); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi lưu refresh token mới")
	}

	return &RefreshResponse{
		Token:        newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout xóa refresh token của user khỏi database
func (s *AuthService) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil // Không có token thì không cần làm gì
	}
	return s.refreshTokenRepo.DeleteByToken(refreshToken)
}

// ChangePassword đổi mật khẩu của user đang đăng nhập
func (s *AuthService) ChangePassword(userID string, oldPassword, newPassword string) error {
	if err := utils.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return goerrorkit.NewBusinessError(404, "Không tìm thấy người dùng").WithData(map[string]interface{}{
				"user_id": userID,
			})
		}
		return goerrorkit.WrapWithMessage(err, "Lỗi khi lấy thông tin người dùng")
	}

	if !utils.CheckPasswordHash(oldPassword, user.Password) {
		return goerrorkit.NewAuthError(401, "Mật khẩu cũ không đúng")
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return goerrorkit.WrapWithMessage(err, "Lỗi khi hash mật khẩu")
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return goerrorkit.WrapWithMessage(err, "Lỗi khi cập nhật mật khẩu")
	}

	return nil
}

// resetTokenExpiration là thời gian sống của một password reset token
const resetTokenExpiration = 1 * time.Hour

// RequestPasswordReset tạo reset token cho user và gửi qua notification sender.
// Luôn trả về nil khi email không tồn tại hoặc user bị khóa để tránh
// email enumeration attack.
func (s *AuthService) RequestPasswordReset(email string) error {
	if err := utils.ValidateEmail(email); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return goerrorkit.WrapWithMessage(err, "Lỗi khi tìm kiếm người dùng")
	}

	if !user.IsActive {
		return nil
	}

	resetToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return goerrorkit.WrapWithMessage(err, "Lỗi khi tạo reset token")
	}

	expiresAt := time.Now().Add(resetTokenExpiration)
	if _, err := s.passwordResetRepo.Create(resetToken, user.ID, expiresAt); err != nil {
		return goerrorkit.WrapWithMessage(err, "Lỗi khi lưu reset token")
	}

	if s.notificationSender != nil {
		if err := s.notificationSender.SendPasswordResetToken(email, resetToken, "1 giờ"); err != nil {
			return goerrorkit.WrapWithMessage(err, "Lỗi khi gửi email/tin nhắn reset password")
		}
	}

	return nil
}

// ResetPassword reset password của user bằng reset token
func (s *AuthService) ResetPassword(token string, newPassword string) error {
	if token == "" {
		return goerrorkit.NewValidationError("Reset token là bắt buộc", map[string]interface{}{
			"field": "token",
		})
	}
	if err := utils.ValidatePassword(newPassword); err != nil {
		return err
	}

	tokenRecord, err := s.passwordResetRepo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return goerrorkit.NewAuthError(401, "Reset token không hợp lệ hoặc đã hết hạn")
		}
		return goerrorkit.WrapWithMessage(err, "Lỗi khi kiểm tra reset token")
	}

	if !tokenRecord.IsValid() {
		if tokenRecord.IsExpired() {
			return goerrorkit.NewAuthError(401, "Reset token đã hết hạn")
		}
		return goerrorkit.NewAuthError(401, "Reset token đã được sử dụng")
	}

	user, err := s.userRepo.GetByID(tokenRecord.UserID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return goerrorkit.NewBusinessError(404, "Người dùng không tồn tại").WithData(map[string]interface{}{
				"user_id": tokenRecord.UserID,
			})
		}
		return goerrorkit.WrapWithMessage(err, "Lỗi khi lấy thông tin người dùng")
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return goerrorkit.WrapWithMessage(err, "Lỗi khi hash mật khẩu")
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return goerrorkit.WrapWithMessage(err, "Lỗi khi cập nhật mật khẩu")
	}

	// Token đã dùng thì không dùng lại được; các token khác của user cũng bị vô hiệu
	_ = s.passwordResetRepo.MarkAsUsed(token)
	_ = s.passwordResetRepo.InvalidateUserTokens(user.ID)

	// Force logout tất cả sessions hiện có
	_ = s.refreshTokenRepo.DeleteByUserID(user.ID)

	return nil
}

// Register creates a new user account. CustomRole (nếu có) phải là một role
// được định nghĩa trong policy table — caller kiểm tra bằng policy.Table.Has.
func (s *AuthService) Register(req RegisterRequest) (*models.User, error) {
	if err := utils.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	// Check if email already exists
	_, err := s.userRepo.GetByEmail(req.Email)
	if err == nil {
		return nil, goerrorkit.NewBusinessError(409, "Email đã tồn tại").WithData(map[string]interface{}{
			"email": req.Email,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi kiểm tra email")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi hash mật khẩu")
	}

	user := &models.User{
		Email:      req.Email,
		Password:   hashedPassword,
		FullName:   req.FullName,
		Role:       models.BuiltinRoleUser,
		CustomRole: req.CustomRole,
		IsActive:   true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi tạo tài khoản")
	}

	return user, nil
}

// GetByID lấy thông tin user theo ID (dùng cho endpoint /me)
func (s *AuthService) GetByID(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewBusinessError(404, "Không tìm thấy người dùng").WithData(map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi lấy thông tin người dùng")
	}
	return user, nil
}

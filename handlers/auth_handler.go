package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/sapkit/config"
	"github.com/techmaster-vietnam/sapkit/middleware"
	"github.com/techmaster-vietnam/sapkit/policy"
	"github.com/techmaster-vietnam/sapkit/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
	policyTable *policy.Table
	config      *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, policyTable *policy.Table, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		policyTable: policyTable,
		config:      cfg,
	}
}

// setRefreshCookie set refresh token vào cookie với các thuộc tính bảo mật
// HttpOnly: JavaScript không thể truy cập (chống XSS)
// SameSite=Strict: Chống CSRF
// Path: Chỉ gửi cookie khi request đến /api/auth/*
func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  time.Now().Add(h.config.JWT.RefreshExpiration),
		HTTPOnly: true,
		Secure:   h.config.Server.CookieSecure,
		SameSite: "Strict",
		Path:     "/api/auth",
	})
}

// clearRefreshCookie xóa refresh token cookie
func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		Secure:   h.config.Server.CookieSecure,
		SameSite: "Strict",
		Path:     "/api/auth",
	})
}

// Login handles login request
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return goerrorkit.NewValidationError("Dữ liệu không hợp lệ", map[string]interface{}{
			"error": err.Error(),
		})
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		return err
	}

	// Refresh token đi vào cookie HttpOnly, không vào JSON body
	h.setRefreshCookie(c, resp.RefreshToken)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    resp,
	})
}

// Refresh handles refresh token request
// POST /api/auth/refresh
// Lấy refresh token từ cookie và trả về access token mới
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return goerrorkit.NewAuthError(401, "Refresh token không được cung cấp")
	}

	resp, err := h.authService.Refresh(refreshToken)
	if err != nil {
		// Refresh token không hợp lệ thì xóa luôn cookie
		h.clearRefreshCookie(c)
		return err
	}

	// Token mới vào cookie (rotation)
	h.setRefreshCookie(c, resp.RefreshToken)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    resp,
	})
}

// Register handles registration request
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return goerrorkit.NewValidationError("Dữ liệu không hợp lệ", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// CustomRole phải tồn tại trong policy table để không tạo ra user
	// âm thầm rơi về fallback policy
	if req.CustomRole != "" && !h.policyTable.Has(req.CustomRole) {
		return goerrorkit.NewValidationError("Custom role không tồn tại trong policy table", map[string]interface{}{
			"custom_role": req.CustomRole,
		})
	}

	user, err := h.authService.Register(req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// Logout handles logout request
// POST /api/auth/logout
// Xóa refresh token khỏi database và cookie; access token tự hết hạn
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if refreshToken := c.Cookies("refresh_token"); refreshToken != "" {
		// Lỗi revoke không chặn việc xóa cookie
		_ = h.authService.Logout(refreshToken)
	}

	h.clearRefreshCookie(c)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Đăng xuất thành công",
	})
}

// ChangePassword handles change password request
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		return goerrorkit.NewAuthError(401, "Không tìm thấy thông tin người dùng")
	}

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return goerrorkit.NewValidationError("Dữ liệu không hợp lệ", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := h.authService.ChangePassword(user.ID.String(), req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Đổi mật khẩu thành công",
	})
}

// ForgotPassword handles password reset request
// POST /api/auth/forgot-password
// Luôn trả về cùng một message để tránh email enumeration
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return goerrorkit.NewValidationError("Dữ liệu không hợp lệ", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Nếu email tồn tại, hướng dẫn đặt lại mật khẩu đã được gửi",
	})
}

// ResetPassword handles password reset with token
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return goerrorkit.NewValidationError("Dữ liệu không hợp lệ", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Đặt lại mật khẩu thành công",
	})
}

// Me handles current user request
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		return goerrorkit.NewAuthError(401, "Không tìm thấy thông tin người dùng")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

package utils

import (
	"regexp"
	"strings"

	"github.com/techmaster-vietnam/goerrorkit"
)

// MinPasswordLength là độ dài tối thiểu của mật khẩu
const MinPasswordLength = 6

// ValidateEmail kiểm tra format email hợp lệ
// Email hợp lệ phải:
// - Không rỗng
// - Có format local@domain với TLD
// - Tuân theo RFC 5321 (local part tối đa 64 ký tự, domain tối đa 255 ký tự)
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return goerrorkit.NewValidationError("Email là bắt buộc", map[string]interface{}{
			"field": "email",
		})
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return goerrorkit.NewValidationError("Email không hợp lệ: format không đúng", map[string]interface{}{
			"field": "email",
			"value": email,
		})
	}

	parts := strings.Split(email, "@")
	if len(parts[0]) > 64 || len(parts[1]) > 255 {
		return goerrorkit.NewValidationError("Email quá dài", map[string]interface{}{
			"field": "email",
			"value": email,
		})
	}

	return nil
}

// ValidatePassword kiểm tra mật khẩu đạt độ dài tối thiểu
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return goerrorkit.NewValidationError("Mật khẩu là bắt buộc", map[string]interface{}{
			"field": "password",
		})
	}
	if len(password) < MinPasswordLength {
		return goerrorkit.NewValidationError("Mật khẩu phải có ít nhất 6 ký tự", map[string]interface{}{
			"field":      "password",
			"min_length": MinPasswordLength,
		})
	}
	return nil
}

package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RefreshTokenBytes là số byte ngẫu nhiên của một refresh token (trước khi hex-encode)
const RefreshTokenBytes = 32

// GenerateRefreshToken tạo một refresh token ngẫu nhiên 64 ký tự hex
// Sử dụng crypto/rand để đảm bảo tính ngẫu nhiên và an toàn
func GenerateRefreshToken() (string, error) {
	bytes := make([]byte, RefreshTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

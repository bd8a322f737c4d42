package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Built-in role values. Any other authorization granularity comes from
// CustomRole, which references the role policy table by name.
const (
	BuiltinRoleAdmin = "admin"
	BuiltinRoleUser  = "user"
)

// User represents a dashboard user in the system
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"` // Hidden from JSON
	FullName   string    `json:"full_name"`
	Role       string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"` // Built-in role: admin | user
	CustomRole string    `gorm:"type:varchar(50)" json:"custom_role"`                  // Optional policy-table role name
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin trả về true nếu user có built-in role admin
func (u *User) IsAdmin() bool {
	return u.Role == BuiltinRoleAdmin
}

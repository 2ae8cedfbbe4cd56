package models

import (
	"time"

	"gorm.io/gorm"
)

// Member represents an association member or administrator
type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  string    `gorm:"uniqueIndex;not null" json:"member_id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `gorm:"default:member;not null" json:"role"`
	Status    string    `gorm:"default:active;not null;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Member
func (Member) TableName() string {
	return "members"
}

// Role constants
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Status constants
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// BeforeCreate hook for setting defaults
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.Role == "" {
		m.Role = RoleMember
	}
	if m.Status == "" {
		m.Status = StatusActive
	}
	return nil
}

// IsActive returns true if the member is not suspended
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

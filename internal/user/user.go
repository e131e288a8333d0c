package user

import (
	"strings"
	"time"
)

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
	RoleClient   = "client"

	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)

// User is the persisted account record. The password hash never serializes;
// API responses go through the PublicUser projection instead.
type User struct {
	ID         string    `gorm:"column:id_user;primaryKey" json:"id_user"`
	Name       string    `gorm:"column:name" json:"name"`
	Email      string    `gorm:"column:email" json:"email"`
	Password   string    `gorm:"column:password" json:"-"`
	Role       string    `gorm:"column:role" json:"role"`
	PositionID *string   `gorm:"column:id_position" json:"id_position,omitempty"`
	Status     string    `gorm:"column:status" json:"status"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is the redacted view of a user. Every boundary that returns a
// user record must project through here so the secret cannot leak by a
// forgotten field strip.
type PublicUser struct {
	ID         string    `json:"id_user"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	PositionID *string   `json:"id_position,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		PositionID: u.PositionID,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func PublicSlice(users []*User) []PublicUser {
	result := make([]PublicUser, len(users))
	for i, u := range users {
		result[i] = u.Public()
	}
	return result
}

// Summary is the short employee view embedded in attendance and camp
// responses.
type Summary struct {
	ID    string `gorm:"column:id_user" json:"id_user"`
	Name  string `gorm:"column:name" json:"name"`
	Email string `gorm:"column:email" json:"email"`
	Role  string `gorm:"column:role" json:"role"`
}

func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (u *User) IsActiveUser() bool {
	return u.Status == StatusActive
}

func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// NormalizeEmail applies the canonical form used for the unique index.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleAdmin, RoleClient:
		return true
	}
	return false
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}

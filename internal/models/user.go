package models

import "time"

// Role is the closed set of account roles. Stored as a string column but
// never handled as a free-form string in code.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"not null" json:"full_name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(10);default:'user'" json:"role"`

	// Citizen profile fields, all optional at registration
	Phone             string `json:"phone"`
	District          string `json:"district"`
	Municipality      string `json:"municipality"`
	WardNumber        int    `json:"ward_number"`
	CitizenshipNumber string `json:"citizenship_number"`
	ProfileImage      string `json:"profile_image"` // URL under /uploads

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

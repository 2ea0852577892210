package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`

	FirstName *string `gorm:"type:varchar(100)"`
	LastName  *string `gorm:"type:varchar(100)"`

	Role UserRole `gorm:"type:user_role;default:'user';not null"`

	// Pending verification code. Both fields are set together when a code
	// is issued and cleared together when it is consumed.
	IsVerified                bool    `gorm:"default:false;not null"`
	VerificationCodeHash      *string `gorm:"type:text"`
	VerificationCodeExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) FullName() string {
	switch {
	case u.FirstName != nil && u.LastName != nil:
		return *u.FirstName + " " + *u.LastName
	case u.FirstName != nil:
		return *u.FirstName
	case u.LastName != nil:
		return *u.LastName
	}
	return u.Email
}

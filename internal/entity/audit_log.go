package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditAction string

const (
	Signup         AuditAction = "signup"
	LoginSuccess   AuditAction = "login_success"
	LoginFailed    AuditAction = "login_failed"
	EmailVerified  AuditAction = "email_verified"
	CodeResent     AuditAction = "code_resent"
	TokenRefreshed AuditAction = "token_refreshed"
	CleanupRun     AuditAction = "cleanup_run"
)

type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`
	User   *User      `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string     `gorm:"type:varchar(45)"`
	Action    AuditAction `gorm:"type:audit_action;not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}

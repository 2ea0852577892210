package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coffeeshop/internal/entity"
	"coffeeshop/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	VerificationCodeTTL time.Duration
}

// CodeMailer delivers a plaintext verification code to an address. Delivery
// is a collaborator concern; the services only produce the code.
type CodeMailer interface {
	SendVerificationCode(ctx context.Context, email string, code string, expiresAt time.Time) error
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches the stored digest. The error
	// is non-nil only for a malformed digest, never for a mismatch.
	Verify(digest string, plaintext string) (bool, error)
}

type TokenIssuer interface {
	IssuePair(user entity.User) (utils.TokenPair, error)
	ParseRefresh(token string) (uuid.UUID, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(digest string, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrCorruptDigest, err)
}

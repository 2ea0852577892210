package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"coffeeshop/internal/entity"
	"coffeeshop/internal/repository"
	"coffeeshop/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// Compared against on login for unknown emails so the response time does not
// reveal whether an account exists.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type AuthService struct {
	users     repository.UserRepository
	auditLogs repository.AuditLogRepository

	mailer       CodeMailer
	passwordHash PasswordHasher
	tokens       TokenIssuer
	clock        Clock
	logger       *logrus.Logger
	config       AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	auditLogs repository.AuditLogRepository,
	mailer CodeMailer,
	passwordHash PasswordHasher,
	tokens TokenIssuer,
	clock Clock,
	logger *logrus.Logger,
	config AuthConfig,
) *AuthService {
	return &AuthService{
		users:        users,
		auditLogs:    auditLogs,
		mailer:       mailer,
		passwordHash: passwordHash,
		tokens:       tokens,
		clock:        clock,
		logger:       logger,
		config:       config,
	}
}

type SignupInput struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

// Signup creates an unverified account, issues its first verification code
// and returns a token pair for immediate authentication.
func (s *AuthService) Signup(ctx context.Context, input SignupInput, ipAddress *string) (utils.TokenPair, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return utils.TokenPair{}, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return utils.TokenPair{}, err
	}
	if existing != nil {
		return utils.TokenPair{}, ErrEmailAlreadyExists
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return utils.TokenPair{}, err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         entity.UserRoleUser,
		IsVerified:   false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index is the authority; the precheck only narrows the race.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return utils.TokenPair{}, ErrEmailAlreadyExists
		}
		return utils.TokenPair{}, err
	}

	if err := s.issueVerificationCode(ctx, user); err != nil {
		return utils.TokenPair{}, err
	}

	pair, err := s.tokens.IssuePair(*user)
	if err != nil {
		return utils.TokenPair{}, err
	}

	_ = s.logAudit(ctx, &user.ID, ipAddress, entity.Signup, nil)
	return pair, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login re-validates credentials and reissues a token pair. Unverified
// accounts may log in: verification itself requires an authenticated caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput, ipAddress *string) (utils.TokenPair, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return utils.TokenPair{}, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return utils.TokenPair{}, err
	}
	if user == nil {
		_, _ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		_ = s.logAudit(ctx, nil, ipAddress, entity.LoginFailed, map[string]any{"email": email})
		return utils.TokenPair{}, ErrInvalidCredentials
	}

	ok, err := s.passwordHash.Verify(user.PasswordHash, input.Password)
	if err != nil {
		return utils.TokenPair{}, err
	}
	if !ok {
		_ = s.logAudit(ctx, &user.ID, ipAddress, entity.LoginFailed, map[string]any{"email": email})
		return utils.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(*user)
	if err != nil {
		return utils.TokenPair{}, err
	}

	_ = s.logAudit(ctx, &user.ID, ipAddress, entity.LoginSuccess, nil)
	return pair, nil
}

// Refresh rotates a valid refresh token into a brand-new pair. The old
// refresh token is not tracked server-side; it stays usable until its own
// expiry (accepted trade-off of the stateless design).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (utils.TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return utils.TokenPair{}, utils.ErrTokenInvalid
	}

	userID, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return utils.TokenPair{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return utils.TokenPair{}, err
	}
	if user == nil {
		return utils.TokenPair{}, ErrUserNotFound
	}

	pair, err := s.tokens.IssuePair(*user)
	if err != nil {
		return utils.TokenPair{}, err
	}

	_ = s.logAudit(ctx, &user.ID, nil, entity.TokenRefreshed, nil)
	return pair, nil
}

func (s *AuthService) logAudit(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.AuditAction,
	metadata map[string]any,
) error {
	if s.auditLogs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}

	log := &entity.AuditLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	}
	return s.auditLogs.Log(ctx, log)
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *AuthService) verificationCodeTTL() time.Duration {
	if s.config.VerificationCodeTTL > 0 {
		return s.config.VerificationCodeTTL
	}
	return 24 * time.Hour
}

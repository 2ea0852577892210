package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenWrongType = errors.New("wrong token type")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// JWTManager signs and parses the access/refresh token pair. Tokens are
// stateless: expiry is the only revocation mechanism.
type JWTManager struct {
	Secret          []byte
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int64
	RefreshExpiresIn int64
}

type AccessClaims struct {
	UserID string `json:"sub"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	UserID string `json:"sub"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

func (m JWTManager) accessTTL() time.Duration {
	if m.AccessTokenTTL > 0 {
		return m.AccessTokenTTL
	}
	return 30 * time.Minute
}

func (m JWTManager) refreshTTL() time.Duration {
	if m.RefreshTokenTTL > 0 {
		return m.RefreshTokenTTL
	}
	return 7 * 24 * time.Hour
}

// IssuePair mints a fresh access/refresh pair. The access token carries the
// role; the refresh token carries only the subject.
func (m JWTManager) IssuePair(userID uuid.UUID, role string) (TokenPair, error) {
	now := time.Now()
	accessTTL := m.accessTTL()
	refreshTTL := m.refreshTTL()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserID: userID.String(),
		Role:   role,
		Type:   tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
		},
	})
	signedAccess, err := access.SignedString(m.Secret)
	if err != nil {
		return TokenPair{}, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims{
		UserID: userID.String(),
		Type:   tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTTL)),
		},
	})
	signedRefresh, err := refresh.SignedString(m.Secret)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:      signedAccess,
		RefreshToken:     signedRefresh,
		ExpiresIn:        int64(accessTTL.Seconds()),
		RefreshExpiresIn: int64(refreshTTL.Seconds()),
	}, nil
}

// ParseAccess validates an access token and returns its claims. A refresh
// token presented here fails with ErrTokenWrongType.
func (m JWTManager) ParseAccess(tokenString string) (*AccessClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Type != tokenTypeAccess {
		return nil, ErrTokenWrongType
	}
	return claims, nil
}

// ParseRefresh validates a refresh token and returns the subject user id.
func (m JWTManager) ParseRefresh(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &refreshClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*refreshClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, ErrTokenInvalid
	}
	if claims.Type != tokenTypeRefresh {
		return uuid.Nil, ErrTokenWrongType
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return id, nil
}

package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	coreuser "github.com/frahmantamala/stock-management/internal/core/user"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error)
	ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error)
	Logout(ctx context.Context, tokenString string) error
	LoadUser(ctx context.Context, userID int64) (*User, error)
}

type RepositoryAPI interface {
	GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
	GetUserByID(ctx context.Context, userID int64) (*User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64) (token string, err error)
	GenerateRefreshToken(userID int64) (token string, err error)
	ValidateToken(tokenString, tokenType string) (*Claims, error)
}

// TokenBlocklist records revoked token ids until the token would have expired anyway.
type TokenBlocklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// User is the authenticated principal. Role and department are loaded from
// the users table on every request, never taken from the token.
type User struct {
	ID         int64         `json:"id"`
	Email      string        `json:"email"`
	Name       string        `json:"name"`
	Role       coreuser.Role `json:"role"`
	Department string        `json:"department"`
	IsActive   bool          `json:"-"`
}

func (u *User) CanApprove() bool {
	return u.Role.CanApprove()
}

func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}

type Credentials struct {
	UserID       int64
	PasswordHash string
	IsActive     bool
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

package auth

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/stock-management/internal"
	coreuser "github.com/frahmantamala/stock-management/internal/core/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	credentials   map[string]*Credentials // email -> credentials
	usersByID     map[int64]*User
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	return &mockUserRepository{
		credentials: map[string]*Credentials{
			"user@example.com":     {UserID: 1, PasswordHash: string(hashedPassword), IsActive: true},
			"approver@example.com": {UserID: 2, PasswordHash: string(hashedPassword), IsActive: true},
			"gone@example.com":     {UserID: 3, PasswordHash: string(hashedPassword), IsActive: false},
		},
		usersByID: map[int64]*User{
			1: {ID: 1, Email: "user@example.com", Role: coreuser.RoleUser, Department: "IT", IsActive: true},
			2: {ID: 2, Email: "approver@example.com", Role: coreuser.RoleApprover, Department: "IT", IsActive: true},
			3: {ID: 3, Email: "gone@example.com", Role: coreuser.RoleUser, Department: "HR", IsActive: false},
		},
	}
}

func (m *mockUserRepository) GetCredentialsByEmail(_ context.Context, email string) (*Credentials, error) {
	if m.errorToReturn != nil {
		return nil, m.errorToReturn
	}
	creds, ok := m.credentials[email]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return creds, nil
}

func (m *mockUserRepository) GetUserByID(_ context.Context, userID int64) (*User, error) {
	if m.errorToReturn != nil {
		return nil, m.errorToReturn
	}
	u, ok := m.usersByID[userID]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

var _ = ginkgo.Describe("Auth Service", func() {
	var (
		repo      *mockUserRepository
		tokens    *JWTTokenGenerator
		blocklist *MemoryBlocklist
		service   *Service
		ctx       context.Context
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		repo = newMockUserRepository()
		tokens = NewJWTTokenGenerator(
			"access-secret-access-secret-access-secret",
			"refresh-secret-refresh-secret-refresh-secret",
			15*time.Minute,
			24*time.Hour,
		)
		blocklist = NewMemoryBlocklist()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = NewService(repo, tokens, blocklist, lg)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("should return tokens for valid credentials", func() {
			result, err := service.Authenticate(ctx, LoginDTO{Email: "user@example.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(result.RefreshToken).ToNot(gomega.BeEmpty())

			claims, err := service.ValidateAccessToken(ctx, result.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal(int64(1)))
			gomega.Expect(claims.TokenType).To(gomega.Equal(TokenTypeAccess))
		})

		ginkgo.It("should reject a wrong password", func() {
			_, err := service.Authenticate(ctx, LoginDTO{Email: "user@example.com", Password: "nope"})
			gomega.Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(gomega.BeTrue())
		})

		ginkgo.It("should not reveal whether the email exists", func() {
			_, err := service.Authenticate(ctx, LoginDTO{Email: "missing@example.com", Password: "correct_password"})
			gomega.Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject inactive users", func() {
			_, err := service.Authenticate(ctx, LoginDTO{Email: "gone@example.com", Password: "correct_password"})
			gomega.Expect(errors.Is(err, internal.ErrUserInactive)).To(gomega.BeTrue())
		})

		ginkgo.It("should validate required fields", func() {
			_, err := service.Authenticate(ctx, LoginDTO{Email: "", Password: ""})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})
	})

	ginkgo.Describe("Token types", func() {
		ginkgo.It("should not accept a refresh token as an access token", func() {
			result, err := service.Authenticate(ctx, LoginDTO{Email: "user@example.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(ctx, result.RefreshToken)
			gomega.Expect(errors.Is(err, internal.ErrInvalidToken)).To(gomega.BeTrue())
		})

		ginkgo.It("should report expired tokens", func() {
			expired := &JWTTokenGenerator{
				AccessTokenSecret:  tokens.AccessTokenSecret,
				RefreshTokenSecret: tokens.RefreshTokenSecret,
				AccessTokenTTL:     -time.Minute,
				RefreshTokenTTL:    time.Hour,
			}
			token, err := expired.GenerateAccessToken(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(ctx, token)
			gomega.Expect(errors.Is(err, internal.ErrTokenExpired)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should rotate the refresh token", func() {
			first, err := service.Authenticate(ctx, LoginDTO{Email: "approver@example.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			second, err := service.RefreshTokens(ctx, first.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(second.AccessToken).ToNot(gomega.BeEmpty())

			_, err = service.RefreshTokens(ctx, first.RefreshToken)
			gomega.Expect(errors.Is(err, internal.ErrTokenRevoked)).To(gomega.BeTrue())
		})

		ginkgo.It("should refuse to refresh for a deactivated user", func() {
			first, err := service.Authenticate(ctx, LoginDTO{Email: "user@example.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			repo.usersByID[1].IsActive = false
			_, err = service.RefreshTokens(ctx, first.RefreshToken)
			gomega.Expect(errors.Is(err, internal.ErrUserInactive)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("should revoke the access token", func() {
			result, err := service.Authenticate(ctx, LoginDTO{Email: "user@example.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.Logout(ctx, result.AccessToken)).To(gomega.Succeed())

			_, err = service.ValidateAccessToken(ctx, result.AccessToken)
			gomega.Expect(errors.Is(err, internal.ErrTokenRevoked)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("LoadUser", func() {
		ginkgo.It("should return the current role and department", func() {
			repo.usersByID[1].Role = coreuser.RoleApprover
			repo.usersByID[1].Department = "Finance"

			u, err := service.LoadUser(ctx, 1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Role).To(gomega.Equal(coreuser.RoleApprover))
			gomega.Expect(u.Department).To(gomega.Equal("Finance"))
			gomega.Expect(u.CanApprove()).To(gomega.BeTrue())
		})

		ginkgo.It("should propagate not found", func() {
			_, err := service.LoadUser(ctx, 99)
			gomega.Expect(errors.Is(err, internal.ErrUserNotFound)).To(gomega.BeTrue())
		})
	})
})

var _ = ginkgo.Describe("MemoryBlocklist", func() {
	ginkgo.It("should forget entries after their ttl", func() {
		b := NewMemoryBlocklist()
		now := time.Now()
		b.now = func() time.Time { return now }

		gomega.Expect(b.Revoke(context.Background(), "jti-1", time.Minute)).To(gomega.Succeed())
		revoked, err := b.IsRevoked(context.Background(), "jti-1")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(revoked).To(gomega.BeTrue())

		now = now.Add(2 * time.Minute)
		revoked, err = b.IsRevoked(context.Background(), "jti-1")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(revoked).To(gomega.BeFalse())
	})
})

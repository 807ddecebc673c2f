package user_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/core/datamodel/sqlitetest"
	userDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/stock-management/internal/core/user"
	"github.com/frahmantamala/stock-management/internal/user"
	"github.com/frahmantamala/stock-management/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

func fakeHash(password string) (string, error) {
	return "hashed:" + password, nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *postgres.UserRepository
		service *user.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, err := sqlitetest.Open()
		Expect(err).NotTo(HaveOccurred())
		repo = postgres.NewUserRepository(db)
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(repo, fakeHash, lg)
	})

	Describe("CreateUser", func() {
		It("should store a normalized user with a hashed password", func() {
			created, err := service.CreateUser(ctx, user.CreateUserDTO{
				Email:      "  Alice@Example.com ",
				Name:       "Alice",
				Password:   "s3cret-pass",
				Department: "IT",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Email).To(Equal("alice@example.com"))
			Expect(created.Role).To(Equal(coreuser.RoleUser))
			Expect(created.IsActive).To(BeTrue())

			row, err := repo.GetByID(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(row.PasswordHash).To(Equal("hashed:s3cret-pass"))
		})

		It("should refuse a taken email", func() {
			dto := user.CreateUserDTO{Email: "bob@example.com", Name: "Bob", Password: "password1", Department: "HR"}
			_, err := service.CreateUser(ctx, dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateUser(ctx, dto)
			Expect(errors.Is(err, internal.ErrEmailTaken)).To(BeTrue())
		})

		It("should reject an unknown role", func() {
			_, err := service.CreateUser(ctx, user.CreateUserDTO{
				Email: "c@example.com", Name: "C", Password: "password1", Department: "IT", Role: "owner",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject a short password", func() {
			_, err := service.CreateUser(ctx, user.CreateUserDTO{
				Email: "d@example.com", Name: "D", Password: "short", Department: "IT",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("UpdateUser", func() {
		var created *user.User

		BeforeEach(func() {
			var err error
			created, err = service.CreateUser(ctx, user.CreateUserDTO{
				Email: "erin@example.com", Name: "Erin", Password: "password1", Department: "IT",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should change role and department", func() {
			role := string(coreuser.RoleApprover)
			dept := "Finance"

			updated, err := service.UpdateUser(ctx, created.ID, user.UpdateUserDTO{Role: &role, Department: &dept})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Role).To(Equal(coreuser.RoleApprover))
			Expect(updated.Department).To(Equal("Finance"))

			department, err := service.GetDepartment(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(department).To(Equal("Finance"))
		})

		It("should deactivate a user", func() {
			inactive := false
			updated, err := service.UpdateUser(ctx, created.ID, user.UpdateUserDTO{IsActive: &inactive})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsActive).To(BeFalse())
		})

		It("should report a missing user", func() {
			dept := "Finance"
			_, err := service.UpdateUser(ctx, 999, user.UpdateUserDTO{Department: &dept})
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
		})
	})

	Describe("ListByDepartment", func() {
		It("should only list the requested department", func() {
			for _, u := range []*userDatamodel.User{
				{Email: "a@x.com", Name: "Ann", PasswordHash: "h", Department: "IT", Role: "user", IsActive: true},
				{Email: "b@x.com", Name: "Ben", PasswordHash: "h", Department: "IT", Role: "approver", IsActive: true},
				{Email: "c@x.com", Name: "Cal", PasswordHash: "h", Department: "HR", Role: "user", IsActive: true},
			} {
				Expect(repo.Create(ctx, u)).To(Succeed())
			}

			users, err := service.ListByDepartment(ctx, "IT")
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
			Expect(users[0].Name).To(Equal("Ann"))
			Expect(users[1].Name).To(Equal("Ben"))
		})
	})
})

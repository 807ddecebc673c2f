package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/auth"
	coreuser "github.com/frahmantamala/stock-management/internal/core/user"
	"github.com/frahmantamala/stock-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubService struct {
	users   map[int64]*user.User
	created *user.CreateUserDTO
}

func (s *stubService) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *stubService) ListByDepartment(_ context.Context, department string) ([]*user.User, error) {
	var out []*user.User
	for _, u := range s.users {
		if u.Department == department {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubService) CreateUser(_ context.Context, dto user.CreateUserDTO) (*user.User, error) {
	s.created = &dto
	return &user.User{ID: 10, Email: dto.Email, Department: dto.Department, Role: coreuser.Role(dto.Role)}, nil
}

func (s *stubService) UpdateUser(_ context.Context, id int64, dto user.UpdateUserDTO) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	if dto.Role != nil {
		u.Role = coreuser.Role(*dto.Role)
	}
	return u, nil
}

func withPrincipal(r *http.Request, principal *auth.User) *http.Request {
	return r.WithContext(auth.ContextWithUser(r.Context(), principal))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("User Handler", func() {
	var (
		svc     *stubService
		handler *user.Handler
	)

	BeforeEach(func() {
		svc = &stubService{users: map[int64]*user.User{
			1: {ID: 1, Email: "ann@x.com", Department: "IT", Role: coreuser.RoleUser, IsActive: true},
			2: {ID: 2, Email: "hal@x.com", Department: "HR", Role: coreuser.RoleUser, IsActive: true},
		}}
		handler = user.NewHandler(svc)
	})

	It("should return the current user", func() {
		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/users/me", nil), &auth.User{ID: 1, Department: "IT"})
		w := httptest.NewRecorder()

		handler.GetCurrentUser(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var got user.User
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got.Email).To(Equal("ann@x.com"))
	})

	It("should answer 401 without a principal", func() {
		w := httptest.NewRecorder()
		handler.GetCurrentUser(w, httptest.NewRequest(http.MethodGet, "/users/me", nil))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should list users of the caller's department", func() {
		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/users", nil), &auth.User{ID: 1, Department: "IT"})
		w := httptest.NewRecorder()

		handler.ListUsers(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("ann@x.com"))
		Expect(w.Body.String()).NotTo(ContainSubstring("hal@x.com"))
	})

	It("should create a user", func() {
		body := `{"email":"new@x.com","name":"New","password":"password1","department":"IT","role":"approver"}`
		w := httptest.NewRecorder()

		handler.CreateUser(w, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body)))

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(svc.created.Role).To(Equal("approver"))
	})

	It("should update a user's role", func() {
		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/users/2", strings.NewReader(`{"role":"approver"}`)), "id", "2")
		w := httptest.NewRecorder()

		handler.UpdateUser(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.users[2].Role).To(Equal(coreuser.RoleApprover))
	})

	It("should answer 404 for an unknown user", func() {
		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/users/9", strings.NewReader(`{"role":"admin"}`)), "id", "9")
		w := httptest.NewRecorder()

		handler.UpdateUser(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should answer 400 for a malformed id", func() {
		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/users/abc", strings.NewReader(`{}`)), "id", "abc")
		w := httptest.NewRecorder()

		handler.UpdateUser(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})

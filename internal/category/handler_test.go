package category_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/stock-management/internal/category"
	categoryPostgres "github.com/frahmantamala/stock-management/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/category"
	"github.com/frahmantamala/stock-management/internal/core/datamodel/sqlitetest"
	"github.com/frahmantamala/stock-management/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		repo    category.RepositoryAPI
		handler *category.Handler
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := sqlitetest.Open()
		Expect(err).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
		service := category.NewService(repo, slogger)
		handler = category.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		for _, cat := range []*category.Category{
			category.NewCategory("stationery", "Paper and pens"),
			category.NewCategory("electronics", "Devices and cables"),
		} {
			Expect(repo.Create(ctx, category.ToDataModel(cat))).To(Succeed())
		}

		retired := &categoryDatamodel.ItemCategory{Name: "retired", Description: "No longer stocked", IsActive: false}
		Expect(repo.Create(ctx, retired)).To(Succeed())
	})

	It("should handle GET /categories request successfully", func() {
		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		w := httptest.NewRecorder()

		handler.GetCategories(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response category.CategoriesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())

		names := make([]string, len(response.Categories))
		for i, cat := range response.Categories {
			names[i] = cat.Name
		}
		Expect(names).To(Equal([]string{"electronics", "stationery"}))
	})

	It("should create a category", func() {
		req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"cleaning","description":"Detergents"}`))
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		var created category.CategoryResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Name).To(Equal("cleaning"))
	})

	It("should answer 409 for a duplicate category", func() {
		req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"stationery"}`))
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(w.Body.String()).To(ContainSubstring("DUPLICATE_CATEGORY"))
	})

	It("should reject unknown fields", func() {
		req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"x","colour":"red"}`))
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})

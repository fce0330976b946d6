package categories

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rohandesai/brandline-backend/pkg/db"
	"github.com/rohandesai/brandline-backend/pkg/db/models"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.ProductSize{},
		&models.ProductBrand{},
	); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewFromGorm(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func mustCreateProductIn(t *testing.T, conn *gorm.DB, categoryID uint, name string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		CategoryID: categoryID,
		Images:     []string{},
		Keywords:   []string{},
		Sizes: []models.ProductSize{
			{Label: "Free Size", Price: decimal.NewFromInt(100)},
		},
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CategoryInput{Name: "Summer Shirts"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if created.Slug != "summer-shirts" {
		t.Fatalf("expected derived slug, got %q", created.Slug)
	}
}

func TestCreateCategoryDuplicateSlugRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CategoryInput{Name: "Shirts"}); err != nil {
		t.Fatalf("create first category: %v", err)
	}

	_, err := svc.Create(ctx, CategoryInput{Name: "Different Name", Slug: "shirts"})
	if err == nil {
		t.Fatal("expected duplicate slug rejection")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}

func TestUpdateCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CategoryInput{Name: "Shirts"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	desc := "All shirts"
	updated, err := svc.Update(ctx, created.ID, CategoryInput{Name: "Fine Shirts", Description: &desc})
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated.Name != "Fine Shirts" || updated.Slug != "fine-shirts" {
		t.Fatalf("expected renamed category, got %+v", updated)
	}
	if updated.Description == nil || *updated.Description != desc {
		t.Fatalf("expected description set, got %+v", updated.Description)
	}

	_, err = svc.Update(ctx, 9999, CategoryInput{Name: "Ghost"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteCategoryReassignsProducts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CategoryInput{Name: "Alpha"})
	if err != nil {
		t.Fatalf("create category A: %v", err)
	}
	b, err := svc.Create(ctx, CategoryInput{Name: "Beta"})
	if err != nil {
		t.Fatalf("create category B: %v", err)
	}

	product := mustCreateProductIn(t, conn, a.ID, "Orphan Candidate")

	result, err := svc.Delete(ctx, a.ID)
	if err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if result.ReassignedTo == nil || result.ReassignedTo.ID != b.ID {
		t.Fatalf("expected reassignment to Beta, got %+v", result.ReassignedTo)
	}
	if result.ReassignedCount != 1 {
		t.Fatalf("expected 1 reassigned product, got %d", result.ReassignedCount)
	}

	var reloaded models.Product
	if err := conn.First(&reloaded, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.CategoryID != b.ID {
		t.Fatalf("expected product moved to Beta, got category %d", reloaded.CategoryID)
	}

	if _, err := svc.Get(ctx, a.ID); err == nil {
		t.Fatal("expected Alpha to be gone")
	}
}

func TestDeleteSoleCategoryWithProductsRejected(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	only, err := svc.Create(ctx, CategoryInput{Name: "Only"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	mustCreateProductIn(t, conn, only.ID, "Stuck Product")

	_, err = svc.Delete(ctx, only.ID)
	if err == nil {
		t.Fatal("expected delete to be rejected")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}

	if _, err := svc.Get(ctx, only.ID); err != nil {
		t.Fatalf("expected category to survive, got %v", err)
	}
}

func TestDeleteEmptyCategoryWithoutSiblings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	only, err := svc.Create(ctx, CategoryInput{Name: "Only"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	result, err := svc.Delete(ctx, only.ID)
	if err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
	if result.ReassignedTo != nil || result.ReassignedCount != 0 {
		t.Fatalf("expected no reassignment, got %+v", result)
	}
}

func TestListCategoriesOrderedByName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Denim", "Accessories", "Shirts"} {
		if _, err := svc.Create(ctx, CategoryInput{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	want := []string{"Accessories", "Denim", "Shirts"}
	if len(list) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(list))
	}
	for i := range want {
		if list[i].Name != want[i] {
			t.Fatalf("expected order %v, got %+v", want, list)
		}
	}
}

func TestListCategoriesIncludesProductCounts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	denim, err := svc.Create(ctx, CategoryInput{Name: "Denim"})
	if err != nil {
		t.Fatalf("create denim: %v", err)
	}
	if _, err := svc.Create(ctx, CategoryInput{Name: "Shirts"}); err != nil {
		t.Fatalf("create shirts: %v", err)
	}
	mustCreateProductIn(t, conn, denim.ID, "Slim Jeans")
	mustCreateProductIn(t, conn, denim.ID, "Wide Jeans")

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	counts := map[string]int64{}
	for _, item := range list {
		counts[item.Name] = item.ProductCount
	}
	if counts["Denim"] != 2 {
		t.Fatalf("expected 2 products in Denim, got %d", counts["Denim"])
	}
	if counts["Shirts"] != 0 {
		t.Fatalf("expected 0 products in Shirts, got %d", counts["Shirts"])
	}
}

func TestGetCategoryIncludesProducts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CategoryInput{Name: "Denim"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.Create(ctx, CategoryInput{Name: "Tees"}); err != nil {
		t.Fatalf("create other category: %v", err)
	}
	mustCreateProductIn(t, conn, created.ID, "Slim Jeans")
	mustCreateProductIn(t, conn, created.ID, "Wide Jeans")

	detail, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if detail.Slug != "denim" {
		t.Fatalf("unexpected category %+v", detail)
	}
	if len(detail.Products) != 2 {
		t.Fatalf("expected 2 products, got %+v", detail.Products)
	}
	for _, product := range detail.Products {
		if product.Category.ID != created.ID {
			t.Fatalf("product %q attached to category %d", product.Name, product.Category.ID)
		}
		if len(product.Sizes) != 1 || product.Sizes[0].Label != "Free Size" {
			t.Fatalf("expected product sizes, got %+v", product.Sizes)
		}
	}
}

package catalog

import (
	"context"
	"testing"

	"github.com/rohandesai/brandline-backend/pkg/db"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := openTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, db.NewFromGorm(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestServiceCreateAndGetProduct(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	shirts := mustCreateCategory(t, repo.db, "Shirts", "shirts")
	acme := mustCreateBrand(t, repo.db, "Acme Apparel", "acme-apparel", true)

	created, err := svc.CreateProduct(ctx, ProductInput{
		Name:        "  Linen Shirt  ",
		Description: "Light and breathable",
		CategoryID:  shirts.ID,
		Images:      []string{"https://cdn.example.com/linen.jpg"},
		Keywords:    []string{"linen", "summer"},
		BrandIDs:    []uint{acme.ID},
		Sizes: []SizeInput{
			{Label: "M", Price: mustDecimal(t, "120.50")},
			{Label: "L", Price: mustDecimal(t, "120.50")},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.Name != "Linen Shirt" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.Category.Slug != "shirts" {
		t.Fatalf("expected category flattened, got %+v", created.Category)
	}
	if len(created.Sizes) != 2 {
		t.Fatalf("expected 2 sizes, got %d", len(created.Sizes))
	}
	if len(created.Brands) != 1 || created.Brands[0].Slug != "acme-apparel" {
		t.Fatalf("expected brand summary, got %+v", created.Brands)
	}
	if len(created.Images) != 1 || len(created.Keywords) != 2 {
		t.Fatalf("expected flattened images/keywords, got %+v / %+v", created.Images, created.Keywords)
	}

	fetched, err := svc.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("expected id %d, got %d", created.ID, fetched.ID)
	}
}

func TestServiceGetProductNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProduct(context.Background(), 9999)
	if err == nil {
		t.Fatal("expected not found error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
	if typed.Message() != "Product not found" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestServiceCreateProductValidation(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	shirts := mustCreateCategory(t, repo.db, "Shirts", "shirts")

	cases := []struct {
		name  string
		input ProductInput
	}{
		{"blank name", ProductInput{Name: "  ", CategoryID: shirts.ID}},
		{"missing category", ProductInput{Name: "Shirt"}},
		{"unknown category", ProductInput{Name: "Shirt", CategoryID: 999}},
		{"negative price", ProductInput{
			Name: "Shirt", CategoryID: shirts.ID,
			Sizes: []SizeInput{{Label: "M", Price: mustDecimal(t, "-1")}},
		}},
		{"duplicate size labels", ProductInput{
			Name: "Shirt", CategoryID: shirts.ID,
			Sizes: []SizeInput{
				{Label: "M", Price: mustDecimal(t, "10")},
				{Label: "M", Price: mustDecimal(t, "12")},
			},
		}},
		{"unknown brand", ProductInput{
			Name: "Shirt", CategoryID: shirts.ID, BrandIDs: []uint{12345},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}

func TestServiceUpdateProductReplacesSizesAndBrands(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	shirts := mustCreateCategory(t, repo.db, "Shirts", "shirts")
	denim := mustCreateCategory(t, repo.db, "Denim", "denim")
	acme := mustCreateBrand(t, repo.db, "Acme Apparel", "acme-apparel", true)
	north := mustCreateBrand(t, repo.db, "Northwind", "northwind", true)

	created, err := svc.CreateProduct(ctx, ProductInput{
		Name:       "Shirt",
		CategoryID: shirts.ID,
		BrandIDs:   []uint{acme.ID},
		Sizes:      []SizeInput{{Label: "M", Price: mustDecimal(t, "100")}},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	updated, err := svc.UpdateProduct(ctx, created.ID, ProductInput{
		Name:       "Jeans",
		CategoryID: denim.ID,
		IsTrending: true,
		BrandIDs:   []uint{north.ID},
		Sizes: []SizeInput{
			{Label: "30", Price: mustDecimal(t, "150")},
			{Label: "32", Price: mustDecimal(t, "150")},
		},
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}

	if updated.Name != "Jeans" || !updated.IsTrending {
		t.Fatalf("expected replaced fields, got %+v", updated)
	}
	if updated.Category.Slug != "denim" {
		t.Fatalf("expected denim category, got %+v", updated.Category)
	}
	if len(updated.Sizes) != 2 {
		t.Fatalf("expected 2 sizes, got %d", len(updated.Sizes))
	}
	if len(updated.Brands) != 1 || updated.Brands[0].Slug != "northwind" {
		t.Fatalf("expected northwind link, got %+v", updated.Brands)
	}
}

func TestServiceDeleteProduct(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	shirts := mustCreateCategory(t, repo.db, "Shirts", "shirts")
	created, err := svc.CreateProduct(ctx, ProductInput{Name: "Shirt", CategoryID: shirts.ID})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	if _, err := svc.GetProduct(ctx, created.ID); err == nil {
		t.Fatal("expected product to be gone")
	}

	err = svc.DeleteProduct(ctx, created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestServiceListProductsFlattens(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	shirts := mustCreateCategory(t, repo.db, "Shirts", "shirts")
	mustCreateProduct(t, repo.db, productFixture{Name: "Shirt A", CategoryID: shirts.ID})
	mustCreateProduct(t, repo.db, productFixture{Name: "Shirt B", CategoryID: shirts.ID, IsNew: true})

	all, err := svc.ListProducts(ctx, Filters{})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}
	for _, dto := range all {
		if dto.Images == nil || dto.Keywords == nil || dto.Sizes == nil || dto.Brands == nil {
			t.Fatalf("expected non-nil collections, got %+v", dto)
		}
	}

	fresh, err := svc.ListProducts(ctx, Filters{IsNew: true})
	if err != nil {
		t.Fatalf("list new products: %v", err)
	}
	if len(fresh) != 1 || fresh[0].Name != "Shirt B" {
		t.Fatalf("expected Shirt B only, got %+v", fresh)
	}
}

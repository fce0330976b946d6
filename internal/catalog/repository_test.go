package catalog

import (
	"context"
	"testing"
	"time"
)

func TestListProductsFilterComposition(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	shirts := mustCreateCategory(t, conn, "Shirts", "shirts")
	denim := mustCreateCategory(t, conn, "Denim", "denim")
	acme := mustCreateBrand(t, conn, "Acme Apparel", "acme-apparel", true)

	mustCreateProduct(t, conn, productFixture{
		Name: "Trendy Shirt", CategoryID: shirts.ID, IsTrending: true, BrandIDs: []uint{acme.ID},
	})
	mustCreateProduct(t, conn, productFixture{
		Name: "Plain Shirt", CategoryID: shirts.ID,
	})
	mustCreateProduct(t, conn, productFixture{
		Name: "Trendy Jeans", CategoryID: denim.ID, IsTrending: true,
	})

	t.Run("no filters returns everything", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, Filters{})
		if err != nil {
			t.Fatalf("list products: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected 3 products, got %d: %v", len(rows), productNames(rows))
		}
	})

	t.Run("category and trending compose with AND", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, Filters{CategorySlug: "shirts", IsTrending: true})
		if err != nil {
			t.Fatalf("list products: %v", err)
		}
		if len(rows) != 1 || rows[0].Name != "Trendy Shirt" {
			t.Fatalf("expected only Trendy Shirt, got %v", productNames(rows))
		}
	})

	t.Run("brand slug filter", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, Filters{BrandSlug: "acme-apparel"})
		if err != nil {
			t.Fatalf("list products: %v", err)
		}
		if len(rows) != 1 || rows[0].Name != "Trendy Shirt" {
			t.Fatalf("expected only Trendy Shirt, got %v", productNames(rows))
		}
	})

	t.Run("unknown category slug yields empty set", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, Filters{CategorySlug: "no-such-category"})
		if err != nil {
			t.Fatalf("list products: %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("expected empty result, got %v", productNames(rows))
		}
	})
}

func TestListProductsSearch(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	shirts := mustCreateCategory(t, conn, "Shirts", "shirts")
	north := mustCreateBrand(t, conn, "Northwind", "northwind", true)
	ghost := mustCreateBrand(t, conn, "Ghost Label", "ghost-label", false)

	mustCreateProduct(t, conn, productFixture{
		Name: "Linen Overshirt", Description: "Breathable summer layer", CategoryID: shirts.ID,
	})
	mustCreateProduct(t, conn, productFixture{
		Name: "Oxford Classic", Description: "A wardrobe staple", CategoryID: shirts.ID,
	})
	mustCreateProduct(t, conn, productFixture{
		Name: "Logo Tee", CategoryID: shirts.ID, BrandIDs: []uint{north.ID},
	})
	mustCreateProduct(t, conn, productFixture{
		Name: "Hidden Tee", CategoryID: shirts.ID, BrandIDs: []uint{ghost.ID},
	})

	t.Run("name substring is case-insensitive", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, Filters{Search: "OVERSHIRT"})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(rows) != 1 || rows[0].Name != "Linen Overshirt" {
			t.Fatalf("expected Linen Overshirt, got %v", productNames(rows))
		}
	})

	t.Run("description substring matches", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, Filters{Search: "wardrobe"})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(rows) != 1 || rows[0].Name != "Oxford Classic" {
			t.Fatalf("expected Oxford Classic, got %v", productNames(rows))
		}
	})

	t.Run("active brand match pulls in linked products", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, Filters{Search: "northwind"})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(rows) != 1 || rows[0].Name != "Logo Tee" {
			t.Fatalf("expected Logo Tee, got %v", productNames(rows))
		}
	})

	t.Run("inactive brand never broadens search", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, Filters{Search: "ghost"})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		for _, row := range rows {
			if row.Name == "Hidden Tee" {
				t.Fatalf("inactive brand matched: %v", productNames(rows))
			}
		}
	})

	t.Run("no matches returns empty list without error", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, Filters{Search: "zzzz-nothing"})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("expected empty result, got %v", productNames(rows))
		}
	})

	t.Run("search composes with category filter", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, Filters{Search: "tee", CategorySlug: "shirts"})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 tees, got %v", productNames(rows))
		}
	})
}

func TestListProductsOrdering(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	shirts := mustCreateCategory(t, conn, "Shirts", "shirts")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mustCreateProduct(t, conn, productFixture{Name: "Older", CategoryID: shirts.ID, CreatedAt: base.Add(-time.Hour)})
	mustCreateProduct(t, conn, productFixture{Name: "Tied A", CategoryID: shirts.ID, CreatedAt: base})
	mustCreateProduct(t, conn, productFixture{Name: "Tied B", CategoryID: shirts.ID, CreatedAt: base})
	mustCreateProduct(t, conn, productFixture{Name: "Newest", CategoryID: shirts.ID, CreatedAt: base.Add(time.Hour)})

	rows, err := repo.ListProducts(ctx, Filters{})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}

	got := productNames(rows)
	want := []string{"Newest", "Tied A", "Tied B", "Older"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestFindProductByIDPreloadsAssociations(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	shirts := mustCreateCategory(t, conn, "Shirts", "shirts")
	acme := mustCreateBrand(t, conn, "Acme Apparel", "acme-apparel", true)
	created := mustCreateProduct(t, conn, productFixture{
		Name: "Loaded Shirt", CategoryID: shirts.ID, BrandIDs: []uint{acme.ID},
	})

	product, err := repo.FindProductByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if product.Category == nil || product.Category.Slug != "shirts" {
		t.Fatal("expected category preloaded")
	}
	if len(product.Sizes) != 1 {
		t.Fatalf("expected 1 size, got %d", len(product.Sizes))
	}
	if len(product.Brands) != 1 || product.Brands[0].Brand == nil || product.Brands[0].Brand.Slug != "acme-apparel" {
		t.Fatal("expected brand link preloaded")
	}
}

func TestReplaceSizesAndBrandLinks(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	shirts := mustCreateCategory(t, conn, "Shirts", "shirts")
	acme := mustCreateBrand(t, conn, "Acme Apparel", "acme-apparel", true)
	other := mustCreateBrand(t, conn, "Other", "other", true)
	created := mustCreateProduct(t, conn, productFixture{
		Name: "Mutable Shirt", CategoryID: shirts.ID, BrandIDs: []uint{acme.ID},
	})

	if err := repo.ReplaceSizes(ctx, created.ID, buildSizes([]SizeInput{
		{Label: "S", Price: mustDecimal(t, "80")},
		{Label: "M", Price: mustDecimal(t, "90")},
	})); err != nil {
		t.Fatalf("replace sizes: %v", err)
	}
	if err := repo.ReplaceBrandLinks(ctx, created.ID, []uint{other.ID}); err != nil {
		t.Fatalf("replace brand links: %v", err)
	}

	product, err := repo.FindProductByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if len(product.Sizes) != 2 {
		t.Fatalf("expected 2 sizes, got %d", len(product.Sizes))
	}
	if len(product.Brands) != 1 || product.Brands[0].BrandID != other.ID {
		t.Fatalf("expected single link to Other, got %+v", product.Brands)
	}
}

func TestListProductsSearchMatchesWildcardsLiterally(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	shirts := mustCreateCategory(t, conn, "Shirts", "shirts")
	mustCreateProduct(t, conn, productFixture{Name: "100% Cotton Tee", CategoryID: shirts.ID})
	mustCreateProduct(t, conn, productFixture{Name: "100x Cotton Tee", CategoryID: shirts.ID})
	mustCreateProduct(t, conn, productFixture{Name: "Rib_Knit Tank", CategoryID: shirts.ID})
	mustCreateProduct(t, conn, productFixture{Name: "Ribbed Tank", CategoryID: shirts.ID})

	rows, err := repo.ListProducts(ctx, Filters{Search: "100%"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "100% Cotton Tee" {
		t.Fatalf("expected literal percent match, got %v", productNames(rows))
	}

	rows, err = repo.ListProducts(ctx, Filters{Search: "rib_"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Rib_Knit Tank" {
		t.Fatalf("expected literal underscore match, got %v", productNames(rows))
	}
}

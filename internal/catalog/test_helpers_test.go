package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rohandesai/brandline-backend/pkg/db/models"
)

func mustCreateCategory(t *testing.T, conn *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug}
	if err := conn.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateBrand(t *testing.T, conn *gorm.DB, name, slug string, active bool) *models.Brand {
	t.Helper()
	brand := &models.Brand{Name: name, Slug: slug, IsActive: active}
	if err := conn.Create(brand).Error; err != nil {
		t.Fatalf("create brand: %v", err)
	}
	return brand
}

type productFixture struct {
	Name        string
	Description string
	CategoryID  uint
	BrandIDs    []uint
	IsNew       bool
	IsTrending  bool
	CreatedAt   time.Time
	Price       string
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, fx productFixture) *models.Product {
	t.Helper()

	price := "100"
	if fx.Price != "" {
		price = fx.Price
	}

	product := &models.Product{
		Name:        fx.Name,
		Description: fx.Description,
		CategoryID:  fx.CategoryID,
		IsNew:       fx.IsNew,
		IsTrending:  fx.IsTrending,
		Images:      []string{"https://cdn.example.com/" + fx.Name + ".jpg"},
		Keywords:    []string{},
		Sizes: []models.ProductSize{
			{Label: "Free Size", Price: decimal.RequireFromString(price)},
		},
	}
	for _, brandID := range fx.BrandIDs {
		product.Brands = append(product.Brands, models.ProductBrand{BrandID: brandID})
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product %s: %v", fx.Name, err)
	}

	if !fx.CreatedAt.IsZero() {
		if err := conn.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("created_at", fx.CreatedAt).Error; err != nil {
			t.Fatalf("set created_at: %v", err)
		}
		product.CreatedAt = fx.CreatedAt
	}
	return product
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return parsed
}

func productNames(dtos []models.Product) []string {
	names := make([]string, 0, len(dtos))
	for _, dto := range dtos {
		names = append(names, dto.Name)
	}
	return names
}

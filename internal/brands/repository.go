package brands

import (
	"context"

	"gorm.io/gorm"

	"github.com/rohandesai/brandline-backend/pkg/db/models"
)

// Repository exposes brand persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active brands only, ordered by name. Public listings
// never include inactive brands.
func (r *Repository) ListActive(ctx context.Context) ([]models.Brand, error) {
	var rows []models.Brand
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListAll returns every brand regardless of active flag, for admin views.
func (r *Repository) ListAll(ctx context.Context) ([]models.Brand, error) {
	var rows []models.Brand
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// ProductCounts returns the number of linked products per brand.
func (r *Repository) ProductCounts(ctx context.Context) (map[uint]int64, error) {
	type row struct {
		BrandID uint
		Total   int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.ProductBrand{}).
		Select("brand_id", "COUNT(*) AS total").
		Group("brand_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.BrandID] = r.Total
	}
	return counts, nil
}

// ProductsForBrand returns the brand's products with their read-path
// associations, newest first.
func (r *Repository) ProductsForBrand(ctx context.Context, brandID uint) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Category").
		Preload("Sizes").
		Preload("Brands.Brand").
		Where("EXISTS (SELECT 1 FROM product_brands pb WHERE pb.product_id = products.id AND pb.brand_id = ?)", brandID).
		Order("products.created_at DESC").
		Order("products.id ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindByID loads one brand.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// FindBySlug loads one brand by its public slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// Create inserts a brand row.
func (r *Repository) Create(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	if err := r.db.WithContext(ctx).Create(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

// Update saves an existing brand row.
func (r *Repository) Update(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	if err := r.db.WithContext(ctx).Save(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

// Delete removes the brand and its product links.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("brand_id = ?", id).Delete(&models.ProductBrand{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Brand{}).Error
}

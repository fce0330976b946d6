package categories

import (
	"context"

	"gorm.io/gorm"

	"github.com/rohandesai/brandline-backend/pkg/db/models"
)

// Repository exposes category persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns every category ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// ProductCounts returns the number of products attached to each category.
func (r *Repository) ProductCounts(ctx context.Context) (map[uint]int64, error) {
	type row struct {
		CategoryID uint
		Total      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category_id", "COUNT(*) AS total").
		Group("category_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Total
	}
	return counts, nil
}

// ProductsForCategory returns the category's products with their read-path
// associations, newest first.
func (r *Repository) ProductsForCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Category").
		Preload("Sizes").
		Preload("Brands.Brand").
		Where("category_id = ?", categoryID).
		Order("products.created_at DESC").
		Order("products.id ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindByID loads one category.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update saves an existing category row.
func (r *Repository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category by ID.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

// CountProducts returns the number of products attached to the category.
func (r *Repository) CountProducts(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).
		Error
	return count, err
}

// FindFallback returns the alphabetically-first category other than excludeID.
func (r *Repository) FindFallback(ctx context.Context, excludeID uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeID).
		Order("name ASC").
		Order("id ASC").
		First(&category).
		Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ReassignProducts moves every product from one category to another.
func (r *Repository) ReassignProducts(ctx context.Context, fromID, toID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id = ?", fromID).
		Update("category_id", toID).
		Error
}

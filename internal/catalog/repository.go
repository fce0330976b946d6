package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/rohandesai/brandline-backend/pkg/db/models"
)

// Filters captures the optional catalog listing constraints. Zero values mean
// "no constraint", never "empty result".
type Filters struct {
	CategorySlug string
	BrandSlug    string
	IsNew        bool
	IsTrending   bool
	Search       string
}

// Repository wires together catalog persistence helpers.
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

// ListProducts returns every product matching the AND of the supplied
// constraints, newest first with id as the stable tie-break.
func (r *Repository) ListProducts(ctx context.Context, filters Filters) ([]models.Product, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Category").
		Preload("Sizes").
		Preload("Brands.Brand")

	if slug := strings.TrimSpace(filters.CategorySlug); slug != "" {
		qb = qb.Where("EXISTS (SELECT 1 FROM categories c WHERE c.id = products.category_id AND c.slug = ?)", slug)
	}
	if slug := strings.TrimSpace(filters.BrandSlug); slug != "" {
		qb = qb.Where(
			"EXISTS (SELECT 1 FROM product_brands pb JOIN brands b ON b.id = pb.brand_id WHERE pb.product_id = products.id AND b.slug = ?)",
			slug,
		)
	}
	if filters.IsNew {
		qb = qb.Where("products.is_new = ?", true)
	}
	if filters.IsTrending {
		qb = qb.Where("products.is_trending = ?", true)
	}

	if search := strings.TrimSpace(filters.Search); search != "" {
		matched, err := r.matchedBrandIDs(ctx, search)
		if err != nil {
			return nil, err
		}
		qb = applySearch(qb, search, matched)
	}

	var rows []models.Product
	err := qb.
		Order("products.created_at DESC").
		Order("products.id ASC").
		Find(&rows).
		Error
	return rows, err
}

// likeEscaper neutralizes LIKE metacharacters so the search term matches
// literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func applySearch(qb *gorm.DB, search string, brandIDs []uint) *gorm.DB {
	needle := likeEscaper.Replace(strings.ToLower(search))
	contains := "%" + needle + "%"
	prefix := needle + "%"

	if len(brandIDs) > 0 {
		return qb.Where(
			`(LOWER(products.name) LIKE ? ESCAPE '\' OR LOWER(products.description) LIKE ? ESCAPE '\' OR LOWER(products.name) LIKE ? ESCAPE '\' OR EXISTS (SELECT 1 FROM product_brands pb WHERE pb.product_id = products.id AND pb.brand_id IN ?))`,
			contains, contains, prefix, brandIDs,
		)
	}
	return qb.Where(
		`(LOWER(products.name) LIKE ? ESCAPE '\' OR LOWER(products.description) LIKE ? ESCAPE '\' OR LOWER(products.name) LIKE ? ESCAPE '\')`,
		contains, contains, prefix,
	)
}

// FindProductByID loads the product with all read-path associations.
func (r *Repository) FindProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Sizes").
		Preload("Brands.Brand").
		First(&product, "products.id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product row together with its sizes and brand links.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates the product's own columns. Sizes and brand links are
// replaced separately so a PUT fully describes the resulting record.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	err := r.db.WithContext(ctx).
		Omit("Sizes", "Brands", "Category").
		Save(product).
		Error
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID.
func (r *Repository) DeleteProduct(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ReplaceSizes swaps all size rows for the product.
func (r *Repository) ReplaceSizes(ctx context.Context, productID uint, sizes []models.ProductSize) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductSize{}).Error; err != nil {
		return err
	}
	if len(sizes) == 0 {
		return nil
	}
	for i := range sizes {
		sizes[i].ID = 0
		sizes[i].ProductID = productID
	}
	return tx.Create(&sizes).Error
}

// ReplaceBrandLinks swaps all brand links for the product.
func (r *Repository) ReplaceBrandLinks(ctx context.Context, productID uint, brandIDs []uint) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductBrand{}).Error; err != nil {
		return err
	}
	if len(brandIDs) == 0 {
		return nil
	}
	links := make([]models.ProductBrand, 0, len(brandIDs))
	for _, brandID := range brandIDs {
		links = append(links, models.ProductBrand{ProductID: productID, BrandID: brandID})
	}
	return tx.Create(&links).Error
}

// CategoryExists reports whether a category row with the given id is present.
func (r *Repository) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Count(&count).
		Error
	return count > 0, err
}

// CountBrands returns how many of the provided brand ids exist.
func (r *Repository) CountBrands(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Brand{}).
		Where("id IN ?", ids).
		Count(&count).
		Error
	return count, err
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rohandesai/brandline-backend/pkg/db"
	"github.com/rohandesai/brandline-backend/pkg/db/models"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
)

// Service exposes catalog read and admin management operations.
type Service interface {
	ListProducts(ctx context.Context, filters Filters) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uint) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uint, input ProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// SizeInput is one size row in a create/update payload.
type SizeInput struct {
	Label       string
	MRP         *decimal.Decimal
	MarketPrice *decimal.Decimal
	Price       decimal.Decimal
}

// ProductInput holds the validated payload for a product write. PUT fully
// replaces the record, so create and update share the same shape.
type ProductInput struct {
	Name             string
	Description      string
	Details          *string
	Specifications   *string
	CareInstructions *string
	ReturnPolicy     *string
	Badge            *string
	IsNew            bool
	IsTrending       bool
	CategoryID       uint
	Images           []string
	Keywords         []string
	BrandIDs         []uint
	Sizes            []SizeInput
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// ListProducts returns all matching products, flattened.
func (s *service) ListProducts(ctx context.Context, filters Filters) ([]ProductDTO, error) {
	rows, err := s.repo.ListProducts(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewProductDTO(&rows[i]))
	}
	return dtos, nil
}

// GetProduct returns one product by numeric id.
func (s *service) GetProduct(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find product")
	}
	return NewProductDTO(product), nil
}

// CreateProduct inserts the product with its sizes and brand links.
func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	var createdID uint
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := buildProduct(input)
		created, err := txRepo.CreateProduct(ctx, product)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID
		return nil
	}); err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, createdID)
}

// UpdateProduct fully replaces the product record, its sizes, and its brand links.
func (s *service) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*ProductDTO, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find product")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		updated := buildProduct(input)
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		updated.Sizes = nil
		updated.Brands = nil

		if _, err := txRepo.UpdateProduct(ctx, updated); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		if err := txRepo.ReplaceSizes(ctx, existing.ID, buildSizes(input.Sizes)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace sizes")
		}
		if err := txRepo.ReplaceBrandLinks(ctx, existing.ID, input.BrandIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace brand links")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct removes the product; size rows and brand links cascade.
func (s *service) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.repo.FindProductByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find product")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func (s *service) validateInput(ctx context.Context, input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.CategoryID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "categoryId is required")
	}

	exists, err := s.repo.CategoryExists(ctx, input.CategoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check category")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
	}

	if err := validateSizes(input.Sizes); err != nil {
		return err
	}

	if len(input.BrandIDs) > 0 {
		unique := uniqueIDs(input.BrandIDs)
		if len(unique) != len(input.BrandIDs) {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate brandIds")
		}
		count, err := s.repo.CountBrands(ctx, unique)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check brands")
		}
		if count != int64(len(unique)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "one or more brands do not exist")
		}
	}

	return nil
}

func validateSizes(sizes []SizeInput) error {
	seen := map[string]struct{}{}
	for _, size := range sizes {
		label := strings.TrimSpace(size.Label)
		if label == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "size label is required")
		}
		if _, ok := seen[label]; ok {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate size label %q", label))
		}
		seen[label] = struct{}{}
		if size.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("size %q price cannot be negative", label))
		}
	}
	return nil
}

func buildProduct(input ProductInput) *models.Product {
	return &models.Product{
		Name:             strings.TrimSpace(input.Name),
		Description:      strings.TrimSpace(input.Description),
		Details:          input.Details,
		Specifications:   input.Specifications,
		CareInstructions: input.CareInstructions,
		ReturnPolicy:     input.ReturnPolicy,
		Badge:            input.Badge,
		IsNew:            input.IsNew,
		IsTrending:       input.IsTrending,
		CategoryID:       input.CategoryID,
		Images:           append([]string{}, input.Images...),
		Keywords:         append([]string{}, input.Keywords...),
		Sizes:            buildSizes(input.Sizes),
		Brands:           buildBrandLinks(input.BrandIDs),
	}
}

func buildSizes(inputs []SizeInput) []models.ProductSize {
	if len(inputs) == 0 {
		return nil
	}
	sizes := make([]models.ProductSize, 0, len(inputs))
	for _, in := range inputs {
		sizes = append(sizes, models.ProductSize{
			Label:       strings.TrimSpace(in.Label),
			MRP:         in.MRP,
			MarketPrice: in.MarketPrice,
			Price:       in.Price,
		})
	}
	return sizes
}

func buildBrandLinks(ids []uint) []models.ProductBrand {
	if len(ids) == 0 {
		return nil
	}
	links := make([]models.ProductBrand, 0, len(ids))
	for _, id := range ids {
		links = append(links, models.ProductBrand{BrandID: id})
	}
	return links
}

func uniqueIDs(ids []uint) []uint {
	seen := map[uint]struct{}{}
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

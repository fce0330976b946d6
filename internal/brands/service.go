package brands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rohandesai/brandline-backend/internal/catalog"
	"github.com/rohandesai/brandline-backend/pkg/db"
	"github.com/rohandesai/brandline-backend/pkg/db/models"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
	"github.com/rohandesai/brandline-backend/pkg/slugify"
)

// BrandDTO is the brand payload returned to clients.
type BrandDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// BrandInput holds a validated brand write payload. An empty Slug is derived
// from Name.
type BrandInput struct {
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
	IsActive    bool
}

// ListItem is a brand plus the number of products linked to it.
type ListItem struct {
	BrandDTO
	ProductCount int64 `json:"productCount"`
}

// BrandDetailDTO is the brand detail payload: the brand plus its flattened
// products.
type BrandDetailDTO struct {
	BrandDTO
	Products []catalog.ProductDTO `json:"products"`
}

// Service exposes brand read and admin management operations.
type Service interface {
	ListPublic(ctx context.Context) ([]ListItem, error)
	ListAdmin(ctx context.Context) ([]ListItem, error)
	GetBySlug(ctx context.Context, slug string) (*BrandDetailDTO, error)
	Create(ctx context.Context, input BrandInput) (*BrandDTO, error)
	Update(ctx context.Context, id uint, input BrandInput) (*BrandDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo *Repository
}

// NewService constructs a brand service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("brand repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPublic(ctx context.Context) ([]ListItem, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list active brands")
	}
	return s.toListItems(ctx, rows)
}

func (s *service) ListAdmin(ctx context.Context) ([]ListItem, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list brands")
	}
	return s.toListItems(ctx, rows)
}

func (s *service) toListItems(ctx context.Context, rows []models.Brand) ([]ListItem, error) {
	counts, err := s.repo.ProductCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products per brand")
	}
	items := make([]ListItem, 0, len(rows))
	for i := range rows {
		items = append(items, ListItem{
			BrandDTO:     newBrandDTO(&rows[i]),
			ProductCount: counts[rows[i].ID],
		})
	}
	return items, nil
}

// GetBySlug returns one active brand with its products. Inactive brands are
// hidden from the public detail endpoint as well.
func (s *service) GetBySlug(ctx context.Context, slug string) (*BrandDetailDTO, error) {
	brand, err := s.repo.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find brand")
	}
	if !brand.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Brand not found")
	}

	rows, err := s.repo.ProductsForBrand(ctx, brand.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list brand products")
	}

	detail := &BrandDetailDTO{
		BrandDTO: newBrandDTO(brand),
		Products: make([]catalog.ProductDTO, 0, len(rows)),
	}
	for i := range rows {
		detail.Products = append(detail.Products, *catalog.NewProductDTO(&rows[i]))
	}
	return detail, nil
}

func (s *service) Create(ctx context.Context, input BrandInput) (*BrandDTO, error) {
	name, slug, err := normalizeNameSlug(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}

	brand := &models.Brand{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    input.IsActive,
	}
	created, err := s.repo.Create(ctx, brand)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("brand slug %q already exists", slug))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert brand")
	}

	dto := newBrandDTO(created)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uint, input BrandInput) (*BrandDTO, error) {
	brand, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find brand")
	}

	name, slug, err := normalizeNameSlug(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}

	brand.Name = name
	brand.Slug = slug
	brand.Description = input.Description
	brand.ImageURL = input.ImageURL
	brand.IsActive = input.IsActive

	updated, err := s.repo.Update(ctx, brand)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("brand slug %q already exists", slug))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update brand")
	}

	dto := newBrandDTO(updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Brand not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find brand")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete brand")
	}
	return nil
}

func newBrandDTO(brand *models.Brand) BrandDTO {
	return BrandDTO{
		ID:          brand.ID,
		Name:        brand.Name,
		Slug:        brand.Slug,
		Description: brand.Description,
		ImageURL:    brand.ImageURL,
		IsActive:    brand.IsActive,
	}
}

func normalizeNameSlug(name, slug string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = name
	}
	slug = slugify.Make(slug)
	if slug == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from name")
	}
	return name, slug, nil
}

package categories

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

// ListItem is a category plus the number of products attached to it.
type ListItem struct {
	catalog.CategoryDTO
	ProductCount int64 `json:"productCount"`
}

// CategoryDetailDTO is the category detail payload: the category plus its
// flattened products.
type CategoryDetailDTO struct {
	catalog.CategoryDTO
	Products []catalog.ProductDTO `json:"products"`
}

// Service exposes category read and admin management operations.
type Service interface {
	List(ctx context.Context) ([]ListItem, error)
	Get(ctx context.Context, id uint) (*CategoryDetailDTO, error)
	Create(ctx context.Context, input CategoryInput) (*catalog.CategoryDTO, error)
	Update(ctx context.Context, id uint, input CategoryInput) (*catalog.CategoryDTO, error)
	Delete(ctx context.Context, id uint) (*DeleteResult, error)
}

// CategoryInput holds a validated category write payload. An empty Slug is
// derived from Name.
type CategoryInput struct {
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
}

// DeleteResult reports what happened to the deleted category's products.
type DeleteResult struct {
	ReassignedTo    *catalog.CategoryDTO `json:"reassignedTo,omitempty"`
	ReassignedCount int64                `json:"reassignedCount"`
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a category service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) List(ctx context.Context) ([]ListItem, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	counts, err := s.repo.ProductCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products per category")
	}
	items := make([]ListItem, 0, len(rows))
	for i := range rows {
		items = append(items, ListItem{
			CategoryDTO:  catalog.NewCategoryDTO(&rows[i]),
			ProductCount: counts[rows[i].ID],
		})
	}
	return items, nil
}

// Get returns one category with its attached products.
func (s *service) Get(ctx context.Context, id uint) (*CategoryDetailDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find category")
	}

	rows, err := s.repo.ProductsForCategory(ctx, category.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list category products")
	}

	detail := &CategoryDetailDTO{
		CategoryDTO: catalog.NewCategoryDTO(category),
		Products:    make([]catalog.ProductDTO, 0, len(rows)),
	}
	for i := range rows {
		detail.Products = append(detail.Products, *catalog.NewProductDTO(&rows[i]))
	}
	return detail, nil
}

func (s *service) Create(ctx context.Context, input CategoryInput) (*catalog.CategoryDTO, error) {
	name, slug, err := normalizeNameSlug(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	created, err := s.repo.Create(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("category slug %q already exists", slug))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}

	dto := catalog.NewCategoryDTO(created)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uint, input CategoryInput) (*catalog.CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find category")
	}

	name, slug, err := normalizeNameSlug(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Slug = slug
	category.Description = input.Description
	category.ImageURL = input.ImageURL

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("category slug %q already exists", slug))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}

	dto := catalog.NewCategoryDTO(updated)
	return &dto, nil
}

// Delete removes the category. Attached products are reassigned to the
// alphabetically-first remaining category first; if the category still has
// products and no other category exists, the delete is rejected.
func (s *service) Delete(ctx context.Context, id uint) (*DeleteResult, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find category")
	}

	result := &DeleteResult{}
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		attached, err := txRepo.CountProducts(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
		}

		if attached > 0 {
			fallback, err := txRepo.FindFallback(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeValidation,
						"cannot delete the only category while it still has products")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find fallback category")
			}
			if err := txRepo.ReassignProducts(ctx, id, fallback.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reassign products")
			}
			dto := catalog.NewCategoryDTO(fallback)
			result.ReassignedTo = &dto
			result.ReassignedCount = attached
		}

		if err := txRepo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
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

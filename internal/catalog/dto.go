package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rohandesai/brandline-backend/pkg/db/models"
)

// ProductDTO is the flattened catalog record returned to clients: images and
// keywords as plain string lists, brands as summaries instead of join rows.
type ProductDTO struct {
	ID               uint           `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Details          *string        `json:"details,omitempty"`
	Specifications   *string        `json:"specifications,omitempty"`
	CareInstructions *string        `json:"careInstructions,omitempty"`
	ReturnPolicy     *string        `json:"returnPolicy,omitempty"`
	Badge            *string        `json:"badge,omitempty"`
	IsNew            bool           `json:"isNew"`
	IsTrending       bool           `json:"isTrending"`
	Category         CategoryDTO    `json:"category"`
	Images           []string       `json:"images"`
	Keywords         []string       `json:"keywords"`
	Sizes            []SizeDTO      `json:"sizes"`
	Brands           []BrandSummary `json:"brands"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// SizeDTO is one purchasable variant with its price triple.
type SizeDTO struct {
	ID          uint             `json:"id"`
	Label       string           `json:"label"`
	MRP         *decimal.Decimal `json:"mrp,omitempty"`
	MarketPrice *decimal.Decimal `json:"marketPrice,omitempty"`
	Price       decimal.Decimal  `json:"price"`
}

// BrandSummary is the flat brand shape embedded in product records.
type BrandSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryDTO is the category shape embedded in product records and returned
// by the category endpoints.
type CategoryDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// NewProductDTO flattens the persisted model into the client-facing shape.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:               product.ID,
		Name:             product.Name,
		Description:      product.Description,
		Details:          product.Details,
		Specifications:   product.Specifications,
		CareInstructions: product.CareInstructions,
		ReturnPolicy:     product.ReturnPolicy,
		Badge:            product.Badge,
		IsNew:            product.IsNew,
		IsTrending:       product.IsTrending,
		Images:           append([]string{}, product.Images...),
		Keywords:         append([]string{}, product.Keywords...),
		Sizes:            []SizeDTO{},
		Brands:           []BrandSummary{},
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}

	if product.Category != nil {
		dto.Category = NewCategoryDTO(product.Category)
	} else {
		dto.Category = CategoryDTO{ID: product.CategoryID}
	}

	for _, size := range product.Sizes {
		dto.Sizes = append(dto.Sizes, SizeDTO{
			ID:          size.ID,
			Label:       size.Label,
			MRP:         size.MRP,
			MarketPrice: size.MarketPrice,
			Price:       size.Price,
		})
	}

	for _, link := range product.Brands {
		if link.Brand == nil {
			continue
		}
		dto.Brands = append(dto.Brands, BrandSummary{
			ID:   link.Brand.ID,
			Name: link.Brand.Name,
			Slug: link.Brand.Slug,
		})
	}

	return dto
}

// NewCategoryDTO maps the persisted category row.
func NewCategoryDTO(category *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ImageURL:    category.ImageURL,
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rohandesai/brandline-backend/pkg/db/types"
)

// Product is the canonical catalog listing.
type Product struct {
	ID               uint             `gorm:"column:id;primaryKey;autoIncrement"`
	Name             string           `gorm:"column:name;not null"`
	Description      string           `gorm:"column:description;not null;default:''"`
	Details          *string          `gorm:"column:details"`
	Specifications   *string          `gorm:"column:specifications"`
	CareInstructions *string          `gorm:"column:care_instructions"`
	ReturnPolicy     *string          `gorm:"column:return_policy"`
	Badge            *string          `gorm:"column:badge"`
	IsNew            bool             `gorm:"column:is_new;not null;default:false"`
	IsTrending       bool             `gorm:"column:is_trending;not null;default:false"`
	CategoryID       uint             `gorm:"column:category_id;not null"`
	Category         *Category        `gorm:"foreignKey:CategoryID"`
	Images           types.StringList `gorm:"column:images;type:text;not null;default:'[]'"`
	Keywords         types.StringList `gorm:"column:keywords;type:text;not null;default:'[]'"`
	Sizes            []ProductSize    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Brands           []ProductBrand   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductSize is one purchasable variant of a product. Price is the selling
// price and is always present; MRP and MarketPrice are optional comparison
// prices and are expected, but not enforced, to be >= Price.
type ProductSize struct {
	ID          uint             `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   uint             `gorm:"column:product_id;not null;index"`
	Label       string           `gorm:"column:label;not null"`
	MRP         *decimal.Decimal `gorm:"column:mrp;type:numeric(10,2)"`
	MarketPrice *decimal.Decimal `gorm:"column:market_price;type:numeric(10,2)"`
	Price       decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
}

// ProductBrand links a product to a brand.
type ProductBrand struct {
	ProductID uint   `gorm:"column:product_id;primaryKey"`
	BrandID   uint   `gorm:"column:brand_id;primaryKey"`
	Brand     *Brand `gorm:"foreignKey:BrandID"`
}

func (ProductBrand) TableName() string {
	return "product_brands"
}

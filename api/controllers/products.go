package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/rohandesai/brandline-backend/api/responses"
	"github.com/rohandesai/brandline-backend/api/validators"
	"github.com/rohandesai/brandline-backend/internal/catalog"
	"github.com/rohandesai/brandline-backend/internal/media"
	"github.com/rohandesai/brandline-backend/pkg/config"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
	"github.com/rohandesai/brandline-backend/pkg/logger"
)

// ListProducts serves the public catalog with the composed filters. A search
// that matches nothing is a 200 with an empty list, never an error.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := catalog.Filters{
			CategorySlug: validators.QueryString(r, "category"),
			BrandSlug:    validators.QueryString(r, "brand"),
			IsNew:        validators.QueryFlagTrue(r, "isNew"),
			IsTrending:   validators.QueryFlagTrue(r, "isTrending"),
			Search:       validators.QueryString(r, "search"),
		}

		products, err := svc.ListProducts(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type sizePayload struct {
	Label       string           `json:"label"`
	MRP         *decimal.Decimal `json:"mrp"`
	MarketPrice *decimal.Decimal `json:"marketPrice"`
	Price       decimal.Decimal  `json:"price"`
}

// productFormInput decodes the admin multipart product form. Structured
// fields arrive as JSON-encoded strings alongside the image files.
func productFormInput(r *http.Request, mediaSvc media.Service, mediaCfg config.MediaConfig) (*catalog.ProductInput, error) {
	maxBytes := int64(mediaCfg.MaxUploadMB) * 1024 * 1024 * int64(mediaCfg.MaxImagesPerProduct)
	if err := validators.ParseMultipartForm(r, maxBytes); err != nil {
		return nil, err
	}

	categoryID, err := validators.FormUint(r, "categoryId")
	if err != nil {
		return nil, err
	}

	input := &catalog.ProductInput{
		Name:             validators.FormString(r, "name"),
		Description:      validators.FormString(r, "description"),
		Details:          validators.FormOptionalString(r, "details"),
		Specifications:   validators.FormOptionalString(r, "specifications"),
		CareInstructions: validators.FormOptionalString(r, "careInstructions"),
		ReturnPolicy:     validators.FormOptionalString(r, "returnPolicy"),
		Badge:            validators.FormOptionalString(r, "badge"),
		IsNew:            validators.FormFlagTrue(r, "isNew"),
		IsTrending:       validators.FormFlagTrue(r, "isTrending"),
		CategoryID:       categoryID,
		Images:           []string{},
		Keywords:         []string{},
		BrandIDs:         []uint{},
		Sizes:            nil,
	}

	var sizes []sizePayload
	if err := validators.DecodeFormJSON(r, "sizes", &sizes); err != nil {
		return nil, err
	}
	for _, size := range sizes {
		input.Sizes = append(input.Sizes, catalog.SizeInput{
			Label:       size.Label,
			MRP:         size.MRP,
			MarketPrice: size.MarketPrice,
			Price:       size.Price,
		})
	}

	if err := validators.DecodeFormJSON(r, "keywords", &input.Keywords); err != nil {
		return nil, err
	}
	if err := validators.DecodeFormJSON(r, "brandIds", &input.BrandIDs); err != nil {
		return nil, err
	}

	// Kept URLs come through existingImages; new files are appended after.
	if err := validators.DecodeFormJSON(r, "existingImages", &input.Images); err != nil {
		return nil, err
	}

	files, err := validators.FormFiles(r, "images")
	if err != nil {
		return nil, err
	}
	if len(input.Images)+len(files) > mediaCfg.MaxImagesPerProduct {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "too many product images")
	}
	if len(files) > 0 {
		uploads := make([]media.UploadInput, 0, len(files))
		for _, file := range files {
			uploads = append(uploads, media.UploadInput{FileName: file.Name, Data: file.Data})
		}
		urls, err := mediaSvc.UploadAll(r.Context(), uploads)
		if err != nil {
			return nil, err
		}
		input.Images = append(input.Images, urls...)
	}

	return input, nil
}

func AdminCreateProduct(svc catalog.Service, mediaSvc media.Service, mediaCfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := productFormInput(r, mediaSvc, mediaCfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func AdminUpdateProduct(svc catalog.Service, mediaSvc media.Service, mediaCfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := productFormInput(r, mediaSvc, mediaCfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

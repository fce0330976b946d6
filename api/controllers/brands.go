package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rohandesai/brandline-backend/api/responses"
	"github.com/rohandesai/brandline-backend/api/validators"
	"github.com/rohandesai/brandline-backend/internal/brands"
	"github.com/rohandesai/brandline-backend/internal/media"
	"github.com/rohandesai/brandline-backend/pkg/config"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
	"github.com/rohandesai/brandline-backend/pkg/logger"
)

// brandFormInput decodes the admin multipart brand form: text fields plus an
// optional "image" file. isActive defaults to true when the field is absent.
func brandFormInput(r *http.Request, mediaSvc media.Service, mediaCfg config.MediaConfig) (*brands.BrandInput, error) {
	maxBytes := int64(mediaCfg.MaxUploadMB) * 1024 * 1024
	if err := validators.ParseMultipartForm(r, maxBytes); err != nil {
		return nil, err
	}

	active := true
	if raw := validators.FormString(r, "isActive"); raw != "" {
		active = raw == "true"
	}

	input := &brands.BrandInput{
		Name:        validators.FormString(r, "name"),
		Slug:        validators.FormString(r, "slug"),
		Description: validators.FormOptionalString(r, "description"),
		ImageURL:    validators.FormOptionalString(r, "existingImageUrl"),
		IsActive:    active,
	}

	uploaded, err := singleImageURL(r, mediaSvc)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		input.ImageURL = uploaded
	}
	return input, nil
}

func ListBrands(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListPublic(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetBrandBySlug(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		brand, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brand)
	}
}

// AdminListBrands includes inactive brands.
func AdminListBrands(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListAdmin(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func AdminCreateBrand(svc brands.Service, mediaSvc media.Service, mediaCfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := brandFormInput(r, mediaSvc, mediaCfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Create(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, brand)
	}
}

func AdminUpdateBrand(svc brands.Service, mediaSvc media.Service, mediaCfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := brandFormInput(r, mediaSvc, mediaCfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Update(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brand)
	}
}

func AdminDeleteBrand(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

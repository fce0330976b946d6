package controllers

import (
	"net/http"

	"github.com/rohandesai/brandline-backend/api/responses"
	"github.com/rohandesai/brandline-backend/api/validators"
	"github.com/rohandesai/brandline-backend/internal/categories"
	"github.com/rohandesai/brandline-backend/internal/media"
	"github.com/rohandesai/brandline-backend/pkg/config"
	"github.com/rohandesai/brandline-backend/pkg/logger"
)

// categoryFormInput decodes the admin multipart category form: text fields
// plus an optional "image" file. A kept image URL arrives as
// existingImageUrl; an uploaded file replaces it.
func categoryFormInput(r *http.Request, mediaSvc media.Service, mediaCfg config.MediaConfig) (*categories.CategoryInput, error) {
	maxBytes := int64(mediaCfg.MaxUploadMB) * 1024 * 1024
	if err := validators.ParseMultipartForm(r, maxBytes); err != nil {
		return nil, err
	}

	input := &categories.CategoryInput{
		Name:        validators.FormString(r, "name"),
		Slug:        validators.FormString(r, "slug"),
		Description: validators.FormOptionalString(r, "description"),
		ImageURL:    validators.FormOptionalString(r, "existingImageUrl"),
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

func ListCategories(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

func AdminCreateCategory(svc categories.Service, mediaSvc media.Service, mediaCfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := categoryFormInput(r, mediaSvc, mediaCfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Create(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func AdminUpdateCategory(svc categories.Service, mediaSvc media.Service, mediaCfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := categoryFormInput(r, mediaSvc, mediaCfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Update(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// AdminDeleteCategory reports where the category's products were reassigned.
func AdminDeleteCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

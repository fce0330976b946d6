package controllers

import (
	"net/http"

	"github.com/rohandesai/brandline-backend/api/responses"
	"github.com/rohandesai/brandline-backend/api/validators"
	"github.com/rohandesai/brandline-backend/internal/media"
	"github.com/rohandesai/brandline-backend/pkg/logger"
)

// singleImageURL uploads the optional "image" form file and returns its
// public URL, nil when no file was sent.
func singleImageURL(r *http.Request, mediaSvc media.Service) (*string, error) {
	files, err := validators.FormFiles(r, "image")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	out, err := mediaSvc.Upload(r.Context(), media.UploadInput{
		FileName: files[0].Name,
		Data:     files[0].Data,
	})
	if err != nil {
		return nil, err
	}
	return &out.URL, nil
}

// AdminDeleteMedia removes a stored object by its storage key, for cleaning
// up images that no longer back any record.
func AdminDeleteMedia(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := validators.QueryString(r, "key")
		if err := svc.Delete(r.Context(), key); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

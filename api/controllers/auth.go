package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rohandesai/brandline-backend/api/responses"
	"github.com/rohandesai/brandline-backend/api/validators"
	pkgauth "github.com/rohandesai/brandline-backend/pkg/auth"
	"github.com/rohandesai/brandline-backend/pkg/config"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
	"github.com/rohandesai/brandline-backend/pkg/logger"
	"github.com/rohandesai/brandline-backend/pkg/security"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Email     string    `json:"email"`
}

// AdminLogin verifies the configured dashboard credential and mints the
// bearer token for the admin routes.
func AdminLogin(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !strings.EqualFold(strings.TrimSpace(payload.Email), cfg.Admin.Email) {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"))
			return
		}

		ok, err := security.VerifyPassword(payload.Password, cfg.Admin.PasswordHash)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credential"))
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"))
			return
		}

		now := time.Now()
		token, err := pkgauth.MintAdminToken(cfg.JWT, now, pkgauth.AdminTokenPayload{Email: cfg.Admin.Email})
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token"))
			return
		}

		responses.WriteSuccess(w, loginResponse{
			Token:     token,
			ExpiresAt: now.Add(time.Duration(cfg.JWT.ExpirationMinutes) * time.Minute).UTC(),
			Email:     cfg.Admin.Email,
		})
	}
}

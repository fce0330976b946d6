package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminTokenPayload captures the data available when minting an admin JWT.
type AdminTokenPayload struct {
	Email string
	JTI   string
}

// AdminTokenClaims represents the typed JWT issued after an admin login.
type AdminTokenClaims struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

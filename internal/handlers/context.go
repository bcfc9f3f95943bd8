package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/vacatio/backend/internal/models"
)

// getClaimsFromContext returns the JWT claims stored by the auth middleware,
// or nil when the request is unauthenticated
func getClaimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

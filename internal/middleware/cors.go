package middleware

import (
	"net/http"

	"dailyshop-backend/internal/config"
	"github.com/rs/cors"
)

// NewCORS builds the CORS middleware from the configured allowlists.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		AllowCredentials: true,
		MaxAge:           300, // preflight cache, seconds
	})

	return c.Handler
}

/**
 * @description
 * Router for the gateway-service. API documentation paths and the health
 * check are open; everything else requires a bearer token and is proxied to
 * the owning service.
 */
package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/d-sar/poc/internal/gateway/config"
	"github.com/d-sar/poc/internal/gateway/middleware"
)

// NewRouter builds the gateway router from the configured downstream URLs.
func NewRouter(cfg config.Config) (*chi.Mux, error) {
	beneficiaires, err := NewProxy(cfg.BeneficiaireServiceURL)
	if err != nil {
		return nil, err
	}
	virements, err := NewProxy(cfg.VirementServiceURL)
	if err != nil {
		return nil, err
	}
	chatbot, err := NewProxy(cfg.ChatbotServiceURL)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewRateLimiter(cfg.RateLimitPerMinute).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Gateway is healthy"))
	})

	// Swagger/API docs stay open, mirroring the documented exemptions.
	for _, open := range []string{"/swagger-ui", "/v3/api-docs", "/api-docs", "/swagger-resources"} {
		r.Handle(open, beneficiaires)
		r.Handle(open+"/*", beneficiaires)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth([]byte(cfg.JWTSecret)))

		r.Handle("/beneficiaires", beneficiaires)
		r.Handle("/beneficiaires/*", beneficiaires)
		r.Handle("/virements", virements)
		r.Handle("/virements/*", virements)
		r.Handle("/chat", chatbot)
		r.Handle("/chat/*", chatbot)
	})

	return r, nil
}

/**
 * @description
 * This file sets up the HTTP router for the virement-service using the
 * go-chi/chi router, with logging, panic recovery, timeout, and CORS
 * middleware.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new Chi router and registers the virement routes.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Virement service is healthy"))
	})

	r.Route("/virements", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/stats/total", h.handleStatsTotal)
		r.Get("/stats/count", h.handleStatsCount)
		r.Get("/beneficiaire/{beneficiaireId}", h.handleListByBeneficiaire)
		r.Get("/source/{ribSource}", h.handleListByRibSource)
		r.Get("/statut/{statut}", h.handleListByStatut)
		r.Get("/type/{type}", h.handleListByType)
		r.Get("/{id}", h.handleGet)
		r.Get("/{id}/details", h.handleGet)
		r.Put("/{id}/statut", h.handleUpdateStatut)
		r.Post("/{id}/annuler", h.handleAnnuler)
		// DELETE cancels; see handleDelete.
		r.Delete("/{id}", h.handleDelete)
	})

	return r
}

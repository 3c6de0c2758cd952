// Package httpapi serves the bookmark collection as a local JSON API.
package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/nikbrunner/linkvault/internal/logger"
)

// NewRouter builds the chi router with middleware and all routes.
func NewRouter(store Store, log logger.Logger) *chi.Mux {
	h := newBookmarkHandler(store, log)

	r := chi.NewRouter()

	// local pages and extensions only
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLog(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", h.list)
			r.Post("/", h.create)
			r.Get("/recent", h.recent)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.get)
				r.Put("/", h.update)
				r.Delete("/", h.delete)
			})
		})

		r.Get("/categories", h.categories)
		r.Get("/thumbnails/{id}", h.thumbnail)
	})

	return r
}

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without a session
	router.Group(func(r chi.Router) {
		r.Get("/healthz", h.healthz)
		r.Get("/", h.listPosts)
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
	})

	// routes requiring a session
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/write", h.writePost)
		r.Post("/delete/{id}", h.deletePost)

		r.Route("/admin/users", func(r chi.Router) {
			r.Get("/", h.listAccounts)
			r.Post("/", h.addAccount)
			r.Post("/{id}/delete", h.deleteAccount)
			r.Post("/{id}/reset", h.resetPassword)
			r.Post("/{id}/role", h.changeRole)
		})
	})

	return router
}

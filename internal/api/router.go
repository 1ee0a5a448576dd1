package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires all endpoints. Everything under /api except /api/login
// requires a valid token; the admin group additionally requires the
// is_admin claim.
func NewRouter(h *Handler, limiter *RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(h.uploadsDir))))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticate)

			r.Get("/users", h.ListUsers)
			r.Patch("/users/{id}", h.UpdateProfile)
			r.Patch("/users/{id}/password", h.ChangePassword)

			r.Get("/items", h.ListItems)
			r.Post("/buy", h.Buy)
			r.Get("/my-purchases", h.MyPurchases)
			r.Get("/my-transactions", h.MyTransactions)

			r.Get("/casino/symbols", h.ListSymbols)
			r.With(limiter.Middleware).Post("/casino/spin", h.Spin)

			r.Post("/upload", h.Upload)

			r.Group(func(r chi.Router) {
				r.Use(h.RequireAdmin)

				r.Post("/register", h.Register)
				r.Delete("/users/{id}", h.DeleteUser)
				r.Post("/users/{id}/coins", h.Credit)
				r.Post("/items", h.CreateItem)
				r.Delete("/items/{id}", h.DeleteItem)
				r.Patch("/casino/symbols", h.SaveSymbols)
			})
		})
	})

	return r
}

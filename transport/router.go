package transport

import (
	"startuplink/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the HTTP surface. Auth endpoints are public;
// everything else sits behind the Bearer middleware.
func NewRouter(tokens *auth.Tokens, handlers *Handlers, ws *WSHandler, corsOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)

		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware)

			r.Route("/dm/{peer}", func(r chi.Router) {
				r.Get("/", handlers.History)
				r.Post("/", handlers.Send)
			})
			r.Get("/search", handlers.Search)

			r.Route("/startups", func(r chi.Router) {
				r.Get("/", handlers.ListStartups)
				r.Post("/", handlers.PublishStartup)
				r.Get("/{id}", handlers.GetStartup)
			})

			r.Get("/stats", handlers.Stats)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(tokens.Middleware)
		r.Get("/ws/dm/{peer}", ws.ServeWS)
	})

	return r
}

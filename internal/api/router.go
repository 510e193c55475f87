package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/maelvns/featherpost-be/internal/api/handlers"
	"github.com/maelvns/featherpost-be/internal/auth"
	"github.com/maelvns/featherpost-be/internal/services"
	"github.com/maelvns/featherpost-be/internal/store"
	"github.com/maelvns/featherpost-be/internal/ws"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	resolver *auth.Resolver,
	st store.Store,
	userService services.UserServiceProvider,
	messageService services.MessageServiceProvider,
	hub *ws.Hub,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	messageHandler := handlers.NewMessageHandler(messageService)
	statusHandler := handlers.NewStatusHandler(st)
	feedHandler := handlers.NewFeedHandler(hub)

	// Public surface
	r.Get("/status", handlers.Resource(statusHandler.Report))
	r.Get("/ws/feed", feedHandler.Serve)
	r.Post("/users", handlers.Resource(userHandler.Create))

	// Everything else requires a resolved caller
	r.Group(func(r chi.Router) {
		r.Use(handlers.RequireUser(resolver))

		r.Get("/users", handlers.Resource(userHandler.List))
		r.Delete("/users", handlers.Resource(userHandler.Delete))
		r.Put("/users/avatar", handlers.Resource(userHandler.UploadAvatar))
		r.Get("/users/{id}", handlers.Resource(userHandler.Get))
		r.Post("/users/{id}", handlers.Resource(userHandler.Update))

		r.Get("/messages", handlers.Resource(messageHandler.List))
		r.Post("/messages", handlers.Resource(messageHandler.Create))
		r.Get("/messages/{id}", handlers.Resource(messageHandler.Get))
		r.Post("/messages/{id}", handlers.Resource(messageHandler.Update))
		r.Delete("/messages/{id}", handlers.Resource(messageHandler.Delete))
	})

	return r
}

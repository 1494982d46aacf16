package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/users-admin/internal/api/handlers"
	"github.com/baharkarakas/users-admin/internal/auth"
	"github.com/baharkarakas/users-admin/internal/config"
	"github.com/baharkarakas/users-admin/internal/metrics"
	"github.com/baharkarakas/users-admin/internal/middleware"
	"github.com/baharkarakas/users-admin/internal/web"
)

type RouterDeps struct {
	Cfg     config.Config
	UserSvc handlers.UserService
	Gate    *auth.Gate
	Pages   *web.Renderer
}

func NewRouter(d RouterDeps) http.Handler {
	sessions := middleware.NewSessionMiddleware(d.Gate)
	authH := handlers.NewAuthHandler(d.Gate, d.Pages, d.Cfg.SecureCookie)
	tableH := handlers.NewTableHandler(d.UserSvc, d.Pages)
	usersH := handlers.NewUsersHandler(d.UserSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(sessions.Load)
	r.NotFound(handlers.NotFound(d.Pages))

	// health & metrics
	r.Get("/health", handlers.Health)
	r.Handle("/metrics", metrics.Handler())

	// login gate
	r.Get("/", authH.LoginPage)
	r.Get("/login", authH.LoginPage)
	r.Post("/login", authH.Login)
	r.Post("/logout", authH.Logout)

	r.Route("/table", func(r chi.Router) {
		r.Use(middleware.RequirePage)
		r.Get("/", tableH.Show)
		r.Post("/users", tableH.Create)
		r.Post("/users/{id}", tableH.Update)
		r.Post("/users/{id}/delete", tableH.Delete)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "If-Match", middleware.RequestIDHeader},
			ExposedHeaders:   []string{"ETag", middleware.RequestIDHeader},
			AllowCredentials: false,
		}))
		r.Use(middleware.RequireAPI)

		r.Get("/users", usersH.List)
		r.Post("/users", usersH.Create)
		r.Put("/users/{id}", usersH.Update)
		r.Delete("/users/{id}", usersH.Delete)
	})

	return r
}

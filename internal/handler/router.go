package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gymlog/gymlog-go/internal/middleware"
)

// RouterConfig collects what the HTTP surface needs from main.
type RouterConfig struct {
	Auth        *AuthHandler
	Workouts    *WorkoutHandler
	Tokens      middleware.TokenVerifier
	AuthLimiter middleware.Limiter
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewRouter wires the public and token-gated routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		if cfg.AuthLimiter != nil {
			r.Use(middleware.RateLimit(cfg.AuthLimiter))
		}
		r.Post("/auth/register", cfg.Auth.HandleRegister)
		r.Post("/auth/login", cfg.Auth.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.Tokens))
		r.Get("/auth/me", cfg.Auth.HandleMe)
		r.Post("/workouts", cfg.Workouts.HandleLogWorkout)
		r.Get("/workouts", cfg.Workouts.HandleListWorkouts)
	})

	return r
}

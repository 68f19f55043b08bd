package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"posture-backend-go/internal/config"
	"posture-backend-go/internal/services"
	"posture-backend-go/internal/store"
)

type Server struct {
	DB         *sqlx.DB
	Stores     store.Stores
	Config     config.Config
	Tokens     services.TokenService
	MetricsHub *services.MetricsHub
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.MetricsHub) *Server {
	tokens := services.TokenService{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    time.Duration(cfg.TokenTTLSeconds) * time.Second,
	}
	return &Server{
		DB:         db,
		Stores:     store.New(db),
		Config:     cfg,
		Tokens:     tokens,
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	r.Use(RequestLogger)

	r.Get("/", s.Health)

	r.Route("/api", func(api chi.Router) {
		api.Post("/login", s.Login)
		api.Post("/device/login", s.DeviceLogin)

		api.Group(func(protected chi.Router) {
			protected.Use(WithAuth(s.Tokens))
			protected.Get("/protected", s.Protected)
			protected.With(RequireDevice).Post("/device/readings", s.DeviceReading)
			protected.With(RequireAccount).Get("/metrics/history", s.MetricsHistory)
		})

		api.Route("/accounts", func(accounts chi.Router) {
			accounts.Post("/", s.CreateAccount)
			accounts.Get("/", s.ListAccounts)
			accounts.Get("/{id}", s.GetAccount)
			accounts.Put("/{id}", s.UpdateAccount)
			accounts.Patch("/{id}/password", s.UpdateAccountPassword)
			accounts.Delete("/{id}", s.DeleteAccount)
		})

		api.Route("/users", func(users chi.Router) {
			users.Post("/", s.CreateUser)
			users.Get("/", s.ListUsers)
			users.Get("/{id}", s.GetUser)
			users.Put("/{id}", s.UpdateUser)
			users.Delete("/{id}", s.DeleteUser)
			users.Get("/{id}/tilt-average", s.TiltAverage)
		})

		api.Route("/devices", func(devices chi.Router) {
			devices.Post("/", s.CreateDevice)
			devices.Get("/", s.ListDevices)
			devices.Put("/{id}", s.UpdateDevice)
			devices.Delete("/{id}", s.DeleteDevice)
		})

		api.Route("/readings", func(readings chi.Router) {
			readings.Post("/", s.CreateReading)
			readings.Get("/", s.ListReadings)
			readings.Get("/{id}", s.GetReading)
		})

		api.Route("/analysis", func(analysis chi.Router) {
			analysis.Post("/", s.CreateAnalysis)
			analysis.Get("/", s.ListAnalysis)
		})
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	WriteMessage(w, http.StatusOK, "API running")
}

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/logichealth/marketing-api/internal/config"
	"github.com/logichealth/marketing-api/internal/infra/database"
	"github.com/logichealth/marketing-api/internal/infra/http/handlers"
	"github.com/logichealth/marketing-api/internal/infra/http/middleware"
	"github.com/logichealth/marketing-api/internal/infra/integration/brevo"
	"github.com/logichealth/marketing-api/internal/infra/integration/hubspot"
	"github.com/logichealth/marketing-api/internal/infra/mail"
	"github.com/logichealth/marketing-api/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := config.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	db, err := database.NewDBConnection(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		zap.L().Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	eventRepo := database.NewEventRepository(db)
	identityRepo := database.NewVisitorIdentityRepository(db)

	// Gateways
	crm := hubspot.NewClient(cfg.HubspotAccessToken, cfg.HubspotBaseURL, cfg.OutboundTimeout())
	marketing := brevo.NewClient(cfg.BrevoAPIKey, cfg.BrevoNurtureListID, cfg.BrevoBaseURL, cfg.OutboundTimeout())
	notifier := mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.NotifyFrom, cfg.NotifyTo)

	// Use cases
	submitLeadUC := usecase.NewSubmitLeadUseCase(eventRepo, identityRepo, crm, marketing)
	submitApplicationUC := usecase.NewSubmitApplicationUseCase(eventRepo, identityRepo, crm, marketing, notifier)

	// Handlers share one limiter so both endpoints count against the
	// same per-source budget.
	limiter := handlers.NewRateLimiter(cfg.RateLimitMax, cfg.Window())
	leadHandler := handlers.NewLeadHandler(submitLeadUC, limiter, cfg.PublicAPIKey)
	careersHandler := handlers.NewCareersHandler(submitApplicationUC, limiter)
	healthHandler := handlers.NewHealthHandler(db,
		cfg.HubspotAccessToken != "",
		cfg.BrevoAPIKey != "" && cfg.BrevoNurtureListID != 0,
		cfg.SMTPHost != "")

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Origins(),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "x-public-api-key"},
	}))

	// The lead handler owns OPTIONS/405 handling itself.
	r.HandleFunc("/api/forms/lead", leadHandler.Handle)
	r.Post("/api/forms/careers", careersHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	zap.L().Info("server listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}

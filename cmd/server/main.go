package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/printforge/printforge/internal/config"
	"github.com/printforge/printforge/internal/db"
	"github.com/printforge/printforge/internal/logging"
	"github.com/printforge/printforge/internal/migrations"
	"github.com/printforge/printforge/internal/seed"
	"github.com/printforge/printforge/internal/store"
)

type server struct {
	db  *sql.DB
	log *zap.Logger
	cfg config.Config

	settings  *store.SettingsStore
	clients   *store.ClientStore
	presets   *store.MaterialPresetStore
	profiles  *store.PrinterProfileStore
	templates *store.TemplateStore
	quotes    *store.QuoteStore
	backups   *store.BackupStore
}

func newServer(database *sql.DB, logger *zap.Logger, cfg config.Config) *server {
	return &server{
		db:        database,
		log:       logger,
		cfg:       cfg,
		settings:  store.NewSettingsStore(database),
		clients:   store.NewClientStore(database),
		presets:   store.NewMaterialPresetStore(database),
		profiles:  store.NewPrinterProfileStore(database),
		templates: store.NewTemplateStore(database),
		quotes:    store.NewQuoteStore(database),
		backups:   store.NewBackupStore(database),
	}
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
	}

	stats, err := seed.Run(database)
	if err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}
	if stats.Inserts > 0 {
		logger.Info("seeded default records", zap.Int("inserts", stats.Inserts))
	}

	srv := newServer(database, logger, cfg)
	if err := srv.settings.Ensure(); err != nil {
		logger.Fatal("failed to ensure settings", zap.Error(err))
	}

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	r.Post("/calculate", s.handleCalculate)
	r.Post("/calculate/batch", s.handleCalculateBatch)
	r.Post("/calculate/compare", s.handleCalculateCompare)

	r.Route("/clients", func(r chi.Router) {
		r.Get("/", s.handleClientsList)
		r.Post("/", s.handleClientsCreate)
		r.Get("/{id}", s.handleClientsGet)
		r.Put("/{id}", s.handleClientsUpdate)
		r.Delete("/{id}", s.handleClientsDelete)
	})
	r.Route("/presets", func(r chi.Router) {
		r.Get("/", s.handlePresetsList)
		r.Post("/", s.handlePresetsCreate)
		r.Get("/{id}", s.handlePresetsGet)
		r.Put("/{id}", s.handlePresetsUpdate)
		r.Delete("/{id}", s.handlePresetsDelete)
	})
	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", s.handleProfilesList)
		r.Post("/", s.handleProfilesCreate)
		r.Get("/{id}", s.handleProfilesGet)
		r.Put("/{id}", s.handleProfilesUpdate)
		r.Delete("/{id}", s.handleProfilesDelete)
	})
	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.handleTemplatesList)
		r.Post("/", s.handleTemplatesCreate)
		r.Get("/{id}", s.handleTemplatesGet)
		r.Put("/{id}", s.handleTemplatesUpdate)
		r.Delete("/{id}", s.handleTemplatesDelete)
	})

	r.Get("/settings", s.handleSettingsGet)
	r.Put("/settings", s.handleSettingsUpdate)

	r.Route("/history", func(r chi.Router) {
		r.Get("/", s.handleHistoryList)
		r.Post("/", s.handleHistoryCreate)
		r.Get("/{id}", s.handleHistoryGet)
		r.Delete("/{id}", s.handleHistoryDelete)
	})

	r.Post("/config/save", s.handleConfigSave)
	r.Post("/config/load", s.handleConfigLoad)

	r.Post("/export/excel", s.handleExportExcel)
	r.Post("/export/pdf", s.handleExportPDF)
	r.Post("/export/csv", s.handleExportCSV)

	r.Route("/backups", func(r chi.Router) {
		r.Get("/", s.handleBackupsList)
		r.Post("/", s.handleBackupsCreate)
		r.Post("/{id}/restore", s.handleBackupsRestore)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

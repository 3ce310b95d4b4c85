// Command server runs the FULLSCO JSON API.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fullsco/fullsco/internal/catalog"
	"github.com/fullsco/fullsco/internal/config"
	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/httpapi"
	"github.com/fullsco/fullsco/internal/logging"
	"github.com/fullsco/fullsco/internal/media"
	"github.com/fullsco/fullsco/internal/menus"
	"github.com/fullsco/fullsco/internal/pages"
	"github.com/fullsco/fullsco/internal/partners"
	"github.com/fullsco/fullsco/internal/posts"
	"github.com/fullsco/fullsco/internal/scholarships"
	"github.com/fullsco/fullsco/internal/settings"
	"github.com/fullsco/fullsco/internal/stats"
	"github.com/fullsco/fullsco/internal/storage"
	"github.com/fullsco/fullsco/internal/stories"
	"github.com/fullsco/fullsco/internal/subscribers"
	"github.com/fullsco/fullsco/internal/users"
)

// socialLinksSchema guards the social_links site setting.
const socialLinksSchema = `{
	"type": "object",
	"properties": {
		"facebook": {"type": "string"},
		"twitter": {"type": "string"},
		"instagram": {"type": "string"},
		"linkedin": {"type": "string"},
		"youtube": {"type": "string"}
	},
	"additionalProperties": false
}`

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	provider, err := logging.NewProvider(logging.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: cfg.IsDevelopment(),
	})
	if err != nil {
		return err
	}
	logger := provider.GetLogger("server")

	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var models []any
	models = append(models, catalog.Models()...)
	models = append(models, scholarships.Models()...)
	models = append(models, posts.Models()...)
	models = append(models, pages.Models()...)
	models = append(models, stories.Models()...)
	models = append(models, stats.Models()...)
	models = append(models, partners.Models()...)
	models = append(models, subscribers.Models()...)
	models = append(models, users.Models()...)
	models = append(models, media.Models()...)
	models = append(models, settings.Models()...)
	models = append(models, menus.Models()...)
	if err := storage.InitSchema(ctx, db, models...); err != nil {
		return err
	}

	uploadStore, err := media.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	settingsSvc, err := settings.NewBunService(db, provider.GetLogger("settings"),
		settings.WithSchema("social_links", socialLinksSchema))
	if err != nil {
		return err
	}

	userSvc := users.NewBunService(db, provider.GetLogger("users"))
	if err := seedAdmin(ctx, userSvc, cfg, logger); err != nil {
		return err
	}

	api := httpapi.New(httpapi.Services{
		Catalog:      catalog.NewServices(db, provider.GetLogger("catalog")),
		Scholarships: scholarships.NewBunService(db, provider.GetLogger("scholarships")),
		Posts:        posts.NewBunService(db, provider.GetLogger("posts")),
		Pages:        pages.NewBunService(db, provider.GetLogger("pages")),
		Stories:      stories.NewBunService(db, provider.GetLogger("stories")),
		Stats:        stats.NewBunService(db, provider.GetLogger("stats")),
		Partners:     partners.NewBunService(db, provider.GetLogger("partners")),
		Subscribers:  subscribers.NewBunService(db, provider.GetLogger("subscribers")),
		Users:        userSvc,
		Media:        media.NewBunService(db, uploadStore, cfg.UploadBaseURL, provider.GetLogger("media")),
		Menus:        menus.NewBunService(db, provider.GetLogger("menus")),
		Settings:     settingsSvc,
	}, provider.GetLogger("http"))

	mux := http.NewServeMux()
	api.Register(mux)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// seedAdmin bootstraps the first admin account from the environment; it
// does nothing when credentials are unset or the account already exists.
func seedAdmin(ctx context.Context, svc *users.Service, cfg config.Config, logger logging.Logger) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	if _, err := svc.Users.GetByIdentifier(ctx, cfg.AdminUsername); err == nil {
		return nil
	} else if !crud.IsNotFound(err) {
		return err
	}

	_, err := svc.Create(ctx, &users.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Role:     users.RoleAdmin,
		IsActive: true,
	}, cfg.AdminPassword)
	if err != nil {
		return err
	}
	logger.Info("admin account created", "username", cfg.AdminUsername)
	return nil
}

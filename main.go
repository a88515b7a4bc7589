// main.go
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"go-storefront/cart"
	"go-storefront/catalog"
	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/remote"
	"go-storefront/routes"
	"go-storefront/utils"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	source, closeSource, err := openCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("failed to open catalog source")
	}
	store, err := catalog.Load(ctx, source)
	closeSource()
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("failed to load catalog")
	}
	logger.Info().
		Str("source", cfg.CatalogSource).
		Int("products", store.Len()).
		Msg("catalog loaded")
	engine := catalog.NewEngine(store)

	sessions := cart.NewSessions(cart.Pricing{FlatRate: cfg.ShippingFlatRate}, cfg.SessionTTL, logger)
	sessions.StartSweeper(ctx, time.Minute)

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		logger.Warn().Msg("SESSION_SECRET is not set, sessions will not survive a restart")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			logger.Fatal().Err(err).Msg("failed to generate session secret")
		}
	}
	tokens, err := utils.NewSessionTokens(secret, cfg.SessionTokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up session tokens")
	}

	emailService, err := utils.NewEmailService(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up email")
	}

	// Initialize controllers
	validate := utils.NewValidator()
	handlers := routes.Controllers{
		Products:   controllers.NewProductController(engine),
		Categories: controllers.NewCategoryController(engine),
		Cart:       controllers.NewCartController(engine, sessions, validate),
		Wishlist:   controllers.NewWishlistController(engine, sessions, validate),
		Contact:    controllers.NewContactController(emailService, validate, logger),
	}

	router := mux.NewRouter()
	router.Use(middleware.LoggerMiddleware(logger))
	routes.RegisterRoutes(router, middleware.SessionMiddleware(tokens, logger), handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownCompleted := make(chan struct{})
	go func() {
		<-sigChan
		logger.Info().Msg("received shutdown signal")
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
		close(shutdownCompleted)
	}()

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	<-shutdownCompleted
	logger.Info().Msg("server stopped")
}

// openCatalog builds the configured catalog source. The returned func
// releases whatever the source holds once the catalog is loaded.
func openCatalog(ctx context.Context, cfg utils.Config, logger zerolog.Logger) (catalog.Source, func(), error) {
	noop := func() {}

	switch cfg.CatalogSource {
	case utils.SourceFile:
		return catalog.NewFileSource(cfg.CatalogFile), noop, nil

	case utils.SourceMongo:
		client, err := utils.ConnectDB(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeClient := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error().Err(err).Msg("failed to disconnect from mongodb")
			}
		}
		return catalog.NewMongoSource(client.Database(cfg.MongoDatabase)), closeClient, nil

	case utils.SourceRemote:
		client, err := remote.NewClient(cfg.RemoteAPIURL,
			remote.WithHTTPClient(&http.Client{Timeout: cfg.RemoteTimeout}),
			remote.WithLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}
		return client, noop, nil

	default:
		return catalog.StaticSource{}, noop, nil
	}
}

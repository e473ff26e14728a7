package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/linkdeck/linkdeck/internal/config"
	"github.com/linkdeck/linkdeck/internal/http/health"
	"github.com/linkdeck/linkdeck/internal/http/v1/routes"
	"github.com/linkdeck/linkdeck/internal/platform/auth"
	appfirebase "github.com/linkdeck/linkdeck/internal/platform/firebase"
	"github.com/linkdeck/linkdeck/internal/platform/logging"
	appmiddleware "github.com/linkdeck/linkdeck/internal/platform/middleware"
	"github.com/linkdeck/linkdeck/internal/platform/respond"
	"github.com/linkdeck/linkdeck/internal/service/account"
	"github.com/linkdeck/linkdeck/internal/service/analytics"
	"github.com/linkdeck/linkdeck/internal/service/block"
	"github.com/linkdeck/linkdeck/internal/service/embed"
	"github.com/linkdeck/linkdeck/internal/service/message"
	"github.com/linkdeck/linkdeck/internal/service/profile"
	"github.com/linkdeck/linkdeck/internal/service/upload"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	defer func() {
		if err := logging.Sync(); err != nil {
			logging.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := logging.Err(); err != nil {
		logging.LogError(context.Background(), "logger init error", err)
	}

	cfg := config.Load()

	ctx := context.Background()
	clients, err := appfirebase.InitializeClients(ctx, appfirebase.Config{
		ProjectID:                    cfg.FirebaseProjectID,
		GoogleApplicationCredentials: cfg.GoogleApplicationCredentials,
	})
	if err != nil {
		logging.LogFatal(ctx, "firebase initialization failed", err)
	}
	defer func() { _ = clients.Close() }()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize caps request bodies; image uploads get their own limit.
		chimiddleware.RequestSize(upload.MaxUploadBytes+(1<<20)),
		logging.RequestLogger(),
		logging.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/healthz", health.Handler)

	humaCfg := huma.DefaultConfig("LinkDeck API", Version)
	humaCfg.DocsPath = "/api-docs"
	api := humachi.New(router, humaCfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	httpClient := &http.Client{Timeout: 10 * time.Second}

	profiles := profile.NewFirestoreStore(clients.Firestore)
	blocks := block.NewFirestoreStore(clients.Firestore)
	messages := message.NewFirestoreStore(clients.Firestore)
	clicks := analytics.NewFirestoreStore(clients.Firestore)
	resolver := embed.NewResolver(embed.NewOEmbedClient(httpClient,
		embed.WithSoundCloudURL(cfg.SoundCloudOEmbedURL),
		embed.WithTikTokURL(cfg.TikTokOEmbedURL),
	))
	uploader := upload.NewClient(httpClient, cfg.UploadBaseURL, cfg.UploadPreset)
	accounts := account.NewService(
		account.NewFirebaseAdmin(clients.Auth),
		account.NewIdentityToolkitClient(httpClient, cfg.FirebaseWebAPIKey),
		profiles, blocks, messages, clicks,
	)

	routes.Register(api, auth.NewFirebaseVerifier(clients.Auth), routes.Services{
		Profiles:  profiles,
		Blocks:    blocks,
		Messages:  messages,
		Analytics: clicks,
		Account:   accounts,
		Uploader:  uploader,
		Resolver:  resolver,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		logging.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		logging.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		logging.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(shutdownCtx, "server shutdown error", err)
	}
	logging.LogInfo(context.Background(), "server exited")
}

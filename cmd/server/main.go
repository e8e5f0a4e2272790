package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"model-inference-app/internal/adapters/primary/http/handlers"
	"model-inference-app/internal/adapters/primary/http/middleware"
	"model-inference-app/internal/adapters/secondary/codec"
	"model-inference-app/internal/adapters/secondary/filesystem"
	"model-inference-app/internal/adapters/secondary/httpfetch"
	"model-inference-app/internal/adapters/secondary/kube"
	"model-inference-app/internal/adapters/secondary/noticeboard"
	"model-inference-app/internal/adapters/secondary/notifier"
	"model-inference-app/internal/adapters/secondary/urlsource"
	"model-inference-app/internal/config"
	"model-inference-app/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	closeLog := initLogger(cfg)
	defer closeLog()

	decoder, err := codec.ForFormat(cfg.Model.Format)
	if err != nil {
		log.Fatalf("model format: %v", err)
	}

	// The environment URL wins; the Kubernetes Secret is consulted only
	// when MODEL_PKL_URL is unset.
	urls := urlsource.Chain{urlsource.Static(cfg.Model.URL)}
	if cfg.Kubernetes.Enabled {
		secretSrc, err := kube.NewSecretURLSource(&cfg.Kubernetes)
		if err != nil {
			log.Warnf("model url secret source init failed (continuing without it): %v", err)
		} else {
			urls = append(urls, secretSrc)
			log.WithFields(log.Fields{
				"namespace": cfg.Kubernetes.SecretNamespace,
				"secret":    cfg.Kubernetes.SecretName,
			}).Info("model url secret source enabled")
		}
	} else {
		log.Info("Kubernetes secret source disabled")
	}

	board := noticeboard.New()
	notices := notifier.Multi{board, notifier.NewLog(nil)}

	fetcher := httpfetch.NewClient(cfg.Model.DownloadTimeout, httpfetch.WithMaxBytes(cfg.Model.MaxSizeBytes))
	acquisitionSvc := services.NewModelAcquisitionService(
		filesystem.NewStore(cfg.Model.Path),
		fetcher,
		decoder,
		urls,
		notices,
		services.AcquisitionOptions{
			FallbackOnCorrupt: cfg.Model.FallbackOnCorrupt,
			LookupTimeout:     cfg.Model.DownloadTimeout,
		},
	)
	inferenceSvc := services.NewInferenceService(acquisitionSvc, notices)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(inferenceSvc, board)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())
	h.RegisterUI(router)

	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	router.GET("/healthz", h.Health)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Load the model eagerly so the first page view does not wait on a download.
	g.Go(func() error {
		acq := inferenceSvc.Describe(gctx)
		log.WithFields(log.Fields{
			"available": acq.Available(),
			"source":    acq.Source,
		}).Info("model acquisition finished")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Errorf("%v", err)
		closeLog()
		os.Exit(1)
	}

	log.Info("server stopped")
}

// initLogger configures the standard logrus logger and returns a function
// that closes the rotating log file, if one is configured.
func initLogger(cfg *config.Config) func() {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if cfg.Logger.File == "" {
		return func() {}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.Logger.File,
		MaxSize:    cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAgeDays,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, file))

	return func() {
		_ = file.Close()
	}
}

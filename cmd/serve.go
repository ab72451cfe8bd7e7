package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"SafeHelp-App/internal/application"
	"SafeHelp-App/internal/handler"
	repoImpl "SafeHelp-App/internal/repository"
	"SafeHelp-App/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(os.Getenv("GIN_MODE"))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	resourcesRepo, closeRepo, err := newResourcesRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	catalog := application.NewCatalogService(resourcesRepo, logger)
	if _, err := catalog.Resources(ctx, cfg.DefaultCity); err != nil {
		logger.Warn("既定の都市のデータセットを読み込めません", zap.String("city", cfg.DefaultCity), zap.Error(err))
	}

	sessions := usecase.NewSessionUseCase(catalog, repoImpl.NewMemorySessionsRepository(), cfg.Fallback, cfg.SessionTTL, logger)
	sessions.StartSweeper(ctx, sweepInterval)

	router := handler.NewRouter(handler.RouterConfig{
		Catalog:       handler.NewCatalogHandler(catalog),
		Sessions:      handler.NewSessionHandler(sessions, cfg.MapZoom),
		SubmitFormURL: cfg.SubmitFormURL,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("サーバー起動", zap.String("addr", srv.Addr), zap.String("dataset_source", cfg.DatasetSource))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("シャットダウン開始")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("シャットダウン完了")
	return nil
}

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/xw1nchester/dealscan-backend/internal/app"
	"github.com/xw1nchester/dealscan-backend/internal/config"
	"github.com/xw1nchester/dealscan-backend/internal/logging"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

//	@title						Dealscan API
//	@version					1.0
//	@description				Clearance deal scanning across nearby retail stores.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	cfg := config.MustLoad()

	log, err := logging.New(cfg.Env)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewApp(log, cfg)

	go func() {
		log.Info("starting server", zap.String("addr", cfg.HTTPServer.Address), zap.String("env", cfg.Env))
		application.MustRun()
	}()

	<-ctx.Done()

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error("error when shutting down", zap.Error(err))
		return
	}

	log.Info("server stopped")
}

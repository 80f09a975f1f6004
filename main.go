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

	"go.uber.org/zap"

	"github.com/bulanstore/bulan-api/app/cmd"
	"github.com/bulanstore/bulan-api/app/configs"
	"github.com/bulanstore/bulan-api/app/routes"
	"github.com/bulanstore/bulan-api/app/utils/logger"
)

func main() {
	env := configs.LoadENV

	if err := logger.Init(logger.Config{
		Level:       env.LogLevel,
		Environment: env.AppEnv,
		ServiceName: env.AppName,
	}); err != nil {
		log.Fatal("logger init failed:", err)
	}
	defer func() { _ = zap.L().Sync() }()

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		zap.L().Fatal("database connection failed", zap.Error(err))
	}

	redisClient, err := configs.OpenRedis()
	if err != nil {
		zap.L().Fatal("redis connection failed", zap.Error(err))
	}
	if redisClient == nil {
		zap.L().Warn("REDIS_URL not set, token revocation disabled")
	}

	router := routes.NewRouter(db, redisClient)

	server := &http.Server{
		Addr:         env.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zap.L().Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/zonemon/agent/internal/cache"
	"github.com/zonemon/agent/internal/config"
	"github.com/zonemon/agent/internal/engine"
	"github.com/zonemon/agent/internal/fsusage"
	"github.com/zonemon/agent/internal/kstat"
	"github.com/zonemon/agent/internal/ntpd"
	"github.com/zonemon/agent/internal/server"
	"github.com/zonemon/agent/internal/telemetry"
	"github.com/zonemon/agent/internal/version"
	"github.com/zonemon/agent/internal/zones"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("zonemon agent starting", zap.String("version", version.Short()))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	store := cache.New(
		logger.Named("cache"),
		cfg.GetDuration("cache.ttl"),
		cfg.GetDuration("reader.timeout"),
	)
	engine.RegisterReaders(store,
		kstat.NewCmdReader(logger.Named("kstat")),
		fsusage.NewCmdReader(logger.Named("fsusage")),
		ntpd.NewCmdReader(logger.Named("ntpd"), cfg.GetString("ntp.host"), cfg.GetInt("ntp.port")),
	)

	registry := zones.NewCmdRegistry(logger.Named("zones"))
	eng := engine.New(logger.Named("engine"), store, registry)

	addr := fmt.Sprintf("%s:%d", cfg.GetString("server.host"), cfg.GetInt("server.port"))
	srv := server.New(addr, eng, telemetry.New(), logger.Named("server"))

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("zonemon agent ready", zap.String("addr", addr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	eng.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("zonemon agent stopped")
}

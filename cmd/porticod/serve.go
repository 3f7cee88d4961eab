package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arvell/portico/internal/config"
	"github.com/arvell/portico/internal/logger"
	"github.com/arvell/portico/internal/metrics"
	"github.com/arvell/portico/pkg/accessgate"
	"github.com/arvell/portico/pkg/dispatch"
	"github.com/arvell/portico/pkg/gateway"
	"github.com/arvell/portico/pkg/handlers"
	"github.com/arvell/portico/pkg/portfolio"
	"github.com/arvell/portico/pkg/statuscache"
	"github.com/arvell/portico/pkg/toolregistry"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dispatch gateway",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func runServe(configPath string) error {
	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lg, err := logger.New(logger.Config{
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		Console:   cfg.Logging.Console,
		Pretty:    cfg.Logging.Pretty,
		Redaction: cfg.Logging.Redaction,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer lg.Close()
	zl := lg.GetZerolog()

	m := metrics.New()

	registry, err := toolregistry.NewWithDefaults(zl)
	if err != nil {
		return fmt.Errorf("failed to build tool registry: %w", err)
	}

	reflinks := accessgate.NewMemoryReflinkService()
	gate := accessgate.NewGate(reflinks, zl)

	table, err := handlers.Table(handlers.Deps{
		Portfolio:  portfolio.SeedStore(),
		Navigation: handlers.NewNavigationLog(1000),
		Contact:    handlers.LogContactSink{Logger: zl},
		Files:      handlers.NewMemoryFileStore(),
		Usage:      reflinks,
		Logger:     zl,
	})
	if err != nil {
		return fmt.Errorf("failed to build handler table: %w", err)
	}

	clients := gateway.NewClientRegistry()
	broadcaster := gateway.NewBroadcaster(clients, zl)

	dispatcher, err := dispatch.New(dispatch.Config{
		Registry:  registry,
		Handlers:  table,
		Validator: gate,
		Sink:      broadcaster,
		Metrics:   m,
		Logger:    zl,
	})
	if err != nil {
		return fmt.Errorf("failed to build dispatcher: %w", err)
	}

	cache := statuscache.New(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		zl,
		statuscache.WithActivityWindow(time.Duration(cfg.Cache.ActivityWindowMinutes)*time.Minute),
		statuscache.WithHitMissHooks(m.CacheHitsTotal.Inc, m.CacheMissesTotal.Inc),
	)
	for _, provider := range cfg.Cache.Providers {
		cache.Set(provider, statuscache.ProviderStatus{Available: true, Message: "assumed available at startup"})
	}

	refresher, err := statuscache.NewRefresher(statuscache.RefresherConfig{
		Cache:    cache,
		Refresh:  probeProvider,
		Interval: time.Duration(cfg.Cache.RefreshIntervalSeconds) * time.Second,
		Logger:   zl,
	})
	if err != nil {
		return fmt.Errorf("failed to build status refresher: %w", err)
	}
	if err := refresher.Start(); err != nil {
		return fmt.Errorf("failed to start status refresher: %w", err)
	}
	defer refresher.Stop()

	server, err := gateway.NewServer(gateway.Config{
		Host:         cfg.Gateway.Host,
		Port:         cfg.Gateway.Port,
		SharedSecret: cfg.Gateway.SharedSecret,
		ExecTimeout:  time.Duration(cfg.Dispatch.TimeoutSeconds) * time.Second,
		Registry:     registry,
		Dispatcher:   dispatcher,
		StatusCache:  cache,
		Metrics:      m,
		Clients:      clients,
		Logger:       zl,
	})
	if err != nil {
		return fmt.Errorf("failed to build gateway: %w", err)
	}

	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start gateway: %w", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	return server.Stop()
}

// probeProvider re-tests a provider. Provider SDKs are opaque collaborators;
// the default probe reports reachability of the process itself.
func probeProvider(_ context.Context, providerID string) (statuscache.ProviderStatus, error) {
	start := time.Now()
	return statuscache.ProviderStatus{
		Available: true,
		LatencyMS: time.Since(start).Milliseconds(),
		Message:   fmt.Sprintf("provider %s assumed reachable", providerID),
	}, nil
}

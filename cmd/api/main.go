package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fertdash.agstats.org/internal/app"
	"fertdash.agstats.org/internal/appconf"
	"fertdash.agstats.org/internal/logging"
	"fertdash.agstats.org/internal/restapi"
	"fertdash.agstats.org/internal/webui"
	"fertdash.agstats.org/internal/worldbank"
	"github.com/julienschmidt/httprouter"
)

func main() {
	var (
		port            int
		envFlag         string
		apiKeysFlag     string
		rateLimit       int
		baseURL         string
		indicator       string
		dbPath          string
		refreshInterval time.Duration
		verbose         bool
	)

	flag.IntVar(&port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	flag.IntVar(&rateLimit, "rate-limit", 100, "Requests per second per API key (0 disables)")
	flag.StringVar(&baseURL, "wb-url", worldbank.DefaultBaseURL, "World Bank API base URL")
	flag.StringVar(&indicator, "indicator", worldbank.DefaultIndicator, "World Bank indicator code")
	flag.StringVar(&dbPath, "db-path", "fertdash.db", "SQLite database path (:memory: for ephemeral)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 24*time.Hour, "Interval between upstream refreshes (0 disables)")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.Parse()

	env := appconf.EnvFlagToEnvironment(envFlag)

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewLogger(env, level)

	var apiKeys []string
	if apiKeysFlag != "" {
		apiKeys = strings.Split(apiKeysFlag, ",")
		for i := range apiKeys {
			apiKeys[i] = strings.TrimSpace(apiKeys[i])
		}
	}

	wbConfig := worldbank.Config{
		BaseURL:         baseURL,
		Indicator:       indicator,
		DataPath:        dbPath,
		RefreshInterval: refreshInterval,
		Env:             env,
		Verbose:         verbose,
	}

	dataManager, err := worldbank.InitManager(wbConfig, logger)
	if err != nil {
		logger.Error("failed to initialize data manager", "error", err)
		os.Exit(1)
	}
	defer dataManager.Shutdown()

	application := &app.Application{
		Config: appconf.Config{
			Port:      port,
			Env:       env,
			ApiKeys:   apiKeys,
			RateLimit: rateLimit,
		},
		WBConfig:    wbConfig,
		Logger:      logger,
		DataManager: dataManager,
	}

	api := restapi.NewRestAPI(application)
	ui := webui.NewWebUI(application)

	router := httprouter.New()
	api.SetRoutes(router)
	ui.SetRoutes(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      api.Middleware(router),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Info("shutting down server", "signal", s.String())
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", env.String())
	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err.Error())
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("stopped server", "addr", srv.Addr)
}

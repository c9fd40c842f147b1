package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skycast-api/config"
	_ "skycast-api/docs"
	v1 "skycast-api/internal/controllers/http/v1"
	"skycast-api/internal/repositories"
	"skycast-api/internal/services/forecast"
	"skycast-api/internal/services/location"
	"skycast-api/internal/services/patterns"
	"skycast-api/pkg/httpserver"
	"skycast-api/pkg/observe"
)

// @title Skycast API
// @version 1.0.0
// @description Cloud cover and lightning probability forecasts from the SMHI open data grid, resolved by coordinate or address.
// @description Probes nearby grid points when the provider spuriously rejects precise coordinates inside its coverage.
// @termsOfService http://swagger.io/terms/

// @contact.name Skycast API Support
// @contact.url https://github.com/your-username/skycast-api
// @contact.email support@skycast.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Locations
// @tag.description Location search and reverse geocoding
// @tag.name Forecast
// @tag.description Cloud cover and lightning probability forecasts
// @tag.name Patterns
// @tag.description Atmospheric pattern analysis
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	var l *observe.Logger
	if cnf.Sentry.DSN != "" {
		hook := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.IsDevelopment(), cnf.Sentry.DSN)
		l = observe.NewZapLogger(cnf.App.Name, cnf.App.Env, os.Stdout, hook)
		hook.SetLogger(l)
		defer hook.Flush()
	} else {
		l = observe.NewZapLogger(cnf.App.Name, cnf.App.Env, os.Stdout)
	}

	app := httpserver.InitFiberServer(cnf.App.Name)

	forecastRepo, geocodeRepo := repositories.InitRepositories(cnf, l)

	locationService := location.NewService(geocodeRepo, cnf.Geocoder.MaxResults, l)

	forecastService := forecast.NewService(forecastRepo, locationService, newAnalyzer(cnf, l), l)

	v1.NewRouter(
		app,
		forecastService,
		locationService,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{"port": cnf.Server.Port})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}

// newAnalyzer picks the pattern analyzer for this run. Weights on disk get
// the trained network, otherwise the heuristic scorer. Disabled means nil,
// which the forecast service reports as unavailable.
func newAnalyzer(cnf *config.Config, l *observe.Logger) patterns.Analyzer {
	if !cnf.Patterns.Enabled {
		l.Warning("pattern analysis is disabled")
		return nil
	}

	if cnf.Patterns.WeightsPath != "" {
		analyzer, err := patterns.NewNetworkAnalyzer(cnf.Patterns.WeightsPath)
		if err != nil {
			l.Warning("cannot load pattern model weights, falling back to heuristic analyzer",
				map[string]any{"err": err.Error(), "path": cnf.Patterns.WeightsPath})
			return patterns.NewHeuristicAnalyzer()
		}
		return analyzer
	}

	return patterns.NewHeuristicAnalyzer()
}

// Package main provides the entrypoint for the SafeRoute API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/saferoute/saferoute/internal/airquality"
	"github.com/saferoute/saferoute/internal/airquality/openaq"
	"github.com/saferoute/saferoute/internal/api"
	"github.com/saferoute/saferoute/internal/api/handler"
	"github.com/saferoute/saferoute/internal/api/middleware"
	"github.com/saferoute/saferoute/internal/classifier"
	"github.com/saferoute/saferoute/internal/classifier/restmodel"
	"github.com/saferoute/saferoute/internal/database"
	"github.com/saferoute/saferoute/internal/features"
	"github.com/saferoute/saferoute/internal/ranking"
	"github.com/saferoute/saferoute/internal/risk"
	"github.com/saferoute/saferoute/internal/routing"
	"github.com/saferoute/saferoute/internal/routing/googlemaps"
	"github.com/saferoute/saferoute/internal/scoring"
	"github.com/saferoute/saferoute/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "saferoute-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting SafeRoute API")

	// Get configuration from environment
	port := getEnvOrDefault("APP_PORT", "8080")
	env := getEnvOrDefault("APP_ENV", "development")
	otlpEndpoint := getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	timezone := getEnvOrDefault("APP_TIMEZONE", "Asia/Kolkata")

	location, err := time.LoadLocation(timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", timezone).Msg("invalid timezone")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"
	sampleRatio, _ := strconv.ParseFloat(os.Getenv("OTEL_TRACE_SAMPLE_RATIO"), 64)

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
		SampleRatio:    sampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Load crime hotspots: from Postgres when configured, otherwise the
	// built-in Delhi NCR table.
	var hotspotRepo risk.Repository = risk.NewStaticRepository(risk.DelhiHotspots())
	readyChecks := []handler.ReadyCheck{}

	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		hotspotRepo = risk.NewPostgresRepository(pool)
		readyChecks = append(readyChecks, handler.ReadyCheck{
			Name:  "database",
			Check: pool.Ping,
		})
	}

	hotspots, err := hotspotRepo.LoadHotspots(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load crime hotspots")
	}
	riskIndex, err := risk.NewIndex(hotspots, risk.IndexConfig{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build risk index")
	}
	log.Info().Int("hotspots", riskIndex.Size()).Msg("risk index built")

	// Air quality service (OpenAQ, optional)
	var aqProvider airquality.Provider
	if apiKey := os.Getenv("OPENAQ_API_KEY"); apiKey != "" {
		aqProvider = openaq.NewClient(openaq.ClientConfig{APIKey: apiKey})
		log.Info().Msg("OpenAQ provider initialized")
	} else {
		log.Warn().Msg("OPENAQ_API_KEY not set, pollution levels will use the fallback band")
	}
	aqService := airquality.NewService(airquality.ServiceConfig{
		Provider: aqProvider,
		Logger:   log,
	})

	// Risk model (optional, heuristic fallback without it)
	var predictor classifier.Predictor
	if endpoint := os.Getenv("MODEL_ENDPOINT"); endpoint != "" {
		predictor = restmodel.NewClient(restmodel.ClientConfig{Endpoint: endpoint})
		log.Info().Str("endpoint", endpoint).Msg("risk model client initialized")
	} else {
		log.Warn().Msg("MODEL_ENDPOINT not set, risk assessment will use the heuristic fallback")
	}
	riskClassifier := classifier.NewAdapter(classifier.AdapterConfig{
		Predictor: predictor,
		Logger:    log,
	})

	// Routing provider
	mapsAPIKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if mapsAPIKey == "" {
		log.Fatal().Msg("GOOGLE_MAPS_API_KEY is required")
	}
	providerMetrics, err := middleware.NewProviderMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider metrics")
	}
	routingService := routing.NewService(routing.ServiceConfig{
		Provider: googlemaps.NewClient(googlemaps.ClientConfig{
			APIKey: mapsAPIKey,
			Logger: log,
		}),
		Logger:  log,
		Metrics: providerMetrics,
	})

	// Scoring and ranking
	synthesizer := features.NewSynthesizer(features.SynthesizerConfig{
		Risk:      riskIndex,
		Pollution: aqService,
	})
	scorer := scoring.NewScorer(scoring.ScorerConfig{
		Synthesizer: synthesizer,
		Classifier:  riskClassifier,
		Logger:      log,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Directions:  routingService,
		Scorer:      scorer,
		Ranker:      ranking.NewRanker(),
		Location:    location,
		ReadyChecks: readyChecks,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

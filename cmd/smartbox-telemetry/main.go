package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/diwise/smartbox-telemetry/internal/pkg/application/alerts"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/events"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/ledger"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/telemetry"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/watchdog"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/webevents"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/livestate"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/logging"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/messaging"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/metrics"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/database"
	alertsDb "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/database/alerts"
	telemetryRepo "github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/repositories/telemetry"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/router"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/tracing"
	"github.com/diwise/smartbox-telemetry/internal/pkg/presentation/api"
)

const serviceName string = "smartbox-telemetry"

func main() {
	serviceVersion := version()

	ctx, logger := logging.NewLogger(context.Background(), serviceName, serviceVersion)
	logger.Info().Msg("starting up ...")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("failed to load .env file")
	}

	ctx, flags := parseExternalConfig(ctx, defaultFlags())

	cleanup, err := tracing.Init(ctx, logger, serviceName, serviceVersion)
	exitIf(err, logger, "failed to init tracing")
	defer cleanup()

	cfg, err := loadConfigFile(flags[configurationFile])
	exitIf(err, logger, "could not load configuration file")

	boxes, err := openBoxesFile(flags[boxesFile])
	exitIf(err, logger, "could not open boxes file")

	app, err := initialize(ctx, flags, cfg, boxes)
	exitIf(err, logger, "failed to initialize service")
	defer app.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx, flags)
	exitIf(err, logger, "service stopped with an error")

	logger.Info().Msg("shut down")
}

type application struct {
	api     *chi.Mux
	control *chi.Mux

	webEvents webevents.WebEvents
	watchdog  watchdog.Watchdog
	closers   []func()
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func initialize(ctx context.Context, flags flagMap, cfg *appConfig, boxes io.Reader) (*application, error) {
	log := logging.GetFromContext(ctx)
	app := &application{}

	m := metrics.New()

	repo, err := alertsDb.NewAlertRepository(newConnector(ctx, flags, log))
	if err != nil {
		return nil, fmt.Errorf("could not create or connect to database: %w", err)
	}

	capacity := cfg.Retention.Capacity
	if v, err := strconv.Atoi(flags[retentionCap]); err == nil && v > 0 {
		capacity = v
	}

	store := telemetryRepo.New(telemetryRepo.Config{
		Capacity:  capacity,
		ClockSkew: cfg.Retention.ClockSkew,
	})

	if boxes != nil {
		err = telemetryRepo.Seed(ctx, store, boxes)
		if err != nil {
			return nil, fmt.Errorf("failed to seed boxes: %w", err)
		}
	}

	publishers := []messaging.Publisher{}
	checks := []healthCheck{}

	app.webEvents = webevents.New(log)
	app.closers = append(app.closers, app.webEvents.Shutdown)
	publishers = append(publishers, app.webEvents)

	if flags[rabbitURL] != "" {
		rabbit, err := messaging.NewRabbitPublisher(ctx, messaging.LoadConfiguration(serviceName, flags[rabbitURL]), log)
		if err != nil {
			return nil, fmt.Errorf("failed to init messenger: %w", err)
		}
		app.closers = append(app.closers, rabbit.Close)
		publishers = append(publishers, rabbit)
	}

	if flags[redisAddr] != "" {
		mirror, err := livestate.New(ctx, livestate.Config{Addr: flags[redisAddr]})
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { mirror.Close() })
		publishers = append(publishers, mirror)
		checks = append(checks, mirror.Ping)
	}

	sender, err := events.New(&events.Config{Notifications: cfg.Notifications})
	if err != nil {
		return nil, fmt.Errorf("failed to create event sender: %w", err)
	}
	publishers = append(publishers, sender)

	async := messaging.NewAsync(messaging.Multi(publishers...), 1024, log)
	app.closers = append(app.closers, async.Close)
	publisher := messaging.Publisher(async)

	alertSvc := alerts.New(repo, store, publisher,
		alerts.WithThresholds(cfg.Thresholds),
		alerts.WithMetrics(m),
	)

	svc := telemetry.New(store, alertSvc, ledger.NewStatic(cfg.Ledger),
		telemetry.WithThresholds(cfg.Thresholds),
		telemetry.WithMetrics(m),
		telemetry.WithPublisher(publisher),
	)

	app.watchdog = watchdog.New(store, publisher, cfg.Watchdog)

	app.api = api.RegisterHandlers(ctx, router.New(serviceName), svc, alertSvc, app.webEvents)

	app.control = chi.NewRouter()
	app.control.Get("/health", newHealthHandler(checks...))
	app.control.Method(http.MethodGet, "/metrics", m.Handler())

	return app, nil
}

type healthCheck func(ctx context.Context) error

// newHealthHandler answers 204 when every check passes and 503 otherwise.
func newHealthHandler(checks ...healthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for _, check := range checks {
			if err := check(ctx); err != nil {
				log := logging.GetFromContext(ctx)
				log.Warn().Err(err).Msg("health check failed")
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Run serves the api and control ports until ctx is cancelled.
func (a *application) Run(ctx context.Context, flags flagMap) error {
	log := logging.GetFromContext(ctx)

	servers := []*http.Server{
		{Addr: flags[listenAddress] + ":" + flags[servicePort], Handler: a.api, ReadHeaderTimeout: 5 * time.Second},
		{Addr: flags[listenAddress] + ":" + flags[controlPort], Handler: a.control, ReadHeaderTimeout: 5 * time.Second},
	}

	errs := make(chan error, len(servers))

	a.watchdog.Start(ctx)
	defer a.watchdog.Stop()

	for _, s := range servers {
		go func(s *http.Server) {
			log.Info().Str("addr", s.Addr).Msg("starting to listen for connections")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}(s)
	}

	var err error

	select {
	case <-ctx.Done():
	case err = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, s := range servers {
		s.Shutdown(shutdownCtx)
	}

	return err
}

func newConnector(ctx context.Context, flags flagMap, log zerolog.Logger) database.ConnectorFunc {
	cfg := database.ConnectorConfig{
		Host:     flags[dbHost],
		Port:     flags[dbPort],
		Username: flags[dbUser],
		DbName:   flags[dbName],
		Password: flags[dbPassword],
		SslMode:  flags[dbSSLMode],
	}

	if cfg.Enabled() {
		return database.NewPostgreSQLConnector(ctx, cfg)
	}

	log.Info().Msg("no database host configured, keeping alerts in memory")
	return database.NewSQLiteConnector(log)
}

func openBoxesFile(path string) (io.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(b), nil
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := func(name, def string) string {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v
		}
		return def
	}

	flags[listenAddress] = envOrDef("LISTEN_ADDRESS", flags[listenAddress])
	flags[controlPort] = envOrDef("CONTROL_PORT", flags[controlPort])
	flags[servicePort] = envOrDef("SERVICE_PORT", flags[servicePort])

	flags[configurationFile] = envOrDef("CONFIG_FILE", flags[configurationFile])
	flags[boxesFile] = envOrDef("BOXES_FILE", flags[boxesFile])

	flags[dbHost] = envOrDef("POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef("POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef("POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef("POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef("POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef("POSTGRES_SSLMODE", flags[dbSSLMode])

	flags[rabbitURL] = envOrDef("RABBITMQ_URL", flags[rabbitURL])
	flags[redisAddr] = envOrDef("REDIS_ADDR", flags[redisAddr])
	flags[retentionCap] = envOrDef("RETENTION_CAP", flags[retentionCap])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("config", "smart box configuration file", apply(configurationFile))
	flag.Func("boxes", "list of known boxes", apply(boxesFile))
	flag.Func("retention", "number of readings kept per box", apply(retentionCap))
	flag.Parse()

	return ctx, flags
}

func version() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	buildSettings := buildInfo.Settings
	infoMap := map[string]string{}
	for _, s := range buildSettings {
		infoMap[s.Key] = s.Value
	}

	sha := infoMap["vcs.revision"]
	if infoMap["vcs.modified"] == "true" {
		sha += "+"
	}

	return sha
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Error().Err(err).Msg(msg)
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}

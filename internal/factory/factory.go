package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/forceteam/internal/dependencies/clock"
	"github.com/mcoot/forceteam/internal/dependencies/tick"
	"github.com/mcoot/forceteam/internal/host/sim"
	"github.com/mcoot/forceteam/internal/services/auth"
	"github.com/mcoot/forceteam/internal/services/command"
	"github.com/mcoot/forceteam/internal/services/report"
	"github.com/mcoot/forceteam/internal/services/roster"
	"github.com/mcoot/forceteam/internal/sse"
	"github.com/mcoot/forceteam/internal/storage"
	"github.com/mcoot/forceteam/internal/storage/memory"
	redisstorage "github.com/mcoot/forceteam/internal/storage/redis"
	"github.com/mcoot/forceteam/internal/storage/sqlite"
	"github.com/mcoot/forceteam/internal/transport/redisbus"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Journal storage.Journal

	// External dependencies
	Clock clock.Clock
	Loop  *tick.Loop
	Sim   *sim.Server

	// Services
	Engine      *roster.Engine
	Commands    *command.Service
	AuthService *auth.Service
	Hub         *sse.Hub
	Reporter    report.Reporter

	// Subscriber is nil unless the command bus is enabled
	Subscriber *redisbus.Subscriber

	closers []func()
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// TickInterval is the loop period; zero means tick.DefaultInterval
	TickInterval time.Duration
	// Timings overrides the trigger delays (optional)
	Timings *roster.Timings
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// StorageType selects the journal backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// JournalCapacity caps the in-memory journal
	JournalCapacity int
	// RedisConfig holds Redis connection settings (required for redis storage or the bus)
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// Bus enables the Redis command bus when set
	Bus *redisbus.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var (
		closers     []func()
		redisClient *redis.Client
		journal     storage.Journal
	)
	fail := func(err error) (*App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		return nil, err
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	if storageType == StorageTypeRedis || cfg.Bus != nil {
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required for redis storage or the command bus")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		closers = append(closers, func() { _ = redisStore.Close() })
		redisClient = redisStore.Client()
		if storageType == StorageTypeRedis {
			journal = redisStore
		}
	}

	switch storageType {
	case StorageTypeMemory:
		journal = memory.New(cfg.JournalCapacity)
	case StorageTypeRedis:
	case StorageTypeSQLite:
		sqliteStore, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = sqliteStore.Close() })
		journal = sqliteStore
	default:
		return fail(errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'"))
	}

	clk := clock.New()

	authCfg := cfg.AuthConfig
	if authCfg.VerifiedTTL == 0 {
		authCfg.VerifiedTTL = auth.DefaultConfig().VerifiedTTL
	}
	authService, err := auth.New(clk, authCfg)
	if err != nil {
		return fail(err)
	}

	hub := sse.NewHub(logger)
	go hub.Run()
	closers = append(closers, hub.Close)

	sink := storage.NewSink(journal, logger)
	closers = append(closers, sink.Close)

	sinks := report.Fanout{
		report.NewLog(logger),
		sink,
		sse.NewBroadcaster(hub, logger),
	}
	if cfg.Bus != nil {
		publisher := redisbus.NewPublisher(redisClient, cfg.Bus.ReportChannel, logger)
		closers = append(closers, publisher.Close)
		sinks = append(sinks, publisher)
	}

	app := newWithDependencies(clk, cfg.TickInterval, cfg.Timings, sinks, logger)
	app.Journal = journal
	app.AuthService = authService
	app.Hub = hub
	app.closers = closers

	if cfg.Bus != nil {
		app.Subscriber = redisbus.NewSubscriber(redisClient, *cfg.Bus, app.Commands, logger)
	}
	return app, nil
}

// newWithDependencies wires the loop, host and engine (useful for testing)
func newWithDependencies(clk clock.Clock, interval time.Duration, timings *roster.Timings, reporter report.Reporter, logger *slog.Logger) *App {
	if interval <= 0 {
		interval = tick.DefaultInterval
	}
	loop := tick.NewLoop(clk, interval, logger)
	server := sim.New()

	var opts []roster.Option
	if timings != nil {
		opts = append(opts, roster.WithTimings(*timings))
	}
	engine := roster.New(server, loop, clk, reporter, logger, opts...)
	engine.Attach()

	return &App{
		Clock:    clk,
		Loop:     loop,
		Sim:      server,
		Engine:   engine,
		Commands: command.NewService(loop, engine, logger),
		Reporter: reporter,
	}
}

// Close flushes report sinks and releases connections. Call it after the
// loop has stopped.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

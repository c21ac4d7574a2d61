// Package app wires configuration, storage and handlers together.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	achievementQueries "github.com/activepause/activepause/internal/achievements/application/queries"
	achievementServices "github.com/activepause/activepause/internal/achievements/application/services"
	achievementsDomain "github.com/activepause/activepause/internal/achievements/domain"
	achievementPersistence "github.com/activepause/activepause/internal/achievements/infrastructure/persistence"
	exercisesDomain "github.com/activepause/activepause/internal/exercises/domain"
	exercisePersistence "github.com/activepause/activepause/internal/exercises/infrastructure/persistence"
	"github.com/activepause/activepause/internal/reminder"
	sessionCommands "github.com/activepause/activepause/internal/sessions/application/commands"
	sessionsDomain "github.com/activepause/activepause/internal/sessions/domain"
	sessionPersistence "github.com/activepause/activepause/internal/sessions/infrastructure/persistence"
	"github.com/activepause/activepause/internal/shared/infrastructure/database"
	"github.com/activepause/activepause/internal/shared/infrastructure/eventbus"
	"github.com/activepause/activepause/internal/shared/infrastructure/migrations"
	"github.com/activepause/activepause/pkg/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	UserID uuid.UUID

	// Storage
	SQLiteDB     *sql.DB
	PostgresPool *pgxpool.Pool
	RedisClient  *redis.Client

	// Repositories
	AchievementRepo achievementsDomain.Repository
	SessionRepo     sessionsDomain.Repository
	ExerciseRepo    exercisesDomain.Repository

	// Events
	EventBus        *eventbus.InProcessBus
	BrokerPublisher eventbus.Publisher

	// Services and handlers
	AchievementEngine       *achievementServices.Engine
	RecordSessionHandler    *sessionCommands.RecordSessionHandler
	ListAchievementsHandler *achievementQueries.ListAchievementsHandler

	// Reminder
	Scheduler  *reminder.Scheduler
	Suppressor reminder.Suppressor
}

// NewContainer creates and wires all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", cfg.UserID, err)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		UserID: userID,
	}

	if err := c.initStorage(ctx); err != nil {
		return nil, err
	}

	if err := c.initRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}

	c.initEvents(ctx)

	c.AchievementEngine = achievementServices.NewEngine(c.AchievementRepo, c.EventBus, logger)
	c.RecordSessionHandler = sessionCommands.NewRecordSessionHandler(c.SessionRepo, c.AchievementEngine, c.EventBus, logger)
	c.ListAchievementsHandler = achievementQueries.NewListAchievementsHandler(c.AchievementRepo)

	if err := c.seed(ctx); err != nil {
		c.Close()
		return nil, err
	}

	scheduler, err := reminder.NewScheduler(reminder.SchedulerConfig{
		IntervalMinutes: cfg.WorkIntervalMinutes,
		Tick:            cfg.SchedulerTick,
	}, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("invalid scheduler configuration: %w", err)
	}
	c.Scheduler = scheduler

	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	cfg := c.Config

	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := migrations.RunPostgres(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.PostgresPool = pool
		c.AchievementRepo = achievementPersistence.NewPostgresAchievementRepository(pool)
		c.SessionRepo = sessionPersistence.NewPostgresSessionRepository(pool, cfg.EarlyCutoffHour)
		c.ExerciseRepo = exercisePersistence.NewPostgresExerciseRepository(pool)
		c.Logger.Info("connected to database", "driver", cfg.DBDriver)

	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := migrations.RunSQLite(ctx, db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.SQLiteDB = db
		c.AchievementRepo = achievementPersistence.NewSQLiteAchievementRepository(db)
		c.SessionRepo = sessionPersistence.NewSQLiteSessionRepository(db, cfg.EarlyCutoffHour)
		c.ExerciseRepo = exercisePersistence.NewSQLiteExerciseRepository(db)
		c.Logger.Info("connected to database", "driver", cfg.DBDriver, "path", cfg.SQLitePath)

	default:
		return fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}

	return nil
}

func (c *Container) initRedis(ctx context.Context) error {
	c.Suppressor = reminder.NoopSuppressor{}
	if c.Config.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		c.Logger.Warn("invalid Redis URL, break suppression disabled", "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		if !c.Config.IsDevelopment() {
			client.Close()
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, break suppression disabled", "error", err)
		client.Close()
		return nil
	}

	c.RedisClient = client
	c.Suppressor = reminder.NewRedisSuppressor(client)
	c.Logger.Info("connected to Redis")
	return nil
}

func (c *Container) initEvents(ctx context.Context) {
	c.EventBus = eventbus.NewInProcessBus(c.Logger)

	if c.Config.RabbitMQURL == "" {
		c.BrokerPublisher = eventbus.NewNoopPublisher(c.Logger)
		return
	}

	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		c.Logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
		c.BrokerPublisher = eventbus.NewNoopPublisher(c.Logger)
		return
	}
	c.BrokerPublisher = publisher

	// Forward every in-process event to the broker.
	c.EventBus.Subscribe("*", func(ctx context.Context, event eventbus.Event) error {
		return c.BrokerPublisher.Publish(ctx, event.RoutingKey, event.Payload)
	})
}

func (c *Container) seed(ctx context.Context) error {
	if err := c.AchievementEngine.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("failed to seed achievements: %w", err)
	}
	if err := c.ExerciseRepo.Seed(ctx, exercisesDomain.DefaultCatalog()); err != nil {
		return fmt.Errorf("failed to seed exercises: %w", err)
	}
	return nil
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}

	if c.BrokerPublisher != nil {
		if err := c.BrokerPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.PostgresPool != nil {
		c.PostgresPool.Close()
	}

	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("error closing SQLite connection", "error", err)
		}
	}
}

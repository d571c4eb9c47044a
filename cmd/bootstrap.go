package cmd

import (
	"context"
	"fmt"
	"log"

	"tenant-booking/internal/data/repository"
	"tenant-booking/pkg/database"
	"tenant-booking/pkg/utils"

	"go.uber.org/zap"
)

// deps bundles what every subcommand needs; close releases the stores.
type deps struct {
	config *utils.Config
	logger *zap.Logger
	repo   *repository.Repository
	pg     database.PgxIface
	close  func()
}

func loadConfigAndLogger() (*utils.Config, *zap.Logger, error) {
	// Load config
	config, err := utils.LoadConfigFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}

// openRuntime connects the configured store and, when REDIS_ADDR is set,
// the idempotency store.
func openRuntime(ctx context.Context, withRedis bool) (*deps, error) {
	config, logger, err := loadConfigAndLogger()
	if err != nil {
		return nil, err
	}

	rt := &deps{config: config, logger: logger}
	var closers []func()

	switch config.Database.Driver {
	case "bolt":
		db, err := database.InitBolt(config.Database.BoltPath)
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() { db.Close() })
		rt.repo = repository.NewBoltRepository(db, logger)
		logger.Info("Bolt store opened", zap.String("path", config.Database.BoltPath))
	case "postgres", "":
		db, err := database.InitDB(config.Database)
		if err != nil {
			return nil, err
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("db ping: %w", err)
		}
		closers = append(closers, db.Close)
		rt.pg = db
		rt.repo = repository.NewRepository(db, logger)
		logger.Info("Database connected successfully")
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", config.Database.Driver)
	}

	if withRedis && config.Redis.Enabled() {
		client, err := database.InitRedis(config.Redis)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, err
		}
		closers = append(closers, func() { client.Close() })
		rt.repo.Idempotency = repository.NewIdempotencyStore(client, logger)
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	}

	rt.close = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		_ = logger.Sync()
	}
	return rt, nil
}

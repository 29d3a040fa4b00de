// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"craftmarket_backend/internal/app"
	"craftmarket_backend/internal/auth"
	"craftmarket_backend/internal/config"
	"craftmarket_backend/internal/favorite"
	"craftmarket_backend/internal/jobs"
	"craftmarket_backend/internal/listing"
	"craftmarket_backend/internal/platform/database"
	"craftmarket_backend/internal/platform/logger"
	"craftmarket_backend/internal/stats"
	"craftmarket_backend/internal/user"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,

		// Auth
		auth.NewTokenService,
		auth.NewService,
		wire.Bind(new(auth.Service), new(*auth.ServiceImplementation)),
		auth.NewHandler,

		// Users
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Listings
		listing.NewGORMRepository,
		listing.NewService,
		wire.Bind(new(listing.Service), new(*listing.ServiceImplementation)),
		listing.NewHandler,

		// Favorites
		favorite.NewGORMRepository,
		favorite.NewService,
		wire.Bind(new(favorite.Service), new(*favorite.ServiceImplementation)),
		favorite.NewHandler,

		// Stats
		stats.NewRepository,
		stats.NewService,
		wire.Bind(new(stats.Service), new(*stats.ServiceImplementation)),
		stats.NewHandler,

		// Jobs
		jobs.NewFavoriteSweepJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}

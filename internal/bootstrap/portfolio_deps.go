package bootstrap

import (
	"context"

	"portfolio_server/adapter/out/mongodb"
	"portfolio_server/adapter/out/storage"
	"portfolio_server/config"
	"portfolio_server/core/service/auth"
	"portfolio_server/core/service/project"
	"portfolio_server/core/service/user"
	"portfolio_server/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Dependencies struct {
	Config  *config.Config
	MongoDB *mongo.Client

	// Adapters
	UserRepo    *mongodb.UserAdapter
	ProjectRepo *mongodb.ProjectAdapter
	FileStore   *storage.DiskStore

	// Services
	TokenService   *auth.TokenService
	UserService    *user.Service
	ProjectService *project.Service
}

func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}
	var cleanups []func()

	// MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDBURL, cfg.MongoDBName)
	if err != nil {
		return nil, nil, err
	}
	deps.MongoDB = mongoClient
	cleanups = append(cleanups, func() {
		mongoClient.Disconnect(context.Background())
	})
	logger.Info("MongoDB connected: %s", cfg.MongoDBName)

	db := mongoClient.Database(cfg.MongoDBName)
	deps.UserRepo = mongodb.NewUserAdapter(db)
	deps.ProjectRepo = mongodb.NewProjectAdapter(db)

	indexCtx := context.Background()
	if err := deps.UserRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("Failed to ensure user indexes: %v", err)
	}
	if err := deps.ProjectRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("Failed to ensure project indexes: %v", err)
	}

	// File storage
	fileStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		return nil, nil, err
	}
	deps.FileStore = fileStore

	// Services
	deps.TokenService = auth.NewTokenService(auth.Config{
		AccessSecret:  cfg.AccessTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}, deps.UserRepo)
	deps.UserService = user.NewService(deps.UserRepo, deps.FileStore, deps.TokenService)
	deps.ProjectService = project.NewService(deps.ProjectRepo, deps.UserService, deps.FileStore)

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	return deps, cleanup, nil
}

func (d *Dependencies) HealthCheck(ctx context.Context) error {
	return d.MongoDB.Ping(ctx, readpref.Primary())
}

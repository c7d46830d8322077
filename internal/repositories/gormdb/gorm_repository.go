package gormdb

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/career-service/internal/cache"
	"github.com/SAP-F-2025/career-service/internal/repositories"
)

// GormRepository implements repositories.Repository on a gorm connection.
type GormRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	user          repositories.UserRepository
	student       repositories.StudentRepository
	doubt         repositories.DoubtRepository
	doubtMessage  repositories.DoubtMessageRepository
	careerSummary repositories.CareerSummaryRepository
}

type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
	// Cache is shared with the services when set; otherwise one is built on RedisClient.
	Cache *cache.CacheManager
}

func NewGormRepository(config RepositoryConfig) *GormRepository {
	cacheManager := config.Cache
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(config.RedisClient)
	}
	return newGormRepository(config.DB, config.RedisClient, cacheManager)
}

func newGormRepository(db *gorm.DB, redisClient *redis.Client, cacheManager *cache.CacheManager) *GormRepository {
	return &GormRepository{
		db:            db,
		redisClient:   redisClient,
		cacheManager:  cacheManager,
		user:          NewUserGorm(db),
		student:       NewStudentGorm(db, cacheManager),
		doubt:         NewDoubtGorm(db),
		doubtMessage:  NewDoubtMessageGorm(db),
		careerSummary: NewCareerSummaryGorm(db),
	}
}

func (r *GormRepository) User() repositories.UserRepository                   { return r.user }
func (r *GormRepository) Student() repositories.StudentRepository             { return r.student }
func (r *GormRepository) Doubt() repositories.DoubtRepository                 { return r.doubt }
func (r *GormRepository) DoubtMessage() repositories.DoubtMessageRepository   { return r.doubtMessage }
func (r *GormRepository) CareerSummary() repositories.CareerSummaryRepository { return r.careerSummary }

// WithTransaction hands fn a repository whose sub-repositories share one transaction.
func (r *GormRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newGormRepository(tx, r.redisClient, r.cacheManager))
	})
}

// Ping checks the database and, when configured, redis.
func (r *GormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}
	return nil
}

func (r *GormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis: %w", err)
		}
	}
	return nil
}

// RepositoryManager verifies connections before handing out the repository.
type RepositoryManager struct {
	config RepositoryConfig
	repo   *GormRepository
}

func NewRepositoryManager(config RepositoryConfig) *RepositoryManager {
	return &RepositoryManager{config: config}
}

func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if err := rm.config.RedisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
	}

	rm.repo = NewGormRepository(rm.config)
	return nil
}

func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return rm.repo.Ping(ctx)
}

func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}
	return rm.repo.Close()
}

package sqlite

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/wellness-service/internal/cache"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
)

// SQLiteRepository implements the main Repository interface over the single
// database file.
type SQLiteRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	user        repositories.UserRepository
	moodEntry   repositories.MoodEntryRepository
	link        repositories.LinkRepository
	stressAlert repositories.StressAlertRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewSQLiteRepository creates a repository manager with all sub-repositories.
func NewSQLiteRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	return &SQLiteRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
		user:         NewUserSQLite(config.DB, cacheManager),
		moodEntry:    NewMoodEntrySQLite(config.DB),
		link:         NewLinkSQLite(config.DB),
		stressAlert:  NewStressAlertSQLite(config.DB),
	}
}

func (r *SQLiteRepository) User() repositories.UserRepository { return r.user }

func (r *SQLiteRepository) MoodEntry() repositories.MoodEntryRepository { return r.moodEntry }

func (r *SQLiteRepository) Link() repositories.LinkRepository { return r.link }

func (r *SQLiteRepository) StressAlert() repositories.StressAlertRepository { return r.stressAlert }

// WithTransaction runs fn against a repository bound to a single transaction.
func (r *SQLiteRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &SQLiteRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
			user:         NewUserSQLite(tx, r.cacheManager),
			moodEntry:    NewMoodEntrySQLite(tx),
			link:         NewLinkSQLite(tx),
			stressAlert:  NewStressAlertSQLite(tx),
		}
		return fn(txRepo)
	})
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ===== REPOSITORY MANAGER =====

type sqliteRepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a manager for the repository lifecycle.
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &sqliteRepositoryManager{config: config}
}

func (m *sqliteRepositoryManager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database handle is required")
	}
	m.repo = NewSQLiteRepository(m.config)
	return nil
}

func (m *sqliteRepositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *sqliteRepositoryManager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repositories not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *sqliteRepositoryManager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}

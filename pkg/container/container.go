package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore-api/internal/config"
	"bookstore-api/internal/domains/account"
	accountHandler "bookstore-api/internal/domains/account/handler"
	accountModel "bookstore-api/internal/domains/account/model"
	accountRepo "bookstore-api/internal/domains/account/repository"
	accountService "bookstore-api/internal/domains/account/service"
	"bookstore-api/internal/domains/author"
	authorHandler "bookstore-api/internal/domains/author/handler"
	authorModel "bookstore-api/internal/domains/author/model"
	"bookstore-api/internal/domains/book"
	bookHandler "bookstore-api/internal/domains/book/handler"
	bookModel "bookstore-api/internal/domains/book/model"
	infraCache "bookstore-api/internal/infrastructure/cache"
	infradb "bookstore-api/internal/infrastructure/database"
	"bookstore-api/internal/repository"
	"bookstore-api/pkg/cache"
	"bookstore-api/pkg/database"
	"bookstore-api/pkg/jwt"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Lifecycle: Singleton, built once at startup and read-only afterwards
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         database.DB
	Cache      cache.Cache // cache.Nop when Redis is disabled or unreachable
	JWTManager *jwt.Manager
	Hasher     account.PasswordHasher

	redis *infraCache.RedisCache

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	AuthorRepo  author.Repository
	BookRepo    book.Repository
	AccountRepo account.Repository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	AuthService account.Service

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	AuthorHandler  *authorHandler.AuthorHandler
	BookHandler    *bookHandler.BookHandler
	AccountHandler *accountHandler.AccountHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Infrastructure (DB, Cache, JWT) - phụ thuộc Config
// 2. Repositories - phụ thuộc Infrastructure
// 3. Services - phụ thuộc Repositories
// 4. Handlers - phụ thuộc Services
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("[CONTAINER] Initializing DI Container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: INFRASTRUCTURE
	// ========================================
	db, err := OpenDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	c.DB = db

	c.initCache(ctx)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	c.Hasher = account.NewBcryptHasher(cfg.Auth.BcryptCost)

	// ========================================
	// STEP 2-4: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().
		Str("driver", cfg.Database.Driver).
		Bool("cache", c.redis != nil).
		Msg("[CONTAINER] DI Container initialized successfully")
	return c, nil
}

// OpenDatabase connects to the configured driver. Callers own Close.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig) (database.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := infradb.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("[DATABASE] SQLite opened")
		return db, nil

	case config.DriverPostgres:
		db := infradb.NewPostgresDB(cfg.PostgresConfig())

		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := db.Connect(connectCtx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("database health check failed: %w", err)
		}
		return db, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

// initCache: Redis failure không critical - log warning và chạy không cache
func (c *Container) initCache(ctx context.Context) {
	c.Cache = cache.Nop{}
	if !c.Config.Redis.Enabled {
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB, "bookstore")
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[CACHE] Redis connection failed, continuing without cache")
		return
	}
	c.redis = rc
	c.Cache = rc
	log.Info().Str("host", c.Config.Redis.Host).Msg("[CACHE] Redis connected")
}

func (c *Container) initRepositories() {
	withCache := repository.WithCache(c.Cache, c.Config.Redis.TTL)

	c.AuthorRepo = repository.New(
		repository.NewSQLStore(c.DB, authorModel.Table),
		authorModel.Table,
		withCache,
	)
	c.BookRepo = repository.New(
		repository.NewSQLStore(c.DB, bookModel.Table),
		bookModel.Table,
		withCache,
	)
	c.AccountRepo = accountRepo.NewSQLRepository(c.DB, c.Hasher)
}

func (c *Container) initServices() {
	c.AuthService = accountService.NewAuthService(c.AccountRepo, c.Hasher, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorRepo)
	c.BookHandler = bookHandler.NewBookHandler(c.BookRepo, c.AuthorRepo)
	c.AccountHandler = accountHandler.NewAccountHandler(c.AuthService, c.PasswordPolicy())
}

// PasswordPolicy builds the registration bounds from config
func (c *Container) PasswordPolicy() accountModel.PasswordPolicy {
	return accountModel.PasswordPolicy{
		MinLength: c.Config.Auth.PasswordMinLength,
		MaxLength: c.Config.Auth.PasswordMaxLength,
	}
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("[DATABASE] Failed to close")
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("[CACHE] Failed to close Redis")
		}
	}

	log.Info().Msg("[CONTAINER] Cleanup completed")
}

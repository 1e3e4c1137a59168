package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Uguee/accessvc/domain"
	"github.com/Uguee/accessvc/internal/config"
	"github.com/Uguee/accessvc/internal/infrastructure/auth"
	"github.com/Uguee/accessvc/internal/infrastructure/cache"
	"github.com/Uguee/accessvc/internal/infrastructure/database"
	"github.com/Uguee/accessvc/internal/infrastructure/notifications"
	"github.com/Uguee/accessvc/internal/infrastructure/repositories"
	"github.com/Uguee/accessvc/internal/infrastructure/statusapi"
	"github.com/Uguee/accessvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *database.RedisClient
	Casbin      *auth.CasbinService

	// Repositories
	UserRepo    domain.UserRepository
	SessionRepo domain.SessionRepository
	Store       domain.StatusStore
	Writer      domain.StatusWriter
	Cache       domain.SnapshotCache

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	PolicySvc       domain.PolicyService
	Resolver        domain.StatusResolver
	AuthSvc         domain.AuthService
	AccessSvc       domain.AccessService
	OnboardingSvc   domain.OnboardingService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initInfrastructure() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db

	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("failed to initialize casbin: %w", err)
	}
	c.Casbin = cas

	if c.Config.CacheBackend == "redis" {
		c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	}

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.Config.SessionTTL)

	// Status rows come from the co-located record store or from the
	// hosted one, behind the same two interfaces.
	if c.Config.StoreBackend == "remote" {
		client := statusapi.NewClient(
			c.Config.StoreBaseURL,
			c.Config.StoreBearer,
			c.Config.StoreServiceKey,
			c.Config.StoreTimeout,
		)
		c.Store = client
		c.Writer = client
	} else {
		repo := repositories.NewStatusRepository(c.DB)
		c.Store = repo
		c.Writer = repo
	}

	if c.RedisClient != nil {
		c.Cache = cache.NewRedisCache(c.RedisClient.Client, c.Config.CacheTTL)
	} else {
		c.Cache = cache.NewMemoryCache(c.Config.CacheTTL)
	}
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)
	c.PolicySvc = services.NewPolicyService(c.Casbin.E)

	c.Resolver = services.NewResolverService(c.Store, c.Cache)
	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.Resolver,
		c.Config.SessionTTL,
		c.Config.AccessTTL,
	)
	c.AccessSvc = services.NewAccessService(c.UserRepo, c.Resolver, c.PolicySvc)
	c.OnboardingSvc = services.NewOnboardingService(
		c.UserRepo,
		c.Store,
		c.Writer,
		c.Resolver,
		c.NotificationSvc,
	)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}

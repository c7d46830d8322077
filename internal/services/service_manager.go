package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/career-service/internal/ai"
	"github.com/SAP-F-2025/career-service/internal/cache"
	"github.com/SAP-F-2025/career-service/internal/events"
	"github.com/SAP-F-2025/career-service/internal/repositories"
	"github.com/SAP-F-2025/career-service/internal/utils"
	"github.com/SAP-F-2025/career-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	Career ServiceConfig

	DefaultTimeout time.Duration
}

type ServiceConfig struct {
	CacheTTL time.Duration
	// HistoryLimit caps listed career summaries; 0 lists all of them.
	HistoryLimit int
}

// Dependencies are the collaborators shared by every service.
type Dependencies struct {
	Repo      repositories.Repository
	AI        ai.Client
	Cache     *cache.CacheManager
	Publisher events.EventPublisher
	Tokens    *utils.TokenIssuer
	Logger    *slog.Logger
	Validator *validator.Validator
}

type serviceManager struct {
	deps   Dependencies
	config ServiceManagerConfig

	authService    AuthService
	profileService ProfileService
	careerService  CareerService
	doubtService   DoubtService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(deps Dependencies, config ServiceManagerConfig) ServiceManager {
	if deps.Publisher == nil {
		deps.Publisher = events.NoopEventPublisher{}
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewCacheManager(nil)
	}
	return &serviceManager{
		deps:   deps,
		config: config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(deps Dependencies) ServiceManager {
	return NewServiceManager(deps, DefaultServiceManagerConfig())
}

func DefaultServiceManagerConfig() ServiceManagerConfig {
	return ServiceManagerConfig{
		Career: ServiceConfig{
			CacheTTL:     time.Hour,
			HistoryLimit: 20,
		},
		DefaultTimeout: 30 * time.Second,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.deps.Repo == nil {
		return fmt.Errorf("repository is required")
	}
	if sm.deps.AI == nil {
		return fmt.Errorf("ai client is required")
	}

	logger := sm.deps.Logger
	logger.Info("Initializing service manager")

	sm.authService = NewAuthService(sm.deps.Repo, sm.deps.Tokens, logger, sm.deps.Validator)
	sm.profileService = NewProfileService(sm.deps.Repo, sm.deps.AI, sm.deps.Publisher, logger, sm.deps.Validator)
	sm.careerService = NewCareerService(sm.deps.Repo, sm.deps.AI, sm.deps.Cache, sm.deps.Publisher, logger, sm.config.Career)
	sm.doubtService = NewDoubtService(sm.deps.Repo, sm.deps.AI, sm.deps.Publisher, logger, sm.deps.Validator)

	sm.initialized = true
	logger.Info("Service manager initialized successfully")
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.authService
}

func (sm *serviceManager) Profile() ProfileService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.profileService
}

func (sm *serviceManager) Career() CareerService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.careerService
}

func (sm *serviceManager) Doubt() DoubtService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.doubtService
}

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if sm.config.DefaultTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sm.config.DefaultTimeout)
		defer cancel()
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	return nil
}

// Shutdown closes the event publisher. The repository is owned by its manager.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")
	if err := sm.deps.Publisher.Close(); err != nil {
		sm.deps.Logger.Error("Failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")
	return nil
}

package sapkit

import (
	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/sapkit/config"
	"github.com/techmaster-vietnam/sapkit/core"
	"github.com/techmaster-vietnam/sapkit/database"
	"github.com/techmaster-vietnam/sapkit/handlers"
	"github.com/techmaster-vietnam/sapkit/middleware"
	"github.com/techmaster-vietnam/sapkit/models"
	"github.com/techmaster-vietnam/sapkit/odata"
	"github.com/techmaster-vietnam/sapkit/policy"
	"github.com/techmaster-vietnam/sapkit/repository"
	"github.com/techmaster-vietnam/sapkit/router"
	"github.com/techmaster-vietnam/sapkit/service"
	"gorm.io/gorm"
)

// Config là alias cho config.Config để tránh conflict với package config khác
type Config = config.Config

// Models và types chính - export cho ứng dụng bên ngoài
type (
	User           = models.User
	RolePolicy     = policy.RolePolicy
	PolicyTable    = policy.Table
	Provider       = policy.Provider
	ServiceBinding = odata.ServiceBinding
	Registry       = odata.Registry
)

// SapKit là main struct chứa tất cả dependencies của kit
type SapKit struct {
	DB     *gorm.DB
	Config *Config

	// Authorization engine
	PolicyTable *policy.Table

	// OData gateway
	Registry *odata.Registry
	Fetcher  *odata.Fetcher

	// Repositories
	UserRepo          *repository.UserRepository
	RefreshTokenRepo  *repository.RefreshTokenRepository
	PasswordResetRepo *repository.PasswordResetTokenRepository

	// Services
	AuthService    *service.AuthService
	GatewayService *service.GatewayService

	// Middleware
	AuthMiddleware *middleware.AuthMiddleware

	// Handlers
	AuthHandler        *handlers.AuthHandler
	PermissionsHandler *handlers.PermissionsHandler
	GatewayHandler     *handlers.GatewayHandler
}

// SapKitBuilder là builder để tạo SapKit
type SapKitBuilder struct {
	app                *fiber.App
	db                 *gorm.DB
	config             *Config
	policyTable        *policy.Table
	registry           *odata.Registry
	notificationSender core.NotificationSender
}

// New tạo mới SapKitBuilder
func New(app *fiber.App, db *gorm.DB) *SapKitBuilder {
	return &SapKitBuilder{app: app, db: db}
}

// WithConfig set config cho builder
func (b *SapKitBuilder) WithConfig(cfg *Config) *SapKitBuilder {
	b.config = cfg
	return b
}

// WithPolicyTable set policy table tùy biến (mặc định policy.DefaultTable)
func (b *SapKitBuilder) WithPolicyTable(table *policy.Table) *SapKitBuilder {
	b.policyTable = table
	return b
}

// WithRegistry set service registry tùy biến (mặc định odata.DefaultRegistry)
func (b *SapKitBuilder) WithRegistry(registry *odata.Registry) *SapKitBuilder {
	b.registry = registry
	return b
}

// WithNotificationSender set sender để gửi password reset token (email/SMS)
func (b *SapKitBuilder) WithNotificationSender(sender core.NotificationSender) *SapKitBuilder {
	b.notificationSender = sender
	return b
}

// Initialize khởi tạo SapKit với tất cả dependencies và đăng ký routes
func (b *SapKitBuilder) Initialize() (*SapKit, error) {
	if b.config == nil {
		b.config = config.LoadConfig()
	}
	if b.policyTable == nil {
		b.policyTable = policy.DefaultTable()
	}
	if b.registry == nil {
		b.registry = odata.DefaultRegistry()
	}

	if err := database.Migrate(b.db); err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(b.db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(b.db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(b.db)
	fetcher := odata.NewFetcher(b.config.SAP.Timeout)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, passwordResetRepo, b.config)
	if b.notificationSender != nil {
		authService.SetNotificationSender(b.notificationSender)
	}
	gatewayService := service.NewGatewayService(b.registry, fetcher, b.config)

	authMiddleware := middleware.NewAuthMiddleware(b.config, userRepo)

	authHandler := handlers.NewAuthHandler(authService, b.policyTable, b.config)
	permissionsHandler := handlers.NewPermissionsHandler(b.policyTable, b.config.DefaultRole)
	gatewayHandler := handlers.NewGatewayHandler(gatewayService)

	router.SetupRoutes(b.app, authMiddleware, authHandler, permissionsHandler, gatewayHandler)

	return &SapKit{
		DB:                 b.db,
		Config:             b.config,
		PolicyTable:        b.policyTable,
		Registry:           b.registry,
		Fetcher:            fetcher,
		UserRepo:           userRepo,
		RefreshTokenRepo:   refreshTokenRepo,
		PasswordResetRepo:  passwordResetRepo,
		AuthService:        authService,
		GatewayService:     gatewayService,
		AuthMiddleware:     authMiddleware,
		AuthHandler:        authHandler,
		PermissionsHandler: permissionsHandler,
		GatewayHandler:     gatewayHandler,
	}, nil
}

// LoadConfig loads configuration from environment variables
// Wrapper function để tránh conflict với package config của ứng dụng chính
func LoadConfig() *Config {
	return config.LoadConfig()
}

// DefaultPolicyTable trả về policy table mặc định của dashboard
func DefaultPolicyTable() *policy.Table {
	return policy.DefaultTable()
}

// DefaultRegistry trả về service registry mặc định của gateway
func DefaultRegistry() *odata.Registry {
	return odata.DefaultRegistry()
}

// GetUserFromContext gets user from fiber context
func GetUserFromContext(c *fiber.Ctx) (*models.User, bool) {
	return middleware.GetUserFromContext(c)
}

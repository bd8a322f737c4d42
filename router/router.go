package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/sapkit/handlers"
	"github.com/techmaster-vietnam/sapkit/middleware"
)

// SetupRoutes đăng ký toàn bộ routes của kit lên fiber app.
// Gateway routes dùng Authenticate (optional) thay vì RequireAuth vì
// gateway handlers tự trả 401 theo envelope contract của chúng.
func SetupRoutes(
	app *fiber.App,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handlers.AuthHandler,
	permissionsHandler *handlers.PermissionsHandler,
	gatewayHandler *handlers.GatewayHandler,
) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/change-password", authMiddleware.RequireAuth(), authHandler.ChangePassword)
	auth.Get("/me", authMiddleware.RequireAuth(), authHandler.Me)

	api.Get("/permissions", authMiddleware.RequireAuth(), permissionsHandler.Get)

	sap := api.Group("/sap", authMiddleware.Authenticate())
	sap.Post("/module", gatewayHandler.FetchModule)
	sap.Post("/query", gatewayHandler.FetchRaw)
}

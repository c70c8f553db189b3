package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autocars-api/internal/application/auth"
	"github.com/jhoicas/autocars-api/internal/application/backup"
	"github.com/jhoicas/autocars-api/internal/application/ports"
	syncapp "github.com/jhoicas/autocars-api/internal/application/sync"
	"github.com/jhoicas/autocars-api/internal/application/usecase"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Sessions      *syncapp.Manager
	BackupUC      *backup.UseCase
	LicenseUC     *usecase.LicenseUseCase
	AIUC          *usecase.AIUseCase
	Users         ports.CredentialCache
	Tokens        ports.TokenStore
	DropboxAppKey string
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/session", authHandler.Session)

	// Vehículos
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.Sessions)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Delete("/:id", vehicleHandler.Delete)
	vehicles.Get("/:id/cost", vehicleHandler.Cost)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.Sessions)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Ventas
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Sessions)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Delete("/:id", saleHandler.Delete)

	// Gastos
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.Sessions)
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/", expenseHandler.Create)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Perfil de la tienda
	profileHandler := NewProfileHandler(deps.Sessions)
	protected.Get("/profile", profileHandler.Get)
	protected.Put("/profile", profileHandler.Update)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.Sessions)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/monthly", dashboardHandler.Monthly)

	// Respaldos
	backupGroup := protected.Group("/backup")
	backupHandler := NewBackupHandler(deps.BackupUC, deps.Users, deps.Tokens, deps.DropboxAppKey)
	backupGroup.Get("/export", backupHandler.Export)
	backupGroup.Post("/import", backupHandler.Import)
	backupGroup.Post("/cloud/export", backupHandler.ExportToCloud)
	backupGroup.Post("/cloud/import", backupHandler.ImportFromCloud)
	backupGroup.Get("/cloud/authorize", backupHandler.AuthorizeURL)
	backupGroup.Post("/cloud/token", backupHandler.SaveCloudToken)
	backupGroup.Delete("/cloud/token", backupHandler.ClearCloudToken)

	// Asistente IA
	aiHandler := NewAIHandler(deps.AIUC)
	protected.Post("/ai/vehicle-description", aiHandler.Describe)

	// Administración (solo admin)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	licenseHandler := NewLicenseHandler(deps.LicenseUC)
	admin.Post("/licenses", licenseHandler.Generate)
	admin.Get("/licenses", licenseHandler.List)
	admin.Delete("/licenses/:key", licenseHandler.Revoke)
}

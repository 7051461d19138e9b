package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/deeptec/tenders-api/internal/application/analytics"
	"github.com/deeptec/tenders-api/internal/application/auth"
	"github.com/deeptec/tenders-api/internal/application/project"
	"github.com/deeptec/tenders-api/internal/application/usecase"
	"github.com/deeptec/tenders-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProjectUC   *project.UseCase
	SheetUC     *project.SheetUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Users       userLoader
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.Users)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Auth (protegido)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Post("/refresh", requireAuth, authHandler.Refresh)
	authGroup.Post("/change-password", requireAuth, authHandler.ChangePassword)

	// Projects (protegido; los permisos por sección se resuelven en el caso de uso)
	projects := api.Group("/projects", requireAuth)
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.SheetUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	projects.Get("/stats", dashboardHandler.Stats)
	projects.Get("/", projectHandler.List)
	projects.Post("/", projectHandler.Create)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Get("/:id/pdf", projectHandler.DownloadPDF)
	projects.Put("/:id/part1", projectHandler.EditPart1)
	projects.Put("/:id/part2", projectHandler.EditPart2)
	projects.Put("/:id/part3", projectHandler.EditPart3)
	projects.Put("/:id/invoice-payment", projectHandler.EditInvoicePayment)
	projects.Put("/:id/sections/:section", projectHandler.EditSection)
	projects.Delete("/:id", projectHandler.Delete)

	// Admin
	admin := api.Group("/admin", requireAuth, RequireRole(string(entity.RoleAdmin)))
	adminHandler := NewAdminHandler(deps.UserUC)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id/permissions", adminHandler.SetPermissions)
	admin.Delete("/users/:id/permissions", adminHandler.ClearPermissions)
}

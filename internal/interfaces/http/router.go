package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almazgeobur/etp-api/internal/application/auth"
	"github.com/almazgeobur/etp-api/internal/application/usecase"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

// RouterDeps carries the use cases wired into the route tree.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	TenderUC      *usecase.TenderUseCase
	ProposalUC    *usecase.ProposalUseCase
	ApplicationUC *usecase.ApplicationUseCase
	DashboardUC   *usecase.DashboardUseCase
	AnalyticsUC   *usecase.AnalyticsUseCase
	ExportUC      *usecase.ExportUseCase
	ImportUC      *usecase.ImportUseCase
	FileUC        *usecase.FileUseCase
	JWTSecret     string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// auth (public except /me)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	tenderManagers := RequireRole(entity.RoleAdmin, entity.RoleContractManager)
	staff := RequireRole(entity.RoleAdmin, entity.RoleContractManager, entity.RoleManager)
	suppliers := RequireRole(entity.RoleSupplier)
	admins := RequireRole(entity.RoleAdmin)

	// tenders
	tenders := protected.Group("/tenders")
	tenderHandler := NewTenderHandler(deps.TenderUC)
	applicationHandler := NewApplicationHandler(deps.ApplicationUC)
	tenders.Get("/", tenderHandler.List)
	tenders.Get("/available", suppliers, tenderHandler.ListForSupplier)
	tenders.Post("/", tenderManagers, tenderHandler.Create)
	tenders.Get("/:id", tenderHandler.GetByID)
	tenders.Put("/:id", tenderManagers, tenderHandler.Update)
	tenders.Post("/:id/publish", tenderManagers, tenderHandler.Publish)
	tenders.Get("/:id/products", tenderHandler.ListProducts)
	tenders.Get("/:id/applications", staff, applicationHandler.ListByTender)

	// proposals
	proposals := protected.Group("/proposals")
	proposalHandler := NewProposalHandler(deps.ProposalUC)
	proposals.Post("/", suppliers, proposalHandler.Create)
	proposals.Get("/", proposalHandler.List)
	proposals.Get("/:id", proposalHandler.GetByID)
	proposals.Put("/:id", suppliers, proposalHandler.Update)
	proposals.Post("/:id/submit", suppliers, proposalHandler.Submit)
	proposals.Put("/:id/status", staff, proposalHandler.UpdateStatus)

	// applications
	applications := protected.Group("/applications")
	applications.Post("/", suppliers, applicationHandler.Create)
	applications.Get("/my", suppliers, applicationHandler.ListMy)
	applications.Get("/:id", applicationHandler.GetByID)
	applications.Put("/:id", tenderManagers, applicationHandler.Update)

	// users (admin panel; profile routes are owner-checked in the use case)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", admins, userHandler.List)
	users.Post("/", admins, userHandler.Create)
	users.Get("/:id/supplier-profile", userHandler.GetSupplierProfile)
	users.Put("/:id/supplier-profile", userHandler.UpsertSupplierProfile)
	users.Get("/:id", admins, userHandler.GetByID)
	users.Put("/:id", admins, userHandler.Update)
	users.Delete("/:id", admins, userHandler.Delete)
	users.Post("/:id/reset-password", admins, userHandler.ResetPassword)

	// dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/recent-activity", dashboardHandler.GetRecentActivity)

	// analytics (staff)
	analytics := protected.Group("/analytics", staff)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analytics.Get("/tenders-summary", analyticsHandler.TendersSummary)
	analytics.Get("/supplier-performance", analyticsHandler.SupplierPerformance)
	analytics.Get("/tender/:id/proposals", analyticsHandler.TenderProposals)
	analytics.Get("/product-price-analysis", analyticsHandler.ProductPriceAnalysis)
	analytics.Get("/supplier/:id/statistics", analyticsHandler.SupplierStatistics)

	// export / import (tender managers)
	export := protected.Group("/export", tenderManagers)
	exportHandler := NewExportHandler(deps.ExportUC)
	export.Get("/tenders", exportHandler.ExportTenders)
	export.Get("/tender/:id", exportHandler.ExportTender)
	export.Get("/tender/:id/applications", exportHandler.ExportApplications)
	export.Get("/tender/:id/pdf", exportHandler.ExportTenderPDF)

	importGroup := protected.Group("/import", tenderManagers)
	importHandler := NewImportHandler(deps.ImportUC)
	importGroup.Post("/tender", importHandler.ImportTender)
	importGroup.Post("/tenders", importHandler.ImportTenders)
	importGroup.Post("/tenders-csv", importHandler.ImportTendersCSV)

	// files
	files := protected.Group("/files")
	fileHandler := NewFileHandler(deps.FileUC)
	files.Post("/upload", fileHandler.Upload)
	files.Get("/", RequireRole(entity.RoleAdmin, entity.RoleManager), fileHandler.List)
	files.Get("/:id/download", fileHandler.Download)
	files.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), fileHandler.Delete)
}

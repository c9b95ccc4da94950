package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anbar/anbar-api/internal/application/analytics"
	"github.com/anbar/anbar-api/internal/application/auth"
	"github.com/anbar/anbar-api/internal/application/billing"
	"github.com/anbar/anbar-api/internal/application/catalog"
	"github.com/anbar/anbar-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CategoryUC    *usecase.CategoryUseCase
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	DiscountUC    *usecase.DiscountUseCase
	ActivityLogUC *usecase.ActivityLogUseCase
	AdminUC       *usecase.AdminUseCase
	Browser       *catalog.BrowserUseCase
	Mover         *catalog.MoveUseCase
	CustomerUC    *billing.CustomerUseCase
	SalesUC       *billing.InvoiceUseCase
	PurchasesUC   *billing.InvoiceUseCase
	PDFUC         *billing.PDFUseCase
	DashboardUC   *analytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Las lecturas del catálogo son públicas;
// toda escritura exige Bearer token.
func Router(app *fiber.App, deps RouterDeps) {
	v := NewValidator()
	authed := AuthMiddleware(deps.JWTSecret)
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, v)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	catalogHandler := NewCatalogHandler(deps.Browser, deps.Mover, v)
	cat := api.Group("/catalog")
	cat.Get("/tree", catalogHandler.Tree)
	cat.Get("/grid", catalogHandler.Grid)
	cat.Get("/breadcrumbs/:id", catalogHandler.Breadcrumbs)
	cat.Get("/move-targets", catalogHandler.MoveTargets)
	cat.Post("/navigate", catalogHandler.Navigate)
	cat.Post("/move", authed, catalogHandler.Move)

	categoryHandler := NewCategoryHandler(deps.CategoryUC, v)
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", authed, categoryHandler.Create)
	categories.Post("/move-products", authed, categoryHandler.MoveProducts)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", authed, categoryHandler.Update)
	categories.Delete("/:id", authed, categoryHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC, deps.DiscountUC, v)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", authed, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/discounts", productHandler.Discounts)
	products.Put("/:id", authed, productHandler.Update)
	products.Delete("/:id", authed, productHandler.Delete)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, v)
	warehouses := api.Group("/warehouses")
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Put("/:id", authed, warehouseHandler.Update)

	customerHandler := NewCustomerHandler(deps.CustomerUC, v)
	customers := api.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", authed, customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", authed, customerHandler.Update)
	customers.Delete("/:id", authed, customerHandler.Delete)

	registerInvoices(api.Group("/orders"), NewInvoiceHandler(deps.SalesUC, v), authed)
	registerInvoices(api.Group("/purchase-invoices"), NewInvoiceHandler(deps.PurchasesUC, v), authed)
	pdfHandler := NewInvoicePDFHandler(deps.PDFUC)
	api.Get("/invoices/:kind/:id/pdf", pdfHandler.Download)

	discountHandler := NewDiscountHandler(deps.DiscountUC, v)
	discounts := api.Group("/discounts")
	discounts.Get("/", discountHandler.List)
	discounts.Post("/", authed, discountHandler.Create)
	discounts.Get("/:id", discountHandler.GetByID)
	discounts.Put("/:id", authed, discountHandler.Update)
	discounts.Delete("/:id", authed, discountHandler.Delete)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", authed, dashboardHandler.GetSummary)

	logHandler := NewActivityLogHandler(deps.ActivityLogUC, v)
	logs := api.Group("/logs", authed)
	logs.Post("/", logHandler.Ingest)
	logs.Get("/", logHandler.ListOwn)
	logs.Delete("/", logHandler.Clear)

	adminHandler := NewAdminHandler(deps.AdminUC, v)
	admin := api.Group("/admin", authed, RequireAdmin())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/logs", logHandler.ListAll)
}

func registerInvoices(r fiber.Router, h *InvoiceHandler, authed fiber.Handler) {
	r.Get("/", h.List)
	r.Post("/", authed, h.Create)
	r.Get("/:id", h.GetByID)
	r.Put("/:id", authed, h.Update)
	r.Patch("/:id/status", authed, h.SetStatus)
	r.Delete("/:id", authed, h.Delete)
}

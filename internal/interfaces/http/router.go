package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/ingredient"
	"github.com/jhoicas/Restaurante-api/internal/application/order"
	"github.com/jhoicas/Restaurante-api/internal/application/recipe"
	"github.com/jhoicas/Restaurante-api/internal/application/stock"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	ProductUC    *usecase.ProductUseCase
	IngredientUC *ingredient.UseCase
	RecipeUC     *recipe.UseCase
	OrderUC      *order.UseCase
	MovementUC   *stock.MovementUseCase
	ReconcileUC  *stock.ReconcileUseCase
	ReportUC     *stock.ReportUseCase
	AuthUC       *auth.UseCase
	CompanyRepo  repository.CompanyRepository
	PDFRenderer  ReportRenderer
	XMLRenderer  ReportRenderer
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solo admin y staff operan el inventario; los waiter quedan fuera.
	staffOnly := RequireRole(entity.RoleAdmin, entity.RoleStaff)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	products.Post("/", staffOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", staffOnly, productHandler.Update)
	products.Get("/:id/recipe", recipeHandler.IngredientsForProduct)

	// Ingredients (protegido, solo personal de inventario)
	ingredients := protected.Group("/ingredients", staffOnly)
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	stockHandler := NewStockHandler(deps.MovementUC, deps.ReconcileUC, deps.ReportUC,
		deps.CompanyRepo, deps.PDFRenderer, deps.XMLRenderer)
	ingredients.Post("/", ingredientHandler.Create)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/expiring", ingredientHandler.ListExpiringSoon)
	ingredients.Get("/:id", ingredientHandler.GetByID)
	ingredients.Put("/:id", ingredientHandler.Update)
	ingredients.Delete("/:id", RequireRole(entity.RoleAdmin), ingredientHandler.Delete)
	ingredients.Get("/:id/products", recipeHandler.ProductsForIngredient)
	ingredients.Post("/:id/entries", stockHandler.RecordEntry)
	ingredients.Put("/:id/adjust", stockHandler.Adjust)

	// Recipes (protegido, solo personal de inventario)
	recipes := protected.Group("/recipes", staffOnly)
	recipes.Post("/", recipeHandler.Link)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Unlink)

	// Stock (protegido)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/movements", staffOnly, stockHandler.ApplyMovement)
	stockGroup.Get("/history", staffOnly, stockHandler.History)
	stockGroup.Get("/report", staffOnly, stockHandler.Report)
	stockGroup.Post("/check-availability", stockHandler.CheckAvailability)

	// Orders (protegido; los waiter también crean y consultan)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", orderHandler.UpdateStatus)
}

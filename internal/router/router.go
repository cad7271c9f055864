package router

import (
	"net/http"

	"tillpoint/internal/handler"
	"tillpoint/internal/middleware"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Category   *handler.CategoryHandler
	Product    *handler.ProductHandler
	Ingredient *handler.IngredientHandler
	Order      *handler.OrderHandler
	Purchase   *handler.PurchaseHandler
	Report     *handler.ReportHandler
	Health     *handler.HealthHandler
}

// New builds the HTTP routing table. Auth and health endpoints are public;
// everything else under /api/v1/ requires a bearer token.
func New(h Handlers, auth *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)

	api := http.NewServeMux()

	api.HandleFunc("GET /api/v1/categories", h.Category.GetAllCategories)
	api.HandleFunc("POST /api/v1/categories", h.Category.CreateCategory)
	api.HandleFunc("GET /api/v1/categories/{id}", h.Category.GetCategoryByID)
	api.HandleFunc("PUT /api/v1/categories/{id}", h.Category.UpdateCategory)
	api.HandleFunc("DELETE /api/v1/categories/{id}", h.Category.DeleteCategory)

	api.HandleFunc("GET /api/v1/products", h.Product.GetAllProducts)
	api.HandleFunc("POST /api/v1/products", h.Product.CreateProduct)
	api.HandleFunc("GET /api/v1/products/{id}", h.Product.GetProductByID)
	api.HandleFunc("PUT /api/v1/products/{id}", h.Product.UpdateProduct)
	api.HandleFunc("PUT /api/v1/products/{id}/stock", h.Product.SetProductStock)
	api.HandleFunc("DELETE /api/v1/products/{id}", h.Product.DeleteProduct)

	api.HandleFunc("GET /api/v1/ingredients", h.Ingredient.GetAllIngredients)
	api.HandleFunc("POST /api/v1/ingredients", h.Ingredient.CreateIngredient)
	api.HandleFunc("GET /api/v1/ingredients/{id}", h.Ingredient.GetIngredientByID)
	api.HandleFunc("PUT /api/v1/ingredients/{id}", h.Ingredient.UpdateIngredient)
	api.HandleFunc("PUT /api/v1/ingredients/{id}/stock", h.Ingredient.SetIngredientStock)
	api.HandleFunc("DELETE /api/v1/ingredients/{id}", h.Ingredient.DeleteIngredient)

	api.HandleFunc("POST /api/v1/orders", h.Order.CreateOrder)
	api.HandleFunc("GET /api/v1/orders", h.Order.GetAllOrders)
	api.HandleFunc("GET /api/v1/orders/today", h.Order.GetTodayOrders)
	api.HandleFunc("GET /api/v1/orders/{id}", h.Order.GetOrderByID)
	api.HandleFunc("DELETE /api/v1/orders/{id}", h.Order.CancelOrder)

	api.HandleFunc("POST /api/v1/purchases", h.Purchase.RecordPurchases)
	api.HandleFunc("GET /api/v1/purchases", h.Purchase.GetAllPurchases)
	api.HandleFunc("GET /api/v1/purchases/{id}", h.Purchase.GetPurchaseByID)
	api.HandleFunc("DELETE /api/v1/purchases/{id}", h.Purchase.DeletePurchase)

	api.HandleFunc("GET /api/v1/reports/summary", h.Report.GetSalesSummary)
	api.HandleFunc("GET /api/v1/reports/popular", h.Report.GetPopularProducts)

	mux.Handle("/api/v1/", auth.RequireAuth(api))

	return mux
}

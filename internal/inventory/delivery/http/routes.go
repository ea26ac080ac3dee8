package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tair/cafe-inventory/internal/inventory/access"
)

const idPath = "/{id:[0-9]+}"

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/login", h.throttle("login", h.Login)).Methods("POST")
	api.HandleFunc("/register", h.throttle("register", h.Register)).Methods("POST")

	// Everything else needs a session
	authed := api.NewRoute().Subrouter()
	authed.Use(h.Authenticate)

	authed.HandleFunc("/logout", h.Logout).Methods("POST")
	authed.HandleFunc("/user", h.CurrentUser).Methods("GET")

	catalog := func(f http.HandlerFunc) http.HandlerFunc { return RequireAction(access.CatalogWrite, f) }
	stock := func(f http.HandlerFunc) http.HandlerFunc { return RequireAction(access.StockWrite, f) }
	remove := func(f http.HandlerFunc) http.HandlerFunc { return RequireAction(access.InventoryDelete, f) }
	staffRead := func(f http.HandlerFunc) http.HandlerFunc { return RequireAction(access.StaffRead, f) }
	staffWrite := func(f http.HandlerFunc) http.HandlerFunc { return RequireAction(access.StaffWrite, f) }

	authed.HandleFunc("/products", h.ListProducts).Methods("GET")
	authed.HandleFunc("/products", catalog(h.CreateProduct)).Methods("POST")
	authed.HandleFunc("/products"+idPath, h.GetProduct).Methods("GET")
	authed.HandleFunc("/products"+idPath, catalog(h.UpdateProduct)).Methods("PUT", "PATCH")
	authed.HandleFunc("/products"+idPath, remove(h.DeleteProduct)).Methods("DELETE")

	authed.HandleFunc("/ingredients", h.ListIngredients).Methods("GET")
	authed.HandleFunc("/ingredients/low-stock", h.LowStockIngredients).Methods("GET")
	authed.HandleFunc("/ingredients", stock(h.CreateIngredient)).Methods("POST")
	authed.HandleFunc("/ingredients"+idPath, h.GetIngredient).Methods("GET")
	authed.HandleFunc("/ingredients"+idPath, stock(h.UpdateIngredient)).Methods("PUT", "PATCH")
	authed.HandleFunc("/ingredients"+idPath, remove(h.DeleteIngredient)).Methods("DELETE")

	authed.HandleFunc("/supplies", h.ListSupplies).Methods("GET")
	authed.HandleFunc("/supplies", stock(h.CreateSupply)).Methods("POST")
	authed.HandleFunc("/supplies"+idPath, h.GetSupply).Methods("GET")
	authed.HandleFunc("/supplies"+idPath, stock(h.UpdateSupply)).Methods("PUT", "PATCH")
	authed.HandleFunc("/supplies"+idPath, remove(h.DeleteSupply)).Methods("DELETE")

	authed.HandleFunc("/merchandise", h.ListMerchandise).Methods("GET")
	authed.HandleFunc("/merchandise", stock(h.CreateMerchandise)).Methods("POST")
	authed.HandleFunc("/merchandise"+idPath, h.GetMerchandise).Methods("GET")
	authed.HandleFunc("/merchandise"+idPath, stock(h.UpdateMerchandise)).Methods("PUT", "PATCH")
	authed.HandleFunc("/merchandise"+idPath, remove(h.DeleteMerchandise)).Methods("DELETE")

	authed.HandleFunc("/recipes", h.ListRecipes).Methods("GET")
	authed.HandleFunc("/recipes", catalog(h.CreateRecipe)).Methods("POST")
	authed.HandleFunc("/recipes"+idPath, h.GetRecipe).Methods("GET")
	authed.HandleFunc("/recipes"+idPath, catalog(h.UpdateRecipe)).Methods("PUT", "PATCH")
	authed.HandleFunc("/recipes"+idPath, remove(h.DeleteRecipe)).Methods("DELETE")

	authed.HandleFunc("/recipe-ingredients", h.ListRecipeIngredients).Methods("GET")
	authed.HandleFunc("/recipe-ingredients", catalog(h.CreateRecipeIngredient)).Methods("POST")
	authed.HandleFunc("/recipe-ingredients"+idPath, h.GetRecipeIngredient).Methods("GET")
	authed.HandleFunc("/recipe-ingredients"+idPath, catalog(h.UpdateRecipeIngredient)).Methods("PUT", "PATCH")
	authed.HandleFunc("/recipe-ingredients"+idPath, remove(h.DeleteRecipeIngredient)).Methods("DELETE")

	authed.HandleFunc("/recipe-supplies", h.ListRecipeSupplies).Methods("GET")
	authed.HandleFunc("/recipe-supplies", catalog(h.CreateRecipeSupply)).Methods("POST")
	authed.HandleFunc("/recipe-supplies"+idPath, h.GetRecipeSupply).Methods("GET")
	authed.HandleFunc("/recipe-supplies"+idPath, catalog(h.UpdateRecipeSupply)).Methods("PUT", "PATCH")
	authed.HandleFunc("/recipe-supplies"+idPath, remove(h.DeleteRecipeSupply)).Methods("DELETE")

	authed.HandleFunc("/users", staffRead(h.ListUsers)).Methods("GET")
	authed.HandleFunc("/users", staffWrite(h.CreateUser)).Methods("POST")
	authed.HandleFunc("/users"+idPath, staffRead(h.GetUser)).Methods("GET")
	authed.HandleFunc("/users"+idPath, staffWrite(h.UpdateUser)).Methods("PUT", "PATCH")
	authed.HandleFunc("/users"+idPath+"/archive", staffWrite(h.ArchiveUser)).Methods("POST")
	authed.HandleFunc("/users"+idPath+"/restore", staffWrite(h.RestoreUser)).Methods("POST")

	authed.HandleFunc("/activity-logs", h.ActivityLogs).Methods("GET")
	authed.HandleFunc("/activity-logs/recent", h.RecentActivity).Methods("GET")

	authed.HandleFunc("/inventory/metrics", h.InventoryMetrics).Methods("GET")
	authed.HandleFunc("/inventory/low-stock", h.LowStockItems).Methods("GET")
	authed.HandleFunc("/inventory/categories", h.CategoryBreakdown).Methods("GET")
	authed.HandleFunc("/categories", h.ProductCategories).Methods("GET")
}

// RegisterOpsRoutes registers the health check and the Prometheus endpoint
func (h *Handler) RegisterOpsRoutes(router *mux.Router, gatherer prometheus.Gatherer) {
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
}

// NewRouter assembles the full HTTP handler: ops routes, API routes,
// middlewares, request metrics and CORS.
func NewRouter(h *Handler, config *MiddlewareConfig, metrics *HTTPMetrics, gatherer prometheus.Gatherer) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Route not found")
	})

	RegisterMiddlewares(router, config)
	router.Use(metrics.Middleware)

	h.RegisterOpsRoutes(router, gatherer)
	h.RegisterRoutes(router)

	return SetupCORS(config)(router)
}

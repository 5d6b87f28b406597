package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nayanishant/vegetable-wholesaler/internal/guard"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Logger         *zap.Logger
	Sessions       guard.SessionReader
	Routes         guard.Table
	RequestTimeout time.Duration

	Products  *ProductHandler
	Cart      *CartHandler
	Checkout  *CheckoutHandler
	Orders    *OrdersHandler
	Profile   *ProfileHandler
	Inventory *AdminInventoryHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(LimitBody)
	r.Use(guard.Middleware(cfg.Sessions, cfg.Routes, cfg.Logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", cfg.Products.ListProducts)
		r.Get("/inventory", cfg.Products.ListInventory)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.Delete("/", cfg.Cart.ClearCart)
			r.Get("/count", cfg.Cart.Count)
			r.Post("/items", cfg.Cart.AddItem)
			r.Patch("/items/{product_id}", cfg.Cart.AdjustQuantity)
			r.Delete("/items/{product_id}", cfg.Cart.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", cfg.Checkout.Summary)
			r.Post("/", cfg.Checkout.PlaceOrder)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", cfg.Orders.ListOrders)
			r.Post("/", cfg.Orders.CreateOrder)
			r.Get("/{order_id}", cfg.Orders.GetOrder)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", cfg.Profile.GetProfile)
			r.Patch("/", cfg.Profile.UpdateProfile)
			r.Delete("/", cfg.Profile.DeleteAddress)
		})

		r.Route("/admin/inventory", func(r chi.Router) {
			r.Get("/", cfg.Inventory.List)
			r.Post("/", cfg.Inventory.Create)
			r.Patch("/{id}", cfg.Inventory.Update)
			r.Delete("/{id}", cfg.Inventory.Delete)
		})
	})

	return r
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter constructs the router with all back-office endpoints
// registered.
func NewRouter(h *HandlerProvider) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/login", h.LoginHandler)
	r.Post("/logout", h.LogoutHandler)

	r.Get("/dashboard", h.DashboardHandler)
	r.Post("/dashboard/refresh", h.RefreshHandler)
	r.Post("/dashboard/reconcile", h.ReconcileHandler)

	r.Get("/categories", h.ListCategoriesHandler)
	r.Post("/categories", h.SaveCategoryHandler)
	r.Patch("/categories/{id}", h.SaveCategoryHandler)
	r.Delete("/categories/{id}", h.DeleteCategoryHandler)

	r.Get("/games", h.ListGamesHandler)
	r.Post("/games", h.SaveGameHandler)
	r.Patch("/games/{id}", h.SaveGameHandler)
	r.Delete("/games/{id}", h.DeleteGameHandler)

	r.Get("/customers", h.ListCustomersHandler)
	r.Post("/customers", h.SaveCustomerHandler)
	r.Patch("/customers/{id}", h.SaveCustomerHandler)
	r.Patch("/customers/{id}/set-password", h.SetCustomerPasswordHandler)
	r.Delete("/customers/{id}", h.DeleteCustomerHandler)

	r.Get("/devices", h.ListDevicesHandler)
	r.Post("/devices", h.SaveDeviceHandler)
	r.Patch("/devices/{id}", h.SaveDeviceHandler)
	r.Delete("/devices/{id}", h.DeleteDeviceHandler)

	r.Get("/orders", h.ListOrdersHandler)

	r.Get("/gift-packages", h.ListGiftPackagesHandler)
	r.Post("/gift-packages", h.SaveGiftPackageHandler)
	r.Patch("/gift-packages/{id}", h.SaveGiftPackageHandler)
	r.Delete("/gift-packages/{id}", h.DeleteGiftPackageHandler)

	r.Get("/staff", h.ListStaffHandler)
	r.Post("/staff", h.SaveStaffHandler)
	r.Patch("/staff/{id}", h.SaveStaffHandler)
	r.Delete("/staff/{id}", h.DeleteStaffHandler)

	r.Get("/groups", h.ListGroupsHandler)
	r.Post("/groups", h.SaveGroupHandler)
	r.Patch("/groups/{id}", h.SaveGroupHandler)
	r.Delete("/groups/{id}", h.DeleteGroupHandler)

	r.Post("/pos/carts", h.CreateCartHandler)
	r.Get("/pos/carts/{cartId}", h.GetCartHandler)
	r.Delete("/pos/carts/{cartId}", h.DeleteCartHandler)
	r.Post("/pos/carts/{cartId}/items", h.AddCartItemHandler)
	r.Patch("/pos/carts/{cartId}/items/{gameId}", h.ChangeCartItemHandler)
	r.Delete("/pos/carts/{cartId}/items/{gameId}", h.RemoveCartItemHandler)
	r.Put("/pos/carts/{cartId}/discount", h.ApplyDiscountHandler)
	r.Delete("/pos/carts/{cartId}/discount", h.ClearDiscountHandler)
	r.Post("/pos/carts/{cartId}/checkout", h.CheckoutHandler)

	return r
}

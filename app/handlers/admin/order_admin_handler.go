package admin

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rakhshan/go-storefront/app/helpers"
	"github.com/rakhshan/go-storefront/app/services"
)

func (h *AdminHandler) GetOrdersPage(w http.ResponseWriter, r *http.Request) {
	usernameFilter := strings.TrimSpace(r.URL.Query().Get("username"))

	orders, err := h.checkoutSvc.ListOrders(r.Context(), usernameFilter)
	if err != nil {
		log.Printf("AdminHandler.GetOrdersPage: failed to list orders: %v", err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Failed to load orders."), http.StatusSeeOther)
		return
	}

	pageData := map[string]interface{}{
		"Title":          "Orders",
		"Orders":         orders,
		"UsernameFilter": usernameFilter,
	}
	_ = h.render.HTML(w, http.StatusOK, "admin_orders", helpers.GetBaseData(r, pageData))
}

// UpdateOrderStatusPost overwrites the order status with the submitted free
// text. No transition rules are enforced.
func (h *AdminHandler) UpdateOrderStatusPost(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]

	if err := r.ParseForm(); err != nil {
		log.Printf("AdminHandler.UpdateOrderStatusPost: failed to parse form: %v", err)
		http.Redirect(w, r, "/admin/orders?status=error&message="+url.QueryEscape("Failed to process the form."), http.StatusSeeOther)
		return
	}

	newStatus := r.FormValue("status")

	if err := h.checkoutSvc.ChangeStatus(r.Context(), orderID, newStatus); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("AdminHandler.UpdateOrderStatusPost: failed to update order %s to %q: %v", orderID, newStatus, err)
		http.Redirect(w, r, "/admin/orders?status=error&message="+url.QueryEscape("Failed to update the order status."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/orders?status=info&message="+url.QueryEscape("Order status updated."), http.StatusSeeOther)
}

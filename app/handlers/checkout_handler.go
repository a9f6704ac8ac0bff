package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/rakhshan/go-storefront/app/helpers"
	"github.com/rakhshan/go-storefront/app/services"
)

type CheckoutHandler struct {
	cartSvc     *services.CartService
	checkoutSvc *services.CheckoutService
}

func NewCheckoutHandler(cartSvc *services.CartService, checkoutSvc *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		cartSvc:     cartSvc,
		checkoutSvc: checkoutSvc,
	}
}

// Checkout runs the all-or-nothing cart-to-order conversion. Payment is
// simulated; a successful checkout just records the order.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	_, err := h.checkoutSvc.Checkout(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			http.Redirect(w, r, "/shop?status=warning&message="+url.QueryEscape("Your cart is empty."), http.StatusSeeOther)
			return
		}
		log.Printf("CheckoutHandler.Checkout: failed for user %s: %v", user.ID, err)
		http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape("Checkout failed. Please try again."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/shop?status=success&message="+url.QueryEscape("Payment successful, your order has been placed."), http.StatusSeeOther)
}

// CheckoutTest clears the cart without creating an order. Test-only escape
// hatch kept from the original storefront.
func (h *CheckoutHandler) CheckoutTest(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	if err := h.cartSvc.Clear(r.Context(), user.ID); err != nil {
		log.Printf("CheckoutHandler.CheckoutTest: failed to clear cart for user %s: %v", user.ID, err)
		http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape("Failed to clear your cart."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/shop?status=success&message="+url.QueryEscape("Test payment successful!"), http.StatusSeeOther)
}

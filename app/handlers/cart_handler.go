package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/rakhshan/go-storefront/app/helpers"
	"github.com/rakhshan/go-storefront/app/services"
	"github.com/unrolled/render"
)

type CartHandler struct {
	render  *render.Render
	cartSvc *services.CartService
}

func NewCartHandler(r *render.Render, cartSvc *services.CartService) *CartHandler {
	return &CartHandler{
		render:  r,
		cartSvc: cartSvc,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	items, total, err := h.cartSvc.GetCart(r.Context(), user.ID)
	if err != nil {
		log.Printf("CartHandler.GetCart: failed to load cart for user %s: %v", user.ID, err)
		http.Redirect(w, r, "/shop?status=error&message="+url.QueryEscape("Failed to load your cart."), http.StatusSeeOther)
		return
	}

	pageData := map[string]interface{}{
		"Title": "Your Cart",
		"Items": items,
		"Total": total,
	}
	_ = h.render.HTML(w, http.StatusOK, "cart", helpers.GetBaseData(r, pageData))
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	productID := mux.Vars(r)["product_id"]

	_, err := h.cartSvc.AddItem(r.Context(), user.ID, productID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("CartHandler.AddToCart: failed to add product %s for user %s: %v", productID, user.ID, err)
		http.Redirect(w, r, "/shop?status=error&message="+url.QueryEscape("Failed to add the product to your cart."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/shop?status=success&message="+url.QueryEscape("Product added to your cart."), http.StatusSeeOther)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["item_id"]

	if err := h.cartSvc.RemoveItem(r.Context(), itemID); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("CartHandler.RemoveItem: failed to remove item %s: %v", itemID, err)
		http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape("Failed to remove the item."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/cart?status=warning&message="+url.QueryEscape("Item removed."), http.StatusSeeOther)
}

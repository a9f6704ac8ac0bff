package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/rakhshan/go-storefront/app/helpers"
	"github.com/rakhshan/go-storefront/app/services"
	"github.com/unrolled/render"
)

type FavoriteHandler struct {
	render      *render.Render
	favoriteSvc *services.FavoriteService
}

func NewFavoriteHandler(r *render.Render, favoriteSvc *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		render:      r,
		favoriteSvc: favoriteSvc,
	}
}

type addFavoriteRequest struct {
	ProductID string `json:"product_id"`
}

// AddToFavorite handles the JSON endpoint. Adding an already-favorited
// product is a no-op reported distinctly from a fresh add.
func (h *FavoriteHandler) AddToFavorite(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	var req addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" || user == nil {
		_ = h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	added, err := h.favoriteSvc.Add(r.Context(), user.ID, req.ProductID)
	if err != nil {
		log.Printf("FavoriteHandler.AddToFavorite: failed for user %s, product %s: %v", user.ID, req.ProductID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to add favorite"})
		return
	}

	if !added {
		_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Already in favorites"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Added to favorites"})
}

func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	favorites, err := h.favoriteSvc.List(r.Context(), user.ID)
	if err != nil {
		log.Printf("FavoriteHandler.ListFavorites: failed for user %s: %v", user.ID, err)
		http.Redirect(w, r, "/shop?status=error&message="+url.QueryEscape("Failed to load favorites."), http.StatusSeeOther)
		return
	}

	pageData := map[string]interface{}{
		"Title":     "Favorites",
		"Favorites": favorites,
	}
	_ = h.render.HTML(w, http.StatusOK, "favorites", helpers.GetBaseData(r, pageData))
}

func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	productID := mux.Vars(r)["product_id"]

	status, err := h.favoriteSvc.Toggle(r.Context(), user.ID, productID)
	if err != nil {
		log.Printf("FavoriteHandler.Toggle: failed for user %s, product %s: %v", user.ID, productID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to toggle favorite"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": status})
}

package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/rakhshan/go-storefront/app/helpers"
	"github.com/rakhshan/go-storefront/app/repositories"
	"github.com/unrolled/render"
)

type ShopHandler struct {
	render       *render.Render
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepository
	userRepo     repositories.UserRepositoryImpl
	orderRepo    repositories.OrderRepository
}

func NewShopHandler(
	r *render.Render,
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepository,
	userRepo repositories.UserRepositoryImpl,
	orderRepo repositories.OrderRepository,
) *ShopHandler {
	return &ShopHandler{
		render:       r,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		orderRepo:    orderRepo,
	}
}

func (h *ShopHandler) listingData(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	filter := repositories.ProductFilter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Sort:     r.URL.Query().Get("sort"),
	}

	products, err := h.productRepo.Search(r.Context(), filter)
	if err != nil {
		log.Printf("ShopHandler: failed to search products: %v", err)
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("Failed to load products."), http.StatusSeeOther)
		return nil, false
	}

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("ShopHandler: failed to load categories: %v", err)
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("Failed to load categories."), http.StatusSeeOther)
		return nil, false
	}

	return map[string]interface{}{
		"Products":   products,
		"Categories": categories,
		"Query":      filter.Query,
		"Category":   filter.Category,
		"Sort":       filter.Sort,
	}, true
}

func (h *ShopHandler) Shop(w http.ResponseWriter, r *http.Request) {
	pageData, ok := h.listingData(w, r)
	if !ok {
		return
	}
	pageData["Title"] = "Shop"

	_ = h.render.HTML(w, http.StatusOK, "shop", helpers.GetBaseData(r, pageData))
}

// Dashboard is the same catalog listing; admins additionally get store-wide
// aggregate counts.
func (h *ShopHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	pageData, ok := h.listingData(w, r)
	if !ok {
		return
	}
	pageData["Title"] = "Dashboard"

	if user := helpers.CurrentUser(r); user != nil && user.IsAdmin() {
		ctx := r.Context()

		totalProducts, err := h.productRepo.Count(ctx)
		if err != nil {
			log.Printf("ShopHandler.Dashboard: failed to count products: %v", err)
		}
		totalUsers, err := h.userRepo.Count(ctx)
		if err != nil {
			log.Printf("ShopHandler.Dashboard: failed to count users: %v", err)
		}
		totalOrders, err := h.orderRepo.Count(ctx)
		if err != nil {
			log.Printf("ShopHandler.Dashboard: failed to count orders: %v", err)
		}
		totalIncome, err := h.orderRepo.SumTotalPrice(ctx)
		if err != nil {
			log.Printf("ShopHandler.Dashboard: failed to sum order totals: %v", err)
		}

		pageData["TotalProducts"] = totalProducts
		pageData["TotalUsers"] = totalUsers
		pageData["TotalOrders"] = totalOrders
		pageData["TotalIncome"] = totalIncome
	}

	_ = h.render.HTML(w, http.StatusOK, "dashboard", helpers.GetBaseData(r, pageData))
}

func (h *ShopHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["product_id"]

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil {
		log.Printf("ShopHandler.ProductDetail: failed to load product %s: %v", productID, err)
		http.Redirect(w, r, "/shop?status=error&message="+url.QueryEscape("Failed to load product."), http.StatusSeeOther)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	pageData := map[string]interface{}{
		"Title":   product.Name,
		"Product": product,
	}
	_ = h.render.HTML(w, http.StatusOK, "product_detail", helpers.GetBaseData(r, pageData))
}

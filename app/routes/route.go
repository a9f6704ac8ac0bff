package routes

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rakhshan/go-storefront/app/configs"
	"github.com/rakhshan/go-storefront/app/handlers"
	"github.com/rakhshan/go-storefront/app/handlers/admin"
	"github.com/rakhshan/go-storefront/app/middlewares"
	"github.com/rakhshan/go-storefront/app/repositories"
	"github.com/rakhshan/go-storefront/app/services"
	"github.com/rakhshan/go-storefront/app/utils/renderer"
	"github.com/rakhshan/go-storefront/app/utils/sessions"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, sessionKeys *configs.SessionKeys, uploadDir string) *mux.Router {
	rnd := renderer.New()
	validate := validator.New()
	sessionStore := sessions.NewCookieSessionStore(sessionKeys.AuthKey, sessionKeys.EncKey)

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	transactor := repositories.NewTransactor(db)

	accountSvc := services.NewAccountService(userRepo)
	cartSvc := services.NewCartService(cartItemRepo, productRepo, transactor)
	checkoutSvc := services.NewCheckoutService(cartItemRepo, orderRepo, orderItemRepo, transactor)
	favoriteSvc := services.NewFavoriteService(favoriteRepo)

	homeHandler := handlers.NewHomeHandler()
	shopHandler := handlers.NewShopHandler(rnd, productRepo, categoryRepo, userRepo, orderRepo)
	authHandler := handlers.NewAuthHandler(rnd, accountSvc, sessionStore, validate)
	cartHandler := handlers.NewCartHandler(rnd, cartSvc)
	checkoutHandler := handlers.NewCheckoutHandler(cartSvc, checkoutSvc)
	favoriteHandler := handlers.NewFavoriteHandler(rnd, favoriteSvc)
	adminHandler := admin.NewAdminHandler(rnd, productRepo, categoryRepo, checkoutSvc, validate, uploadDir)

	router := mux.NewRouter()
	router.Use(middlewares.UserContextMiddleware(userRepo, sessionStore))

	router.HandleFunc("/", homeHandler.Index).Methods("GET")
	router.HandleFunc("/shop", shopHandler.Shop).Methods("GET")
	router.HandleFunc("/dashboard", shopHandler.Dashboard).Methods("GET")
	router.HandleFunc("/product/{product_id}", shopHandler.ProductDetail).Methods("GET")

	router.HandleFunc("/register", authHandler.RegisterGet).Methods("GET")
	router.HandleFunc("/register", authHandler.RegisterPost).Methods("POST")
	router.HandleFunc("/login", authHandler.LoginGet).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPost).Methods("POST")

	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir)))).Methods("GET")

	// Item removal by id is deliberately outside the login-required group:
	// the original storefront never guarded it, and the ungated route is part
	// of the documented behavior.
	router.HandleFunc("/cart/remove/{item_id}", cartHandler.RemoveItem).Methods("POST")

	authed := router.NewRoute().Subrouter()
	authed.Use(middlewares.RequireLogin)
	authed.HandleFunc("/logout", authHandler.Logout).Methods("GET")
	authed.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	authed.HandleFunc("/add_to_cart/{product_id}", cartHandler.AddToCart).Methods("POST")
	authed.HandleFunc("/checkout", checkoutHandler.Checkout).Methods("POST")
	authed.HandleFunc("/checkout_test", checkoutHandler.CheckoutTest).Methods("POST")
	authed.HandleFunc("/add_to_favorite", favoriteHandler.AddToFavorite).Methods("POST")
	authed.HandleFunc("/favorites", favoriteHandler.ListFavorites).Methods("GET")
	authed.HandleFunc("/favorite/{product_id}", favoriteHandler.Toggle).Methods("POST")

	adminOnly := router.NewRoute().Subrouter()
	adminOnly.Use(middlewares.RequireAdmin(rnd))
	adminOnly.HandleFunc("/add_product", adminHandler.AddProductGet).Methods("GET")
	adminOnly.HandleFunc("/add_product", adminHandler.AddProductPost).Methods("POST")
	adminOnly.HandleFunc("/edit/{product_id}", adminHandler.EditProductGet).Methods("GET")
	adminOnly.HandleFunc("/edit/{product_id}", adminHandler.EditProductPost).Methods("POST")
	adminOnly.HandleFunc("/delete/{product_id}", adminHandler.DeleteProduct).Methods("POST")
	adminOnly.HandleFunc("/categories", adminHandler.CategoriesGet).Methods("GET")
	adminOnly.HandleFunc("/categories", adminHandler.CategoriesPost).Methods("POST")
	adminOnly.HandleFunc("/categories/delete/{category_id}", adminHandler.DeleteCategory).Methods("POST")
	adminOnly.HandleFunc("/admin/orders", adminHandler.GetOrdersPage).Methods("GET")
	adminOnly.HandleFunc("/admin/order/{order_id}/status", adminHandler.UpdateOrderStatusPost).Methods("POST")

	return router
}

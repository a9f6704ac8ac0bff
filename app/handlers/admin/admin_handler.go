package admin

import (
	"github.com/go-playground/validator/v10"
	"github.com/rakhshan/go-storefront/app/repositories"
	"github.com/rakhshan/go-storefront/app/services"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render       *render.Render
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepository
	checkoutSvc  *services.CheckoutService
	validator    *validator.Validate
	uploadDir    string
}

func NewAdminHandler(
	r *render.Render,
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepository,
	checkoutSvc *services.CheckoutService,
	validator *validator.Validate,
	uploadDir string,
) *AdminHandler {
	return &AdminHandler{
		render:       r,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		checkoutSvc:  checkoutSvc,
		validator:    validator,
		uploadDir:    uploadDir,
	}
}

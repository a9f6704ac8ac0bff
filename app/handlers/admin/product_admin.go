package admin

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rakhshan/go-storefront/app/helpers"
	"github.com/rakhshan/go-storefront/app/models"
	"github.com/shopspring/decimal"
)

const maxUploadSize = 32 << 20

type ProductForm struct {
	Name     string `form:"name" validate:"required,max=255"`
	Price    string `form:"price" validate:"required"`
	Category string `form:"category" validate:"required"`
}

func (h *AdminHandler) AddProductGet(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AdminHandler.AddProductGet: failed to load categories: %v", err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Failed to load categories."), http.StatusSeeOther)
		return
	}

	pageData := map[string]interface{}{
		"Title":      "Add Product",
		"Categories": categories,
	}
	_ = h.render.HTML(w, http.StatusOK, "add_product", helpers.GetBaseData(r, pageData))
}

func (h *AdminHandler) AddProductPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Printf("AdminHandler.AddProductPost: failed to parse multipart form: %v", err)
		http.Redirect(w, r, "/add_product?status=error&message="+url.QueryEscape("Failed to process the form."), http.StatusSeeOther)
		return
	}

	form := ProductForm{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Price:    strings.TrimSpace(r.FormValue("price")),
		Category: r.FormValue("category"),
	}
	description := r.FormValue("description")

	if err := h.validator.Struct(form); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Printf("AdminHandler.AddProductPost: validation failed: %v", helpers.FormatValidationErrors(validationErrs))
		}
		http.Redirect(w, r, "/add_product?status=error&message="+url.QueryEscape("Please fill in all required fields."), http.StatusSeeOther)
		return
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		http.Redirect(w, r, "/add_product?status=error&message="+url.QueryEscape("Invalid price."), http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Redirect(w, r, "/add_product?status=error&message="+url.QueryEscape("Please fill in all required fields."), http.StatusSeeOther)
		return
	}

	imageFilename, err := helpers.SaveUploadedFile(file, header, h.uploadDir)
	if err != nil {
		log.Printf("AdminHandler.AddProductPost: failed to save upload: %v", err)
		http.Redirect(w, r, "/add_product?status=error&message="+url.QueryEscape("Failed to store the product image."), http.StatusSeeOther)
		return
	}

	product := &models.Product{
		Name:        form.Name,
		Price:       price,
		Category:    form.Category,
		Image:       imageFilename,
		Description: description,
	}

	if expiration := r.FormValue("expiration_date"); expiration != "" {
		if parsed, parseErr := time.Parse("2006-01-02", expiration); parseErr == nil {
			product.ExpirationDate = &parsed
		}
	}
	if stockStr := r.FormValue("stock"); stockStr != "" {
		if stock, convErr := strconv.Atoi(stockStr); convErr == nil {
			product.Stock = stock
		}
	}

	if err := h.productRepo.Create(r.Context(), product); err != nil {
		log.Printf("AdminHandler.AddProductPost: failed to create product: %v", err)
		http.Redirect(w, r, "/add_product?status=error&message="+url.QueryEscape("Failed to create the product."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard?status=success&message="+url.QueryEscape("Product created."), http.StatusSeeOther)
}

func (h *AdminHandler) EditProductGet(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["product_id"]

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil {
		log.Printf("AdminHandler.EditProductGet: failed to load product %s: %v", productID, err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Failed to load the product."), http.StatusSeeOther)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AdminHandler.EditProductGet: failed to load categories: %v", err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Failed to load categories."), http.StatusSeeOther)
		return
	}

	pageData := map[string]interface{}{
		"Title":      "Edit Product",
		"Product":    product,
		"Categories": categories,
	}
	_ = h.render.HTML(w, http.StatusOK, "edit_product", helpers.GetBaseData(r, pageData))
}

func (h *AdminHandler) EditProductPost(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["product_id"]

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil {
		log.Printf("AdminHandler.EditProductPost: failed to load product %s: %v", productID, err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Failed to load the product."), http.StatusSeeOther)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Printf("AdminHandler.EditProductPost: failed to parse multipart form: %v", err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Failed to process the form."), http.StatusSeeOther)
		return
	}

	price, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("price")))
	if err != nil || price.IsNegative() {
		http.Redirect(w, r, "/edit/"+productID+"?status=error&message="+url.QueryEscape("Invalid price."), http.StatusSeeOther)
		return
	}

	product.Name = strings.TrimSpace(r.FormValue("name"))
	product.Price = price
	product.Category = r.FormValue("category")
	if description := r.FormValue("description"); description != "" {
		product.Description = description
	}

	if file, header, fileErr := r.FormFile("image"); fileErr == nil {
		imageFilename, saveErr := helpers.SaveUploadedFile(file, header, h.uploadDir)
		if saveErr != nil {
			log.Printf("AdminHandler.EditProductPost: failed to save upload: %v", saveErr)
		} else {
			product.Image = imageFilename
		}
	}

	if err := h.productRepo.Update(r.Context(), product); err != nil {
		log.Printf("AdminHandler.EditProductPost: failed to update product %s: %v", productID, err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Failed to update the product."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard?status=info&message="+url.QueryEscape("Product updated."), http.StatusSeeOther)
}

// DeleteProduct removes the product row only. Cart items, order items and
// favorites that reference it are left in place and dangle.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["product_id"]

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil {
		log.Printf("AdminHandler.DeleteProduct: failed to load product %s: %v", productID, err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Failed to load the product."), http.StatusSeeOther)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	if err := h.productRepo.Delete(r.Context(), productID); err != nil {
		log.Printf("AdminHandler.DeleteProduct: failed to delete product %s: %v", productID, err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Failed to delete the product."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard?status=warning&message="+url.QueryEscape("Product deleted."), http.StatusSeeOther)
}

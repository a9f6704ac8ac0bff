package admin

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rakhshan/go-storefront/app/helpers"
	"github.com/rakhshan/go-storefront/app/models"
)

func (h *AdminHandler) CategoriesGet(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AdminHandler.CategoriesGet: failed to load categories: %v", err)
		http.Redirect(w, r, "/dashboard?status=error&message="+url.QueryEscape("Failed to load categories."), http.StatusSeeOther)
		return
	}

	pageData := map[string]interface{}{
		"Title":      "Categories",
		"Categories": categories,
	}
	_ = h.render.HTML(w, http.StatusOK, "categories", helpers.GetBaseData(r, pageData))
}

// CategoriesPost creates a category. A duplicate name is silently ignored,
// not reported as an error.
func (h *AdminHandler) CategoriesPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("AdminHandler.CategoriesPost: failed to parse form: %v", err)
		http.Redirect(w, r, "/categories?status=error&message="+url.QueryEscape("Failed to process the form."), http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}

	existing, err := h.categoryRepo.FindByName(r.Context(), name)
	if err != nil {
		log.Printf("AdminHandler.CategoriesPost: failed to check category %q: %v", name, err)
		http.Redirect(w, r, "/categories?status=error&message="+url.QueryEscape("Failed to create the category."), http.StatusSeeOther)
		return
	}
	if existing == nil {
		if err := h.categoryRepo.Create(r.Context(), &models.Category{Name: name}); err != nil {
			log.Printf("AdminHandler.CategoriesPost: failed to create category %q: %v", name, err)
			http.Redirect(w, r, "/categories?status=error&message="+url.QueryEscape("Failed to create the category."), http.StatusSeeOther)
			return
		}
	}

	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// DeleteCategory removes the category unconditionally; no check is made for
// products still carrying the category label.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["category_id"]

	if err := h.categoryRepo.Delete(r.Context(), categoryID); err != nil {
		log.Printf("AdminHandler.DeleteCategory: failed to delete category %s: %v", categoryID, err)
		http.Redirect(w, r, "/categories?status=error&message="+url.QueryEscape("Failed to delete the category."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/categories?status=info&message="+url.QueryEscape("Category deleted."), http.StatusSeeOther)
}

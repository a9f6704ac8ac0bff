package handlers

import (
	"net/http"

	"github.com/rakhshan/go-storefront/app/helpers"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Index sends admins to the dashboard, customers to the shop and anonymous
// visitors to registration.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	switch {
	case user == nil:
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case user.IsAdmin():
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
	}
}

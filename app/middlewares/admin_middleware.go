package middlewares

import (
	"log"
	"net/http"

	"github.com/rakhshan/go-storefront/app/helpers"
	"github.com/unrolled/render"
)

// RequireAdmin is the single authorization gate for admin routes. Non-admin
// callers get the custom 403 page.
func RequireAdmin(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.CurrentUser(r)
			if user == nil || !user.IsAdmin() {
				if user != nil {
					log.Printf("RequireAdmin: user %s attempted %s without admin role", user.Username, r.URL.Path)
				}
				_ = rnd.HTML(w, http.StatusForbidden, "403", helpers.GetBaseData(r, map[string]interface{}{
					"Title": "Forbidden",
				}))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

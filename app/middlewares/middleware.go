package middlewares

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"github.com/rakhshan/go-storefront/app/helpers"
	"github.com/rakhshan/go-storefront/app/repositories"
	"github.com/rakhshan/go-storefront/app/utils/sessions"
)

// UserContextMiddleware resolves the session's user id into a full user
// record on the request context and re-saves the cookie so the 30-day
// expiration slides forward on every authenticated request.
func UserContextMiddleware(userRepo repositories.UserRepositoryImpl, sessionStore sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil || user == nil {
				log.Printf("UserContextMiddleware: session user %s not found: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}

			if err := sessionStore.Refresh(w, r); err != nil {
				log.Printf("UserContextMiddleware: failed to refresh session for user %s: %v", userID, err)
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if helpers.CurrentUser(r) == nil {
			http.Redirect(w, r, "/login?status=warning&message="+url.QueryEscape("Please log in first."), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

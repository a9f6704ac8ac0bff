package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rakhshan/go-storefront/app/helpers"
	"github.com/rakhshan/go-storefront/app/services"
	"github.com/rakhshan/go-storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	accountSvc   *services.AccountService
	sessionStore sessions.SessionStore
	validator    *validator.Validate
}

func NewAuthHandler(r *render.Render, accountSvc *services.AccountService, sessionStore sessions.SessionStore, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:       r,
		accountSvc:   accountSvc,
		sessionStore: sessionStore,
		validator:    validator,
	}
}

type RegisterForm struct {
	Username string `form:"username" validate:"required,max=50"`
	Password string `form:"password" validate:"required"`
}

func redirectLoggedIn(w http.ResponseWriter, r *http.Request) bool {
	user := helpers.CurrentUser(r)
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
	}
	return true
}

func (h *AuthHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	if redirectLoggedIn(w, r) {
		return
	}
	_ = h.render.HTML(w, http.StatusOK, "register", helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Register",
	}))
}

func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("AuthHandler.RegisterPost: error parsing form: %v", err)
		http.Redirect(w, r, "/register?status=error&message="+url.QueryEscape("Failed to process the form."), http.StatusSeeOther)
		return
	}

	form := RegisterForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}

	if err := h.validator.Struct(form); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := helpers.FormatValidationErrors(validationErrs)
			for _, msg := range msgs {
				http.Redirect(w, r, "/register?status=error&message="+url.QueryEscape(msg), http.StatusSeeOther)
				return
			}
		}
		http.Redirect(w, r, "/register?status=error&message="+url.QueryEscape("Invalid input."), http.StatusSeeOther)
		return
	}

	_, err := h.accountSvc.Register(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			http.Redirect(w, r, "/register?status=warning&message="+url.QueryEscape("This username is already taken."), http.StatusSeeOther)
			return
		}
		log.Printf("AuthHandler.RegisterPost: failed to register %s: %v", form.Username, err)
		http.Redirect(w, r, "/register?status=error&message="+url.QueryEscape("Registration failed. Please try again."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/login?status=success&message="+url.QueryEscape("Registration successful. Please log in."), http.StatusSeeOther)
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	if redirectLoggedIn(w, r) {
		return
	}
	_ = h.render.HTML(w, http.StatusOK, "login", helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Login",
	}))
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("AuthHandler.LoginPost: error parsing form: %v", err)
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Failed to process the form."), http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.accountSvc.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Wrong username or password."), http.StatusSeeOther)
			return
		}
		log.Printf("AuthHandler.LoginPost: failed to authenticate %s: %v", username, err)
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Server error, please try again."), http.StatusSeeOther)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.LoginPost: error setting user session: %v", err)
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Failed to create login session."), http.StatusSeeOther)
		return
	}

	target := "/shop"
	if user.IsAdmin() {
		target = "/dashboard"
	}
	http.Redirect(w, r, fmt.Sprintf("%s?status=success&message=%s", target, url.QueryEscape("Welcome back!")), http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("AuthHandler.Logout: failed to clear session: %v", err)
	}
	http.Redirect(w, r, "/login?status=info&message="+url.QueryEscape("You have been logged out."), http.StatusSeeOther)
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/baharkarakas/users-admin/internal/api/validate"
	"github.com/baharkarakas/users-admin/internal/auth"
	"github.com/baharkarakas/users-admin/internal/metrics"
	"github.com/baharkarakas/users-admin/internal/middleware"
	"github.com/baharkarakas/users-admin/internal/web"
)

// UsernameCookie remembers the last signed-in name for the login form.
const UsernameCookie = "username"

const loginFailed = "Invalid username or password"

type renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any)
}

type AuthHandler struct {
	Gate         *auth.Gate
	Pages        renderer
	SecureCookie bool
}

func NewAuthHandler(g *auth.Gate, pages renderer, secure bool) *AuthHandler {
	return &AuthHandler{Gate: g, Pages: pages, SecureCookie: secure}
}

type loginForm struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=3,max=10,alphanum,letterdigit"`
}

// LoginPage renders the sign-in form whether or not a session is already present.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	var name string
	if c, err := r.Cookie(UsernameCookie); err == nil {
		name = c.Value
	}
	h.Pages.Render(w, http.StatusOK, web.PageLogin, web.LoginPage{Username: name})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Pages.Render(w, http.StatusBadRequest, web.PageLogin, web.LoginPage{Alert: "bad request"})
		return
	}
	f := loginForm{Username: r.PostForm.Get("username"), Password: r.PostForm.Get("password")}

	if err := validate.Struct(f); err != nil {
		var errs validate.Errs
		if !errors.As(err, &errs) {
			slog.Error("validate login form", "err", err)
			h.Pages.Render(w, http.StatusInternalServerError, web.PageLogin, web.LoginPage{Username: f.Username, Alert: "internal error"})
			return
		}
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		h.Pages.Render(w, http.StatusUnprocessableEntity, web.PageLogin, web.LoginPage{Username: f.Username, Errors: errs.Map()})
		return
	}

	s, err := h.Gate.Login(f.Username, f.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		slog.Info("login rejected", "username", f.Username, "request_id", middleware.RequestIDFrom(r.Context()))
		h.Pages.Render(w, http.StatusUnauthorized, web.PageLogin, web.LoginPage{Username: f.Username, Alert: loginFailed})
		return
	}
	if err != nil {
		slog.Error("login", "err", err)
		h.Pages.Render(w, http.StatusInternalServerError, web.PageLogin, web.LoginPage{Username: f.Username, Alert: "internal error"})
		return
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     UsernameCookie,
		Value:    s.Username,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/table", http.StatusSeeOther)
}

// Logout drops the session cookie; the username cookie stays so the form is pre-filled next time.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

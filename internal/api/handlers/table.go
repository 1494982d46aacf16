package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/users-admin/internal/api/validate"
	"github.com/baharkarakas/users-admin/internal/middleware"
	"github.com/baharkarakas/users-admin/internal/models"
	"github.com/baharkarakas/users-admin/internal/services"
	"github.com/baharkarakas/users-admin/internal/table"
	"github.com/baharkarakas/users-admin/internal/web"
)

const (
	bannerLoad     = "Error loading data"
	bannerStale    = "The table was changed by someone else. Review it and try again."
	bannerNotFound = "That user no longer exists"
	bannerBadForm  = "The form could not be read"
)

var bannerFailed = map[string]string{
	"create": "Could not create the user",
	"update": "Could not save the user",
	"delete": "Could not delete the user",
}

// TableHandler serves the HTML table under /table.
type TableHandler struct {
	Svc   UserService
	Pages renderer
}

func NewTableHandler(svc UserService, pages renderer) *TableHandler {
	return &TableHandler{Svc: svc, Pages: pages}
}

func (h *TableHandler) Show(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := http.StatusOK
	h.render(w, r, &status, func(v *table.View) {
		switch {
		case q.Get("create") != "":
			v.StartCreate()
		case q.Get("edit") != "":
			if !v.StartEdit(q.Get("edit")) {
				v.Banner, status = bannerNotFound, http.StatusNotFound
			}
		case q.Get("delete") != "":
			if !v.AskDelete(q.Get("delete")) {
				v.Banner, status = bannerNotFound, http.StatusNotFound
			}
		}
	})
}

func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, ver, ok := h.readForm(w, r)
	if !ok {
		return
	}
	_, err := h.Svc.Create(r.Context(), u, ver)
	if err != nil {
		h.fail(w, r, "create", err, func(v *table.View) bool {
			v.StartCreate()
			return true
		}, u)
		return
	}
	http.Redirect(w, r, "/table", http.StatusSeeOther)
}

func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, ver, ok := h.readForm(w, r)
	if !ok {
		return
	}
	u.ID = chi.URLParam(r, "id")
	_, err := h.Svc.Update(r.Context(), u, ver)
	if err != nil {
		h.fail(w, r, "update", err, func(v *table.View) bool {
			return v.StartEdit(u.ID)
		}, u)
		return
	}
	http.Redirect(w, r, "/table", http.StatusSeeOther)
}

// Delete goes ahead only when the prompt was answered with confirm=yes.
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.banner(w, r, http.StatusBadRequest, bannerBadForm)
		return
	}
	ver, err := parseVersion(r.PostForm.Get("version"))
	if err != nil {
		h.banner(w, r, http.StatusBadRequest, bannerBadForm)
		return
	}
	confirmed := r.PostForm.Get("confirm") == "yes"
	confirm := func(context.Context, string) bool { return confirmed }

	if _, err := h.Svc.Delete(r.Context(), chi.URLParam(r, "id"), confirm, ver); err != nil {
		h.fail(w, r, "delete", err, nil, models.User{})
		return
	}
	http.Redirect(w, r, "/table", http.StatusSeeOther)
}

func (h *TableHandler) readForm(w http.ResponseWriter, r *http.Request) (models.User, int64, bool) {
	if err := r.ParseForm(); err != nil {
		h.banner(w, r, http.StatusBadRequest, bannerBadForm)
		return models.User{}, 0, false
	}
	ver, err := parseVersion(r.PostForm.Get("version"))
	if err != nil {
		h.banner(w, r, http.StatusBadRequest, bannerBadForm)
		return models.User{}, 0, false
	}
	u := models.User{
		FirstName: r.PostForm.Get("firstName"),
		LastName:  r.PostForm.Get("lastName"),
		Email:     r.PostForm.Get("email"),
		State:     r.PostForm.Get("state"),
	}
	u.Sanitize()
	return u, ver, true
}

// fail re-renders the table for a failed operation. reopen puts the form back
// so the draft and its errors stay visible; it reports false when the row is gone.
func (h *TableHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error, reopen func(*table.View) bool, draft models.User) {
	var errs validate.Errs
	status := http.StatusServiceUnavailable
	h.render(w, r, &status, func(v *table.View) {
		keep := func(fieldErrs map[string]string) bool {
			if reopen != nil && reopen(v) {
				v.Fail(draft, fieldErrs)
				return true
			}
			return false
		}
		switch {
		case errors.As(err, &errs):
			status = http.StatusUnprocessableEntity
			if !keep(errs.Map()) {
				status = http.StatusNotFound
				v.Banner = bannerNotFound
			}
		case errors.Is(err, services.ErrUserNotFound):
			status = http.StatusNotFound
			v.Banner = bannerNotFound
		case errors.Is(err, services.ErrStaleCollection):
			status = http.StatusConflict
			v.Banner = bannerStale
			keep(map[string]string{})
		default:
			slog.Error("table operation", "op", op, "err", err, "request_id", middleware.RequestIDFrom(r.Context()))
			v.Banner = bannerFailed[op]
			keep(map[string]string{})
		}
	})
}

func (h *TableHandler) banner(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render(w, r, &status, func(v *table.View) { v.Banner = msg })
}

// render loads the current collection into a fresh view, lets prep adjust it and
// writes the page with *status. A failed load shows the loading banner instead.
func (h *TableHandler) render(w http.ResponseWriter, r *http.Request, status *int, prep func(*table.View)) {
	var username string
	if s, ok := middleware.SessionFrom(r.Context()); ok {
		username = s.Username
	}
	v := table.New(username)

	c, err := h.Svc.List(r.Context())
	if err != nil {
		slog.Error("load table", "err", err, "request_id", middleware.RequestIDFrom(r.Context()))
		v.Banner = bannerLoad
		h.Pages.Render(w, http.StatusServiceUnavailable, web.PageTable, v)
		return
	}
	v.Replace(c)
	prep(v)
	h.Pages.Render(w, *status, web.PageTable, v)
}

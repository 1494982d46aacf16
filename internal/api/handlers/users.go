package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/users-admin/internal/api/httpx"
	"github.com/baharkarakas/users-admin/internal/api/validate"
	"github.com/baharkarakas/users-admin/internal/models"
	"github.com/baharkarakas/users-admin/internal/services"
)

// UserService is what the handlers need from services.UserService.
type UserService interface {
	List(ctx context.Context) (models.Collection, error)
	Create(ctx context.Context, values models.User, ifVersion int64) (models.Collection, error)
	Update(ctx context.Context, values models.User, ifVersion int64) (models.Collection, error)
	Delete(ctx context.Context, id string, confirm services.ConfirmFunc, ifVersion int64) (models.Collection, error)
}

var errBadVersion = errors.New("version must be a positive integer")

// UsersHandler serves the collection as JSON under /api/v1/users.
type UsersHandler struct {
	Svc UserService
}

func NewUsersHandler(svc UserService) *UsersHandler {
	return &UsersHandler{Svc: svc}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	c, err := h.Svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeCollection(w, http.StatusOK, c)
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ver, err := ifMatch(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	var u models.User
	if err := httpx.DecodeJSON(r, &u); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	u.ID = ""
	c, err := h.Svc.Create(r.Context(), u, ver)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeCollection(w, http.StatusCreated, c)
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	ver, err := ifMatch(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	var u models.User
	if err := httpx.DecodeJSON(r, &u); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	u.ID = chi.URLParam(r, "id")
	c, err := h.Svc.Update(r.Context(), u, ver)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeCollection(w, http.StatusOK, c)
}

// Delete removes the user only when ?confirm=true is given; otherwise the
// collection comes back unchanged.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ver, err := ifMatch(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	confirm := func(context.Context, string) bool { return confirmed }

	c, err := h.Svc.Delete(r.Context(), chi.URLParam(r, "id"), confirm, ver)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeCollection(w, http.StatusOK, c)
}

func writeCollection(w http.ResponseWriter, status int, c models.Collection) {
	if c.Users == nil {
		c.Users = []models.User{}
	}
	w.Header().Set("ETag", etag(c.Version))
	httpx.WriteJSON(w, status, c)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var errs validate.Errs
	switch {
	case errors.As(err, &errs):
		httpx.WriteError(w, http.StatusUnprocessableEntity, "validation", "invalid user", errs.Map())
	case errors.Is(err, services.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, services.ErrStaleCollection):
		httpx.WriteError(w, http.StatusConflict, "stale", "collection changed, reload and retry", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		httpx.WriteError(w, http.StatusServiceUnavailable, "cancelled", err.Error(), nil)
	default:
		httpx.WriteError(w, http.StatusServiceUnavailable, "store_error", "store unavailable", nil)
	}
}

func etag(version int64) string {
	return `"` + strconv.FormatInt(version, 10) + `"`
}

// ifMatch reads the expected collection version from If-Match. No header means 0, "don't care".
func ifMatch(r *http.Request) (int64, error) {
	return parseVersion(r.Header.Get("If-Match"))
}

func parseVersion(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return 0, nil
	}
	s = strings.TrimPrefix(s, "W/")
	s = strings.Trim(s, `"`)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, errBadVersion
	}
	return n, nil
}

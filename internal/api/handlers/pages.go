package handlers

import (
	"net/http"

	"github.com/baharkarakas/users-admin/internal/web"
)

func NotFound(pages renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pages.Render(w, http.StatusNotFound, web.PageNotFound, web.NotFoundPage{Path: r.URL.Path})
	}
}

func Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

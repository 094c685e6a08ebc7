package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes constructs the chi router containing all API endpoints.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHeaders)

	r.Get("/provide", a.handleProvide)
	r.Post("/provide", a.handleProvideBatch)
	r.Get("/provide/{id}", a.handleQueueEntry)
	r.Get("/skin/random", a.handleRandomSkins)
	r.Get("/skin/{id}", a.handleSkin)
	r.Get("/skin/{id}/provider", a.handleSkinProvider)
	r.Get("/cdn/{id}/{type}", a.handleImage)
	r.Get("/stats", a.handleStats)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.respondError(w, newError(http.StatusNotFound, "The requested resource could not be found", true))
	})

	return r
}

func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "User-Agent,If-None-Match,Content-Type,If-Unmodified-Since,Authorization")
		next.ServeHTTP(w, r)
	})
}

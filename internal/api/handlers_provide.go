package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// handleProvide accepts one submission: a signed texture payload, an
// account identifier, a username, or a direct skin URL.
func (a *API) handleProvide(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, s-maxage=0, max-age=15")

	value := r.URL.Query().Get("value")
	signature := r.URL.Query().Get("signature")
	if value == "" {
		a.respondError(w, newError(http.StatusBadRequest, "The query-parameter 'value' is missing", true))
		return
	}

	internalAgent := a.tokens.Has(bearerToken(r), PermInternalUserAgent)

	skin, apiErr := a.resolveSubmission(r.Context(), value, signature)
	if apiErr != nil {
		recordSubmission(apiErr)
		a.respondError(w, apiErr)
		return
	}

	ticket, apiErr := a.queueSkin(r.Context(), skin, r.UserAgent(), internalAgent)
	recordSubmission(apiErr)
	if apiErr != nil {
		a.respondError(w, apiErr)
		return
	}

	respondJSON(w, http.StatusAccepted, ticket)
}

// handleQueueEntry serves the polling endpoint for a queue entry.
// Terminal states are immutable, so anything past QUEUED is cacheable for
// a long time.
func (a *API) handleQueueEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		a.respondError(w, newError(http.StatusBadRequest, "The parameter 'id' is invalid", false))
		return
	}

	entry, err := a.store.QueueEntry(r.Context(), id)
	if err != nil {
		a.respondError(w, a.internalError(err))
		return
	}
	if entry == nil {
		a.respondError(w, newError(http.StatusBadRequest, "Nothing queued with the given ID", true))
		return
	}

	cacheTime := 172800 // 48h
	if entry.Status == StatusQueued {
		cacheTime = 60
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("public, s-maxage=%d, max-age=%d", cacheTime, cacheTime))

	respondJSON(w, http.StatusOK, entry)
}

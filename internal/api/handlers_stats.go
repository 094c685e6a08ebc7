package api

import "net/http"

// handleStats serves the cached statistics snapshot. The advanced section
// is computed and attached only for callers holding the matching grant.
func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.stats.Stats(r.Context(), false)
	if err != nil {
		a.respondError(w, a.internalError(err))
		return
	}

	w.Header().Set("Cache-Control", "private, no-cache, no-store, must-revalidate, max-age=600, s-maxage=0")

	// Copy so the cached snapshot is never mutated by a privileged caller.
	out := make(map[string]any, len(stats)+1)
	for k, v := range stats {
		out[k] = v
	}

	if a.tokens.Has(bearerToken(r), PermAdvancedStats) {
		advanced, err := a.stats.AdvancedStats(r.Context(), false)
		if err != nil {
			a.respondError(w, a.internalError(err))
			return
		}
		out["advanced"] = advanced
	}

	respondJSON(w, http.StatusOK, out)
}

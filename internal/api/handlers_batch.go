package api

import (
	"context"
	"net/http"
	"sync"

	"skindb/internal/mojang"
)

// batchResult is the per-item failure shape inside a batch response.
// Successful items carry a queueTicket instead.
type batchResult struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}

// handleProvideBatch fans a list of account identifiers out to
// independent resolution+enqueue operations and responds once every item
// has completed. Array elements that are not identifier strings are
// silently skipped; this differs from the single-submission path on
// purpose and matches the existing deployment.
func (a *API) handleProvideBatch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, s-maxage=15, max-age=15")

	// The array is decoded loosely: a non-string element must skip that
	// element, not reject the whole batch.
	var req struct {
		UUIDs []any `json:"uuids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		a.respondError(w, newError(http.StatusBadRequest, "The query-body is missing", true))
		return
	}
	if len(req.UUIDs) == 0 {
		a.respondError(w, newError(http.StatusBadRequest, "The query-body is missing an 'uuids' array", true))
		return
	}

	eligible := make([]string, 0, len(req.UUIDs))
	for _, item := range req.UUIDs {
		if id, ok := item.(string); ok && mojang.IsUUID(id) {
			eligible = append(eligible, id)
		}
	}

	userAgent := r.UserAgent()
	internalAgent := a.tokens.Has(bearerToken(r), PermInternalUserAgent)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]any, len(eligible))
	)

	for _, id := range eligible {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			key, result := a.processBatchItem(r.Context(), id, userAgent, internalAgent)

			mu.Lock()
			results[key] = result
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	respondJSON(w, http.StatusAccepted, results)
}

// processBatchItem resolves and enqueues a single identifier. The result
// key is the canonical profile id once known; before that, failures are
// keyed by the submitted value.
func (a *API) processBatchItem(ctx context.Context, id, userAgent string, internalAgent bool) (string, any) {
	profile, err := a.profiles.Profile(ctx, id)
	if err != nil {
		apiErr := a.internalError(err)
		recordSubmission(apiErr)
		return id, batchResult{Status: apiErr.Status, Msg: apiErr.Msg}
	}
	if profile == nil {
		recordSubmission(newError(http.StatusNoContent, "", true))
		return id, batchResult{Status: http.StatusNoContent, Msg: "The UUID does not belong to any account"}
	}

	textures, err := profile.Textures()
	if err != nil {
		apiErr := a.internalError(err)
		recordSubmission(apiErr)
		return profile.ID, batchResult{Status: apiErr.Status, Msg: apiErr.Msg}
	}
	if textures.SkinURL == "" || textures.Signature == "" {
		recordSubmission(newError(http.StatusBadRequest, "", true))
		return profile.ID, batchResult{Status: http.StatusBadRequest, Msg: "That user does not have a skin"}
	}

	skin := canonicalSkin{URL: textures.SkinURL, Value: textures.Value, Signature: textures.Signature}
	ticket, apiErr := a.queueSkin(ctx, skin, userAgent, internalAgent)
	recordSubmission(apiErr)
	if apiErr != nil {
		return profile.ID, batchResult{Status: apiErr.Status, Msg: apiErr.Msg}
	}
	return profile.ID, ticket
}

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (a *API) handleRandomSkins(w http.ResponseWriter, r *http.Request) {
	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			count = -1
		} else {
			count = parsed
		}
	}
	if count < 1 || count > 50 {
		a.respondError(w, newError(http.StatusBadRequest, "The query-parameter 'count' is invalid or too large", true))
		return
	}

	skins, err := a.store.RandomSkins(r.Context(), count)
	if err != nil {
		a.respondError(w, a.internalError(err))
		return
	}
	if len(skins) == 0 {
		a.respondError(w, newError(http.StatusBadRequest, "No Skins were found", true))
		return
	}

	w.Header().Set("Cache-Control", "public, s-maxage=0")
	respondJSON(w, http.StatusOK, skins)
}

func (a *API) handleSkin(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		a.respondError(w, newError(http.StatusBadRequest, "The parameter 'id' is invalid or missing", true))
		return
	}

	skin, err := a.store.Skin(r.Context(), id)
	if err != nil {
		a.respondError(w, a.internalError(err))
		return
	}
	if skin == nil {
		a.respondError(w, newError(http.StatusBadRequest, "No Skin with the given ID", true))
		return
	}

	w.Header().Set("Cache-Control", "public, s-maxage=172800") // 48h
	respondJSON(w, http.StatusOK, skin)
}

// handleSkinProvider returns the queue entry that produced a stored skin.
func (a *API) handleSkinProvider(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		a.respondError(w, newError(http.StatusBadRequest, "The parameter 'id' is invalid or missing", true))
		return
	}

	entry, err := a.store.QueueEntryForSkin(r.Context(), id)
	if err != nil {
		a.respondError(w, a.internalError(err))
		return
	}
	if entry == nil {
		a.respondError(w, newError(http.StatusBadRequest, "No Skin was found", true))
		return
	}

	w.Header().Set("Cache-Control", "public, s-maxage=0")
	respondJSON(w, http.StatusOK, entry)
}

// handleImage serves the stored image bytes for a skin. Duplicate records
// resolve through the canonical skin id, since derived assets only exist
// for the canonical record.
func (a *API) handleImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	imageType := strings.ToLower(chi.URLParam(r, "type"))
	if err != nil || (imageType != "original.png" && imageType != "skin.png") {
		a.respondError(w, newError(http.StatusNotFound, "Not Found", false))
		return
	}

	kind := ImageClean
	if imageType == "original.png" {
		kind = ImageOriginal
	}

	skin, err := a.store.Skin(r.Context(), id)
	if err != nil {
		a.respondError(w, a.internalError(err))
		return
	}
	if skin == nil {
		a.respondError(w, newError(http.StatusNotFound, "Not Found", false))
		return
	}

	canonicalID := skin.ID
	if skin.DuplicateOf != nil {
		canonicalID = *skin.DuplicateOf
	}

	img, err := a.store.SkinImage(r.Context(), canonicalID, kind)
	if err != nil {
		a.respondError(w, a.internalError(err))
		return
	}
	if img == nil {
		a.respondError(w, newError(http.StatusNotFound, "Not Found", false))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, s-maxage=7884000, max-age=7884000") // 3 months
	_, _ = w.Write(img)
}

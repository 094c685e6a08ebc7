package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// queueTicket is returned to clients on a successful enqueue. Status is a
// stable URL for polling the queue entry.
type queueTicket struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// queueSkin records a new queue entry for the given canonical skin with
// the submitting agent attached. A skin URL that is already queued or
// stored yields a 200-status result, which callers must render as
// success-adjacent rather than as a failure.
func (a *API) queueSkin(ctx context.Context, skin canonicalSkin, userAgent string, internalAgent bool) (queueTicket, *apiError) {
	agentID, err := a.store.ResolveAgent(ctx, userAgent, internalAgent)
	if err != nil {
		return queueTicket{}, a.internalError(err)
	}

	id, err := a.store.EnqueueSkin(ctx, skin.URL, skin.Value, skin.Signature, agentID)
	if errors.Is(err, ErrSkinExists) {
		return queueTicket{}, newError(http.StatusOK, "The skin is already in the database", true)
	}
	if err != nil {
		return queueTicket{}, a.internalError(err)
	}

	a.publishQueued(id, skin.URL, agentID)

	return queueTicket{
		ID:     id,
		Status: fmt.Sprintf("%s/provide/%d", a.config.APIBase, id),
	}, nil
}

// publishQueued notifies processing workers about a new queue entry. The
// event is best-effort; the queue row is the source of truth.
func (a *API) publishQueued(id int64, skinURL string, agentID int64) {
	if a.bus == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := a.bus.Publish(ctx, queueAddedSubject, map[string]any{
		"id":       id,
		"skin_url": skinURL,
		"agent_id": agentID,
	})
	if err != nil {
		a.logger.Printf("ERROR publish queue event for entry %d: %v", id, err)
	}
}

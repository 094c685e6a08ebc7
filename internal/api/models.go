package api

import (
	"context"
	"errors"
	"time"
)

// Queue entry lifecycle. This service only ever writes StatusQueued; the
// processing worker owns all later transitions.
const (
	StatusQueued     = "QUEUED"
	StatusProcessing = "PROCESSING"
	StatusDone       = "DONE"
	StatusFailed     = "FAILED"
)

// ImageKind selects which rendering of a stored skin to fetch.
type ImageKind string

const (
	ImageOriginal ImageKind = "original"
	ImageClean    ImageKind = "clean"
)

// ErrSkinExists is returned by Store.EnqueueSkin when the skin URL is
// already queued or already stored.
var ErrSkinExists = errors.New("skin already queued or stored")

// QueueEntry is a unit of ingestion work tracked by id and status.
type QueueEntry struct {
	ID        int64          `json:"id" db:"id"`
	SkinURL   string         `json:"skin_url" db:"skin_url"`
	Value     string         `json:"value,omitempty" db:"value"`
	Signature string         `json:"signature,omitempty" db:"signature"`
	AgentID   int64          `json:"agent_id" db:"agent_id"`
	Status    string         `json:"status" db:"status"`
	SkinID    *int64         `json:"skin_id,omitempty" db:"skin_id"`
	Result    map[string]any `json:"result,omitempty" db:"result"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// Skin is a stored skin record. A non-nil DuplicateOf marks the record as
// a deduplicated alias of the referenced canonical skin.
type Skin struct {
	ID          int64     `json:"id" db:"id"`
	SkinURL     string    `json:"skin_url" db:"skin_url"`
	DuplicateOf *int64    `json:"duplicate_of,omitempty" db:"duplicate_of"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Store is the persistence boundary consumed by the HTTP layer.
type Store interface {
	// ResolveAgent returns the id for the given submission agent, creating
	// the record on first sight.
	ResolveAgent(ctx context.Context, userAgent string, internal bool) (int64, error)
	// EnqueueSkin inserts a new queue entry and returns its id, or
	// ErrSkinExists when the URL is already queued or stored. Uniqueness is
	// enforced by the store, not by a separate pre-check.
	EnqueueSkin(ctx context.Context, skinURL, value, signature string, agentID int64) (int64, error)
	// QueueEntry returns the entry with the given id, or nil when unknown.
	QueueEntry(ctx context.Context, id int64) (*QueueEntry, error)
	// QueueEntryForSkin returns the entry that produced the given skin, or nil.
	QueueEntryForSkin(ctx context.Context, skinID int64) (*QueueEntry, error)
	// Skin returns the stored skin record with the given id, or nil.
	Skin(ctx context.Context, id int64) (*Skin, error)
	// RandomSkins returns up to count random stored skins.
	RandomSkins(ctx context.Context, count int) ([]Skin, error)
	// SkinImage returns the image bytes for a skin, or nil when absent.
	SkinImage(ctx context.Context, skinID int64, kind ImageKind) ([]byte, error)
	// Stats computes the basic statistics snapshot.
	Stats(ctx context.Context) (map[string]any, error)
	// AdvancedStats computes the permission-gated statistics snapshot.
	AdvancedStats(ctx context.Context) (map[string]any, error)
}

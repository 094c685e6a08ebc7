package api

import (
	"context"
	"errors"
	"log"
	"time"

	"skindb/internal/mojang"
	"skindb/internal/yggdrasil"
	"skindb/pkg/bus"
)

const queueAddedSubject = "skindb.queue.added"

// ProfileService is the identity-provider boundary. Both calls distinguish
// transport failures (error) from not-found (zero value, nil error).
type ProfileService interface {
	Profile(ctx context.Context, id string) (*mojang.Profile, error)
	UUIDByName(ctx context.Context, name string) (string, error)
}

// Config controls runtime behaviour for the API handlers.
type Config struct {
	// APIBase is the externally visible base URL used to build queue
	// status URLs, e.g. https://api.skindb.net.
	APIBase string
	// StatsTTL bounds how long statistics snapshots (and snapshot
	// failures) are served from cache.
	StatsTTL time.Duration
}

// Deps holds the collaborators the API layer is wired with.
type Deps struct {
	Store    Store
	Profiles ProfileService
	Verifier *yggdrasil.Verifier
	Tokens   *TokenRegistry
	Bus      *bus.Bus
	Logger   *log.Logger
}

// API owns the submission pipeline and HTTP handlers.
type API struct {
	store    Store
	profiles ProfileService
	verifier *yggdrasil.Verifier
	tokens   *TokenRegistry
	bus      *bus.Bus
	logger   *log.Logger
	stats    *StatsCache
	config   Config
}

// New initialises the API layer with sane defaults applied to the provided
// configuration.
func New(deps Deps, cfg Config) (*API, error) {
	if deps.Store == nil {
		return nil, errors.New("store is required")
	}
	if deps.Profiles == nil {
		return nil, errors.New("profile service is required")
	}
	if deps.Verifier == nil {
		return nil, errors.New("verifier is required")
	}
	if deps.Tokens == nil {
		deps.Tokens = NewTokenRegistry(nil)
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if cfg.APIBase == "" {
		return nil, errors.New("api base is required")
	}
	if cfg.StatsTTL <= 0 {
		cfg.StatsTTL = 15 * time.Minute
	}

	return &API{
		store:    deps.Store,
		profiles: deps.Profiles,
		verifier: deps.Verifier,
		tokens:   deps.Tokens,
		bus:      deps.Bus,
		logger:   deps.Logger,
		stats:    NewStatsCache(deps.Store, cfg.StatsTTL, time.Now),
		config:   cfg,
	}, nil
}

// StatsCache exposes the owned statistics cache so the caller can start
// the background refresher with its own lifecycle.
func (a *API) StatsCache() *StatsCache {
	return a.stats
}

package api

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"

	"skindb/internal/mojang"
	"skindb/internal/yggdrasil"
)

// fakeStore is an in-memory api.Store used by the pipeline tests.
type fakeStore struct {
	mu sync.Mutex

	nextAgentID int64
	agents      map[string]int64 // "userAgent|internal" -> id
	agentErr    error

	nextQueueID int64
	queued      map[string]int64 // skin URL -> queue entry id
	entries     map[int64]*QueueEntry
	enqueueErr  error

	storedSkins map[string]int64 // skin URL -> skin id
	skins       map[int64]*Skin
	skinEntries map[int64]*QueueEntry // skin id -> producing queue entry
	images      map[string][]byte     // "id/kind" -> bytes

	stats      map[string]any
	statsErr   error
	statsCalls int

	advanced map[string]any
	advErr   error
	advCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		agents:      map[string]int64{},
		queued:      map[string]int64{},
		entries:     map[int64]*QueueEntry{},
		storedSkins: map[string]int64{},
		skins:       map[int64]*Skin{},
		skinEntries: map[int64]*QueueEntry{},
		images:      map[string][]byte{},
		stats:       map[string]any{"skins": map[string]any{"total": int64(0)}},
		advanced:    map[string]any{"top_agents": []map[string]any{}},
	}
}

func agentKey(userAgent string, internal bool) string {
	return fmt.Sprintf("%s|%t", userAgent, internal)
}

func (f *fakeStore) ResolveAgent(ctx context.Context, userAgent string, internal bool) (int64, error) {
	if f.agentErr != nil {
		return 0, f.agentErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	key := agentKey(userAgent, internal)
	if id, ok := f.agents[key]; ok {
		return id, nil
	}
	f.nextAgentID++
	f.agents[key] = f.nextAgentID
	return f.nextAgentID, nil
}

func (f *fakeStore) EnqueueSkin(ctx context.Context, skinURL, value, signature string, agentID int64) (int64, error) {
	if f.enqueueErr != nil {
		return 0, f.enqueueErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.storedSkins[skinURL]; ok {
		return 0, ErrSkinExists
	}
	if _, ok := f.queued[skinURL]; ok {
		return 0, ErrSkinExists
	}

	f.nextQueueID++
	id := f.nextQueueID
	f.queued[skinURL] = id
	f.entries[id] = &QueueEntry{
		ID:        id,
		SkinURL:   skinURL,
		Value:     value,
		Signature: signature,
		AgentID:   agentID,
		Status:    StatusQueued,
	}
	return id, nil
}

func (f *fakeStore) QueueEntry(ctx context.Context, id int64) (*QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[id], nil
}

func (f *fakeStore) QueueEntryForSkin(ctx context.Context, skinID int64) (*QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.skinEntries[skinID], nil
}

func (f *fakeStore) Skin(ctx context.Context, id int64) (*Skin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.skins[id], nil
}

func (f *fakeStore) RandomSkins(ctx context.Context, count int) ([]Skin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	skins := make([]Skin, 0, count)
	for _, s := range f.skins {
		if len(skins) == count {
			break
		}
		skins = append(skins, *s)
	}
	return skins, nil
}

func (f *fakeStore) SkinImage(ctx context.Context, skinID int64, kind ImageKind) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.images[fmt.Sprintf("%d/%s", skinID, kind)], nil
}

func (f *fakeStore) Stats(ctx context.Context) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeStore) AdvancedStats(ctx context.Context) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advCalls++
	if f.advErr != nil {
		return nil, f.advErr
	}
	return f.advanced, nil
}

// fakeProfiles is an in-memory identity provider.
type fakeProfiles struct {
	profiles map[string]*mojang.Profile
	names    map[string]string
	errs     map[string]error
	nameErrs map[string]error
}

func (f *fakeProfiles) Profile(ctx context.Context, id string) (*mojang.Profile, error) {
	if err, ok := f.errs[id]; ok {
		return nil, err
	}
	return f.profiles[id], nil
}

func (f *fakeProfiles) UUIDByName(ctx context.Context, name string) (string, error) {
	if err, ok := f.nameErrs[name]; ok {
		return "", err
	}
	return f.names[name], nil
}

func newTestVerifier(t *testing.T) (*rsa.PrivateKey, *yggdrasil.Verifier) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	verifier, err := yggdrasil.NewVerifier(pemBytes)
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	return priv, verifier
}

func signPayload(t *testing.T, priv *rsa.PrivateKey, payload string) string {
	t.Helper()

	digest := sha1.Sum([]byte(payload))
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA1, digest[:])
	if err != nil {
		t.Fatalf("sign payload: %v", err)
	}
	return base64.StdEncoding.EncodeToString(sig)
}

// texturesValue builds the base64 payload of a "textures" property.
func texturesValue(t *testing.T, skinURL string) string {
	t.Helper()

	textures := map[string]any{}
	if skinURL != "" {
		textures["SKIN"] = map[string]any{"url": skinURL}
	}
	raw, err := json.Marshal(map[string]any{"textures": textures})
	if err != nil {
		t.Fatalf("marshal textures: %v", err)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// makeProfile builds a profile whose textures property points at skinURL.
// An empty signature simulates an unsigned texture property.
func makeProfile(t *testing.T, id, name, skinURL, signature string) *mojang.Profile {
	t.Helper()

	return &mojang.Profile{
		ID:   id,
		Name: name,
		Properties: []mojang.Property{{
			Name:      "textures",
			Value:     texturesValue(t, skinURL),
			Signature: signature,
		}},
	}
}

func newTestAPI(t *testing.T, store Store, profiles ProfileService, verifier *yggdrasil.Verifier) *API {
	t.Helper()

	if verifier == nil {
		_, verifier = newTestVerifier(t)
	}
	if profiles == nil {
		profiles = &fakeProfiles{}
	}

	tokens := NewTokenRegistry(map[string][]Permission{
		"stats-token":    {PermAdvancedStats},
		"internal-token": {PermInternalUserAgent},
	})

	a, err := New(Deps{
		Store:    store,
		Profiles: profiles,
		Verifier: verifier,
		Tokens:   tokens,
		Logger:   log.New(io.Discard, "", 0),
	}, Config{APIBase: "https://api.skindb.test"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"

	"skindb/internal/mojang"
)

// submissionKind is the classification of a client-supplied value. The
// first matching shape wins; the order below is a policy choice carried
// over from the existing deployment and must not change.
type submissionKind int

const (
	submissionInvalid submissionKind = iota
	submissionSignedPayload
	submissionAccountID
	submissionUsername
	submissionSkinURL
)

// canonicalSkin is the normalised form every accepted submission resolves
// to. URL is always a dereferenceable skin location; Value and Signature
// are either both set or both empty.
type canonicalSkin struct {
	URL       string
	Value     string
	Signature string
}

func classifySubmission(value, signature string) submissionKind {
	switch {
	case signature != "":
		return submissionSignedPayload
	case mojang.IsUUID(value):
		return submissionAccountID
	case mojang.IsValidUsername(value):
		return submissionUsername
	case isSkinURL(value):
		return submissionSkinURL
	default:
		return submissionInvalid
	}
}

func isSkinURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// resolveSubmission normalises one client-supplied value into a canonical
// skin, calling out to the identity provider when needed. Resolution never
// mutates anything and is safe to run concurrently.
func (a *API) resolveSubmission(ctx context.Context, value, signature string) (canonicalSkin, *apiError) {
	switch classifySubmission(value, signature) {
	case submissionSignedPayload:
		return a.resolveSignedPayload(value, signature)
	case submissionAccountID:
		return a.resolveAccount(ctx, value)
	case submissionUsername:
		id, err := a.profiles.UUIDByName(ctx, value)
		if err != nil {
			return canonicalSkin{}, a.internalError(err)
		}
		if id == "" {
			return canonicalSkin{}, newError(http.StatusNoContent, "The username does not belong to any account", true)
		}
		return a.resolveAccount(ctx, id)
	case submissionSkinURL:
		// Unverified path: the URL is taken at face value, no authenticity
		// claim is attached.
		return canonicalSkin{URL: value}, nil
	default:
		return canonicalSkin{}, newError(http.StatusBadRequest, "The provided 'value' is invalid", true)
	}
}

func (a *API) resolveSignedPayload(value, signature string) (canonicalSkin, *apiError) {
	// Failed verification and malformed input are reported identically so
	// callers learn nothing about why a forgery was rejected.
	if !a.verifier.Verify(value, signature) {
		return canonicalSkin{}, newError(http.StatusBadRequest,
			"The provided 'signature' for 'value' is invalid or not signed by Yggdrasil", true)
	}

	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return canonicalSkin{}, newError(http.StatusBadRequest, "That value does not contain a skin", true)
	}

	var payload struct {
		Textures map[string]struct {
			URL string `json:"url"`
		} `json:"textures"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return canonicalSkin{}, newError(http.StatusBadRequest, "That value does not contain a skin", true)
	}

	skin, ok := payload.Textures["SKIN"]
	if !ok || skin.URL == "" {
		return canonicalSkin{}, newError(http.StatusBadRequest, "That value does not contain a skin", true)
	}

	return canonicalSkin{URL: skin.URL, Value: value, Signature: signature}, nil
}

func (a *API) resolveAccount(ctx context.Context, id string) (canonicalSkin, *apiError) {
	profile, err := a.profiles.Profile(ctx, id)
	if err != nil {
		return canonicalSkin{}, a.internalError(err)
	}
	if profile == nil {
		return canonicalSkin{}, newError(http.StatusNoContent, "The UUID does not belong to any account", true)
	}

	textures, err := profile.Textures()
	if err != nil {
		return canonicalSkin{}, a.internalError(err)
	}
	if textures.SkinURL == "" || textures.Signature == "" {
		return canonicalSkin{}, newError(http.StatusBadRequest, "That user does not have a skin", true)
	}

	return canonicalSkin{URL: textures.SkinURL, Value: textures.Value, Signature: textures.Signature}, nil
}

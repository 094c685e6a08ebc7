package mojang

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Textures holds the skin location extracted from a profile together with
// the signed property it came from.
type Textures struct {
	SkinURL   string
	CapeURL   string
	Value     string
	Signature string
}

type texturePayload struct {
	Textures map[string]struct {
		URL string `json:"url"`
	} `json:"textures"`
}

// Textures decodes the base64 "textures" property of the profile. A profile
// without a textures property, or one whose payload carries no SKIN entry,
// yields a Textures with an empty SkinURL.
func (p *Profile) Textures() (Textures, error) {
	var prop *Property
	for i := range p.Properties {
		if p.Properties[i].Name == "textures" {
			prop = &p.Properties[i]
			break
		}
	}
	if prop == nil {
		return Textures{}, nil
	}

	raw, err := base64.StdEncoding.DecodeString(prop.Value)
	if err != nil {
		return Textures{}, fmt.Errorf("mojang: decode textures property: %w", err)
	}

	var payload texturePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Textures{}, fmt.Errorf("mojang: parse textures payload: %w", err)
	}

	t := Textures{
		Value:     prop.Value,
		Signature: prop.Signature,
	}
	if skin, ok := payload.Textures["SKIN"]; ok {
		t.SkinURL = skin.URL
	}
	if cape, ok := payload.Textures["CAPE"]; ok {
		t.CapeURL = cape.URL
	}
	return t, nil
}

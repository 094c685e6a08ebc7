package yggdrasil

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"
)

func newTestKeyPair(t *testing.T) (*rsa.PrivateKey, *Verifier) {
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

	verifier, err := NewVerifier(pemBytes)
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	return priv, verifier
}

func sign(t *testing.T, priv *rsa.PrivateKey, payload string) string {
	t.Helper()

	digest := sha1.Sum([]byte(payload))
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA1, digest[:])
	if err != nil {
		t.Fatalf("sign payload: %v", err)
	}
	return base64.StdEncoding.EncodeToString(sig)
}

func TestVerify(t *testing.T) {
	priv, verifier := newTestKeyPair(t)

	const payload = "eyJ0ZXh0dXJlcyI6e319"
	signature := sign(t, priv, payload)

	tests := []struct {
		name      string
		payload   string
		signature string
		want      bool
	}{
		{
			name:      "valid signature",
			payload:   payload,
			signature: signature,
			want:      true,
		},
		{
			name:      "tampered payload",
			payload:   payload + "x",
			signature: signature,
			want:      false,
		},
		{
			name:      "signature for different payload",
			payload:   payload,
			signature: sign(t, priv, "something else"),
			want:      false,
		},
		{
			name:      "malformed base64 signature",
			payload:   payload,
			signature: "not-base64!!!",
			want:      false,
		},
		{
			name:      "empty signature",
			payload:   payload,
			signature: "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := verifier.Verify(tt.payload, tt.signature); got != tt.want {
				t.Fatalf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerifySingleBitFlip(t *testing.T) {
	priv, verifier := newTestKeyPair(t)

	const payload = "some signed payload"
	signature := sign(t, priv, payload)

	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}
	raw[0] ^= 0x01
	flipped := base64.StdEncoding.EncodeToString(raw)

	if verifier.Verify(payload, flipped) {
		t.Fatal("Verify() accepted a signature with a flipped bit")
	}
}

func TestNewVerifierRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		pem  []byte
	}{
		{name: "empty input", pem: nil},
		{name: "not pem", pem: []byte("definitely not a key")},
		{name: "pem with garbage body", pem: []byte("-----BEGIN PUBLIC KEY-----\naGVsbG8=\n-----END PUBLIC KEY-----\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewVerifier(tt.pem); err == nil {
				t.Fatal("NewVerifier() accepted invalid key material")
			}
		})
	}
}

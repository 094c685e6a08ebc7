package yggdrasil

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// Verifier checks that texture payloads were signed by the Yggdrasil
// session servers. The public key is fixed for the lifetime of the process.
type Verifier struct {
	key *rsa.PublicKey
}

// NewVerifier parses a PEM-encoded RSA public key.
func NewVerifier(pemBytes []byte) (*Verifier, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("yggdrasil: no PEM block found in public key")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("yggdrasil: parse public key: %w", err)
	}

	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("yggdrasil: unexpected key type %T", parsed)
	}

	return &Verifier{key: key}, nil
}

// NewVerifierFromFile loads the session public key from disk.
func NewVerifierFromFile(path string) (*Verifier, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yggdrasil: read public key: %w", err)
	}
	return NewVerifier(pemBytes)
}

// Verify reports whether signatureB64 is a valid signature over the raw
// payload bytes. Yggdrasil signs with RSA over a SHA-1 digest. Malformed
// base64 and signature mismatches are both reported as false; callers must
// treat every false result as an untrusted payload.
func (v *Verifier) Verify(payload, signatureB64 string) bool {
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return false
	}

	digest := sha1.Sum([]byte(payload))
	return rsa.VerifyPKCS1v15(v.key, crypto.SHA1, digest[:], sig) == nil
}

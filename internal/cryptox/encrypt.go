package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// ErrInvalidPublicKey is returned when the provided key material cannot be
// parsed as an RSA public key.
var ErrInvalidPublicKey = errors.New("invalid public key")

// EncryptWithPublicKey encrypts plaintext with RSA-OAEP (SHA-256) using a
// PEM-encoded public key. Hashing covers the login path; this exists for
// payloads that require confidentiality rather than obfuscation.
func EncryptWithPublicKey(plaintext []byte, pemKey []byte) ([]byte, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, ErrInvalidPublicKey
	}

	var pub *rsa.PublicKey

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// PKCS#1 keys ("RSA PUBLIC KEY" blocks) are still common.
		pub, err = x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, ErrInvalidPublicKey
		}
	} else {
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, ErrInvalidPublicKey
		}
		pub = rsaKey
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}
	return ciphertext, nil
}

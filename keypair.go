// keypair.go: RSA key pair generation with PEM encoding.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
)

// RSAKeySize is the fixed modulus size in bits for generated key pairs.
// The policy is not parameterizable: 2048 bits is the floor for RSA today,
// and a single fixed size keeps the surface misuse-resistant.
const RSAKeySize = 2048

// ErrKeyGeneration is returned when the underlying primitive fails to
// produce a key pair. This is an environment/entropy failure and is not
// expected in normal operation.
var ErrKeyGeneration = errors.New("crypto: key generation error")

// ErrCodeKeyGen is the rich error code for key generation failures.
const ErrCodeKeyGen = "CRYPTO_KEY_GEN"

// PEM block types for the standard key-info encodings.
const (
	pemTypePublicKey  = "PUBLIC KEY"
	pemTypePrivateKey = "PRIVATE KEY"
)

// KeyPair holds one freshly generated RSA key pair as PEM text.
//
// PublicKey is PKIX/SPKI encoded ("BEGIN PUBLIC KEY"), PrivateKey is PKCS#8
// encoded ("BEGIN PRIVATE KEY"). Both halves come from a single generation
// call; the value is immutable and owned entirely by the caller.
type KeyPair struct {
	PublicKey  string    `json:"public_key"`  // PKIX/SPKI PEM
	PrivateKey string    `json:"private_key"` // PKCS#8 PEM
	CreatedAt  time.Time `json:"created_at"`  // Generation timestamp (UTC)
}

// GenerateKeyPair generates a fresh 2048-bit RSA key pair.
//
// The public key is encoded as PKIX/SPKI PEM and the private key as PKCS#8
// PEM, the standard key-info formats understood by the Signer/Verifier
// operations and by common external tooling.
//
// Returns:
//   - The generated KeyPair
//   - An error wrapping ErrKeyGeneration if the primitive or encoder fails
//
// Example:
//
//	pair, err := crypto.GenerateKeyPair()
//	if err != nil {
//		log.Fatal(err)
//	}
//	sig, _ := crypto.SignDefault("payload", pair.PrivateKey)
//	ok, _ := crypto.VerifySignatureDefault("payload", sig, pair.PublicKey)
//	fmt.Println(ok) // Output: true
//
// Key generation is the only operation in this package with non-trivial
// latency. There is no cancellation hook; callers needing one should wrap
// the call with their own timeout and abandon the result.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, RSAKeySize)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeKeyGen, "failed to generate RSA key pair")
		return nil, fmt.Errorf("%w: %w", ErrKeyGeneration, richErr)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeKeyGen, "failed to encode private key")
		return nil, fmt.Errorf("%w: %w", ErrKeyGeneration, richErr)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeKeyGen, "failed to encode public key")
		return nil, fmt.Errorf("%w: %w", ErrKeyGeneration, richErr)
	}

	return &KeyPair{
		PublicKey:  string(pem.EncodeToMemory(&pem.Block{Type: pemTypePublicKey, Bytes: pubDER})),
		PrivateKey: string(pem.EncodeToMemory(&pem.Block{Type: pemTypePrivateKey, Bytes: privDER})),
		CreatedAt:  timecache.CachedTime().UTC(),
	}, nil
}

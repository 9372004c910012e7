// keyutils.go: Key pair utilities for PEM parsing, fingerprinting, and zeroization.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/crypto/ssh"
)

// ErrInvalidKey is returned when a supplied key is structurally unusable
// (malformed PEM, wrong key type) for the requested operation.
var ErrInvalidKey = errors.New("crypto: invalid key")

// ErrCodeInvalidKey is the rich error code for structurally invalid keys.
const ErrCodeInvalidKey = "CRYPTO_INVALID_KEY"

// ParsePrivateKeyPEM parses a PEM-encoded RSA private key.
//
// PKCS#8 ("BEGIN PRIVATE KEY") is the primary format, matching what
// GenerateKeyPair produces; PKCS#1 ("BEGIN RSA PRIVATE KEY") is accepted
// as a fallback for keys generated by external tooling.
//
// Returns ErrInvalidKey if no PEM block is present, the block does not
// parse, or the parsed key is not an RSA key.
func ParsePrivateKeyPEM(pemText string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		richErr := goerrors.New(ErrCodeInvalidKey, "no PEM block found in private key")
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("private key is not an RSA key (got %T)", key))
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
		}
		return rsaKey, nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	richErr := goerrors.New(ErrCodeInvalidKey, "failed to parse private key (not PKCS#8 or PKCS#1)")
	return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
}

// ParsePublicKeyPEM parses a PEM-encoded RSA public key.
//
// PKIX/SPKI ("BEGIN PUBLIC KEY") is the primary format, matching what
// GenerateKeyPair produces; PKCS#1 ("BEGIN RSA PUBLIC KEY") is accepted
// as a fallback.
//
// Returns ErrInvalidKey if no PEM block is present, the block does not
// parse, or the parsed key is not an RSA key.
func ParsePublicKeyPEM(pemText string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		richErr := goerrors.New(ErrCodeInvalidKey, "no PEM block found in public key")
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}

	if key, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("public key is not an RSA key (got %T)", key))
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
		}
		return rsaKey, nil
	}
	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}

	richErr := goerrors.New(ErrCodeInvalidKey, "failed to parse public key (not PKIX or PKCS#1)")
	return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
}

// PublicKeyFingerprint returns the SHA-256 fingerprint of a PEM-encoded
// RSA public key in the standard "SHA256:..." form.
//
// The fingerprint is useful for logging, debugging, and identifying keys
// without exposing the key material itself.
//
// Example:
//
//	pair, _ := crypto.GenerateKeyPair()
//	fp, _ := crypto.PublicKeyFingerprint(pair.PublicKey)
//	fmt.Println(fp) // e.g., "SHA256:Qn3LKZ..."
func PublicKeyFingerprint(publicKeyPEM string) (string, error) {
	sshPub, err := sshPublicKey(publicKeyPEM)
	if err != nil {
		return "", err
	}
	return ssh.FingerprintSHA256(sshPub), nil
}

// PublicKeyToAuthorizedKey renders a PEM-encoded RSA public key as an
// OpenSSH authorized_keys line ("ssh-rsa AAAA...\n").
//
// This is an export convenience for deployments that distribute verification
// keys through SSH tooling; the Signer/Verifier operations themselves only
// consume PEM.
func PublicKeyToAuthorizedKey(publicKeyPEM string) (string, error) {
	sshPub, err := sshPublicKey(publicKeyPEM)
	if err != nil {
		return "", err
	}
	return string(ssh.MarshalAuthorizedKey(sshPub)), nil
}

func sshPublicKey(publicKeyPEM string) (ssh.PublicKey, error) {
	pub, err := ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return nil, err
	}
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeInvalidKey, "failed to convert public key for SSH encoding")
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, richErr)
	}
	return sshPub, nil
}

// Zeroize securely wipes a byte slice from memory.
//
// This function overwrites all bytes in the slice with zeros to prevent
// sensitive data from remaining in memory after use. The original slice is
// modified in place.
//
// Example:
//
//	raw := []byte(pair.PrivateKey)
//	// ... use the key material ...
//	crypto.Zeroize(raw)
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

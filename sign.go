// sign.go: Digital signature creation and verification using RSA key pairs.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/hex"

	goerrors "github.com/agilira/go-errors"
)

// DefaultSignAlgorithm is the digest algorithm used by SignDefault and
// VerifySignatureDefault.
const DefaultSignAlgorithm = SHA256

// ErrCodeSign is the rich error code for signing primitive failures.
const ErrCodeSign = "CRYPTO_SIGN"

// Sign creates an RSASSA-PKCS1-v1.5 signature over data using a PEM-encoded
// RSA private key and returns it as a lowercase hex string.
//
// The padding scheme is deterministic: identical (data, key, algorithm)
// inputs reproduce the same signature. The data is hashed internally with
// the given algorithm before signing.
//
// Parameters:
//   - data: The data to sign (cannot be empty or whitespace-only)
//   - privateKeyPEM: A PKCS#8 or PKCS#1 PEM private key (cannot be empty)
//   - algorithm: The digest algorithm used inside the signature scheme
//
// Returns:
//   - The hex-encoded signature
//   - ErrInvalidInput for bad parameters, ErrUnsupportedAlgorithm for an
//     unknown tag, ErrInvalidKey for a structurally invalid private key
//
// Example:
//
//	pair, _ := crypto.GenerateKeyPair()
//	sig, err := crypto.Sign("payload", pair.PrivateKey, crypto.SHA256)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(len(sig)) // Output: 512 (256-byte RSA-2048 signature)
func Sign(data, privateKeyPEM string, algorithm HashAlgorithm) (string, error) {
	if err := validateText(data, "data"); err != nil {
		return "", err
	}
	if err := validateText(privateKeyPEM, "privateKey"); err != nil {
		return "", err
	}
	h, err := algorithm.cryptoHash()
	if err != nil {
		return "", err
	}
	priv, err := ParsePrivateKeyPEM(privateKeyPEM)
	if err != nil {
		return "", err
	}

	hasher := h.New()
	hasher.Write([]byte(data))
	signature, err := rsa.SignPKCS1v15(rand.Reader, priv, h, hasher.Sum(nil))
	if err != nil {
		return "", goerrors.Wrap(err, ErrCodeSign, "failed to sign data")
	}
	return hex.EncodeToString(signature), nil
}

// SignDefault signs data with DefaultSignAlgorithm (SHA-256).
func SignDefault(data, privateKeyPEM string) (string, error) {
	return Sign(data, privateKeyPEM, DefaultSignAlgorithm)
}

// VerifySignature checks an RSASSA-PKCS1-v1.5 signature over data against a
// PEM-encoded RSA public key.
//
// Verification fails closed: a tampered, truncated, or extended signature,
// malformed signature hex, a wrong key, or mutated data all return
// (false, nil). A structurally invalid public key returns ErrInvalidKey
// instead, since that is a caller configuration error the caller must be
// able to distinguish from a bad signature.
//
// Parameters:
//   - data: The data the signature covers (cannot be empty or whitespace-only)
//   - signature: The hex-encoded signature (cannot be empty or whitespace-only)
//   - publicKeyPEM: A PKIX or PKCS#1 PEM public key (cannot be empty)
//   - algorithm: The digest algorithm used inside the signature scheme;
//     must match the one used at signing time
//
// Returns:
//   - true iff signature is a valid signature of data under publicKeyPEM
//   - ErrInvalidInput for bad parameters, ErrUnsupportedAlgorithm for an
//     unknown tag, ErrInvalidKey for a structurally invalid public key
//
// Callers must keep "could not evaluate" (non-nil error) distinct from
// "evaluated and did not match" (false, nil).
func VerifySignature(data, signature, publicKeyPEM string, algorithm HashAlgorithm) (bool, error) {
	if err := validateText(data, "data"); err != nil {
		return false, err
	}
	if err := validateText(signature, "signature"); err != nil {
		return false, err
	}
	if err := validateText(publicKeyPEM, "publicKey"); err != nil {
		return false, err
	}
	h, err := algorithm.cryptoHash()
	if err != nil {
		return false, err
	}
	pub, err := ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return false, err
	}

	if len(signature)%2 != 0 {
		return false, nil
	}

	// RSA-2048 signatures fit the pooled scratch buffer; larger caller
	// supplied keys fall back to a direct allocation.
	var raw []byte
	if hex.DecodedLen(len(signature)) <= signatureBufferSize {
		sigBuf := getSignatureBuffer()
		defer putSignatureBuffer(sigBuf)
		n, err := hex.Decode(*sigBuf, []byte(signature))
		if err != nil {
			return false, nil // malformed hex: fail closed
		}
		raw = (*sigBuf)[:n]
	} else {
		raw, err = hex.DecodeString(signature)
		if err != nil {
			return false, nil
		}
	}

	hasher := h.New()
	hasher.Write([]byte(data))
	if err := rsa.VerifyPKCS1v15(pub, h, hasher.Sum(nil), raw); err != nil {
		return false, nil
	}
	return true, nil
}

// VerifySignatureDefault verifies a signature with DefaultSignAlgorithm (SHA-256).
func VerifySignatureDefault(data, signature, publicKeyPEM string) (bool, error) {
	return VerifySignature(data, signature, publicKeyPEM, DefaultSignAlgorithm)
}

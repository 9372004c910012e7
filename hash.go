// hash.go: Message digest generation and constant-time hash verification.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"crypto"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"

	// Register the digest implementations behind crypto.Hash.
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
)

// HashAlgorithm identifies one of the supported message digest algorithms.
//
// The set is closed: any value outside the exported constants is rejected
// with ErrUnsupportedAlgorithm rather than silently falling back.
type HashAlgorithm string

const (
	// SHA1 selects SHA-1 (20-byte digest). Provided for interoperability
	// with legacy systems; do not use for new security-sensitive hashing.
	SHA1 HashAlgorithm = "sha1"

	// SHA256 selects SHA-256 (32-byte digest).
	SHA256 HashAlgorithm = "sha256"

	// SHA512 selects SHA-512 (64-byte digest).
	SHA512 HashAlgorithm = "sha512"

	// MD5 selects MD5 (16-byte digest). Provided for interoperability
	// with legacy systems; do not use for new security-sensitive hashing.
	MD5 HashAlgorithm = "md5"
)

// DefaultHashAlgorithm is the algorithm used by HashDefault and VerifyHashDefault.
const DefaultHashAlgorithm = SHA512

// hashAlgorithms maps each supported tag to its underlying primitive.
var hashAlgorithms = map[HashAlgorithm]crypto.Hash{
	SHA1:   crypto.SHA1,
	SHA256: crypto.SHA256,
	SHA512: crypto.SHA512,
	MD5:    crypto.MD5,
}

// Public standard errors for drop-in compatibility.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrUnsupportedAlgorithm is returned when a HashAlgorithm is not in the supported set.
	ErrUnsupportedAlgorithm = errors.New("crypto: unsupported hash algorithm")
)

// ErrCodeUnsupportedAlgorithm is the rich error code for unknown algorithm tags.
const ErrCodeUnsupportedAlgorithm = "CRYPTO_UNSUPPORTED_ALGORITHM"

// SupportedHashAlgorithms returns the closed set of supported algorithm tags.
func SupportedHashAlgorithms() []HashAlgorithm {
	return []HashAlgorithm{SHA1, SHA256, SHA512, MD5}
}

// Valid reports whether the algorithm is in the supported set.
func (a HashAlgorithm) Valid() bool {
	_, ok := hashAlgorithms[a]
	return ok
}

// String returns the primitive algorithm identifier for the tag.
func (a HashAlgorithm) String() string {
	return string(a)
}

// cryptoHash resolves the underlying primitive for a tag, failing with
// ErrUnsupportedAlgorithm for anything outside the closed set.
func (a HashAlgorithm) cryptoHash() (crypto.Hash, error) {
	h, ok := hashAlgorithms[a]
	if !ok {
		richErr := goerrors.New(ErrCodeUnsupportedAlgorithm, fmt.Sprintf("unsupported hash algorithm: %q", string(a)))
		return 0, fmt.Errorf("%w: %w", ErrUnsupportedAlgorithm, richErr)
	}
	return h, nil
}

// Hash computes the lowercase hex-encoded digest of text using the given algorithm.
//
// The operation is deterministic: the same (text, algorithm) pair always
// produces the same digest. Digest hex lengths are 40 (SHA1), 64 (SHA256),
// 128 (SHA512), and 32 (MD5).
//
// Parameters:
//   - text: The input text (cannot be empty or whitespace-only)
//   - algorithm: One of the supported HashAlgorithm tags
//
// Returns:
//   - The hex-encoded digest
//   - ErrInvalidInput if text fails validation, ErrUnsupportedAlgorithm for an unknown tag
//
// Example:
//
//	digest, err := crypto.Hash("hello world", crypto.SHA256)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(digest) // 64 hex characters
func Hash(text string, algorithm HashAlgorithm) (string, error) {
	if err := validateText(text, "text"); err != nil {
		return "", err
	}
	h, err := algorithm.cryptoHash()
	if err != nil {
		return "", err
	}
	hasher := h.New()
	hasher.Write([]byte(text)) // never returns an error
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// HashDefault computes the digest of text using DefaultHashAlgorithm (SHA-512).
func HashDefault(text string) (string, error) {
	return Hash(text, DefaultHashAlgorithm)
}

// VerifyHash re-derives the digest of text and compares it against hash in
// constant time.
//
// Both sides are hex-decoded to raw bytes before comparison. A length
// mismatch returns false immediately (the digest length is fixed and public
// for each algorithm, so it leaks nothing); equal-length byte sequences are
// compared with crypto/subtle so the comparison time does not depend on the
// position of the first differing byte.
//
// Malformed hex in hash (odd length, non-hex characters) returns (false, nil)
// rather than a decode error: the case is already "not a match", and a
// distinguishable failure mode would leak more than the boolean does.
//
// Parameters:
//   - text: The input text to verify (cannot be empty or whitespace-only)
//   - hash: The hex-encoded digest to verify against (cannot be empty or whitespace-only)
//   - algorithm: One of the supported HashAlgorithm tags
//
// Returns:
//   - true only on exact byte-for-byte equality of the decoded digests
//   - ErrInvalidInput if text or hash fails validation, ErrUnsupportedAlgorithm for an unknown tag
//
// Callers must keep "could not evaluate" (non-nil error) distinct from
// "evaluated and did not match" (false, nil).
//
// Example:
//
//	digest, _ := crypto.Hash("hello world", crypto.SHA256)
//	ok, err := crypto.VerifyHash("hello world", digest, crypto.SHA256)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(ok) // Output: true
func VerifyHash(text, hash string, algorithm HashAlgorithm) (bool, error) {
	if err := validateText(text, "text"); err != nil {
		return false, err
	}
	if err := validateText(hash, "hash"); err != nil {
		return false, err
	}

	derived, err := Hash(text, algorithm)
	if err != nil {
		return false, err
	}

	// A supplied hash longer than any supported digest cannot match; bail
	// before touching the fixed-size scratch buffers.
	if len(hash)%2 != 0 || hex.DecodedLen(len(hash)) > digestBufferSize {
		return false, nil
	}

	suppliedBuf := getDigestBuffer()
	defer putDigestBuffer(suppliedBuf)
	n, err := hex.Decode(*suppliedBuf, []byte(hash))
	if err != nil {
		return false, nil // malformed hex: fail closed
	}
	supplied := (*suppliedBuf)[:n]

	derivedBuf := getDigestBuffer()
	defer putDigestBuffer(derivedBuf)
	dn, err := hex.Decode(*derivedBuf, []byte(derived))
	if err != nil {
		return false, nil
	}
	derivedRaw := (*derivedBuf)[:dn]

	if len(supplied) != len(derivedRaw) {
		return false, nil
	}
	return subtle.ConstantTimeCompare(derivedRaw, supplied) == 1, nil
}

// VerifyHashDefault verifies hash against text using DefaultHashAlgorithm (SHA-512).
func VerifyHashDefault(text, hash string) (bool, error) {
	return VerifyHash(text, hash, DefaultHashAlgorithm)
}

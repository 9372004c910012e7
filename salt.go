// salt.go: Cryptographically secure random salt generation.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
)

// DefaultSaltSize is the salt length in bytes used by GenerateSaltDefault.
const DefaultSaltSize = 16

// ErrInvalidSaltSize is returned when the requested salt length is not positive.
var ErrInvalidSaltSize = errors.New("crypto: invalid salt size")

// Error codes for rich error handling.
const (
	ErrCodeInvalidSaltSize = "CRYPTO_INVALID_SALT_SIZE"
	ErrCodeSaltGen         = "CRYPTO_SALT_GEN"
)

// GenerateSalt generates size random bytes from the operating system CSPRNG
// and returns them hex-encoded.
//
// The output string length is exactly 2*size. Each call is independent:
// there is no cross-call state and no reseed scheduling exposed to callers.
//
// Parameters:
//   - size: The number of random bytes to draw (must be >= 1)
//
// Returns:
//   - A lowercase hex-encoded string of length 2*size
//   - ErrInvalidSaltSize if size <= 0, or an error if the entropy source fails
//
// Example:
//
//	salt, err := crypto.GenerateSalt(16)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(len(salt)) // Output: 32
func GenerateSalt(size int) (string, error) {
	if size <= 0 {
		richErr := goerrors.New(ErrCodeInvalidSaltSize, fmt.Sprintf("salt size must be positive, got %d", size))
		return "", fmt.Errorf("%w: %w", ErrInvalidSaltSize, richErr)
	}
	salt := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", goerrors.Wrap(err, ErrCodeSaltGen, "failed to generate salt")
	}
	return hex.EncodeToString(salt), nil
}

// GenerateSaltDefault generates a salt of DefaultSaltSize (16) bytes.
//
// The returned string is 32 hex characters, a sensible default for
// password-storage salting.
func GenerateSaltDefault() (string, error) {
	return GenerateSalt(DefaultSaltSize)
}

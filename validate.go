// validate.go: Input validation guarding every public operation.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/agilira/go-errors"
)

// ErrInvalidInput is returned when a required string parameter is missing,
// not a string, empty, or whitespace-only.
var ErrInvalidInput = errors.New("crypto: invalid input")

// ErrCodeInvalidInput is the rich error code attached to input validation failures.
const ErrCodeInvalidInput = "CRYPTO_INVALID_INPUT"

// ValidateInput checks that input is a string whose whitespace-trimmed value
// is non-empty. Non-string values are rejected outright rather than coerced.
//
// This is the guard applied to every string parameter accepted by the package
// operations, exposed so callers with dynamically typed inputs (configuration
// values, plugin payloads) can apply the same contract before calling in.
//
// Parameters:
//   - input: The value to validate (must be a string)
//   - fieldName: The parameter name used in the error message (may be empty)
//
// Returns:
//   - nil if input is a non-empty, non-whitespace string
//   - An error wrapping ErrInvalidInput otherwise
//
// The function never logs and never mutates its input.
func ValidateInput(input any, fieldName string) error {
	text, ok := input.(string)
	if !ok {
		richErr := goerrors.New(ErrCodeInvalidInput, fmt.Sprintf("%s must be a string (got %T)", fieldOrDefault(fieldName), input))
		return fmt.Errorf("%w: %w", ErrInvalidInput, richErr)
	}
	return validateText(text, fieldName)
}

// validateText is the typed fast path used internally by the package operations.
func validateText(text, fieldName string) error {
	if strings.TrimSpace(text) == "" {
		richErr := goerrors.New(ErrCodeInvalidInput, fmt.Sprintf("%s cannot be empty or whitespace", fieldOrDefault(fieldName)))
		return fmt.Errorf("%w: %w", ErrInvalidInput, richErr)
	}
	return nil
}

func fieldOrDefault(name string) string {
	if name == "" {
		return "input"
	}
	return name
}

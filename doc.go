// Package crypto provides a small, misuse-resistant facade over established
// cryptographic primitives for Go applications.
//
// This package offers four capability groups:
//   - Text hashing and constant-time hash verification (SHA-1, SHA-256, SHA-512, MD5)
//   - Cryptographically secure random salt generation
//   - RSA-2048 key pair generation with standard PEM encoding
//   - Digital signature creation and verification (RSASSA-PKCS1-v1.5)
//
// Every operation is a pure function from inputs to an output or error:
// there is no shared mutable state, no setup or teardown, and all operations
// are safe for concurrent use. Every string parameter is validated before
// any cryptographic work begins, and all secret comparisons run in constant
// time to prevent timing side-channels.
//
// # Quick Start
//
// Hashing and verification:
//
//	digest, err := crypto.HashDefault("my-password" + salt)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ok, err := crypto.VerifyHashDefault("my-password"+salt, digest)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(ok) // Output: true
//
// Salts:
//
//	salt, err := crypto.GenerateSalt(16) // 32 hex characters
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Key pairs and signatures:
//
//	pair, err := crypto.GenerateKeyPair()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sig, err := crypto.SignDefault("payload", pair.PrivateKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ok, err := crypto.VerifySignatureDefault("payload", sig, pair.PublicKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(ok) // Output: true
//
// # Encoding Conventions
//
// All digests, salts, and signatures are lowercase hex strings with no
// separators. Keys are PEM text: PKIX/SPKI for public keys ("BEGIN PUBLIC
// KEY") and PKCS#8 for private keys ("BEGIN PRIVATE KEY").
//
// # Error Handling
//
// All functions return standard Go errors for maximum compatibility.
// For advanced error handling with rich error details, the library integrates
// with github.com/agilira/go-errors.
//
// Example error handling:
//
//	ok, err := crypto.VerifyHash(text, hash, crypto.SHA512)
//	if err != nil {
//		if errors.Is(err, crypto.ErrInvalidInput) {
//			// Handle missing/empty parameters
//		} else if errors.Is(err, crypto.ErrUnsupportedAlgorithm) {
//			// Handle unknown algorithm tag
//		}
//		// Handle other errors
//	}
//
// Verification operations keep two outcomes strictly apart: a non-nil error
// means the operation could not be evaluated (bad input, unknown algorithm,
// malformed key), while (false, nil) means it was evaluated and the material
// does not match. Malformed hex supplied to a verifier is deliberately
// treated as "no match" rather than a distinct failure mode.
//
// # Security Considerations
//
// Hash verification decodes both digests to raw bytes and compares them with
// crypto/subtle in time independent of where they first differ. SHA-1 and
// MD5 are included for interoperability with legacy systems only; use
// SHA-256 or SHA-512 for new code. Key generation policy is fixed at
// RSA-2048 with no parameterization, and salts are always drawn from the
// operating system CSPRNG.
//
// # Hardware Security Module (HSM) Support
//
// Deployments that must keep private keys inside hardware boundaries can
// route key generation, signing, and verification through a SignerProvider
// plugin using the go-plugins architecture:
//
//	manager, err := crypto.NewSignerManager(nil, pluginManager)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := manager.RegisterProvider("pkcs11", provider); err != nil {
//		log.Fatal(err)
//	}
//	signer, err := manager.GetProvider("")
//
// Provider-backed signatures are hex-encoded and provider-generated keys are
// PEM-encoded, so hardware-backed material is interchangeable with the
// software operations of this package.
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra library
// SPDX-License-Identifier: MPL-2.0
package crypto

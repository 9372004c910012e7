// hsm.go: Hardware Security Module (HSM) signing-provider interface.
//
// This module provides a plugin-based architecture powered by github.com/agilira/go-plugins
// for delegating key pair generation, signing, and verification to external
// providers such as PKCS#11 devices and cloud HSMs. The core package
// operations never require a provider; this surface exists for deployments
// that must keep private keys inside hardware boundaries.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"context"
	"fmt"
	"sync"
	"time"

	goerrors "github.com/agilira/go-errors"
	goplugins "github.com/agilira/go-plugins"
	"github.com/agilira/go-timecache"
)

// SignerCapability represents specific provider capabilities.
type SignerCapability string

const (
	CapabilityGenerateKeyPair SignerCapability = "generate_keypair"  // RSA key pair generation
	CapabilitySign            SignerCapability = "sign"              // Digital signature creation
	CapabilityVerify          SignerCapability = "verify"            // Signature verification
	CapabilityRandom          SignerCapability = "random_generation" // Hardware RNG
)

// SignerKeyInfo represents metadata about keys held by a provider.
//
// Providers that keep key material non-extractable return only the public
// half (as PEM) plus this metadata.
type SignerKeyInfo struct {
	ID          string            `json:"id"`          // Unique key identifier in the provider
	Label       string            `json:"label"`       // Human-readable label
	Algorithm   HashAlgorithm     `json:"algorithm"`   // Digest algorithm bound to the key, if any
	Size        int               `json:"size"`        // Key size in bits
	CreatedAt   time.Time         `json:"created_at"`  // Creation timestamp
	Extractable bool              `json:"extractable"` // Whether private material can leave the provider
	Metadata    map[string]string `json:"metadata"`    // Provider-specific metadata
}

// SignerOperationContext provides context for provider operations.
type SignerOperationContext struct {
	Context   context.Context   `json:"-"`         // Go context for cancellation/timeout
	KeyID     string            `json:"key_id"`    // Key identifier for the operation
	Algorithm HashAlgorithm     `json:"algorithm"` // Digest algorithm for sign/verify
	Metadata  map[string]string `json:"metadata"`  // Operation metadata
}

// SignerProvider defines the interface that all signing-provider plugins
// must implement.
//
// Sign returns hex-encoded signatures and GenerateKeyPair returns PEM-encoded
// keys so provider-backed material is interchangeable with the software
// operations of this package.
type SignerProvider interface {
	// Provider Information
	Name() string                     // Provider name (e.g., "pkcs11", "aws-cloudhsm")
	Version() string                  // Provider version
	Capabilities() []SignerCapability // Supported capabilities

	// Lifecycle Management
	Initialize(ctx context.Context, config map[string]interface{}) error // Initialize provider connection
	Close() error                                                        // Clean shutdown and resource cleanup
	IsHealthy() bool                                                     // Health check status

	// Key Management
	GenerateKeyPair(ctx SignerOperationContext) (*KeyPair, error)
	GetKeyInfo(ctx SignerOperationContext) (*SignerKeyInfo, error)

	// Signature Operations
	Sign(ctx SignerOperationContext, data []byte) (string, error)
	Verify(ctx SignerOperationContext, data []byte, signature string) (bool, error)

	// Random Number Generation
	GenerateRandom(ctx context.Context, length int) ([]byte, error)
}

// SignerManager manages multiple signing providers using the go-plugins framework.
type SignerManager struct {
	mu              sync.RWMutex
	pluginManager   *goplugins.Manager[SignerRequest, SignerResponse] // Plugin manager for provider plugins
	activeProviders map[string]SignerProvider                         // Active provider instances
	registeredAt    map[string]time.Time                              // Registration timestamps
	defaultProvider string                                            // Default provider name
	config          *SignerManagerConfig                              // Manager configuration
}

// SignerManagerConfig provides configuration for the signer manager.
type SignerManagerConfig struct {
	DefaultProvider     string                            `json:"default_provider"`      // Default provider to use
	ProviderConfigs     map[string]map[string]interface{} `json:"provider_configs"`      // Per-provider configurations
	HealthCheckInterval time.Duration                     `json:"health_check_interval"` // Health check frequency
	OperationTimeout    time.Duration                     `json:"operation_timeout"`     // Default operation timeout
}

// SignerRequest represents a request to a signing-provider plugin.
type SignerRequest struct {
	Operation string                 `json:"operation"` // Operation type (sign, verify, generate_keypair, random)
	Context   SignerOperationContext `json:"context"`   // Operation context
	Data      []byte                 `json:"data"`      // Operation data
	Signature string                 `json:"signature"` // Hex signature (verify requests)
}

// SignerResponse represents a response from a signing-provider plugin.
type SignerResponse struct {
	Success   bool        `json:"success"`   // Operation success status
	Data      []byte      `json:"data"`      // Response data (random bytes)
	Signature string      `json:"signature"` // Hex signature (sign responses)
	KeyPair   *KeyPair    `json:"key_pair"`  // Key pair (generation responses)
	Verified  bool        `json:"verified"`  // Verification outcome (verify responses)
	Error     string      `json:"error"`     // Error message (if any)
	Metadata  interface{} `json:"metadata"`  // Response metadata
}

// Common signer-provider errors with proper error codes for auditing.
var (
	ErrSignerNotInitialized   = goerrors.New("SIGNER_001", "signing provider not initialized")
	ErrSignerKeyNotFound      = goerrors.New("SIGNER_002", "key not found in signing provider")
	ErrSignerOperationFailed  = goerrors.New("SIGNER_003", "signing provider operation failed")
	ErrSignerProviderNotFound = goerrors.New("SIGNER_004", "signing provider not found")
	ErrSignerUnhealthy        = goerrors.New("SIGNER_005", "signing provider health check failed")
	ErrSignerCapability       = goerrors.New("SIGNER_006", "capability not supported by signing provider")
)

// NewSignerManager creates a new signer manager with plugin support.
func NewSignerManager(config *SignerManagerConfig, pluginManager *goplugins.Manager[SignerRequest, SignerResponse]) (*SignerManager, error) {
	if config == nil {
		config = &SignerManagerConfig{
			HealthCheckInterval: 30 * time.Second,
			OperationTimeout:    10 * time.Second,
		}
	}

	manager := &SignerManager{
		pluginManager:   pluginManager,
		activeProviders: make(map[string]SignerProvider),
		registeredAt:    make(map[string]time.Time),
		config:          config,
	}

	return manager, nil
}

// RegisterProvider registers and initializes a signing provider.
func (s *SignerManager) RegisterProvider(name string, provider SignerProvider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}

	ctx := context.Background()
	if timeout := s.config.OperationTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	providerConfig := s.config.ProviderConfigs[name]
	if err := provider.Initialize(ctx, providerConfig); err != nil {
		return fmt.Errorf("failed to initialize signing provider %s: %w", name, err)
	}

	s.activeProviders[name] = provider
	s.registeredAt[name] = timecache.CachedTime().UTC()

	// Set as default if it's the first provider or explicitly configured
	if s.defaultProvider == "" || s.config.DefaultProvider == name {
		s.defaultProvider = name
	}

	return nil
}

// GetProvider returns a signing provider by name. An empty name selects the
// default provider. Unhealthy providers are not returned.
func (s *SignerManager) GetProvider(name string) (SignerProvider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == "" {
		name = s.defaultProvider
	}

	provider, exists := s.activeProviders[name]
	if !exists {
		return nil, fmt.Errorf("%w: provider %s", ErrSignerProviderNotFound, name)
	}

	if !provider.IsHealthy() {
		return nil, fmt.Errorf("%w: provider %s", ErrSignerUnhealthy, name)
	}

	return provider, nil
}

// ProviderRegisteredAt returns when a provider was registered with the manager.
func (s *SignerManager) ProviderRegisteredAt(name string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ts, ok := s.registeredAt[name]
	return ts, ok
}

// Close shuts down all registered signing providers.
func (s *SignerManager) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for name, provider := range s.activeProviders {
		if err := provider.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close signing provider %s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to close some signing providers: %v", errs)
	}

	return nil
}

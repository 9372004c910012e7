// hsm_test.go: Tests for the signing-provider manager.
//
// This test suite covers manager initialization and lifecycle, provider
// registration and lookup, health-check gating, and error paths, using a
// mock provider backed by the package's own software operations.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"context"
	"crypto/rand"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSignerProvider implements SignerProvider for testing. It delegates to
// the package's software operations, which is exactly what a software
// fallback provider would do.
type mockSignerProvider struct {
	name        string
	version     string
	initialized bool
	healthy     bool
	shouldFail  bool
	pair        *KeyPair
}

func newMockSignerProvider(name, version string) *mockSignerProvider {
	return &mockSignerProvider{
		name:    name,
		version: version,
		healthy: true,
	}
}

func (m *mockSignerProvider) Name() string {
	return m.name
}

func (m *mockSignerProvider) Version() string {
	return m.version
}

func (m *mockSignerProvider) Capabilities() []SignerCapability {
	return []SignerCapability{CapabilityGenerateKeyPair, CapabilitySign, CapabilityVerify, CapabilityRandom}
}

func (m *mockSignerProvider) Initialize(ctx context.Context, config map[string]interface{}) error {
	if m.shouldFail {
		return ErrSignerNotInitialized
	}
	m.initialized = true
	return nil
}

func (m *mockSignerProvider) Close() error {
	m.initialized = false
	return nil
}

func (m *mockSignerProvider) IsHealthy() bool {
	return m.healthy && m.initialized
}

func (m *mockSignerProvider) GenerateKeyPair(ctx SignerOperationContext) (*KeyPair, error) {
	if !m.initialized {
		return nil, ErrSignerNotInitialized
	}
	pair, err := GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	m.pair = pair
	return pair, nil
}

func (m *mockSignerProvider) GetKeyInfo(ctx SignerOperationContext) (*SignerKeyInfo, error) {
	if !m.initialized {
		return nil, ErrSignerNotInitialized
	}
	if m.pair == nil {
		return nil, ErrSignerKeyNotFound
	}
	return &SignerKeyInfo{
		ID:          ctx.KeyID,
		Label:       "Mock Signing Key",
		Algorithm:   SHA256,
		Size:        RSAKeySize,
		CreatedAt:   m.pair.CreatedAt,
		Extractable: true,
		Metadata:    make(map[string]string),
	}, nil
}

func (m *mockSignerProvider) Sign(ctx SignerOperationContext, data []byte) (string, error) {
	if !m.initialized {
		return "", ErrSignerNotInitialized
	}
	if m.pair == nil {
		return "", ErrSignerKeyNotFound
	}
	return Sign(string(data), m.pair.PrivateKey, ctx.Algorithm)
}

func (m *mockSignerProvider) Verify(ctx SignerOperationContext, data []byte, signature string) (bool, error) {
	if !m.initialized {
		return false, ErrSignerNotInitialized
	}
	if m.pair == nil {
		return false, ErrSignerKeyNotFound
	}
	return VerifySignature(string(data), signature, m.pair.PublicKey, ctx.Algorithm)
}

func (m *mockSignerProvider) GenerateRandom(ctx context.Context, length int) ([]byte, error) {
	if !m.initialized {
		return nil, ErrSignerNotInitialized
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func TestNewSignerManager(t *testing.T) {
	t.Run("WithNilConfig", func(t *testing.T) {
		manager, err := NewSignerManager(nil, nil)
		require.NoError(t, err)
		require.NotNil(t, manager)
		assert.Equal(t, 30*time.Second, manager.config.HealthCheckInterval)
		assert.Equal(t, 10*time.Second, manager.config.OperationTimeout)
	})

	t.Run("WithCustomConfig", func(t *testing.T) {
		config := &SignerManagerConfig{
			DefaultProvider:  "pkcs11",
			OperationTimeout: 5 * time.Second,
		}
		manager, err := NewSignerManager(config, nil)
		require.NoError(t, err)
		assert.Equal(t, "pkcs11", manager.config.DefaultProvider)
	})
}

func TestSignerManager_RegisterProvider(t *testing.T) {
	manager, err := NewSignerManager(nil, nil)
	require.NoError(t, err)

	t.Run("RejectsNilProvider", func(t *testing.T) {
		err := manager.RegisterProvider("nil-provider", nil)
		assert.Error(t, err)
	})

	t.Run("RegistersAndInitializes", func(t *testing.T) {
		provider := newMockSignerProvider("softsign", "1.0.0")
		require.NoError(t, manager.RegisterProvider("softsign", provider))
		assert.True(t, provider.initialized)

		ts, ok := manager.ProviderRegisteredAt("softsign")
		assert.True(t, ok)
		assert.False(t, ts.IsZero())
	})

	t.Run("FirstProviderBecomesDefault", func(t *testing.T) {
		got, err := manager.GetProvider("")
		require.NoError(t, err)
		assert.Equal(t, "softsign", got.Name())
	})

	t.Run("PropagatesInitializeFailure", func(t *testing.T) {
		failing := newMockSignerProvider("broken", "1.0.0")
		failing.shouldFail = true
		err := manager.RegisterProvider("broken", failing)
		assert.Error(t, err)
	})
}

func TestSignerManager_GetProvider(t *testing.T) {
	manager, err := NewSignerManager(nil, nil)
	require.NoError(t, err)

	provider := newMockSignerProvider("softsign", "1.0.0")
	require.NoError(t, manager.RegisterProvider("softsign", provider))

	t.Run("ByName", func(t *testing.T) {
		got, err := manager.GetProvider("softsign")
		require.NoError(t, err)
		assert.Equal(t, "softsign", got.Name())
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		_, err := manager.GetProvider("missing")
		assert.ErrorIs(t, err, ErrSignerProviderNotFound)
	})

	t.Run("UnhealthyProviderRejected", func(t *testing.T) {
		provider.healthy = false
		_, err := manager.GetProvider("softsign")
		assert.ErrorIs(t, err, ErrSignerUnhealthy)
		provider.healthy = true
	})
}

func TestSignerManager_ProviderOperations(t *testing.T) {
	manager, err := NewSignerManager(nil, nil)
	require.NoError(t, err)
	require.NoError(t, manager.RegisterProvider("softsign", newMockSignerProvider("softsign", "1.0.0")))

	provider, err := manager.GetProvider("")
	require.NoError(t, err)

	opCtx := SignerOperationContext{
		Context:   context.Background(),
		KeyID:     "test-key",
		Algorithm: SHA256,
	}

	pair, err := provider.GenerateKeyPair(opCtx)
	require.NoError(t, err)
	require.NotNil(t, pair)

	data := []byte("provider-backed payload")
	sig, err := provider.Sign(opCtx, data)
	require.NoError(t, err)

	// Provider output is interchangeable with the software verifier.
	ok, err := VerifySignature(string(data), sig, pair.PublicKey, SHA256)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = provider.Verify(opCtx, data, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	info, err := provider.GetKeyInfo(opCtx)
	require.NoError(t, err)
	assert.Equal(t, "test-key", info.ID)
	assert.Equal(t, RSAKeySize, info.Size)

	random, err := provider.GenerateRandom(context.Background(), 16)
	require.NoError(t, err)
	assert.Len(t, random, 16)
}

func TestSignerManager_Close(t *testing.T) {
	manager, err := NewSignerManager(nil, nil)
	require.NoError(t, err)

	first := newMockSignerProvider("first", "1.0.0")
	second := newMockSignerProvider("second", "1.0.0")
	require.NoError(t, manager.RegisterProvider("first", first))
	require.NoError(t, manager.RegisterProvider("second", second))

	require.NoError(t, manager.Close())
	assert.False(t, first.initialized)
	assert.False(t, second.initialized)
}

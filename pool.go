// pool.go: Scratch buffer pooling for digest and signature hex decoding.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"sync"
)

const (
	// digestBufferSize fits the largest supported raw digest (SHA-512, 64 bytes).
	digestBufferSize = 64

	// signatureBufferSize fits a raw RSA-2048 signature (256 bytes).
	signatureBufferSize = 256
)

var (
	// Pools use pointers to slices to avoid allocations on Put (SA6002).
	digestBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, digestBufferSize)
			return &buf
		},
	}

	signatureBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, signatureBufferSize)
			return &buf
		},
	}
)

// getDigestBuffer retrieves a digest-sized scratch buffer from the pool.
func getDigestBuffer() *[]byte {
	buf := digestBufferPool.Get().(*[]byte)
	*buf = (*buf)[:digestBufferSize]
	return buf
}

// putDigestBuffer zeroes and returns a digest scratch buffer to the pool.
// Buffers hold decoded digest material, so they are always cleared before reuse.
func putDigestBuffer(buf *[]byte) {
	if buf == nil {
		return
	}
	clearBuffer(*buf)
	digestBufferPool.Put(buf)
}

// getSignatureBuffer retrieves a signature-sized scratch buffer from the pool.
func getSignatureBuffer() *[]byte {
	buf := signatureBufferPool.Get().(*[]byte)
	*buf = (*buf)[:signatureBufferSize]
	return buf
}

// putSignatureBuffer zeroes and returns a signature scratch buffer to the pool.
func putSignatureBuffer(buf *[]byte) {
	if buf == nil {
		return
	}
	clearBuffer(*buf)
	signatureBufferPool.Put(buf)
}

// clearBuffer zeroes a buffer before it goes back to a pool. Scratch buffers
// here are at most signatureBufferSize bytes, so a simple range loop is the
// cache-friendly choice.
func clearBuffer(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

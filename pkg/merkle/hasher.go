// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"fmt"
	"hash"
	"sort"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// BaseHasherFunc is a hash.Hash constructor function used for the base hash of the tree.
type BaseHasherFunc func() hash.Hash

const (
	SHA256    = "sha256"
	Keccak256 = "keccak256"
	Blake3    = "blake3"
)

// DefaultHasher is the base hash used when no WithHasher option is given.
var DefaultHasher BaseHasherFunc = NewSHA256

var hashers = map[string]BaseHasherFunc{
	SHA256:    NewSHA256,
	Keccak256: NewKeccak256,
	Blake3:    NewBlake3,
}

// NewSHA256 returns a SIMD accelerated SHA-256 hash.
func NewSHA256() hash.Hash {
	return sha256.New()
}

// NewKeccak256 returns the legacy Keccak256 SHA3 hash.
func NewKeccak256() hash.Hash {
	return sha3.NewLegacyKeccak256()
}

// NewBlake3 returns an unkeyed BLAKE3 hash with a 32 byte digest.
func NewBlake3() hash.Hash {
	return blake3.New(32, nil)
}

// HasherByName returns the base hasher registered under name.
func HasherByName(name string) (BaseHasherFunc, error) {
	h, ok := hashers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
	return h, nil
}

// HasherNames returns the sorted names accepted by HasherByName.
func HasherNames() []string {
	names := make([]string, 0, len(hashers))
	for name := range hashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LeafHash returns the leaf digest H(id) that Build commits to for the identifier id.
func LeafHash(hasher BaseHasherFunc, id []byte) ([]byte, error) {
	return doHash(hasher(), id)
}

// calculates the hash of the data using hash.Hash
func doHash(h hash.Hash, data ...[]byte) ([]byte, error) {
	h.Reset()
	for _, v := range data {
		if _, err := h.Write(v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHashing, err)
		}
	}
	return h.Sum(nil), nil
}

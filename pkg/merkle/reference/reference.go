// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reference is a simple recursive implementation of the merkle root
// computation. It works on plain digests instead of nodes and is meant as a
// reference to check the optimised merkle.Build against.
package reference

import (
	"errors"
	"hash"
)

var ErrEmpty = errors.New("reference: no identifiers")

// RefHasher computes the root digest of an identifier sequence.
type RefHasher struct {
	hasher hash.Hash
}

// NewRefHasher returns a new RefHasher using the base hash h.
func NewRefHasher(h hash.Hash) *RefHasher {
	return &RefHasher{hasher: h}
}

// Hash returns the root digest committing to the ordered identifiers.
func (rh *RefHasher) Hash(ids [][]byte) ([]byte, error) {
	if len(ids) == 0 {
		return nil, ErrEmpty
	}
	level := make([][]byte, len(ids))
	for i, id := range ids {
		level[i] = rh.sum(id)
	}
	return rh.reduce(level), nil
}

// reduce hashes pairs of the level recursively until a single digest is left,
// duplicating the last digest of every odd sized level.
func (rh *RefHasher) reduce(level [][]byte) []byte {
	if len(level) == 1 {
		return level[0]
	}
	if len(level)%2 == 1 {
		level = append(level, level[len(level)-1])
	}
	parents := make([][]byte, len(level)/2)
	for i := range parents {
		parents[i] = rh.sum(level[2*i], level[2*i+1])
	}
	return rh.reduce(parents)
}

func (rh *RefHasher) sum(data ...[]byte) []byte {
	rh.hasher.Reset()
	for _, d := range data {
		_, _ = rh.hasher.Write(d)
	}
	return rh.hasher.Sum(nil)
}

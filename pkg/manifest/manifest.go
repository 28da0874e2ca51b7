// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest loads the files of a directory into an ordered list of
// content digests, the identifiers a merkle tree is built from, and maps
// tree leaves back to the file paths they commit to.
package manifest

import (
	"encoding/hex"
	"fmt"

	"github.com/ethersphere/mtree/pkg/merkle"
)

// Entry is a file and the digest of its contents.
type Entry struct {
	Path   string
	Digest []byte
}

// Manifest is the ordered list of files loaded from a directory.
type Manifest struct {
	entries []Entry
	hasher  merkle.BaseHasherFunc
	leaves  map[string][]string // hex leaf digest -> paths
}

// New returns a manifest over the given entries. The hasher must be the base
// hash the tree is built with, it is used to map leaf digests to paths.
func New(entries []Entry, hasher merkle.BaseHasherFunc) (*Manifest, error) {
	m := &Manifest{
		entries: entries,
		hasher:  hasher,
		leaves:  make(map[string][]string, len(entries)),
	}
	for _, e := range entries {
		leaf, err := merkle.LeafHash(hasher, e.Digest)
		if err != nil {
			return nil, fmt.Errorf("leaf hash %s: %w", e.Path, err)
		}
		key := hex.EncodeToString(leaf)
		m.leaves[key] = append(m.leaves[key], e.Path)
	}
	return m, nil
}

// Entries returns the entries in path order.
func (m *Manifest) Entries() []Entry {
	return m.entries
}

func (m *Manifest) Len() int {
	return len(m.entries)
}

// Identifiers returns the ordered content digests, the input for merkle.Build.
func (m *Manifest) Identifiers() [][]byte {
	ids := make([][]byte, len(m.entries))
	for i, e := range m.entries {
		ids[i] = e.Digest
	}
	return ids
}

// Lookup returns the paths of all files with the given content digest.
func (m *Manifest) Lookup(digest []byte) []string {
	var paths []string
	for _, e := range m.entries {
		if string(e.Digest) == string(digest) {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// Resolve returns the paths of all files committed to by the leaf digest
// of a tree built from this manifest.
func (m *Manifest) Resolve(leaf []byte) []string {
	return m.leaves[hex.EncodeToString(leaf)]
}

// Tree builds the merkle tree over the manifest identifiers with its base hash.
func (m *Manifest) Tree(opts ...merkle.Option) (*merkle.Tree, error) {
	return merkle.Build(m.Identifiers(), append([]merkle.Option{merkle.WithHasher(m.hasher)}, opts...)...)
}

// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package merkle builds and compares binary Merkle hash trees over an
// ordered sequence of identifiers.
//
// A tree is built bottom-up. Each identifier is hashed once with the base
// hash function H to become a leaf. Adjacent nodes of a level are then paired
// left to right and every pair is committed to by a parent node with digest
// H(left|right). Whenever a level holds an odd number of nodes its last node
// is duplicated, so every internal node has exactly two children and a tree
// over n leaves has height ceil(log2(n)). A single identifier yields a tree
// of height 0 whose root is the leaf itself.
//
// The root digest is a deterministic function of the ordered identifiers:
// building twice from the same sequence always yields the same root, and
// reordering the sequence changes it.
//
// Two trees of identical shape are compared with a synchronized breadth-first
// walk that only descends into subtrees whose digests disagree. Every
// divergent pair on a path from the root down to a leaf is reported, so the
// cost is proportional to the tree height times the number of leaves that
// actually differ.
//
// The base hash is pluggable with WithHasher. SHA-256 is used by default,
// Keccak256 and BLAKE3 are available by name through HasherByName.
package merkle

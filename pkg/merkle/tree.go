// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"hash"
	"time"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the minimum number of hashes on a level
// before the work is split between goroutines.
const parallelThreshold = 256

// Tree is an immutable binary Merkle tree. It is safe for concurrent use.
type Tree struct {
	root   *Node
	ids    [][]byte // ordered input identifiers, kept for traceability
	height int
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// RootHash returns the digest committing to all identifiers of the tree.
func (t *Tree) RootHash() []byte {
	return t.root.hash
}

// Height returns the number of levels above the leaves. A single leaf tree has height 0.
func (t *Tree) Height() int {
	return t.height
}

// LeafCount returns the number of identifiers the tree was built from,
// not counting padding duplicates.
func (t *Tree) LeafCount() int {
	return len(t.ids)
}

// Identifiers returns the ordered identifiers the tree was built from.
// The returned slices must not be modified.
func (t *Tree) Identifiers() [][]byte {
	return t.ids
}

// BuildStrings is a convenience wrapper around Build for string identifiers.
func BuildStrings(ids []string, opts ...Option) (*Tree, error) {
	b := make([][]byte, len(ids))
	for i, id := range ids {
		b[i] = []byte(id)
	}
	return Build(b, opts...)
}

// Build constructs a tree over the ordered identifiers. Every identifier is
// hashed to a leaf, then levels are reduced pairwise until one node is left.
// A level with an odd number of nodes gets its last node duplicated first.
func Build(ids [][]byte, opts ...Option) (*Tree, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyInput
	}
	o := newOptions(opts)
	start := time.Now()

	t := &Tree{
		ids: make([][]byte, len(ids)),
	}
	for i, id := range ids {
		t.ids[i] = append([]byte(nil), id...)
	}

	b := &builder{
		hasher:  o.hasher,
		workers: o.concurrency,
	}
	level, err := b.leaves(t.ids)
	if err != nil {
		return nil, err
	}
	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1].clone())
		}
		if level, err = b.parents(level); err != nil {
			return nil, err
		}
		t.height++
		o.logger.Tracef("merkle: reduced to level of %d nodes", len(level))
	}
	t.root = level[0]

	defaultMetrics.BuildCount.Inc()
	defaultMetrics.LeafHashCount.Add(float64(len(ids)))
	defaultMetrics.NodeHashCount.Add(float64(b.nodes))
	defaultMetrics.BuildDuration.Observe(time.Since(start).Seconds())
	o.logger.Debugf("merkle: built tree of %d leaves, height %d, root %s", len(ids), t.height, t.root)
	return t, nil
}

// builder hashes tree levels, optionally splitting a level between goroutines.
// Levels are built one after the other, all hashes of a level are computed
// before the next level is started.
type builder struct {
	hasher  BaseHasherFunc
	workers int
	nodes   int // internal nodes hashed
}

func (b *builder) leaves(ids [][]byte) ([]*Node, error) {
	level := make([]*Node, len(ids))
	err := b.run(len(ids), func(h hash.Hash, i int) error {
		d, err := doHash(h, ids[i])
		if err != nil {
			return err
		}
		level[i] = &Node{hash: d}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return level, nil
}

// parents pairs the nodes of an even sized level left to right.
func (b *builder) parents(level []*Node) ([]*Node, error) {
	parents := make([]*Node, len(level)/2)
	err := b.run(len(parents), func(h hash.Hash, i int) error {
		left, right := level[2*i], level[2*i+1]
		d, err := doHash(h, left.hash, right.hash)
		if err != nil {
			return err
		}
		parents[i] = &Node{hash: d, left: left, right: right}
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.nodes += len(parents)
	return parents, nil
}

// run calls fn for every index in [0, n). Each goroutine owns its hash.Hash
// and a contiguous range of indexes, so results are written without locking.
func (b *builder) run(n int, fn func(h hash.Hash, i int) error) error {
	workers := b.workers
	if workers > n {
		workers = n
	}
	if workers < 2 || n < parallelThreshold {
		h := b.hasher()
		for i := 0; i < n; i++ {
			if err := fn(h, i); err != nil {
				return err
			}
		}
		return nil
	}

	var eg errgroup.Group
	size := (n + workers - 1) / workers
	for from := 0; from < n; from += size {
		from, to := from, from+size
		if to > n {
			to = n
		}
		eg.Go(func() error {
			h := b.hasher()
			for i := from; i < to; i++ {
				if err := fn(h, i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

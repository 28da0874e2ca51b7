// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"bytes"
	"fmt"
)

// Pair is a pair of positionally aligned nodes whose digests differ.
type Pair struct {
	X, Y  []byte // digests in the first and the second tree
	Depth int    // 0 for the root
	Leaf  bool   // the nodes have no children
}

func (p Pair) String() string {
	return fmt.Sprintf("%d %x %x", p.Depth, p.X, p.Y)
}

// Compare returns the pairs of nodes of x and y with differing digests, in
// breadth-first order: root first, then level by level, left to right.
// Only subtrees with differing digests are descended into, and every
// divergent pair on the way down is reported, not only the leaves.
//
// Both trees must have the same leaf count and height, otherwise
// ErrShapeMismatch is returned before anything is traversed.
func Compare(x, y *Tree, opts ...Option) ([]Pair, error) {
	o := newOptions(opts)
	defaultMetrics.CompareCount.Inc()

	if x.LeafCount() != y.LeafCount() || x.Height() != y.Height() {
		defaultMetrics.ShapeMismatchCount.Inc()
		return nil, fmt.Errorf("%w: %d leaves at height %d, %d leaves at height %d",
			ErrShapeMismatch, x.LeafCount(), x.Height(), y.LeafCount(), y.Height())
	}
	if bytes.Equal(x.root.hash, y.root.hash) {
		defaultMetrics.VisitedCount.Inc()
		return nil, nil
	}

	var (
		diff    []Pair
		visited int
	)
	xs, ys := []*Node{x.root}, []*Node{y.root}
	for depth := 0; len(xs) > 0; depth++ {
		var nxs, nys []*Node
		for i, nx := range xs {
			ny := ys[i]
			visited++
			if bytes.Equal(nx.hash, ny.hash) {
				continue
			}
			if nx.IsLeaf() != ny.IsLeaf() {
				defaultMetrics.ShapeMismatchCount.Inc()
				return nil, fmt.Errorf("%w: leaf and internal node at depth %d", ErrShapeMismatch, depth)
			}
			diff = append(diff, Pair{X: nx.hash, Y: ny.hash, Depth: depth, Leaf: nx.IsLeaf()})
			if !nx.IsLeaf() {
				nxs = append(nxs, nx.left, nx.right)
				nys = append(nys, ny.left, ny.right)
			}
		}
		xs, ys = nxs, nys
	}

	defaultMetrics.VisitedCount.Add(float64(visited))
	defaultMetrics.DivergentCount.Add(float64(len(diff)))
	o.logger.Debugf("merkle: compared trees, visited %d node pairs, %d divergent", visited, len(diff))
	return diff, nil
}

// Leaves filters the pairs down to those of childless nodes.
func Leaves(pairs []Pair) []Pair {
	var leaves []Pair
	for _, p := range pairs {
		if p.Leaf {
			leaves = append(leaves, p)
		}
	}
	return leaves
}

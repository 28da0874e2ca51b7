// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"
	"io"
	"strings"
)

// Levels iterates over the levels of a tree, from the root down to the
// leaves. Each level is computed from the previous one only when Next is
// called.
//
//	it := t.Levels()
//	for it.Next() {
//		nodes := it.Level()
//	}
type Levels struct {
	root  *Node
	level []*Node
	depth int
}

// Levels returns a new iterator positioned before the root level.
func (t *Tree) Levels() *Levels {
	return &Levels{root: t.root, depth: -1}
}

// Next advances to the next level and reports whether there is one.
func (it *Levels) Next() bool {
	if it.depth < 0 {
		it.level = []*Node{it.root}
		it.depth = 0
		return true
	}
	next := make([]*Node, 0, 2*len(it.level))
	for _, n := range it.level {
		if !n.IsLeaf() {
			next = append(next, n.left, n.right)
		}
	}
	if len(next) == 0 {
		it.level = nil
		return false
	}
	it.level = next
	it.depth++
	return true
}

// Level returns the nodes of the current level in left to right order.
func (it *Levels) Level() []*Node {
	return it.level
}

// Depth returns the depth of the current level, 0 being the root.
func (it *Levels) Depth() int {
	return it.depth
}

// Reset rewinds the iterator to before the root level.
func (it *Levels) Reset() {
	it.level = nil
	it.depth = -1
}

// LevelOrder returns one line per level, root first, with the hex encoded
// digests of the level separated by a single space.
func (t *Tree) LevelOrder() []string {
	var lines []string
	for it := t.Levels(); it.Next(); {
		lines = append(lines, formatLevel(it.Level()))
	}
	return lines
}

// WriteLevelOrder writes the lines of LevelOrder to w, each terminated by a newline.
func (t *Tree) WriteLevelOrder(w io.Writer) error {
	for it := t.Levels(); it.Next(); {
		if _, err := io.WriteString(w, formatLevel(it.Level())+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatLevel(nodes []*Node) string {
	var sb strings.Builder
	for i, n := range nodes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(hex.EncodeToString(n.hash))
	}
	return sb.String()
}

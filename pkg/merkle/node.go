// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import "encoding/hex"

// Node is an immutable tree node. A leaf has no children, an internal
// node always has two.
type Node struct {
	hash        []byte
	left, right *Node
}

// Hash returns the digest of the node. The returned slice must not be modified.
func (n *Node) Hash() []byte {
	return n.hash
}

// Children returns the left and right child, both nil for a leaf.
func (n *Node) Children() (*Node, *Node) {
	return n.left, n.right
}

func (n *Node) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

func (n *Node) String() string {
	return hex.EncodeToString(n.hash)
}

// clone returns a deep copy of the subtree rooted at n, so that a padding
// duplicate owns its own nodes.
func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	return &Node{
		hash:  n.hash,
		left:  n.left.clone(),
		right: n.right.clone(),
	}
}

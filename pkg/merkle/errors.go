// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"errors"
)

var (
	// ErrEmptyInput is returned when a tree is built from no identifiers.
	ErrEmptyInput = errors.New("merkle: empty identifier sequence")
	// ErrShapeMismatch is returned when trees of different leaf count or height are compared.
	ErrShapeMismatch = errors.New("merkle: tree shape mismatch")
	// ErrHashing is returned when the base hash function fails.
	ErrHashing = errors.New("merkle: hashing failed")
	// ErrUnknownHasher is returned by HasherByName for unregistered names.
	ErrUnknownHasher = errors.New("merkle: unknown hasher")
)

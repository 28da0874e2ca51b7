// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/ethersphere/mtree/pkg/logging"
)

type options struct {
	hasher      BaseHasherFunc
	concurrency int
	logger      logging.Logger
}

// Option configures Build and Compare.
type Option func(*options)

// WithHasher sets the base hash function. Trees that are compared
// with each other must be built with the same base hash.
func WithHasher(h BaseHasherFunc) Option {
	return func(o *options) { o.hasher = h }
}

// WithConcurrency sets the number of goroutines hashing a single tree level.
// Values below 2 build sequentially.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// WithLogger sets the logger used for debug and trace output.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) *options {
	o := &options{
		hasher:      DefaultHasher,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.Noop()
	}
	return o
}

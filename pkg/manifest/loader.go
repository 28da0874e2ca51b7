// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethersphere/mtree/pkg/logging"
	"github.com/ethersphere/mtree/pkg/merkle"
	lru "github.com/hashicorp/golang-lru"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"go.uber.org/atomic"
)

const defaultCacheCapacity = 10000

// Options configure a Loader.
type Options struct {
	Hasher        merkle.BaseHasherFunc
	Hidden        bool // include files and directories starting with a dot
	CacheCapacity int  // number of remembered file digests, 0 disables the cache
	Logger        logging.Logger
}

// Loader hashes the files under a directory. A Loader remembers the digests
// of files it has seen, keyed by path, size and modification time, so that
// loading the same unchanged files again does not read them. It is safe for
// concurrent use.
type Loader struct {
	fs     afero.Fs
	hasher merkle.BaseHasherFunc
	hidden bool
	cache  *lru.Cache
	logger logging.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewLoader returns a loader reading from fs. A nil Options uses SHA-256,
// skips hidden files and keeps a default sized digest cache.
func NewLoader(fs afero.Fs, o *Options) (*Loader, error) {
	if o == nil {
		o = &Options{CacheCapacity: defaultCacheCapacity}
	}
	l := &Loader{
		fs:     fs,
		hasher: o.Hasher,
		hidden: o.Hidden,
		logger: o.Logger,
	}
	if l.hasher == nil {
		l.hasher = merkle.DefaultHasher
	}
	if l.logger == nil {
		l.logger = logging.Noop()
	}
	if o.CacheCapacity > 0 {
		c, err := lru.New(o.CacheCapacity)
		if err != nil {
			return nil, fmt.Errorf("digest cache: %w", err)
		}
		l.cache = c
	}
	return l, nil
}

// Load walks the regular files under root in lexical order and returns their
// content digests. Paths in the manifest are relative to root and use forward
// slashes. Files that cannot be read do not stop the walk, all such errors are
// returned together once the walk is done.
func (l *Loader) Load(ctx context.Context, root string) (*Manifest, error) {
	var (
		entries []Entry
		merr    *multierror.Error
	)
	err := afero.Walk(l.fs, root, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("walk %s: %w", path, err))
			return nil
		}
		if path != root && !l.hidden && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			merr = multierror.Append(merr, err)
			return nil
		}
		if rel == "." {
			rel = info.Name()
		}
		digest, err := l.digest(path, info)
		if err != nil {
			merr = multierror.Append(merr, err)
			return nil
		}
		entries = append(entries, Entry{Path: filepath.ToSlash(rel), Digest: digest})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	l.logger.Debugf("manifest: loaded %d files from %s, digest cache hits %d misses %d", len(entries), root, l.hits.Load(), l.misses.Load())
	return New(entries, l.hasher)
}

func (l *Loader) digest(path string, info os.FileInfo) ([]byte, error) {
	key := fmt.Sprintf("%s:%d:%d", path, info.Size(), info.ModTime().UnixNano())
	if l.cache != nil {
		if v, ok := l.cache.Get(key); ok {
			l.hits.Inc()
			l.logger.Tracef("manifest: cached digest for %s", path)
			return v.([]byte), nil
		}
		l.misses.Inc()
	}

	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := l.hasher()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	digest := h.Sum(nil)

	if l.cache != nil {
		l.cache.Add(key, digest)
	}
	return digest, nil
}

// CacheStats returns how many file digests were served from the cache and
// how many had to be computed since the loader was created.
func (l *Loader) CacheStats() (hits, misses uint64) {
	return l.hits.Load(), l.misses.Load()
}

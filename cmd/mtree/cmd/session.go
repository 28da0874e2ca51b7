// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ethersphere/mtree/pkg/logging"
	"github.com/ethersphere/mtree/pkg/manifest"
	"github.com/ethersphere/mtree/pkg/merkle"
	"github.com/ethersphere/mtree/pkg/metrics"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// session holds what a single command run needs to load
// directories and build trees, as configured by flags,
// environment and the config file.
type session struct {
	logger   logging.Logger
	loader   *manifest.Loader
	opts     []merkle.Option
	output   string
	metrics  bool
	registry metrics.MetricsRegistererGatherer
}

func (c *command) newSession(cmd *cobra.Command) (*session, error) {
	logger, err := newLogger(cmd.ErrOrStderr(), strings.ToLower(c.config.GetString(optionNameVerbosity)))
	if err != nil {
		return nil, err
	}

	hasher, err := merkle.HasherByName(c.config.GetString(optionNameHash))
	if err != nil {
		return nil, err
	}

	output := c.config.GetString(optionNameOutput)
	switch output {
	case outputText, outputJSON, outputYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", output)
	}

	loader, err := manifest.NewLoader(c.fs, &manifest.Options{
		Hasher:        hasher,
		Hidden:        c.config.GetBool(optionNameIncludeHidden),
		CacheCapacity: c.config.GetInt(optionNameCacheCapacity),
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	registry := metrics.NewRegistry()
	registry.MustRegister(merkle.Metrics()...)
	registry.MustRegister(logging.Metrics(logger)...)

	return &session{
		logger: logger,
		loader: loader,
		opts: []merkle.Option{
			merkle.WithConcurrency(c.config.GetInt(optionNameConcurrency)),
			merkle.WithLogger(logger),
		},
		output:   output,
		metrics:  c.config.GetBool(optionNameMetrics),
		registry: registry,
	}, nil
}

// load reads the directory and builds its tree.
func (s *session) load(ctx context.Context, dir string) (*manifest.Manifest, *merkle.Tree, error) {
	m, err := s.loader.Load(ctx, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", dir, err)
	}
	tree, err := m.Tree(s.opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("build %s: %w", dir, err)
	}
	s.logger.Infof("built tree for %s: %d files, height %d", dir, m.Len(), tree.Height())
	return m, tree, nil
}

// write renders v in the configured structured format, or calls text
// for the plain text output.
func (s *session) write(w io.Writer, v interface{}, text func(w io.Writer) error) error {
	switch s.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return text(w)
	}
}

// close writes the collected metrics if requested.
func (s *session) close(cmd *cobra.Command) error {
	if !s.metrics {
		return nil
	}
	return metrics.WriteText(cmd.ErrOrStderr(), s.registry)
}

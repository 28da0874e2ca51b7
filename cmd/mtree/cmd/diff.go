// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/ethersphere/mtree/pkg/manifest"
	"github.com/ethersphere/mtree/pkg/merkle"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type diffPair struct {
	Depth  int      `json:"depth" yaml:"depth"`
	X      string   `json:"x" yaml:"x"`
	Y      string   `json:"y" yaml:"y"`
	Leaf   bool     `json:"leaf" yaml:"leaf"`
	XPaths []string `json:"xPaths,omitempty" yaml:"xPaths,omitempty"`
	YPaths []string `json:"yPaths,omitempty" yaml:"yPaths,omitempty"`
}

func (c *command) initDiffCmd() {
	cmd := &cobra.Command{
		Use:   "diff <dir-x> <dir-y>",
		Short: "Print the divergent node pairs of the trees over two directories",
		Long: `Print the divergent node pairs of the trees over two directories.

Both directories must hold the same number of files. Every divergent pair is
printed on its own line as depth, digest in the first tree and digest in the
second tree. Leaf pairs are followed by the paths of the differing files.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := c.newSession(cmd)
			if err != nil {
				return err
			}
			leavesOnly, err := cmd.Flags().GetBool(optionNameLeavesOnly)
			if err != nil {
				return fmt.Errorf("get leaves only: %w", err)
			}

			var (
				eg        errgroup.Group
				manifests [2]*manifest.Manifest
				trees     [2]*merkle.Tree
				errs      [2]error
			)
			for i, dir := range args {
				i, dir := i, dir
				eg.Go(func() error {
					manifests[i], trees[i], errs[i] = s.load(cmd.Context(), dir)
					return nil
				})
			}
			_ = eg.Wait()
			if err := multierror.Append(nil, errs[:]...).ErrorOrNil(); err != nil {
				return err
			}

			pairs, err := merkle.Compare(trees[0], trees[1], merkle.WithLogger(s.logger))
			if err != nil {
				return err
			}
			if leavesOnly {
				pairs = merkle.Leaves(pairs)
			}
			s.logger.Infof("found %d divergent pairs", len(pairs))

			out := make([]diffPair, len(pairs))
			for i, p := range pairs {
				out[i] = diffPair{
					Depth: p.Depth,
					X:     hex.EncodeToString(p.X),
					Y:     hex.EncodeToString(p.Y),
					Leaf:  p.Leaf,
				}
				if p.Leaf {
					out[i].XPaths = manifests[0].Resolve(p.X)
					out[i].YPaths = manifests[1].Resolve(p.Y)
				}
			}

			if err := s.write(cmd.OutOrStdout(), out, func(w io.Writer) error {
				for _, p := range out {
					line := fmt.Sprintf("%d %s %s", p.Depth, p.X, p.Y)
					if p.Leaf {
						line += fmt.Sprintf(" %s %s", strings.Join(p.XPaths, ","), strings.Join(p.YPaths, ","))
					}
					if _, err := fmt.Fprintln(w, line); err != nil {
						return err
					}
				}
				return nil
			}); err != nil {
				return err
			}
			return s.close(cmd)
		},
	}

	cmd.Flags().Bool(optionNameLeavesOnly, false, "print only the pairs of differing leaves")

	c.root.AddCommand(cmd)
}

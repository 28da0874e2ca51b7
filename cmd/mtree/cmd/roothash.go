// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type rootHashOutput struct {
	Root   string `json:"root" yaml:"root"`
	Files  int    `json:"files" yaml:"files"`
	Height int    `json:"height" yaml:"height"`
}

func (c *command) initRootHashCmd() {
	cmd := &cobra.Command{
		Use:   "root <dir>",
		Short: "Print the root digest of the tree over the files of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := c.newSession(cmd)
			if err != nil {
				return err
			}
			m, tree, err := s.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := rootHashOutput{
				Root:   hex.EncodeToString(tree.RootHash()),
				Files:  m.Len(),
				Height: tree.Height(),
			}
			if err := s.write(cmd.OutOrStdout(), out, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, out.Root)
				return err
			}); err != nil {
				return err
			}
			return s.close(cmd)
		},
	}

	c.root.AddCommand(cmd)
}

// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

func (c *command) initLevelsCmd() {
	cmd := &cobra.Command{
		Use:   "levels <dir>",
		Short: "Print the tree over the files of a directory level by level, root first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := c.newSession(cmd)
			if err != nil {
				return err
			}
			_, tree, err := s.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if err := s.write(cmd.OutOrStdout(), tree.LevelOrder(), func(w io.Writer) error {
				return tree.WriteLevelOrder(w)
			}); err != nil {
				return err
			}
			return s.close(cmd)
		},
	}

	c.root.AddCommand(cmd)
}

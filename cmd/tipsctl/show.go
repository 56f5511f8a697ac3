// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var (
		files []string
		step  int
	)

	cmd := &cobra.Command{
		Use:   "show <context>",
		Short: "Print the tips of one context",
		Long: `show prints the tips of a context as JSON. With --step it prints only the
tip a rotating display shows at that step. An unknown context prints nothing.`,
		Example: `  tipsctl show projectCreation
  tipsctl show projectCreation --step 7
  tipsctl show dataManager --file deploy/tips.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.collection(cmd.Context(), files)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if cmd.Flags().Changed("step") {
				tip, ok := c.Nth(args[0], step)
				if !ok {
					return nil
				}

				return enc.Encode(tip)
			}

			seq := c.Lookup(args[0])
			if len(seq) == 0 {
				return nil
			}

			return enc.Encode(seq)
		},
	}

	cmd.Flags().StringSliceVar(&files, "file", nil, "tip file to merge over the built-in table (repeatable)")
	cmd.Flags().IntVar(&step, "step", 0, "print only the tip shown at this rotation step")

	return cmd
}

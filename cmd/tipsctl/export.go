// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"github.com/spf13/cobra"

	"codeberg.org/heiditips/heiditips/core/tips"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [files...]",
		Short: "Print the merged tip table",
		Example: `  tipsctl export
  tipsctl export --format yaml deploy/tips.yaml
  tipsctl export --no-builtin a.json b.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := tips.ParseFormat(format)
			if err != nil {
				return err
			}

			c, err := opts.collection(cmd.Context(), args)
			if err != nil {
				return err
			}

			return tips.Encode(cmd.OutOrStdout(), c, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(tips.FormatJSON), "output format: json or yaml")

	return cmd
}

// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"codeberg.org/heiditips/heiditips/core/tips"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	noBuiltIn bool
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tipsctl",
		Short: "Inspect and validate HeidiTips tip tables",
		Long: `tipsctl works on the same tip tables the HeidiTips server serves.

Tip files are JSON (.json) or YAML (.yaml, .yml) objects keyed by context.
Files are merged in the order given; a later file replaces the contexts it
shares with an earlier one or with the built-in table.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.WarnLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.noBuiltIn, "no-builtin", false, "leave out the built-in tip table")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every loaded file")

	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newShowCmd(opts))

	return cmd
}

// collection merges the built-in table, unless disabled, with files.
func (opts *rootOptions) collection(ctx context.Context, files []string) (*tips.Collection, error) {
	var base *tips.Collection

	if !opts.noBuiltIn {
		base = tips.Default()
	}

	loaded, err := tips.LoadFiles(ctx, files...)
	if err != nil {
		return nil, err
	}

	return base.Merge(loaded), nil
}

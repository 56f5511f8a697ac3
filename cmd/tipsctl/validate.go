// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/heiditips/heiditips/core/tips"
)

var errInvalidFiles = errors.New("some tip files are invalid")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate files...",
		Short: "Check tip files without merging them",
		Long: `validate decodes every file on its own and reports each violation it
finds. It exits with a non-zero status if any file is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0

			for _, path := range args {
				c, err := tips.LoadFiles(cmd.Context(), path)
				if err != nil {
					failed++

					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s\n", path)

					for _, line := range violations(err) {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", line)
					}

					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d contexts)\n", path, c.Len())
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidFiles, failed, len(args))
			}

			return nil
		},
	}
}

// violations lists the table-level violations wrapped in err, one per line.
func violations(err error) []string {
	var joined interface{ Unwrap() []error }

	if !errors.As(err, &joined) {
		return []string{err.Error()}
	}

	lines := make([]string, 0, len(joined.Unwrap()))

	for _, e := range joined.Unwrap() {
		lines = append(lines, strings.ReplaceAll(e.Error(), "\n", "; "))
	}

	return lines
}

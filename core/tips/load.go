// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tips

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// LoadFiles reads and validates the given tip files concurrently and merges
// them in argument order, so a later file replaces the contexts it shares
// with an earlier one.
//
// The format of each file is picked from its extension.
func LoadFiles(ctx context.Context, paths ...string) (*Collection, error) {
	loaded := make([]*Collection, len(paths))

	g, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			c, err := loadFile(ctx, path)
			if err != nil {
				return fmt.Errorf("failed to load tips from %s: %w", path, err)
			}

			loaded[i] = c

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return (*Collection)(nil).Merge(loaded...), nil
}

func loadFile(ctx context.Context, path string) (*Collection, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- paths come from the operator's configuration
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Decode(f, format)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Int("contexts", c.Len()).
		Msg("Loaded tip file")

	return c, nil
}

// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runner/demo.go
// Summary: Periodic producers used by the demo command.

package runner

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Tick starts one producer per id. Each prints "Received message from <id>"
// to its own pane every interval, count times or, with count 0, until ctx is
// cancelled.
func Tick(ctx context.Context, sink Printer, ids []int, every time.Duration, count int) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			ticker := time.NewTicker(every)
			defer ticker.Stop()
			for sent := 0; count == 0 || sent < count; sent++ {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := sink.Println(id, fmt.Sprintf("Received message from %d", id)); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}

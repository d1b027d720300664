package main

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// buildPages runs gen for every page with at most jobs pages in flight.
// The first error cancels the pages that have not started yet.
func buildPages(ctx context.Context, pages []page, jobs int, gen func(context.Context, page) error) error {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, pg := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return gen(ctx, pg)
		})
	}
	return g.Wait()
}

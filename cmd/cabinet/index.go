package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/cabinet"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	var opts cabinet.IndexOptions
	if c.Flat {
		recursive := false
		opts.Recursive = &recursive
	}
	if c.FollowSymlinks {
		follow := true
		opts.FollowSymlinks = &follow
	}

	result, err := deps.Filing.Index(deps.Ctx, c.Root, opts)
	if err != nil {
		return deps.fail(err)
	}

	for _, url := range result.Discovered {
		fmt.Fprintf(deps.Stdout, "+ %s\n", url)
	}
	fmt.Fprintf(deps.Stdout, "Discovered %s, already known %s, skipped %s\n",
		humanize.Comma(int64(len(result.Discovered))),
		humanize.Comma(int64(result.Known)),
		humanize.Comma(int64(result.Skipped)),
	)
	return nil
}

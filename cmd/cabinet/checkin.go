package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/cabinet"
)

// Run executes the checkin command.
func (c *CheckinCmd) Run(deps *Dependencies) error {
	var failed error
	for _, path := range c.Paths {
		checksum, err := deps.Filing.Checkin(deps.Ctx, path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cabinet.ErrorMessage(err))
			failed = err
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", checksum, path)
	}
	return failed
}

// Run executes the checkout command.
func (c *CheckoutCmd) Run(deps *Dependencies) error {
	path, err := deps.Filing.Checkout(deps.Ctx, c.Checksum, c.Dir)
	if err != nil {
		if cabinet.ErrorCode(err) == cabinet.ECONFLICT {
			fmt.Fprintln(deps.Stderr, "Hint: use --force to overwrite")
		}
		return deps.fail(err)
	}
	fmt.Fprintf(deps.Stdout, "Checked out %s\n", path)
	return nil
}

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	result, err := deps.Filing.Add(deps.Ctx, c.Path)
	if err != nil {
		return deps.fail(err)
	}
	fmt.Fprintf(deps.Stdout, "Processed %s files, skipped %s\n",
		humanize.Comma(int64(result.Processed)),
		humanize.Comma(int64(result.Skipped)),
	)
	return nil
}

// Run executes the remove command.
func (c *RemoveCmd) Run(deps *Dependencies) error {
	if !c.Force {
		return deps.fail(cabinet.Errorf(cabinet.EINVALID, "use --force to confirm removal"))
	}
	if err := deps.Filing.Remove(deps.Ctx, c.Checksum); err != nil {
		return deps.fail(err)
	}
	fmt.Fprintf(deps.Stdout, "Removed %s\n", c.Checksum)
	return nil
}

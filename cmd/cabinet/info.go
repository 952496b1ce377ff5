package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	info, err := deps.Filing.FileInfo(deps.Ctx, c.Path)
	if err != nil {
		return deps.fail(err)
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(deps.Stdout, "Checksum: %s\n", info.Checksum)
	if f := info.File; f != nil {
		fmt.Fprintf(deps.Stdout, "Name:     %s\n", f.Name)
		fmt.Fprintf(deps.Stdout, "Size:     %s\n", humanize.IBytes(uint64(f.Size)))
		fmt.Fprintf(deps.Stdout, "Type:     %s\n", f.MimeType)
		fmt.Fprintf(deps.Stdout, "Origin:   %s\n", f.URL)
		fmt.Fprintf(deps.Stdout, "Filed:    %s\n", humanize.Time(f.FiledAt))
	} else {
		fmt.Fprintln(deps.Stdout, "Not filed. Use 'cabinet checkin' to file it.")
	}

	fmt.Fprintf(deps.Stdout, "\nLocations (%d):\n", len(info.Incarnations))
	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, inc := range info.Incarnations {
		target := ""
		if inc.ForwardURL != "" {
			target = "-> " + inc.ForwardURL
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", inc.Kind, inc.URL, inc.Device, target)
	}
	return w.Flush()
}

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	stats, err := deps.Filing.Statistics(deps.Ctx)
	if err != nil {
		return deps.fail(err)
	}

	fmt.Fprintf(deps.Stdout, "%s (schema %s)\n", stats.Name, stats.SchemaVersion)
	fmt.Fprintf(deps.Stdout, "Files:        %s\n", humanize.Comma(int64(stats.FileCount)))
	fmt.Fprintf(deps.Stdout, "Incarnations: %s\n", humanize.Comma(int64(stats.IncarnationCount)))
	fmt.Fprintf(deps.Stdout, "Stored:       %s\n", humanize.IBytes(uint64(stats.TotalSize)))
	return nil
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	files, err := deps.Filing.Search(deps.Ctx, c.Query)
	if err != nil {
		return deps.fail(err)
	}

	if len(files) == 0 {
		fmt.Fprintln(deps.Stdout, "No files found.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Checksum, f.Name, humanize.IBytes(uint64(f.Size)), f.URL)
	}
	return w.Flush()
}

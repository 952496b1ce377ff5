package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/fwojciec/cabinet"
	"github.com/fwojciec/cabinet/fs"
)

// Run executes the config get command.
func (c *ConfigGetCmd) Run(deps *Dependencies) error {
	var (
		v   cabinet.Value
		err error
	)
	if c.Default != "" {
		def, perr := cabinet.ParseValue(cabinet.ValueKind(c.Type), c.Default)
		if perr != nil {
			return deps.fail(perr)
		}
		v, err = deps.Config.GetOrDefault(deps.Ctx, c.Key, def)
	} else {
		v, err = deps.Config.Get(deps.Ctx, c.Key)
	}
	if err != nil {
		return deps.fail(err)
	}
	fmt.Fprintln(deps.Stdout, v.String())
	return nil
}

// Run executes the config set command. Without --type the value is parsed
// as the type of the currently stored value.
func (c *ConfigSetCmd) Run(deps *Dependencies) error {
	kind := cabinet.ValueKind(c.Type)
	if kind == "" {
		current, err := deps.Config.Get(deps.Ctx, c.Key)
		if err != nil {
			return deps.fail(err)
		}
		kind = current.Kind()
	}

	v, err := cabinet.ParseValue(kind, c.Value)
	if err != nil {
		return deps.fail(err)
	}
	if err := deps.Config.Set(deps.Ctx, c.Key, v); err != nil {
		return deps.fail(err)
	}
	fmt.Fprintf(deps.Stdout, "%s = %s\n", c.Key, v)
	return nil
}

// Run executes the config create command.
func (c *ConfigCreateCmd) Run(deps *Dependencies) error {
	kind := cabinet.ValueKind(c.Type)
	v, err := cabinet.ParseValue(kind, c.Value)
	if err != nil {
		return deps.fail(err)
	}

	entry := cabinet.ConfigEntry{Key: c.Key, Value: v, Description: c.Description}
	if c.Default != "" {
		def, err := cabinet.ParseValue(kind, c.Default)
		if err != nil {
			return deps.fail(err)
		}
		entry.Default = &def
	}

	stored, err := deps.Config.Create(deps.Ctx, entry)
	if err != nil {
		return deps.fail(err)
	}
	fmt.Fprintf(deps.Stdout, "%s = %s\n", c.Key, stored)
	return nil
}

// Run executes the config reset command.
func (c *ConfigResetCmd) Run(deps *Dependencies) error {
	if err := deps.Config.Reset(deps.Ctx, c.Key); err != nil {
		return deps.fail(err)
	}
	v, err := deps.Config.Get(deps.Ctx, c.Key)
	if err != nil {
		return deps.fail(err)
	}
	fmt.Fprintf(deps.Stdout, "%s = %s\n", c.Key, v)
	return nil
}

// Run executes the config list command.
func (c *ConfigListCmd) Run(deps *Dependencies) error {
	entries, err := deps.Config.List(deps.Ctx)
	if err != nil {
		return deps.fail(err)
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, key := range keys {
		e := entries[key]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", key, e.Value.Kind(), e.Value, e.Description)
	}
	return w.Flush()
}

// Run executes the config export command.
func (c *ConfigExportCmd) Run(deps *Dependencies) error {
	if err := fs.ExportConfig(deps.Ctx, deps.Config, c.Path); err != nil {
		return deps.fail(err)
	}
	fmt.Fprintf(deps.Stdout, "Exported configuration to %s\n", c.Path)
	return nil
}

// Run executes the config import command.
func (c *ConfigImportCmd) Run(deps *Dependencies) error {
	n, err := fs.ImportConfig(deps.Ctx, deps.Config, c.Path)
	if err != nil {
		return deps.fail(err)
	}
	fmt.Fprintf(deps.Stdout, "Imported %d entries from %s\n", n, c.Path)
	return nil
}

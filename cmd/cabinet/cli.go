package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/cabinet"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Filing cabinet.FilingService
	Config cabinet.ConfigService
}

// fail reports err on stderr and returns it.
func (d *Dependencies) fail(err error) error {
	fmt.Fprintf(d.Stderr, "error: %s\n", cabinet.ErrorMessage(err))
	return err
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log operations to stderr"`

	Checkin  CheckinCmd  `cmd:"" help:"File documents and record their locations"`
	Checkout CheckoutCmd `cmd:"" help:"Write filed content to a directory"`
	Index    IndexCmd    `cmd:"" help:"Record file locations without filing content"`
	Add      AddCmd      `cmd:"" help:"Check in a file or every file below a directory"`
	Info     InfoCmd     `cmd:"" help:"Show filed content and known locations for a path"`
	Status   StatusCmd   `cmd:"" help:"Show cabinet statistics"`
	Search   SearchCmd   `cmd:"" help:"Find filed documents by name or origin"`
	Remove   RemoveCmd   `cmd:"" help:"Remove filed content"`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration"`
}

// CheckinCmd is the "checkin" subcommand.
type CheckinCmd struct {
	Paths []string `arg:"" help:"Files to check in"`
}

// CheckoutCmd is the "checkout" subcommand.
type CheckoutCmd struct {
	Checksum string `arg:"" help:"Checksum of the filed content"`
	Dir      string `arg:"" optional:"" default:"." help:"Destination directory" type:"path"`
	Force    bool   `short:"f" help:"Overwrite an existing file"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Root           string `arg:"" help:"Directory to index" type:"path"`
	Flat           bool   `help:"Do not descend into subdirectories"`
	FollowSymlinks bool   `name:"follow-symlinks" help:"Follow symbolic links"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Path string `arg:"" help:"File or directory to check in" type:"path"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	Path string `arg:"" help:"Path to inspect" type:"path"`
	JSON bool   `name:"json" help:"Print as JSON"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" optional:"" help:"Text to match against names and origins"`
}

// RemoveCmd is the "remove" subcommand.
type RemoveCmd struct {
	Checksum string `arg:"" help:"Checksum of the filed content"`
	Force    bool   `help:"Confirm removal"`
}

// ConfigCmd groups the "config" subcommands.
type ConfigCmd struct {
	Get    ConfigGetCmd    `cmd:"" help:"Print a configuration value"`
	Set    ConfigSetCmd    `cmd:"" help:"Change an existing configuration value"`
	Create ConfigCreateCmd `cmd:"" help:"Define a configuration key"`
	Reset  ConfigResetCmd  `cmd:"" help:"Restore a key to its default"`
	List   ConfigListCmd   `cmd:"" help:"List all configuration entries"`
	Export ConfigExportCmd `cmd:"" help:"Write configuration to a JSON or YAML file"`
	Import ConfigImportCmd `cmd:"" help:"Load configuration from a JSON or YAML file"`
}

// ConfigGetCmd is the "config get" subcommand.
type ConfigGetCmd struct {
	Key     string `arg:"" help:"Configuration key"`
	Default string `help:"Value to use when the key is missing; user keys are created with it"`
	Type    string `short:"t" default:"string" enum:"bool,int,float,string,list" help:"Type of --default (${enum})"`
}

// ConfigSetCmd is the "config set" subcommand.
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Configuration key"`
	Value string `arg:"" help:"New value; lists are JSON arrays"`
	Type  string `short:"t" help:"Value type; defaults to the type of the stored value"`
}

// ConfigCreateCmd is the "config create" subcommand.
type ConfigCreateCmd struct {
	Key         string `arg:"" help:"Configuration key"`
	Value       string `arg:"" help:"Initial value; lists are JSON arrays"`
	Type        string `short:"t" default:"string" enum:"bool,int,float,string,list" help:"Value type (${enum})"`
	Default     string `help:"Default value restored by reset"`
	Description string `short:"d" help:"Description of the key"`
}

// ConfigResetCmd is the "config reset" subcommand.
type ConfigResetCmd struct {
	Key string `arg:"" help:"Configuration key"`
}

// ConfigListCmd is the "config list" subcommand.
type ConfigListCmd struct{}

// ConfigExportCmd is the "config export" subcommand.
type ConfigExportCmd struct {
	Path string `arg:"" help:"Destination file (.json, .yaml or .yml)" type:"path"`
}

// ConfigImportCmd is the "config import" subcommand.
type ConfigImportCmd struct {
	Path string `arg:"" help:"Source file (.json, .yaml or .yml)" type:"path"`
}

// Package cli implements the shadematch command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shadematch/backend/internal/catalog"
	"github.com/shadematch/backend/internal/logging"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// options are the persistent flags shared by every command
type options struct {
	catalogPath string
	format      string
	verbose     bool
}

// RootCmd is the top-level command.
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "shadematch",
		Short:        "Match foundation shades to undertone and skin depth",
		Long:         "Ranks foundation shades from the built-in (or a custom) catalog for an undertone and skin tone depth.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatJSON && opts.format != formatText {
				return fmt.Errorf("unknown format %q (want json or text)", opts.format)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.catalogPath, "catalog", "c", "", "Catalog file (YAML or JSON); defaults to the built-in catalog")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", formatText, "Output format: json or text")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging to stderr")

	root.AddCommand(newMatchCmd(opts), newLinkCmd(opts))
	return root
}

func (o *options) logger() (*zap.Logger, error) {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	return logging.New(level, "development")
}

func (o *options) loadCatalog() (*catalog.Catalog, error) {
	if o.catalogPath == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(o.catalogPath)
}

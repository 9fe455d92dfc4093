// Package cmd implements the polygonize command-line tool: a thin
// go-flags wrapper around the polygonize.Polygonizer façade and the tiled
// polygonizer, in the teacher's init()-registered-subcommand style.
package cmd

import (
	"os"

	"github.com/jessevdk/go-flags"
)

// GlobalOptions holds flags shared by every subcommand. DataStore is
// accepted for parity with the teacher's global options but is unused by
// the polygonize command; this repository has no persisted state.
type GlobalOptions struct {
	DataStore string `short:"d" long:"datastore" description:"Data store path (unused, accepted for CLI parity)"`
}

var globalOpts = GlobalOptions{}
var parser = flags.NewParser(&globalOpts, flags.HelpFlag|flags.PassDoubleDash)

// Run parses arguments and dispatches to the registered subcommand.
func Run() error {
	_, err := parser.Parse()
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		parser.WriteHelp(os.Stdout)
		return nil
	}
	return err
}

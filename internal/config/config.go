package config

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Link names accepted by the --dlt flag, mirroring pdu.Link's constants.
var linkNames = map[string]uint32{
	"null":    0,
	"en10mb":  1,
	"ethernet": 1,
	"raw":     101,
	"ieee802_11": 105,
	"linux-sll":  113,
}

// Config holds the flags shared across pduinspect's subcommands.
type Config struct {
	LogLevel string // "debug", "info", "warn", "error"
	Pretty   bool   // console-encode logs instead of JSON
	InFile   string // "-" or empty means stdin
	OutFile  string // "-" or empty means stdout
}

// Register binds Config's persistent flags onto cmd, the way the rest of
// this CLI's subcommands pull shared settings off the root command.
func Register(cmd *cobra.Command, cfg *Config) {
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "loglevel", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&cfg.Pretty, "pretty", true, "use console log encoding instead of JSON")
	cmd.PersistentFlags().StringVar(&cfg.InFile, "in", "-", "input file, or - for stdin")
	cmd.PersistentFlags().StringVar(&cfg.OutFile, "out", "-", "output file, or - for stdout")
}

// ResolveDLT translates a --dlt flag value into pdu's Link constant space.
func ResolveDLT(name string) (uint32, error) {
	dlt, ok := linkNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown data-link type %q", name)
	}
	return dlt, nil
}

package options

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/otafleet-io/fleetctl/pkg/log"
)

// Options aggregates the invocation-wide settings of the fleetctl binary.
// Per-subcommand parameters are owned by the command core, not by this type.
type Options struct {
	Log *log.Options

	// ConfigPath overrides the default config file location.
	ConfigPath string
}

// NewOptions creates an Options object with default values.
func NewOptions() *Options {
	return &Options{
		Log: log.NewOptions(),
	}
}

// AddFlags binds command-line flags to the Options fields.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Log.AddFlags(fs)
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath,
		"Path to the fleetctl config file (defaults to $FLEETCTL_CONFIG or the user config dir).")
}

// Validate validates all the aggregated options.
func (o *Options) Validate() error {
	return errors.Join(o.Log.Validate()...)
}

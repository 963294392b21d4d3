package app

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/otafleet-io/fleetctl/cmd/fleetctl/app/options"
	"github.com/otafleet-io/fleetctl/internal/api"
	"github.com/otafleet-io/fleetctl/internal/command"
	"github.com/otafleet-io/fleetctl/internal/config"
	"github.com/otafleet-io/fleetctl/pkg/log"
)

const commandDesc = `fleetctl manages an OTA fleet through its four backend services:
the campaigner (rollout campaigns), the device registry (devices and
groups), the reposerver (packages) and the director (multi-target
updates).

Run "fleetctl init" once to point it at your services, then:

  fleetctl campaign  list | create | launch | cancel
  fleetctl device    list | create | delete
  fleetctl group     list | create | add | rename | remove
  fleetctl package   list | add | fetch
  fleetctl update    create | launch`

// NewFleetctlCommand builds the fleetctl root command and its per-domain
// subcommands. Subcommand tokens and flag requirements are resolved by the
// command core, not by the CLI toolkit.
func NewFleetctlCommand() *cobra.Command {
	opts := options.NewOptions()

	root := &cobra.Command{
		Use:           "fleetctl <command> <subcommand> [flags]",
		Short:         "Manage campaigns, devices, groups, packages and updates for an OTA fleet",
		Long:          commandDesc,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			log.Init(opts.Log)
			return nil
		},
		// Case-variant tokens ("CAMPAIGN") and unknown commands fall through
		// to here instead of a registered child; the resolver decides.
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			c, err := command.ParseCommand(args[0])
			if err != nil {
				return err
			}
			sub := ""
			if len(args) > 1 {
				sub = args[1]
			}
			return run(cmd.Context(), opts, c, sub, cmd.Flags())
		},
	}

	pf := root.PersistentFlags()
	opts.AddFlags(pf)
	addParameterFlags(pf)

	domains := []struct {
		cmd   command.Command
		short string
	}{
		{command.CommandInit, "Write the local fleetctl configuration"},
		{command.CommandCampaign, "Manage rollout campaigns (list, create, launch, cancel)"},
		{command.CommandDevice, "Manage registry devices (list, create, delete)"},
		{command.CommandGroup, "Manage device groups (list, create, add, rename, remove)"},
		{command.CommandPackage, "Manage repository packages (add, fetch)"},
		{command.CommandUpdate, "Manage multi-target updates (create, launch)"},
	}
	for _, dom := range domains {
		root.AddCommand(newDomainCommand(opts, dom.cmd, dom.short))
	}

	return root
}

func newDomainCommand(opts *options.Options, c command.Command, short string) *cobra.Command {
	use := string(c)
	if c != command.CommandInit {
		use += " <subcommand>"
	}
	return &cobra.Command{
		Use:          use,
		Short:        short,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub := ""
			if len(args) > 0 {
				sub = args[0]
			}
			return run(cmd.Context(), opts, c, sub, cmd.Flags())
		},
	}
}

// run performs the single resolve -> extract -> dispatch cycle of one
// invocation.
func run(ctx context.Context, opts *options.Options, c command.Command, sub string, fs *pflag.FlagSet) error {
	var (
		cfg     *config.Config
		timeout time.Duration
	)
	if c != command.CommandInit {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return err
		}
		timeout = cfg.Timeout
	}

	client := api.NewClient(timeout)
	d := &command.Dispatcher{
		Campaigner:  api.NewCampaigner(client),
		Registry:    api.NewRegistry(client),
		Reposerver:  api.NewReposerver(client),
		Director:    api.NewDirector(client),
		Initializer: command.InitializerFunc(config.Init),
	}
	return d.Dispatch(ctx, cfg, c, sub, fs)
}

// addParameterFlags registers the flags the extraction layer reads. All are
// optional at the flag-library level; requiredness per subcommand is the
// extraction layer's contract.
func addParameterFlags(fs *pflag.FlagSet) {
	fs.String("name", "", "Name of the entity being created or renamed.")
	fs.String("id", "", "Device identifier to register (device create).")
	fs.String("device", "", "Device id.")
	fs.String("group", "", "Group id.")
	fs.String("campaign", "", "Campaign id.")
	fs.String("update", "", "Multi-target update id.")
	fs.String("targets", "", "Path to a targets file (update create).")
	fs.String("version", "", "Package version.")
	fs.String("type", "", "Device type: vehicle, qemu or other (device create).")
	fs.String("path", "", "Path to a package file to upload (package add).")
	fs.StringSlice("groups", nil, "Group ids a campaign should cover (campaign create).")
	fs.Int("limit", 0, "Maximum number of records a list returns.")
	fs.Int("offset", 0, "Number of records a list skips.")

	fs.String("campaigner-url", "", "Campaigner service URL (init).")
	fs.String("director-url", "", "Director service URL (init).")
	fs.String("registry-url", "", "Device registry service URL (init).")
	fs.String("reposerver-url", "", "Reposerver service URL (init).")
	fs.String("token", "", "Bearer token for backend authentication (init).")
	fs.Bool("force", false, "Overwrite an existing config file (init).")
}

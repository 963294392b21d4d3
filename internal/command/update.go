package command

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"github.com/otafleet-io/fleetctl/internal/config"
)

// Update is the closed set of update subcommands.
type Update string

const (
	UpdateCreate Update = "create"
	UpdateLaunch Update = "launch"
)

// ParseUpdate resolves an update subcommand token case-insensitively.
func ParseUpdate(token string) (Update, error) {
	switch strings.ToLower(token) {
	case "create":
		return UpdateCreate, nil
	case "launch":
		return UpdateLaunch, nil
	default:
		return "", &UnknownSubcommandError{Parent: CommandUpdate, Token: token}
	}
}

func (d *Dispatcher) execUpdate(ctx context.Context, cfg *config.Config, sub Update, fs *pflag.FlagSet) error {
	switch sub {
	case UpdateCreate:
		path, err := requiredString(fs, "targets")
		if err != nil {
			return err
		}
		return d.Director.CreateFromTargets(ctx, cfg, path)
	case UpdateLaunch:
		update, err := updateID(fs)
		if err != nil {
			return err
		}
		device, err := deviceID(fs)
		if err != nil {
			return err
		}
		return d.Director.LaunchUpdate(ctx, cfg, update, device)
	default:
		return &UnknownSubcommandError{Parent: CommandUpdate, Token: string(sub)}
	}
}

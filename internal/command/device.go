package command

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"github.com/otafleet-io/fleetctl/internal/config"
)

// Device is the closed set of device subcommands.
type Device string

const (
	DeviceList   Device = "list"
	DeviceCreate Device = "create"
	DeviceDelete Device = "delete"
)

// ParseDevice resolves a device subcommand token case-insensitively.
func ParseDevice(token string) (Device, error) {
	switch strings.ToLower(token) {
	case "list":
		return DeviceList, nil
	case "create":
		return DeviceCreate, nil
	case "delete":
		return DeviceDelete, nil
	default:
		return "", &UnknownSubcommandError{Parent: CommandDevice, Token: token}
	}
}

func (d *Dispatcher) execDevice(ctx context.Context, cfg *config.Config, sub Device, fs *pflag.FlagSet) error {
	switch sub {
	case DeviceList:
		return d.Registry.ListDevices(ctx, cfg, listOptions(fs))
	case DeviceCreate:
		name, err := requiredString(fs, "name")
		if err != nil {
			return err
		}
		id, err := requiredString(fs, "id")
		if err != nil {
			return err
		}
		typ, err := deviceType(fs)
		if err != nil {
			return err
		}
		return d.Registry.CreateDevice(ctx, cfg, name, id, typ)
	case DeviceDelete:
		id, err := deviceID(fs)
		if err != nil {
			return err
		}
		return d.Registry.DeleteDevice(ctx, cfg, id)
	default:
		return &UnknownSubcommandError{Parent: CommandDevice, Token: string(sub)}
	}
}

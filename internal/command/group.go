package command

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"github.com/otafleet-io/fleetctl/internal/config"
)

// Group is the closed set of group subcommands.
type Group string

const (
	GroupList   Group = "list"
	GroupCreate Group = "create"
	GroupAdd    Group = "add"
	GroupRename Group = "rename"
	GroupRemove Group = "remove"
)

// ParseGroup resolves a group subcommand token case-insensitively.
func ParseGroup(token string) (Group, error) {
	switch strings.ToLower(token) {
	case "list":
		return GroupList, nil
	case "create":
		return GroupCreate, nil
	case "add":
		return GroupAdd, nil
	case "rename":
		return GroupRename, nil
	case "remove":
		return GroupRemove, nil
	default:
		return "", &UnknownSubcommandError{Parent: CommandGroup, Token: token}
	}
}

func (d *Dispatcher) execGroup(ctx context.Context, cfg *config.Config, sub Group, fs *pflag.FlagSet) error {
	switch sub {
	case GroupList:
		return d.Registry.ListGroups(ctx, cfg, listOptions(fs))
	case GroupCreate:
		name, err := requiredString(fs, "name")
		if err != nil {
			return err
		}
		return d.Registry.CreateGroup(ctx, cfg, name)
	case GroupAdd:
		group, err := groupID(fs)
		if err != nil {
			return err
		}
		device, err := deviceID(fs)
		if err != nil {
			return err
		}
		return d.Registry.AddToGroup(ctx, cfg, group, device)
	case GroupRemove:
		group, err := groupID(fs)
		if err != nil {
			return err
		}
		device, err := deviceID(fs)
		if err != nil {
			return err
		}
		return d.Registry.RemoveFromGroup(ctx, cfg, group, device)
	case GroupRename:
		group, err := groupID(fs)
		if err != nil {
			return err
		}
		name, err := requiredString(fs, "name")
		if err != nil {
			return err
		}
		return d.Registry.RenameGroup(ctx, cfg, group, name)
	default:
		return &UnknownSubcommandError{Parent: CommandGroup, Token: string(sub)}
	}
}

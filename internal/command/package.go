package command

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"github.com/otafleet-io/fleetctl/internal/config"
)

// Package is the closed set of package subcommands.
type Package string

const (
	PackageList  Package = "list"
	PackageAdd   Package = "add"
	PackageFetch Package = "fetch"
)

// ParsePackage resolves a package subcommand token case-insensitively.
func ParsePackage(token string) (Package, error) {
	switch strings.ToLower(token) {
	case "list":
		return PackageList, nil
	case "add":
		return PackageAdd, nil
	case "fetch":
		return PackageFetch, nil
	default:
		return "", &UnknownSubcommandError{Parent: CommandPackage, Token: token}
	}
}

func (d *Dispatcher) execPackage(ctx context.Context, cfg *config.Config, sub Package, fs *pflag.FlagSet) error {
	switch sub {
	case PackageList:
		// The reposerver has no listing endpoint yet. Reported through the
		// normal result channel, never by aborting the process.
		return &NotImplementedError{Parent: CommandPackage, Subcommand: string(PackageList)}
	case PackageAdd:
		pkg, err := targetPackage(fs)
		if err != nil {
			return err
		}
		return d.Reposerver.AddPackage(ctx, cfg, pkg)
	case PackageFetch:
		name, err := requiredString(fs, "name")
		if err != nil {
			return err
		}
		version, err := requiredString(fs, "version")
		if err != nil {
			return err
		}
		return d.Reposerver.GetPackage(ctx, cfg, name, version)
	default:
		return &UnknownSubcommandError{Parent: CommandPackage, Token: string(sub)}
	}
}

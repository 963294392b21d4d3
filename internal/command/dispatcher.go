package command

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/otafleet-io/fleetctl/internal/api"
	"github.com/otafleet-io/fleetctl/internal/config"
)

// The dispatcher sees the backends through these narrow interfaces; the real
// HTTP facades live in internal/api.

// Campaigner manages staged update rollouts.
type Campaigner interface {
	List(ctx context.Context, cfg *config.Config, opts api.ListOptions) error
	Create(ctx context.Context, cfg *config.Config, opts api.CreateCampaignOptions) error
	Launch(ctx context.Context, cfg *config.Config, id api.CampaignID) error
	Cancel(ctx context.Context, cfg *config.Config, id api.CampaignID) error
}

// Registry manages devices and device groups.
type Registry interface {
	ListDevices(ctx context.Context, cfg *config.Config, opts api.ListOptions) error
	CreateDevice(ctx context.Context, cfg *config.Config, name, id string, typ api.DeviceType) error
	DeleteDevice(ctx context.Context, cfg *config.Config, id api.DeviceID) error
	ListGroups(ctx context.Context, cfg *config.Config, opts api.ListOptions) error
	CreateGroup(ctx context.Context, cfg *config.Config, name string) error
	AddToGroup(ctx context.Context, cfg *config.Config, group api.GroupID, device api.DeviceID) error
	RemoveFromGroup(ctx context.Context, cfg *config.Config, group api.GroupID, device api.DeviceID) error
	RenameGroup(ctx context.Context, cfg *config.Config, group api.GroupID, name string) error
}

// Reposerver stores and serves packages.
type Reposerver interface {
	AddPackage(ctx context.Context, cfg *config.Config, pkg api.TargetPackage) error
	GetPackage(ctx context.Context, cfg *config.Config, name, version string) error
}

// Director creates and launches multi-target updates.
type Director interface {
	CreateFromTargets(ctx context.Context, cfg *config.Config, path string) error
	LaunchUpdate(ctx context.Context, cfg *config.Config, update api.UpdateID, device api.DeviceID) error
}

// Initializer bootstraps the local configuration for the `init` command.
type Initializer interface {
	Init(opts config.InitOptions) error
}

// InitializerFunc adapts a plain function to the Initializer interface.
type InitializerFunc func(opts config.InitOptions) error

func (f InitializerFunc) Init(opts config.InitOptions) error { return f(opts) }

// Dispatcher routes one resolved invocation to exactly one backend operation.
// It holds no state across invocations, owns no retry logic, and passes cfg
// into a single call at most.
type Dispatcher struct {
	Campaigner  Campaigner
	Registry    Registry
	Reposerver  Reposerver
	Director    Director
	Initializer Initializer
}

// Dispatch resolves the subcommand token for cmd, extracts and validates the
// flags that pair requires, and invokes the matching backend operation. Any
// resolution or extraction failure returns before a backend call is made.
func (d *Dispatcher) Dispatch(ctx context.Context, cfg *config.Config, cmd Command, sub string, flags *pflag.FlagSet) error {
	switch cmd {
	case CommandInit:
		opts, err := initOptions(flags)
		if err != nil {
			return err
		}
		return d.Initializer.Init(opts)
	case CommandCampaign:
		c, err := ParseCampaign(sub)
		if err != nil {
			return err
		}
		return d.execCampaign(ctx, cfg, c, flags)
	case CommandDevice:
		dev, err := ParseDevice(sub)
		if err != nil {
			return err
		}
		return d.execDevice(ctx, cfg, dev, flags)
	case CommandGroup:
		g, err := ParseGroup(sub)
		if err != nil {
			return err
		}
		return d.execGroup(ctx, cfg, g, flags)
	case CommandPackage:
		p, err := ParsePackage(sub)
		if err != nil {
			return err
		}
		return d.execPackage(ctx, cfg, p, flags)
	case CommandUpdate:
		u, err := ParseUpdate(sub)
		if err != nil {
			return err
		}
		return d.execUpdate(ctx, cfg, u, flags)
	default:
		return &UnknownCommandError{Token: string(cmd)}
	}
}

package command

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"github.com/otafleet-io/fleetctl/internal/config"
)

// Campaign is the closed set of campaign subcommands.
type Campaign string

const (
	CampaignList   Campaign = "list"
	CampaignCreate Campaign = "create"
	CampaignLaunch Campaign = "launch"
	CampaignCancel Campaign = "cancel"
)

// ParseCampaign resolves a campaign subcommand token case-insensitively.
func ParseCampaign(token string) (Campaign, error) {
	switch strings.ToLower(token) {
	case "list":
		return CampaignList, nil
	case "create":
		return CampaignCreate, nil
	case "launch":
		return CampaignLaunch, nil
	case "cancel":
		return CampaignCancel, nil
	default:
		return "", &UnknownSubcommandError{Parent: CommandCampaign, Token: token}
	}
}

func (d *Dispatcher) execCampaign(ctx context.Context, cfg *config.Config, sub Campaign, fs *pflag.FlagSet) error {
	switch sub {
	case CampaignList:
		return d.Campaigner.List(ctx, cfg, listOptions(fs))
	case CampaignCreate:
		opts, err := campaignCreateOptions(fs)
		if err != nil {
			return err
		}
		return d.Campaigner.Create(ctx, cfg, opts)
	case CampaignLaunch:
		id, err := campaignID(fs)
		if err != nil {
			return err
		}
		return d.Campaigner.Launch(ctx, cfg, id)
	case CampaignCancel:
		id, err := campaignID(fs)
		if err != nil {
			return err
		}
		return d.Campaigner.Cancel(ctx, cfg, id)
	default:
		return &UnknownSubcommandError{Parent: CommandCampaign, Token: string(sub)}
	}
}

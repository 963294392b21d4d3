package api

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/otafleet-io/fleetctl/internal/config"
	"github.com/otafleet-io/fleetctl/internal/render"
	"github.com/otafleet-io/fleetctl/pkg/log"
)

// Campaigner talks to the campaign-management service.
type Campaigner struct {
	c *Client
}

func NewCampaigner(c *Client) *Campaigner {
	return &Campaigner{c: c}
}

func (a *Campaigner) List(ctx context.Context, cfg *config.Config, opts ListOptions) error {
	var out struct {
		Values []Campaign `json:"values"`
	}
	u := endpoint(cfg.CampaignerURL, "/api/v2/campaigns") + listQuery(opts)
	if err := a.c.do(ctx, cfg, "list campaigns", http.MethodGet, u, nil, &out); err != nil {
		return err
	}

	rows := make([][]any, 0, len(out.Values))
	for _, c := range out.Values {
		rows = append(rows, []any{c.ID, c.Name, c.Update, c.Status, c.CreatedAt.Format("2006-01-02 15:04")})
	}
	render.Table(os.Stdout, []string{"ID", "NAME", "UPDATE", "STATUS", "CREATED"}, rows)
	return nil
}

func (a *Campaigner) Create(ctx context.Context, cfg *config.Config, opts CreateCampaignOptions) error {
	body := struct {
		Name   string    `json:"name"`
		Update UpdateID  `json:"update"`
		Groups []GroupID `json:"groups,omitempty"`
	}{opts.Name, opts.Update, opts.Groups}

	var out struct {
		ID CampaignID `json:"id"`
	}
	u := endpoint(cfg.CampaignerURL, "/api/v2/campaigns")
	if err := a.c.do(ctx, cfg, "create campaign", http.MethodPost, u, body, &out); err != nil {
		return err
	}

	log.Info("campaign created", "campaign", out.ID, "name", opts.Name)
	fmt.Println(out.ID)
	return nil
}

func (a *Campaigner) Launch(ctx context.Context, cfg *config.Config, id CampaignID) error {
	u := endpoint(cfg.CampaignerURL, "/api/v2/campaigns/"+id.String()+"/launch")
	if err := a.c.do(ctx, cfg, "launch campaign", http.MethodPost, u, nil, nil); err != nil {
		return err
	}
	log.Info("campaign launched", "campaign", id)
	return nil
}

func (a *Campaigner) Cancel(ctx context.Context, cfg *config.Config, id CampaignID) error {
	u := endpoint(cfg.CampaignerURL, "/api/v2/campaigns/"+id.String()+"/cancel")
	if err := a.c.do(ctx, cfg, "cancel campaign", http.MethodPost, u, nil, nil); err != nil {
		return err
	}
	log.Info("campaign cancelled", "campaign", id)
	return nil
}

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

// Registry talks to the device and group registry service.
type Registry struct {
	c *Client
}

func NewRegistry(c *Client) *Registry {
	return &Registry{c: c}
}

func (a *Registry) ListDevices(ctx context.Context, cfg *config.Config, opts ListOptions) error {
	var out struct {
		Values []Device `json:"values"`
	}
	u := endpoint(cfg.RegistryURL, "/api/v1/devices") + listQuery(opts)
	if err := a.c.do(ctx, cfg, "list devices", http.MethodGet, u, nil, &out); err != nil {
		return err
	}

	rows := make([][]any, 0, len(out.Values))
	for _, d := range out.Values {
		rows = append(rows, []any{d.ID, d.Name, d.Type, d.LastSeen.Format("2006-01-02 15:04")})
	}
	render.Table(os.Stdout, []string{"ID", "NAME", "TYPE", "LAST SEEN"}, rows)
	return nil
}

func (a *Registry) CreateDevice(ctx context.Context, cfg *config.Config, name, id string, typ DeviceType) error {
	body := struct {
		Name     string     `json:"deviceName"`
		DeviceID string     `json:"deviceId"`
		Type     DeviceType `json:"deviceType"`
	}{name, id, typ}

	var out struct {
		ID DeviceID `json:"id"`
	}
	u := endpoint(cfg.RegistryURL, "/api/v1/devices")
	if err := a.c.do(ctx, cfg, "create device", http.MethodPost, u, body, &out); err != nil {
		return err
	}

	log.Info("device created", "device", out.ID, "name", name, "type", typ)
	fmt.Println(out.ID)
	return nil
}

func (a *Registry) DeleteDevice(ctx context.Context, cfg *config.Config, id DeviceID) error {
	u := endpoint(cfg.RegistryURL, "/api/v1/devices/"+id.String())
	if err := a.c.do(ctx, cfg, "delete device", http.MethodDelete, u, nil, nil); err != nil {
		return err
	}
	log.Info("device deleted", "device", id)
	return nil
}

func (a *Registry) ListGroups(ctx context.Context, cfg *config.Config, opts ListOptions) error {
	var out struct {
		Values []Group `json:"values"`
	}
	u := endpoint(cfg.RegistryURL, "/api/v1/device_groups") + listQuery(opts)
	if err := a.c.do(ctx, cfg, "list groups", http.MethodGet, u, nil, &out); err != nil {
		return err
	}

	rows := make([][]any, 0, len(out.Values))
	for _, g := range out.Values {
		rows = append(rows, []any{g.ID, g.Name, g.Devices})
	}
	render.Table(os.Stdout, []string{"ID", "NAME", "DEVICES"}, rows)
	return nil
}

func (a *Registry) CreateGroup(ctx context.Context, cfg *config.Config, name string) error {
	body := struct {
		Name string `json:"groupName"`
	}{name}

	var out struct {
		ID GroupID `json:"id"`
	}
	u := endpoint(cfg.RegistryURL, "/api/v1/device_groups")
	if err := a.c.do(ctx, cfg, "create group", http.MethodPost, u, body, &out); err != nil {
		return err
	}

	log.Info("group created", "group", out.ID, "name", name)
	fmt.Println(out.ID)
	return nil
}

func (a *Registry) AddToGroup(ctx context.Context, cfg *config.Config, group GroupID, device DeviceID) error {
	u := endpoint(cfg.RegistryURL, "/api/v1/device_groups/"+group.String()+"/devices/"+device.String())
	if err := a.c.do(ctx, cfg, "add device to group", http.MethodPost, u, nil, nil); err != nil {
		return err
	}
	log.Info("device added to group", "group", group, "device", device)
	return nil
}

func (a *Registry) RemoveFromGroup(ctx context.Context, cfg *config.Config, group GroupID, device DeviceID) error {
	u := endpoint(cfg.RegistryURL, "/api/v1/device_groups/"+group.String()+"/devices/"+device.String())
	if err := a.c.do(ctx, cfg, "remove device from group", http.MethodDelete, u, nil, nil); err != nil {
		return err
	}
	log.Info("device removed from group", "group", group, "device", device)
	return nil
}

func (a *Registry) RenameGroup(ctx context.Context, cfg *config.Config, group GroupID, name string) error {
	body := struct {
		Name string `json:"groupName"`
	}{name}

	u := endpoint(cfg.RegistryURL, "/api/v1/device_groups/"+group.String()+"/rename")
	if err := a.c.do(ctx, cfg, "rename group", http.MethodPut, u, body, nil); err != nil {
		return err
	}
	log.Info("group renamed", "group", group, "name", name)
	return nil
}

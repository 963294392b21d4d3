package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/otafleet-io/fleetctl/internal/config"
	"github.com/otafleet-io/fleetctl/pkg/log"
)

// Director talks to the update-orchestration service.
type Director struct {
	c *Client
}

func NewDirector(c *Client) *Director {
	return &Director{c: c}
}

// TargetRequest is one per-device line of a targets file: which package and
// version the device should receive.
type TargetRequest struct {
	Device   string `json:"device" yaml:"device"`
	Package  string `json:"package" yaml:"package"`
	Version  string `json:"version" yaml:"version"`
	Hardware string `json:"hardware,omitempty" yaml:"hardware,omitempty"`
}

// TargetSpec is the per-device entry of a composed update set.
type TargetSpec struct {
	Package  string `json:"package"`
	Version  string `json:"version"`
	Hardware string `json:"hardware,omitempty"`
}

// UpdateSet is the composed multi-target update sent to the director.
type UpdateSet struct {
	Targets map[DeviceID]TargetSpec `json:"targets"`
}

// ReadTargets loads and validates a targets file. JSON is the default; files
// ending in .yaml or .yml are decoded as YAML.
func ReadTargets(path string) ([]TargetRequest, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}

	var file struct {
		Targets []TargetRequest `json:"targets" yaml:"targets"`
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(buf, &file)
	default:
		err = json.Unmarshal(buf, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parse targets file %s: %w", path, err)
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("targets file %s defines no targets", path)
	}

	for i, t := range file.Targets {
		if _, err := ParseDeviceID(t.Device); err != nil {
			return nil, fmt.Errorf("targets file %s: target %d: %w", path, i, err)
		}
		if t.Package == "" || t.Version == "" {
			return nil, fmt.Errorf("targets file %s: target %d: package and version are required", path, i)
		}
	}
	return file.Targets, nil
}

// BuildUpdateSet folds per-device target requests into one update set. A
// device may appear at most once.
func BuildUpdateSet(reqs []TargetRequest) (UpdateSet, error) {
	set := UpdateSet{Targets: make(map[DeviceID]TargetSpec, len(reqs))}
	for _, r := range reqs {
		id := DeviceID(r.Device)
		if _, dup := set.Targets[id]; dup {
			return UpdateSet{}, fmt.Errorf("duplicate device %s in targets", id)
		}
		set.Targets[id] = TargetSpec{Package: r.Package, Version: r.Version, Hardware: r.Hardware}
	}
	return set, nil
}

// CreateFromTargets reads a targets file, composes the update set and creates
// the multi-target update. File and composition failures surface through the
// same channel as backend failures.
func (a *Director) CreateFromTargets(ctx context.Context, cfg *config.Config, path string) error {
	reqs, err := ReadTargets(path)
	if err != nil {
		return fmt.Errorf("create update: %w", err)
	}
	set, err := BuildUpdateSet(reqs)
	if err != nil {
		return fmt.Errorf("create update: %w", err)
	}
	return a.CreateUpdate(ctx, cfg, set)
}

// CreateUpdate submits a composed update set to the director.
func (a *Director) CreateUpdate(ctx context.Context, cfg *config.Config, set UpdateSet) error {
	var out struct {
		ID UpdateID `json:"id"`
	}
	u := endpoint(cfg.DirectorURL, "/api/v1/multi_target_updates")
	if err := a.c.do(ctx, cfg, "create update", http.MethodPost, u, set, &out); err != nil {
		return err
	}

	log.Info("update created", "update", out.ID, "targets", len(set.Targets))
	fmt.Println(out.ID)
	return nil
}

// LaunchUpdate assigns a multi-target update to a single device.
func (a *Director) LaunchUpdate(ctx context.Context, cfg *config.Config, update UpdateID, device DeviceID) error {
	u := endpoint(cfg.DirectorURL, "/api/v1/admin/devices/"+device.String()+"/multi_target_update/"+update.String())
	if err := a.c.do(ctx, cfg, "launch update", http.MethodPut, u, nil, nil); err != nil {
		return err
	}
	log.Info("update launched", "update", update, "device", device)
	return nil
}

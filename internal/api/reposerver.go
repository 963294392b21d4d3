package api

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/otafleet-io/fleetctl/internal/config"
	"github.com/otafleet-io/fleetctl/pkg/log"
)

// Reposerver talks to the package repository service.
type Reposerver struct {
	c *Client
}

func NewReposerver(c *Client) *Reposerver {
	return &Reposerver{c: c}
}

// AddPackage uploads the file at pkg.Path as the target named by pkg.Name and
// pkg.Version.
func (a *Reposerver) AddPackage(ctx context.Context, cfg *config.Config, pkg TargetPackage) error {
	f, err := os.Open(pkg.Path)
	if err != nil {
		return fmt.Errorf("upload package: %w", err)
	}
	defer f.Close()

	u := endpoint(cfg.ReposerverURL, "/api/v1/user_repo/targets/"+targetName(pkg.Name, pkg.Version))
	if err := a.c.upload(ctx, cfg, "upload package", http.MethodPut, u, f); err != nil {
		return err
	}

	log.Info("package uploaded", "name", pkg.Name, "version", pkg.Version, "path", pkg.Path)
	return nil
}

// GetPackage downloads the named target into the working directory.
func (a *Reposerver) GetPackage(ctx context.Context, cfg *config.Config, name, version string) error {
	out := targetName(name, version)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("download package: %w", err)
	}
	defer f.Close()

	u := endpoint(cfg.ReposerverURL, "/api/v1/user_repo/targets/"+out)
	if err := a.c.download(ctx, cfg, "download package", u, f); err != nil {
		os.Remove(out)
		return err
	}

	log.Info("package downloaded", "name", name, "version", version, "file", out)
	fmt.Println(out)
	return nil
}

func targetName(name, version string) string {
	return name + "_" + version
}

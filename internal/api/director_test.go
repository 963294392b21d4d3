package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/otafleet-io/fleetctl/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadTargetsJSON(t *testing.T) {
	path := writeFile(t, "targets.json", `{
		"targets": [
			{"device": "dev-001", "package": "app", "version": "1.2.3"},
			{"device": "dev-002", "package": "app", "version": "1.2.3", "hardware": "rpi4"}
		]
	}`)

	reqs, err := ReadTargets(path)
	if err != nil {
		t.Fatalf("ReadTargets: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("targets = %d, want 2", len(reqs))
	}
	if reqs[1].Hardware != "rpi4" {
		t.Errorf("hardware = %q", reqs[1].Hardware)
	}
}

func TestReadTargetsYAML(t *testing.T) {
	path := writeFile(t, "targets.yaml", `
targets:
  - device: dev-001
    package: app
    version: 1.2.3
`)

	reqs, err := ReadTargets(path)
	if err != nil {
		t.Fatalf("ReadTargets: %v", err)
	}
	if len(reqs) != 1 || reqs[0].Device != "dev-001" {
		t.Fatalf("unexpected targets: %+v", reqs)
	}
}

func TestReadTargetsFailures(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		content string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.json") }, ""},
		{"malformed json", nil, `{"targets": [`},
		{"no targets", nil, `{"targets": []}`},
		{"bad device id", nil, `{"targets": [{"device": "not ok", "package": "app", "version": "1"}]}`},
		{"missing version", nil, `{"targets": [{"device": "dev-001", "package": "app"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			if tt.path != nil {
				path = tt.path(t)
			} else {
				path = writeFile(t, "targets.json", tt.content)
			}
			if _, err := ReadTargets(path); err == nil {
				t.Error("ReadTargets succeeded, want error")
			}
		})
	}
}

func TestBuildUpdateSet(t *testing.T) {
	reqs := []TargetRequest{
		{Device: "dev-001", Package: "app", Version: "1"},
		{Device: "dev-002", Package: "app", Version: "2", Hardware: "rpi4"},
	}

	set, err := BuildUpdateSet(reqs)
	if err != nil {
		t.Fatalf("BuildUpdateSet: %v", err)
	}
	if len(set.Targets) != 2 {
		t.Fatalf("targets = %d, want 2", len(set.Targets))
	}
	if spec := set.Targets["dev-002"]; spec.Version != "2" || spec.Hardware != "rpi4" {
		t.Errorf("dev-002 spec = %+v", spec)
	}
}

func TestBuildUpdateSetDuplicateDevice(t *testing.T) {
	reqs := []TargetRequest{
		{Device: "dev-001", Package: "app", Version: "1"},
		{Device: "dev-001", Package: "app", Version: "2"},
	}
	if _, err := BuildUpdateSet(reqs); err == nil {
		t.Error("BuildUpdateSet accepted a duplicate device")
	}
}

func TestCreateFromTargets(t *testing.T) {
	var gotBody UpdateSet
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/multi_target_updates" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "mtu-9"})
	}))
	defer srv.Close()

	path := writeFile(t, "targets.json",
		`{"targets": [{"device": "dev-001", "package": "app", "version": "1.2.3"}]}`)

	d := NewDirector(NewClient(time.Second))
	cfg := &config.Config{DirectorURL: srv.URL}
	if err := d.CreateFromTargets(context.Background(), cfg, path); err != nil {
		t.Fatalf("CreateFromTargets: %v", err)
	}
	if spec := gotBody.Targets["dev-001"]; spec.Package != "app" || spec.Version != "1.2.3" {
		t.Errorf("submitted targets = %+v", gotBody.Targets)
	}
}

// A broken targets file never reaches the director.
func TestCreateFromTargetsUnreadableFile(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	d := NewDirector(NewClient(time.Second))
	cfg := &config.Config{DirectorURL: srv.URL}
	err := d.CreateFromTargets(context.Background(), cfg, filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected an error for a missing targets file")
	}
	if called {
		t.Error("director was called despite an unreadable targets file")
	}
}

func TestLaunchUpdate(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
	}))
	defer srv.Close()

	d := NewDirector(NewClient(time.Second))
	cfg := &config.Config{DirectorURL: srv.URL}
	if err := d.LaunchUpdate(context.Background(), cfg, "mtu-9", "dev-001"); err != nil {
		t.Fatalf("LaunchUpdate: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %q, want PUT", gotMethod)
	}
	if gotPath != "/api/v1/admin/devices/dev-001/multi_target_update/mtu-9" {
		t.Errorf("path = %q", gotPath)
	}
}

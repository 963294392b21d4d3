package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/otafleet-io/fleetctl/internal/config"
)

func TestRegistryCreateDevice(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/devices" || r.Method != http.MethodPost {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "dev-001"})
	}))
	defer srv.Close()

	a := NewRegistry(NewClient(time.Second))
	cfg := &config.Config{RegistryURL: srv.URL}
	if err := a.CreateDevice(context.Background(), cfg, "edge-1", "dev-001", DeviceTypeQemu); err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}

	want := map[string]string{"deviceName": "edge-1", "deviceId": "dev-001", "deviceType": "qemu"}
	for k, v := range want {
		if gotBody[k] != v {
			t.Errorf("body[%q] = %q, want %q", k, gotBody[k], v)
		}
	}
}

func TestRegistryGroupMembership(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
	}))
	defer srv.Close()

	a := NewRegistry(NewClient(time.Second))
	cfg := &config.Config{RegistryURL: srv.URL}
	ctx := context.Background()

	if err := a.AddToGroup(ctx, cfg, "7", "dev-001"); err != nil {
		t.Fatalf("AddToGroup: %v", err)
	}
	if err := a.RemoveFromGroup(ctx, cfg, "7", "dev-001"); err != nil {
		t.Fatalf("RemoveFromGroup: %v", err)
	}
	if err := a.DeleteDevice(ctx, cfg, "dev-001"); err != nil {
		t.Fatalf("DeleteDevice: %v", err)
	}

	want := []call{
		{http.MethodPost, "/api/v1/device_groups/7/devices/dev-001"},
		{http.MethodDelete, "/api/v1/device_groups/7/devices/dev-001"},
		{http.MethodDelete, "/api/v1/devices/dev-001"},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestRegistryRenameGroup(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/device_groups/7/rename" || r.Method != http.MethodPut {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer srv.Close()

	a := NewRegistry(NewClient(time.Second))
	cfg := &config.Config{RegistryURL: srv.URL}
	if err := a.RenameGroup(context.Background(), cfg, "7", "stable"); err != nil {
		t.Fatalf("RenameGroup: %v", err)
	}
	if gotBody["groupName"] != "stable" {
		t.Errorf("body = %v", gotBody)
	}
}

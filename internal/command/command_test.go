package command

import (
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		token string
		want  Command
	}{
		{"init", CommandInit},
		{"campaign", CommandCampaign},
		{"Campaign", CommandCampaign},
		{"CAMPAIGN", CommandCampaign},
		{"device", CommandDevice},
		{"DeViCe", CommandDevice},
		{"group", CommandGroup},
		{"package", CommandPackage},
		{"update", CommandUpdate},
		{"UPDATE", CommandUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseCommand(tt.token)
			if err != nil {
				t.Fatalf("ParseCommand(%q): %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseCommand(%q) = %q, want %q", tt.token, got, tt.want)
			}

			// Resolution is a pure function: same token, same value.
			again, err := ParseCommand(tt.token)
			if err != nil || again != got {
				t.Errorf("ParseCommand(%q) not idempotent: %q vs %q (err %v)", tt.token, got, again, err)
			}
		})
	}
}

func TestParseCommandUnknown(t *testing.T) {
	for _, token := range []string{"", "frobnicate", "campaigns", "ini", "device2", " device"} {
		t.Run(token, func(t *testing.T) {
			_, err := ParseCommand(token)
			var unknown *UnknownCommandError
			if !errors.As(err, &unknown) {
				t.Fatalf("ParseCommand(%q) err = %v, want UnknownCommandError", token, err)
			}
			if unknown.Token != token {
				t.Errorf("error token = %q, want %q", unknown.Token, token)
			}
		})
	}
}

func TestParseSubcommands(t *testing.T) {
	tests := []struct {
		parent Command
		parse  func(string) (string, error)
		valid  map[string]string
	}{
		{
			parent: CommandCampaign,
			parse: func(s string) (string, error) {
				v, err := ParseCampaign(s)
				return string(v), err
			},
			valid: map[string]string{
				"list": "list", "LIST": "list", "create": "create",
				"Launch": "launch", "cancel": "cancel",
			},
		},
		{
			parent: CommandDevice,
			parse: func(s string) (string, error) {
				v, err := ParseDevice(s)
				return string(v), err
			},
			valid: map[string]string{"list": "list", "create": "create", "DELETE": "delete"},
		},
		{
			parent: CommandGroup,
			parse: func(s string) (string, error) {
				v, err := ParseGroup(s)
				return string(v), err
			},
			valid: map[string]string{
				"list": "list", "create": "create", "add": "add",
				"Rename": "rename", "remove": "remove",
			},
		},
		{
			parent: CommandPackage,
			parse: func(s string) (string, error) {
				v, err := ParsePackage(s)
				return string(v), err
			},
			valid: map[string]string{"list": "list", "add": "add", "fetch": "fetch"},
		},
		{
			parent: CommandUpdate,
			parse: func(s string) (string, error) {
				v, err := ParseUpdate(s)
				return string(v), err
			},
			valid: map[string]string{"create": "create", "LAUNCH": "launch"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.parent), func(t *testing.T) {
			for token, want := range tt.valid {
				got, err := tt.parse(token)
				if err != nil {
					t.Errorf("parse(%q): %v", token, err)
					continue
				}
				if got != want {
					t.Errorf("parse(%q) = %q, want %q", token, got, want)
				}
			}

			for _, token := range []string{"", "bogus", "lists"} {
				_, err := tt.parse(token)
				var unknown *UnknownSubcommandError
				if !errors.As(err, &unknown) {
					t.Errorf("parse(%q) err = %v, want UnknownSubcommandError", token, err)
					continue
				}
				if unknown.Parent != tt.parent {
					t.Errorf("parse(%q) parent = %q, want %q", token, unknown.Parent, tt.parent)
				}
			}
		})
	}
}

// Subcommand sets are disjoint per domain: a token valid for one domain does
// not resolve for another that lacks it.
func TestNoCrossDomainSubcommands(t *testing.T) {
	if _, err := ParseCampaign("delete"); err == nil {
		t.Error("campaign accepted device-only subcommand \"delete\"")
	}
	if _, err := ParseDevice("launch"); err == nil {
		t.Error("device accepted campaign-only subcommand \"launch\"")
	}
	if _, err := ParseUpdate("list"); err == nil {
		t.Error("update accepted subcommand \"list\"")
	}
	if _, err := ParsePackage("cancel"); err == nil {
		t.Error("package accepted campaign-only subcommand \"cancel\"")
	}
	if _, err := ParseGroup("fetch"); err == nil {
		t.Error("group accepted package-only subcommand \"fetch\"")
	}
}

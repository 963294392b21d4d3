package command

import (
	"github.com/spf13/pflag"

	"github.com/otafleet-io/fleetctl/internal/api"
	"github.com/otafleet-io/fleetctl/internal/config"
)

// The flag extraction layer. Every "required flag" assumption of the routing
// table goes through these helpers, so an absent or malformed value becomes a
// typed error before any backend call.

func requiredString(fs *pflag.FlagSet, name string) (string, error) {
	f := fs.Lookup(name)
	if f == nil || f.Value.String() == "" {
		return "", &MissingParameterError{Name: name}
	}
	return f.Value.String(), nil
}

func optionalString(fs *pflag.FlagSet, name string) string {
	if f := fs.Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func optionalInt(fs *pflag.FlagSet, name string) int {
	if f := fs.Lookup(name); f != nil {
		if v, err := fs.GetInt(name); err == nil {
			return v
		}
	}
	return 0
}

func optionalBool(fs *pflag.FlagSet, name string) bool {
	if f := fs.Lookup(name); f != nil {
		if v, err := fs.GetBool(name); err == nil {
			return v
		}
	}
	return false
}

func campaignID(fs *pflag.FlagSet) (api.CampaignID, error) {
	raw, err := requiredString(fs, "campaign")
	if err != nil {
		return "", err
	}
	id, err := api.ParseCampaignID(raw)
	if err != nil {
		return "", &InvalidIdentifierError{Name: "campaign", Raw: raw, Cause: err}
	}
	return id, nil
}

func deviceID(fs *pflag.FlagSet) (api.DeviceID, error) {
	raw, err := requiredString(fs, "device")
	if err != nil {
		return "", err
	}
	id, err := api.ParseDeviceID(raw)
	if err != nil {
		return "", &InvalidIdentifierError{Name: "device", Raw: raw, Cause: err}
	}
	return id, nil
}

func groupID(fs *pflag.FlagSet) (api.GroupID, error) {
	raw, err := requiredString(fs, "group")
	if err != nil {
		return "", err
	}
	id, err := api.ParseGroupID(raw)
	if err != nil {
		return "", &InvalidIdentifierError{Name: "group", Raw: raw, Cause: err}
	}
	return id, nil
}

func updateID(fs *pflag.FlagSet) (api.UpdateID, error) {
	raw, err := requiredString(fs, "update")
	if err != nil {
		return "", err
	}
	id, err := api.ParseUpdateID(raw)
	if err != nil {
		return "", &InvalidIdentifierError{Name: "update", Raw: raw, Cause: err}
	}
	return id, nil
}

func deviceType(fs *pflag.FlagSet) (api.DeviceType, error) {
	raw, err := requiredString(fs, "type")
	if err != nil {
		return "", err
	}
	typ, err := api.ParseDeviceType(raw)
	if err != nil {
		return "", &InvalidIdentifierError{Name: "type", Raw: raw, Cause: err}
	}
	return typ, nil
}

func listOptions(fs *pflag.FlagSet) api.ListOptions {
	return api.ListOptions{
		Limit:  optionalInt(fs, "limit"),
		Offset: optionalInt(fs, "offset"),
	}
}

func campaignCreateOptions(fs *pflag.FlagSet) (api.CreateCampaignOptions, error) {
	name, err := requiredString(fs, "name")
	if err != nil {
		return api.CreateCampaignOptions{}, err
	}
	update, err := updateID(fs)
	if err != nil {
		return api.CreateCampaignOptions{}, err
	}

	opts := api.CreateCampaignOptions{Name: name, Update: update}
	if fs.Lookup("groups") != nil {
		raws, err := fs.GetStringSlice("groups")
		if err == nil {
			for _, raw := range raws {
				id, err := api.ParseGroupID(raw)
				if err != nil {
					return api.CreateCampaignOptions{}, &InvalidIdentifierError{Name: "groups", Raw: raw, Cause: err}
				}
				opts.Groups = append(opts.Groups, id)
			}
		}
	}
	return opts, nil
}

func targetPackage(fs *pflag.FlagSet) (api.TargetPackage, error) {
	name, err := requiredString(fs, "name")
	if err != nil {
		return api.TargetPackage{}, err
	}
	version, err := requiredString(fs, "version")
	if err != nil {
		return api.TargetPackage{}, err
	}
	path, err := requiredString(fs, "path")
	if err != nil {
		return api.TargetPackage{}, err
	}
	return api.TargetPackage{Name: name, Version: version, Path: path}, nil
}

func initOptions(fs *pflag.FlagSet) (config.InitOptions, error) {
	campaigner, err := requiredString(fs, "campaigner-url")
	if err != nil {
		return config.InitOptions{}, err
	}
	director, err := requiredString(fs, "director-url")
	if err != nil {
		return config.InitOptions{}, err
	}
	registry, err := requiredString(fs, "registry-url")
	if err != nil {
		return config.InitOptions{}, err
	}
	reposerver, err := requiredString(fs, "reposerver-url")
	if err != nil {
		return config.InitOptions{}, err
	}

	return config.InitOptions{
		CampaignerURL: campaigner,
		DirectorURL:   director,
		RegistryURL:   registry,
		ReposerverURL: reposerver,
		Token:         optionalString(fs, "token"),
		Force:         optionalBool(fs, "force"),
		Path:          optionalString(fs, "config"),
	}, nil
}

package api

import (
	"fmt"
	"strings"
	"time"
)

// Backend identifiers are opaque tokens minted by the services. They are
// validated for shape only: non-empty, no whitespace, and a conservative
// charset that covers both numeric ids and UUIDs.
const identifierCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789._:-"

func parseIdentifier(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("identifier is empty")
	}
	for _, r := range raw {
		if !strings.ContainsRune(identifierCharset, r) {
			return "", fmt.Errorf("identifier contains invalid character %q", r)
		}
	}
	return raw, nil
}

// CampaignID identifies a campaign managed by the campaigner service.
type CampaignID string

func ParseCampaignID(raw string) (CampaignID, error) {
	id, err := parseIdentifier(raw)
	return CampaignID(id), err
}

func (id CampaignID) String() string { return string(id) }

// DeviceID identifies a device in the registry.
type DeviceID string

func ParseDeviceID(raw string) (DeviceID, error) {
	id, err := parseIdentifier(raw)
	return DeviceID(id), err
}

func (id DeviceID) String() string { return string(id) }

// GroupID identifies a device group in the registry.
type GroupID string

func ParseGroupID(raw string) (GroupID, error) {
	id, err := parseIdentifier(raw)
	return GroupID(id), err
}

func (id GroupID) String() string { return string(id) }

// UpdateID identifies a multi-target update managed by the director.
type UpdateID string

func ParseUpdateID(raw string) (UpdateID, error) {
	id, err := parseIdentifier(raw)
	return UpdateID(id), err
}

func (id UpdateID) String() string { return string(id) }

// DeviceType classifies a device at registration time.
type DeviceType string

const (
	DeviceTypeVehicle DeviceType = "vehicle"
	DeviceTypeQemu    DeviceType = "qemu"
	DeviceTypeOther   DeviceType = "other"
)

// ParseDeviceType resolves a device-type tag case-insensitively.
func ParseDeviceType(raw string) (DeviceType, error) {
	switch strings.ToLower(raw) {
	case "vehicle":
		return DeviceTypeVehicle, nil
	case "qemu":
		return DeviceTypeQemu, nil
	case "other":
		return DeviceTypeOther, nil
	default:
		return "", fmt.Errorf("device type must be one of vehicle, qemu, other")
	}
}

// ListOptions carries the optional filters a list operation supports.
type ListOptions struct {
	Limit  int
	Offset int
}

// CreateCampaignOptions carries the parameters for creating a campaign.
type CreateCampaignOptions struct {
	Name   string
	Update UpdateID
	Groups []GroupID
}

// TargetPackage describes a package to upload to the reposerver.
type TargetPackage struct {
	Name    string
	Version string
	Path    string
}

// Campaign is a campaigner-side record.
type Campaign struct {
	ID        CampaignID `json:"id"`
	Name      string     `json:"name"`
	Update    UpdateID   `json:"update"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Device is a registry-side record.
type Device struct {
	ID       DeviceID   `json:"id"`
	Name     string     `json:"name"`
	Type     DeviceType `json:"deviceType"`
	LastSeen time.Time  `json:"lastSeen"`
}

// Group is a registry-side record.
type Group struct {
	ID      GroupID `json:"id"`
	Name    string  `json:"name"`
	Devices int     `json:"devices"`
}

package config

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

const profileKey = "profile"

// Profile is what an observer remembers between runs.
type Profile struct {
	ClientName string `json:"clientName"`
	Address    string `json:"address"`
}

// ItemStore is the key/value persistence used for profiles.
// *gdata.Manager satisfies it.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// OpenProfileStore opens the per-user data directory for appName.
func OpenProfileStore(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open profile store: %w", err)
	}
	return m, nil
}

// LoadProfile returns the saved profile, or nil when none was saved yet.
func LoadProfile(store ItemStore) (*Profile, error) {
	data, err := store.LoadItem(profileKey)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &p, nil
}

// SaveProfile persists p.
func SaveProfile(store ItemStore, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("serialize profile: %w", err)
	}
	if err := store.SaveItem(profileKey, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

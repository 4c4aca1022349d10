package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/automoto/posesync/shared/posesync"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(""))

	assert.Equal(t, "info", LogLevel())
	assert.Equal(t, "", LogFile())
	assert.Equal(t, ServerConfig{Port: 7373, TickRate: 30, Name: "posesync", Version: "1"}, Server())

	c := Client()
	assert.Equal(t, "localhost:7373", c.Address)
	assert.Equal(t, "observer", c.Name)

	s, err := Sync()
	require.NoError(t, err)
	assert.Equal(t, 0.01, s.PositionThreshold)
	assert.Equal(t, 0.01, s.RotationThreshold)
	assert.Equal(t, 0.01, s.ScaleThreshold)
	assert.Equal(t, 0.1, s.SendInterval)
	assert.False(t, s.ClientAuthority)
	assert.True(t, s.ExcludeOwnerEcho)
	assert.Equal(t, "linear", s.Easing)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "posesync.json")
	cfg := `{
		"logLevel": "debug",
		"server": { "port": 9000, "demoEntities": 3 },
		"sync": { "sendInterval": 0.05, "clientAuthority": true, "easing": "inoutquad" }
	}`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	require.NoError(t, Load(path))

	assert.Equal(t, "debug", LogLevel())
	assert.Equal(t, uint(9000), Server().Port)
	assert.Equal(t, 3, Server().DemoEntities)
	assert.Equal(t, 30, Server().TickRate)

	s, err := Sync()
	require.NoError(t, err)
	assert.Equal(t, 0.05, s.SendInterval)
	assert.True(t, s.ClientAuthority)
	assert.NotNil(t, s.Curve())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("POSESYNC_SERVER_PORT", "8123")
	t.Setenv("POSESYNC_CLIENT_ADDRESS", "example:1")

	require.NoError(t, Load(""))

	assert.Equal(t, uint(8123), Server().Port)
	assert.Equal(t, "example:1", Client().Address)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path/posesync.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestSync_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"negative threshold", "sync.positionThreshold", -1.0},
		{"zero interval", "sync.sendInterval", 0.0},
		{"unknown easing", "sync.easing", "bouncy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)
			require.NoError(t, Load(""))
			viper.Set(tt.key, tt.value)

			_, err := Sync()
			assert.ErrorIs(t, err, posesync.ErrInvalidSettings)
		})
	}
}

type memStore struct {
	items map[string][]byte
	err   error
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.items == nil {
		m.items = make(map[string][]byte)
	}
	m.items[key] = data
	return nil
}

func TestProfile_RoundTrip(t *testing.T) {
	store := &memStore{}

	p, err := LoadProfile(store)
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, SaveProfile(store, Profile{ClientName: "ada", Address: "host:7373"}))

	p, err = LoadProfile(store)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "ada", p.ClientName)
	assert.Equal(t, "host:7373", p.Address)
}

func TestProfile_Errors(t *testing.T) {
	broken := &memStore{err: errors.New("disk gone")}
	_, err := LoadProfile(broken)
	assert.ErrorContains(t, err, "disk gone")
	assert.ErrorContains(t, SaveProfile(broken, Profile{}), "save profile")

	corrupt := &memStore{items: map[string][]byte{profileKey: []byte("{")}}
	_, err = LoadProfile(corrupt)
	assert.ErrorContains(t, err, "parse profile")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()
	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, time.Second, c.SaveDebounce)
	assert.Equal(t, 10*time.Second, c.SaveTimeout)
	assert.Equal(t, "fuel.db", c.DatabaseDSN)
	assert.NoError(t, c.Validate())
}

func TestLoad_JSONThenFlags(t *testing.T) {
	t.Setenv("FUEL_CONFIG", "")
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_endpoint_addr": "10.0.0.1:5000",
		"save_debounce": "250ms",
		"save_timeout": 2000000000,
		"log_level": "debug"
	}`), 0o600))

	got := load([]string{"-c", path, "-a", "localhost:1", "-d", "/tmp/x.db", "unrelated"})

	want := defaults()
	want.ServerEndpointAddr = "localhost:1"
	want.SaveDebounce = 250 * time.Millisecond
	want.SaveTimeout = 2 * time.Second
	want.LogLevel = "debug"
	want.DatabaseDSN = "/tmp/x.db"

	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"online_check_interval": "10s"}`), 0o600))
	t.Setenv("FUEL_CONFIG", path)

	got := load(nil)
	assert.Equal(t, 10*time.Second, got.OnlineCheckInterval)
}

func TestParseFlags_UnsetDurationsKeepSubUnitValues(t *testing.T) {
	c := defaults()
	c.OnlineCheckInterval = 1500 * time.Millisecond
	parseFlags(&c, []string{"-w", "400"})

	assert.Equal(t, 400*time.Millisecond, c.SaveDebounce)
	assert.Equal(t, 1500*time.Millisecond, c.OnlineCheckInterval)
}

func TestParseFlags_PanicsOnBadValue(t *testing.T) {
	c := defaults()
	assert.Panics(t, func() { parseFlags(&c, []string{"-i", "often"}) })
}

func TestParseJson_PanicsOnBadFile(t *testing.T) {
	t.Setenv("FUEL_CONFIG", "")
	c := defaults()
	assert.Panics(t, func() { parseJson(&c, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}) })
}

func TestValidate(t *testing.T) {
	c := defaults()
	c.SaveDebounce = 0
	c.DatabaseDSN = ""
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save debounce")
	assert.Contains(t, err.Error(), "database path")
}

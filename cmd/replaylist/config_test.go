package replaylist

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsahi-Elkayam/replaylist/pkg/config"
	"github.com/Tsahi-Elkayam/replaylist/pkg/utils"
)

func TestConfigShowMasksAPIKey(t *testing.T) {
	isolateEnv(t)
	t.Setenv("POSTHOG_API_KEY", "phx_secretsecret")
	t.Setenv("POSTHOG_PROJECT_ID", "12345")

	res := run(t, nil, "config", "show")
	require.Equal(t, ExitOK, res.code, res.stderr)

	assert.Contains(t, res.stdout, "API Key: phx_****")
	assert.Contains(t, res.stdout, "Project ID: 12345")
	assert.Contains(t, res.stdout, "built-in defaults")
	assert.NotContains(t, res.stdout, "phx_secretsecret")
}

func TestConfigShowYAML(t *testing.T) {
	isolateEnv(t)
	t.Setenv("POSTHOG_API_KEY", "phx_secretsecret")

	res := run(t, nil, "config", "show", "--format", "yaml")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "host: us.posthog.com")
	assert.NotContains(t, res.stdout, "phx_secretsecret")
}

func TestConfigShowBadFormat(t *testing.T) {
	isolateEnv(t)

	res := run(t, nil, "config", "show", "--format", "toml")
	assert.Equal(t, ExitUsage, res.code)
}

func TestConfigInit(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "conf", ".replaylist.yaml")

	res := run(t, nil, "config", "init", "--file", path)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Generated configuration file: "+path)
	assert.FileExists(t, path)

	// second run refuses to overwrite
	res = run(t, nil, "config", "init", "--file", path)
	require.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "Config file already exists")

	res = run(t, nil, "config", "init", "--file", path, "--force", "--minimal")
	require.Equal(t, ExitOK, res.code, res.stderr)

	loaded, err := config.NewLoader(utils.NewTestLogger(&bytes.Buffer{})).LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)
}

func TestConfigPath(t *testing.T) {
	isolateEnv(t)
	t.Setenv("POSTHOG_PROJECT_ID", "1")

	res := run(t, nil, "config", "path")
	require.Equal(t, ExitOK, res.code, res.stderr)

	assert.Contains(t, res.stdout, ".replaylist.yaml")
	assert.Contains(t, res.stdout, "No config file in use")
	assert.Contains(t, res.stdout, "POSTHOG_PROJECT_ID (set)")
	assert.Contains(t, res.stdout, "POSTHOG_API_KEY (not set)")
}

func TestConfigValidate(t *testing.T) {
	isolateEnv(t)

	res := run(t, nil, "config", "validate")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Configuration is valid.")
	assert.Contains(t, res.stdout, "No API key configured")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("output:\n  format: xml\n"), 0600))

	res = run(t, nil, "config", "validate", "--file", bad)
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "configuration validation failed")
}

func TestValidateConfigWarnings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PostHog.APIKey = "phx_abc"
	cfg.PostHog.ProjectID = "1"
	assert.Empty(t, validateConfigWarnings(cfg))

	cfg.PostHog.APIKey = "sk_abc"
	cfg.PostHog.Host = "https://eu.posthog.com"
	assert.Len(t, validateConfigWarnings(cfg), 2)
}

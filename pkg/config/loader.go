package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. REPLAYLIST_OUTPUT_FORMAT
const EnvPrefix = "REPLAYLIST"

// Loader handles configuration loading from various sources
type Loader struct {
	configPaths []string
	configName  string
	configType  string
	logger      *logrus.Logger

	usedFile string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *logrus.Logger) *Loader {
	homeDir, _ := os.UserHomeDir()
	return &Loader{
		configPaths: []string{
			".",
			homeDir,
			"/etc/replaylist",
		},
		configName: ".replaylist",
		configType: "yaml",
		logger:     logger,
	}
}

// envBindings maps config keys to the environment variables that override them,
// in order of precedence
var envBindings = map[string][]string{
	"posthog.host":                  {EnvPrefix + "_POSTHOG_HOST", "POSTHOG_HOST"},
	"posthog.api_key":               {EnvPrefix + "_POSTHOG_API_KEY", "POSTHOG_API_KEY", "POSTHOG_PERSONAL_API_KEY"},
	"posthog.project_id":            {EnvPrefix + "_POSTHOG_PROJECT_ID", "POSTHOG_PROJECT_ID"},
	"playlist.date_from":            {EnvPrefix + "_PLAYLIST_DATE_FROM"},
	"playlist.filter_test_accounts": {EnvPrefix + "_PLAYLIST_FILTER_TEST_ACCOUNTS"},
	"playlist.host":                 {EnvPrefix + "_PLAYLIST_HOST"},
	"output.format":                 {EnvPrefix + "_OUTPUT_FORMAT"},
	"logging.level":                 {EnvPrefix + "_LOG_LEVEL"},
	"logging.format":                {EnvPrefix + "_LOG_FORMAT"},
	"logging.color":                 {EnvPrefix + "_LOG_COLOR"},
	"logging.file":                  {EnvPrefix + "_LOG_FILE"},
}

// LoadConfig loads the built-in defaults, then the config file, then environment overrides
func (l *Loader) LoadConfig(configFile string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigType(l.configType)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(l.configName)
		for _, path := range l.configPaths {
			v.AddConfigPath(path)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	l.bindEnvironmentVariables(v)

	l.usedFile = ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		l.logger.Debug("No config file found, using built-in defaults")
	} else {
		l.usedFile = v.ConfigFileUsed()
		l.logger.Debugf("Using config file: %s", l.usedFile)
	}

	applyOverrides(v, config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyOverrides copies every key set in the file or environment over the defaults
func applyOverrides(v *viper.Viper, config *Config) {
	stringKeys := map[string]*string{
		"posthog.host":       &config.PostHog.Host,
		"posthog.api_key":    &config.PostHog.APIKey,
		"posthog.project_id": &config.PostHog.ProjectID,
		"playlist.date_from": &config.Playlist.DateFrom,
		"playlist.host":      &config.Playlist.Host,
		"output.format":      &config.Output.Format,
		"logging.level":      &config.Logging.Level,
		"logging.format":     &config.Logging.Format,
		"logging.file":       &config.Logging.File,
	}
	for key, target := range stringKeys {
		if v.IsSet(key) {
			*target = v.GetString(key)
		}
	}

	bools := map[string]*bool{
		"playlist.filter_test_accounts": &config.Playlist.FilterTestAccounts,
		"logging.color":                 &config.Logging.Color,
	}
	for key, target := range bools {
		if v.IsSet(key) {
			*target = v.GetBool(key)
		}
	}
}

// bindEnvironmentVariables binds environment variables to viper
func (l *Loader) bindEnvironmentVariables(v *viper.Viper) {
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		_ = v.BindEnv(args...)
	}
}

// SetEnvVars returns the override environment variables that are currently set
func (l *Loader) SetEnvVars() []string {
	var set []string
	for _, envs := range envBindings {
		for _, env := range envs {
			if os.Getenv(env) != "" {
				set = append(set, env)
			}
		}
	}
	sort.Strings(set)
	return set
}

// EnvVars returns every environment variable the loader reads
func (l *Loader) EnvVars() []string {
	var all []string
	for _, envs := range envBindings {
		all = append(all, envs...)
	}
	sort.Strings(all)
	return all
}

// UsedConfigFile returns the file read by the last LoadConfig, or ""
func (l *Loader) UsedConfigFile() string {
	return l.usedFile
}

// SearchPaths returns the candidate config files in priority order
func (l *Loader) SearchPaths() []string {
	var paths []string
	for _, dir := range l.configPaths {
		paths = append(paths,
			filepath.Join(dir, l.configName+".yaml"),
			filepath.Join(dir, l.configName+".yml"),
		)
	}
	return paths
}

// SaveConfig saves configuration to a file
func (l *Loader) SaveConfig(config *Config, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// may hold the API key
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateExampleConfig writes an example configuration file with comments
func (l *Loader) GenerateExampleConfig(filePath string) error {
	yamlContent := `# replaylist configuration file
# Only specify settings you want to change; everything else uses built-in defaults.
# Command line flags override this file, environment variables override it too.

posthog:
  host: "us.posthog.com"   # or eu.posthog.com, or your self-hosted instance
  # project_id: "12345"
  # Prefer POSTHOG_API_KEY in the environment or a .env file over storing the key here:
  # api_key: "phx_..."

# Defaults for every playlist created
# playlist:
#   date_from: "-30d"
#   filter_test_accounts: false
#   host: "example.com"   # only include sessions on this site

# output:
#   format: "text"  # text, json, yaml

# logging:
#   level: "warn"   # trace, debug, info, warn, error
#   format: "text"  # text, json
#   color: true
#   # file: "/path/to/logfile"

# Environment variable examples:
# export POSTHOG_API_KEY=phx_...
# export POSTHOG_PROJECT_ID=12345
# export REPLAYLIST_OUTPUT_FORMAT=json
# export REPLAYLIST_LOG_LEVEL=debug
`

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(filePath, []byte(yamlContent), 0644)
}

// GetConfigPath returns the default path to the configuration file
func (l *Loader) GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, l.configName+".yaml")
}

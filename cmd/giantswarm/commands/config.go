package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultCacheType is the response cache used when none is configured.
const DefaultCacheType = giantswarm.CacheTypeMemory

// Config represents the CLI configuration.
type Config struct {
	Endpoint     string `json:"endpoint,omitempty"      yaml:"endpoint,omitempty"`
	Token        string `json:"token,omitempty"         yaml:"token,omitempty"`
	Output       string `json:"output,omitempty"        yaml:"output,omitempty"`
	Cache        string `json:"cache,omitempty"         yaml:"cache,omitempty"`
	NATSURL      string `json:"nats_url,omitempty"      yaml:"nats_url,omitempty"`
	CachePath    string `json:"cache_path,omitempty"    yaml:"cache_path,omitempty"`
	DatabasePath string `json:"database_path,omitempty" yaml:"database_path,omitempty"`
}

// configKeys maps the keys accepted by "config set" to their fields.
var configKeys = map[string]func(*Config) *string{
	"endpoint":      func(c *Config) *string { return &c.Endpoint },
	"token":         func(c *Config) *string { return &c.Token },
	"output":        func(c *Config) *string { return &c.Output },
	"cache":         func(c *Config) *string { return &c.Cache },
	"nats_url":      func(c *Config) *string { return &c.NATSURL },
	"cache_path":    func(c *Config) *string { return &c.CachePath },
	"database_path": func(c *Config) *string { return &c.DatabasePath },
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with the session token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token != "" {
				config.Token = constants.MaskedSecret
			}

			renderer := &OutputRenderer[*Config]{
				Header: []string{"Property", "Value"},
				Rows: func(c *Config) [][]string {
					return [][]string{
						{"Endpoint", orNotAvailable(c.Endpoint)},
						{"Token", orNotAvailable(c.Token)},
						{"Output", orNotAvailable(c.Output)},
						{"Cache", orNotAvailable(c.Cache)},
						{"NATS URL", orNotAvailable(c.NATSURL)},
						{"Cache Path", orNotAvailable(c.CachePath)},
						{"Database Path", orNotAvailable(c.DatabasePath)},
					}
				},
			}

			return renderer.Render(cmd.OutOrStdout(), config)
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Keys: endpoint, token, output, cache, nats_url, cache_path, database_path`,
		Args: cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			printSuccess(cmd, "Set %s", key)

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	field, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	switch key {
	case "output":
		switch value {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		default:
			return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, value)
		}
	case "cache":
		switch giantswarm.CacheType(value) {
		case giantswarm.CacheTypeMemory, giantswarm.CacheTypeSQLite, giantswarm.CacheTypeNATS, giantswarm.CacheTypeNone:
		default:
			return fmt.Errorf("%w: %s", giantswarm.ErrUnsupportedCacheType, value)
		}
	}

	*field(config) = value

	return nil
}

func loadConfig() *Config {
	return &Config{
		Endpoint:     viper.GetString("endpoint"),
		Token:        viper.GetString("token"),
		Output:       viper.GetString("output"),
		Cache:        viper.GetString("cache"),
		NATSURL:      viper.GetString("nats_url"),
		CachePath:    viper.GetString("cache_path"),
		DatabasePath: viper.GetString("database_path"),
	}
}

// configDir returns ~/.giantswarm, creating it when missing.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, constants.ConfigDirName)

	err = os.MkdirAll(dir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

// saveConfigStruct writes config to the file viper read, or to the
// default location, and makes the values visible to later lookups.
func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}

		configFile = filepath.Join(dir, constants.ConfigFileName+"."+constants.ConfigFileType)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	for key, field := range configKeys {
		viper.Set(key, *field(config))
	}

	return nil
}

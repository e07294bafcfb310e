package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akhdanfadh/larderkeep/internal/larder"
)

// Flag names double as viper keys; LARDER_<NAME> (dashes as underscores) overrides them.
const (
	flagConfig        = "config"
	flagToken         = "token"
	flagBaseURL       = "base-url"
	flagAuthScheme    = "auth-scheme"
	flagTimeout       = "timeout"
	flagVerbose       = "verbose"
	flagGroupByFolder = "group-by-folder"

	envPrefix      = "LARDER"
	configFileName = "config"
	configFileType = "yaml"
)

// settings is the resolved configuration of a command run.
type settings struct {
	Token         string
	BaseURL       string
	AuthScheme    string
	Timeout       time.Duration
	Verbose       bool
	GroupByFolder bool
}

// loadSettings resolves settings with precedence flag > env > config file > default.
// A .env file in the working directory is loaded into the environment first;
// variables already set are not overridden.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configPath, _ := cmd.Flags().GetString(flagConfig)
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		if dir := getDefaultConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// missing default config file is not an error
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	return &settings{
		Token:         v.GetString(flagToken),
		BaseURL:       v.GetString(flagBaseURL),
		AuthScheme:    v.GetString(flagAuthScheme),
		Timeout:       v.GetDuration(flagTimeout),
		Verbose:       v.GetBool(flagVerbose),
		GroupByFolder: v.GetBool(flagGroupByFolder),
	}, nil
}

// addClientFlags registers the flags shared by every command talking to the API.
func addClientFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String(flagConfig, "", "Config file path (default $XDG_CONFIG_HOME/larderkeep/config.yaml)")
	flags.String(flagToken, "", "Larder API token (env LARDER_TOKEN)")
	flags.String(flagBaseURL, larder.DefaultBaseURL, "Larder API base URL")
	flags.String(flagAuthScheme, larder.AuthToken, `Authorization scheme, "Token" or "Bearer" (OAuth)`)
	flags.Duration(flagTimeout, 0, "Per-request timeout, 0 for no limit")
	flags.BoolP(flagVerbose, "v", false, "Log every request")
}

// getDefaultConfigDir returns the default config directory following platform conventions.
// Returns empty string if home directory cannot be determined.
func getDefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "larderkeep")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "larderkeep")
	}
	return ""
}

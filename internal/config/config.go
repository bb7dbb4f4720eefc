// Package config manages confit's own CLI settings using Viper.
package config

import (
	"github.com/spf13/viper"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/pkg/confit"
	"github.com/thoreinstein/confit/pkg/format"
)

const (
	// AppName is the directory under the config root holding the settings file.
	AppName = "confit"

	// SettingsFile is the settings file name without extension.
	SettingsFile = "settings"

	// CurrentVersion is the only settings schema version understood.
	CurrentVersion = 1

	// EnvPrefix prefixes environment overrides, e.g. CONFIT_DEFAULT_FORMAT.
	EnvPrefix = "CONFIT"
)

// Settings is the CLI's own configuration, stored as YAML at
// <root>/confit/settings.yaml.
type Settings struct {
	Version       int    `mapstructure:"version" yaml:"version"`
	DefaultFormat string `mapstructure:"default_format" yaml:"default_format"`
	Root          string `mapstructure:"root" yaml:"root"`
	LogFormat     string `mapstructure:"log_format" yaml:"log_format"`
	Editor        string `mapstructure:"editor" yaml:"editor"`
}

// SetDefaults implements confit.Defaulter.
func (s *Settings) SetDefaults() {
	s.Version = CurrentVersion
	s.DefaultFormat = format.JSON.String()
	s.LogFormat = "text"
}

// Default returns the settings written on first run.
func Default() *Settings {
	s := &Settings{}
	s.SetDefaults()
	return s
}

// Format returns the parsed default format.
func (s *Settings) Format() (format.Format, error) {
	return format.Parse(s.DefaultFormat)
}

// Init resets Viper and registers defaults and environment overrides.
// Call it once at startup before Load.
func Init() {
	viper.Reset()
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("default_format", d.DefaultFormat)
	viper.SetDefault("root", d.Root)
	viper.SetDefault("log_format", d.LogFormat)
	viper.SetDefault("editor", d.Editor)
}

// Load reads the settings file under root, creating it with defaults on
// first use. An empty root means the platform's roaming config directory.
// When the platform has none, defaults and environment overrides are used
// and nothing is written.
func Load(root string) (*Settings, error) {
	path, err := Path(root)
	switch {
	case errors.Is(err, confit.ErrMissingConfigDir):
		// Nowhere to keep a file; fall through to defaults and env.
	case err != nil:
		return nil, err
	default:
		if _, err := confit.LoadOrInit[Settings](AppName, SettingsFile, format.YAML, rootOptions(root)...); err != nil {
			return nil, errors.Wrap(err, "initializing settings")
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "reading settings file")
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "unmarshaling settings")
	}

	if errs := Validate(&s); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating settings"), errors.ErrInvalidConfig)
	}

	return &s, nil
}

// Path returns the settings file location for root.
func Path(root string) (string, error) {
	return confit.Path(AppName, SettingsFile, format.YAML, rootOptions(root)...)
}

func rootOptions(root string) []confit.Option {
	if root == "" {
		return nil
	}
	return []confit.Option{confit.WithRoot(root)}
}

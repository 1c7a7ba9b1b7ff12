package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides of settings keys.
const EnvPrefix = "MEDIATREE"

// Settings holds the application configuration.
type Settings struct {
	Database    string   `mapstructure:"database"`
	Tree        string   `mapstructure:"tree"`
	Folders     []string `mapstructure:"folders"`
	MetadataDir string   `mapstructure:"metadata_dir"`
	CoverDir    string   `mapstructure:"cover_dir"`
	Icon        string   `mapstructure:"icon"`
	LogLevel    string   `mapstructure:"log_level"`
}

// LoadSettings reads settings with environment overrides. With an empty
// path it looks for mediatree.yaml in the working directory and falls back
// to defaults when there is none; an explicit path must exist.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mediatree")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if _, err := s.Level(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Level parses LogLevel.
func (s *Settings) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database", "mediatree.db")
	v.SetDefault("tree", "categories.yaml")
	v.SetDefault("folders", []string{})
	v.SetDefault("metadata_dir", "")
	v.SetDefault("cover_dir", "")
	v.SetDefault("icon", "folder")
	v.SetDefault("log_level", "info")
}

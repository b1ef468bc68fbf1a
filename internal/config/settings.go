package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/rzbill/tms/pkg/log"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable that overrides a tool setting.
const EnvPrefix = "TMS"

// Settings are the options of the tms tool itself, as opposed to the
// projects it launches. They come from flags, TMS_* environment variables
// and an optional ~/.tms/tms.yaml, in that order of precedence.
type Settings struct {
	ConfigFile string     `mapstructure:"config"`
	Log        log.Config `mapstructure:"log"`
	NoColor    bool       `mapstructure:"no_color"`
}

// DefaultSettings returns the settings used when nothing is configured.
// An empty log level defers to log_level in the configuration file.
func DefaultSettings(home string) *Settings {
	return &Settings{
		ConfigFile: DefaultPath(home),
		Log:        log.Config{Format: "text"},
	}
}

// LoadSettings reads the tool settings through v. Flags must already be
// bound to v under the keys "config", "log.level", "log.format", "log.file"
// and "no_color".
func LoadSettings(v *viper.Viper, home string) (*Settings, error) {
	defaults := DefaultSettings(home)
	v.SetDefault("config", defaults.ConfigFile)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.file", "")
	v.SetDefault("no_color", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("tms")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(home, DirName))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, err
	}
	settings.Log.NoColor = settings.Log.NoColor || settings.NoColor
	return settings, nil
}

// LevelOverridden reports whether the log level was set outside the
// configuration file.
func (s *Settings) LevelOverridden() bool {
	return s.Log.Level != ""
}

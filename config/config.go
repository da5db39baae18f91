// Package config loads robox settings from defaults, an optional TOML file
// and ROBOX_ environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ezrec/robox/translate"
)

var f = translate.From

var (
	ErrLogFormat = errors.New(f("log format unknown"))
	ErrMaxSteps  = errors.New(f("run max steps negative"))
)

// Config holds application configuration.
type Config struct {
	Run    RunConfig    `mapstructure:"run"`
	Log    LogConfig    `mapstructure:"log"`
	Levels LevelsConfig `mapstructure:"levels"`
	Lang   string       `mapstructure:"lang"`
}

// RunConfig holds execution settings.
type RunConfig struct {
	Gap      time.Duration `mapstructure:"gap"`       // Display pause between steps.
	MaxSteps int           `mapstructure:"max_steps"` // Step budget, 0 for none.
}

// LogConfig holds event logging settings.
type LogConfig struct {
	Verbose bool   `mapstructure:"verbose"`
	Format  string `mapstructure:"format"` // 'text' or 'json'
}

// LevelsConfig holds level search settings.
type LevelsConfig struct {
	Dir string `mapstructure:"dir"`
}

// New returns a viper instance with the robox defaults and environment
// binding. Command line flags may be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("run.gap", time.Duration(0))
	v.SetDefault("run.max_steps", 100000)
	v.SetDefault("log.verbose", false)
	v.SetDefault("log.format", "text")
	v.SetDefault("lang", "")
	v.SetDefault("levels.dir", "levels")

	v.SetConfigType("toml")

	v.SetEnvPrefix("ROBOX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// Load reads configuration into v from path, or from
// $HOME/.config/robox/config.toml if path is empty and that file exists.
func Load(v *viper.Viper, path string) (c Config, err error) {
	if v == nil {
		v = New()
	}

	if len(path) != 0 {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "robox"))
		v.SetConfigName("config")
	}

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if len(path) != 0 || !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return
	}

	err = c.Validate()

	return
}

// Validate checks the settings for consistency.
func (c Config) Validate() (err error) {
	switch c.Log.Format {
	case "text", "json":
	default:
		err = ErrLogFormat
		return
	}

	if c.Run.MaxSteps < 0 {
		err = ErrMaxSteps
		return
	}

	return
}

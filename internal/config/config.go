// Package config resolves the tool's default settings from the config file
// and environment before command-line flags are applied.
package config

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment variables read by viper, so the
// recursive default can be set with FILESIZE_RECURSIVE=true.
const EnvPrefix = "FILESIZE"

const appName = "filesize"

// Init wires defaults, the optional config file, and FILESIZE_* environment
// variables into viper. Flag bindings added by the command layer take
// precedence over all of these. It returns the path of the config file in
// use, or an empty string when none was found: configuration must never stop
// a measurement, so a broken file is logged and ignored.
func Init() string {
	viper.SetDefault("clean", false)
	viper.SetDefault("recursive", false)
	viper.SetDefault("unit", "")
	viper.SetDefault("progress", false)
	viper.SetDefault("copy", false)
	viper.SetDefault("verbose", false)

	viper.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("ignoring unreadable config file", "error", err)
		}
		return ""
	}
	return viper.ConfigFileUsed()
}

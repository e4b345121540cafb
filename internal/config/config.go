// Package config loads bridge settings from TOML config files.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "webnotify"

// Config holds the tunable parts of the bridge's wire identity.
type Config struct {
	AppName       string `koanf:"app_name"`        // application name sent to the daemon
	AppIcon       string `koanf:"app_icon"`        // icon name sent to the daemon
	OriginHintKey string `koanf:"origin_hint_key"` // hints key carrying the origin
	ExpireTimeout int32  `koanf:"expire_timeout"`  // ms, -1 = daemon default
	MaxImageSize  uint   `koanf:"max_image_size"`  // px, 0 = send icons unscaled
}

func defaults() *Config {
	return &Config{
		AppName:       "qutebrowser",
		AppIcon:       "qutebrowser",
		OriginHintKey: "x-qutebrowser-origin",
		ExpireTimeout: -1,
		MaxImageSize:  0,
	}
}

// Load reads config files in priority order (last wins) over the defaults.
func Load() (*Config, error) {
	return loadFrom(getConfigPaths())
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/webnotify/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

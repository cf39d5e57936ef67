// Package config loads navmenu settings from an optional config file and
// NAVMENU_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/mchmarny/navmenu/pkg/menu"
	"github.com/mchmarny/navmenu/pkg/server"
)

const (
	// EnvPrefix is prepended to environment variable names, e.g. NAVMENU_PORT.
	EnvPrefix = "NAVMENU"

	// DefaultConfigName is the config file looked up in the working
	// directory when no file is given (navmenu.yaml, navmenu.toml, ...).
	DefaultConfigName = "navmenu"

	// DefaultMenuFile is the item file used when none is configured.
	DefaultMenuFile = "menu.yaml"
)

// Config holds the application settings.
type Config struct {
	Port     int        `mapstructure:"port"`
	MenuFile string     `mapstructure:"menuFile"`
	LogLevel string     `mapstructure:"logLevel"`
	Watch    bool       `mapstructure:"watch"`
	Menu     MenuConfig `mapstructure:"menu"`

	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout     time.Duration `mapstructure:"idleTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	MaxHeaderBytes  int           `mapstructure:"maxHeaderBytes"`
}

// MenuConfig holds the settings applied to every built menu.
type MenuConfig struct {
	Dropdown      bool     `mapstructure:"dropdown"`
	DropdownClass string   `mapstructure:"dropdownClass"`
	ShowChildren  bool     `mapstructure:"showChildren"`
	OnlyChildren  bool     `mapstructure:"onlyChildren"`
	OnlyClasses   []string `mapstructure:"onlyClasses"`
	IgnoreClasses []string `mapstructure:"ignoreClasses"`

	// TitleCase is a BCP 47 language tag. When set, titles are title-cased
	// with that language's rules.
	TitleCase string `mapstructure:"titleCase"`

	// Attributes enables the standard container and link attributes.
	Attributes bool `mapstructure:"attributes"`
}

// Load reads the configuration. With an empty path, navmenu.{yaml,toml,json}
// is looked up in the working directory and its absence is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("port", server.DefaultPort)
	v.SetDefault("menuFile", DefaultMenuFile)
	v.SetDefault("logLevel", "info")
	v.SetDefault("watch", true)
	v.SetDefault("readTimeout", server.DefaultReadTimeout)
	v.SetDefault("writeTimeout", server.DefaultWriteTimeout)
	v.SetDefault("idleTimeout", server.DefaultIdleTimeout)
	v.SetDefault("shutdownTimeout", server.DefaultShutdownTimeout)
	v.SetDefault("maxHeaderBytes", server.DefaultMaxHeaderBytes)
	v.SetDefault("menu.dropdown", true)
	v.SetDefault("menu.dropdownClass", menu.DefaultDropdownClass)
	v.SetDefault("menu.showChildren", true)
	v.SetDefault("menu.onlyChildren", false)
	v.SetDefault("menu.onlyClasses", []string{})
	v.SetDefault("menu.ignoreClasses", []string{})
	v.SetDefault("menu.titleCase", "")
	v.SetDefault("menu.attributes", true)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment")
	} else {
		slog.Debug("using config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values that cannot be checked by decoding alone.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	for name, d := range map[string]time.Duration{
		"readTimeout":     c.ReadTimeout,
		"writeTimeout":    c.WriteTimeout,
		"idleTimeout":     c.IdleTimeout,
		"shutdownTimeout": c.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("invalid %s %s, must be positive", name, d)
		}
	}
	if c.MaxHeaderBytes <= 0 {
		return fmt.Errorf("invalid maxHeaderBytes %d, must be positive", c.MaxHeaderBytes)
	}
	if c.MenuFile == "" {
		return errors.New("menu file is required")
	}
	if c.Menu.TitleCase != "" {
		if _, err := language.Parse(c.Menu.TitleCase); err != nil {
			return fmt.Errorf("invalid titleCase language %q: %w", c.Menu.TitleCase, err)
		}
	}
	return nil
}

// ServerOptions returns the server options derived from the settings.
func (c Config) ServerOptions() []server.Option {
	return []server.Option{
		server.WithPort(c.Port),
		server.WithReadTimeout(c.ReadTimeout),
		server.WithWriteTimeout(c.WriteTimeout),
		server.WithIdleTimeout(c.IdleTimeout),
		server.WithShutdownTimeout(c.ShutdownTimeout),
		server.WithMaxHeaderBytes(c.MaxHeaderBytes),
	}
}

// Apply configures m with the menu settings and returns it.
func (c MenuConfig) Apply(m *menu.Menu) *menu.Menu {
	m.SetDropdown(c.Dropdown).
		SetDropdownClass(c.DropdownClass).
		SetShowChildren(c.ShowChildren).
		SetOnlyChildren(c.OnlyChildren).
		SetOnlyClasses(c.OnlyClasses...).
		SetIgnoreClasses(c.IgnoreClasses...)

	if c.TitleCase != "" {
		if tag, err := language.Parse(c.TitleCase); err == nil {
			m.SetNodeTitleCallback(menu.TitleCaser(tag))
		}
	}
	if c.Attributes {
		m.SetNodeAttributesCallback(m.StandardAttributes())
	}

	return m
}

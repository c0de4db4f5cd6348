// Package config loads the optional passman configuration file.
//
// The configuration never holds secrets: only the store path and the
// password generator defaults. A missing file yields the defaults; CLI
// flags override whatever is loaded.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/john1234-oladipo/Secure-Password-Manager/vault"
)

// Generator holds the password generator defaults.
type Generator struct {
	Length  int  `yaml:"length"`
	Lower   bool `yaml:"lower"`
	Upper   bool `yaml:"upper"`
	Digits  bool `yaml:"digits"`
	Symbols bool `yaml:"symbols"`
}

// Config is the tool configuration.
type Config struct {
	Store     string    `yaml:"store"`
	Generator Generator `yaml:"generator"`
}

// Default returns the configuration used when no file is present: the
// store lives in passwords.enc in the working directory and generated
// passwords are 16 characters over all character classes.
func Default() Config {
	return Config{
		Store: "passwords.enc",
		Generator: Generator{
			Length:  vault.DefaultLength,
			Lower:   true,
			Upper:   true,
			Digits:  true,
			Symbols: true,
		},
	}
}

// DefaultPath returns the conventional location of the configuration
// file, $XDG_CONFIG_HOME/passman/config.yaml or the OS equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot locate user config directory")
	}
	return filepath.Join(dir, "passman", "config.yaml"), nil
}

// Load reads the configuration at path. A missing file is not an error
// and yields Default(). Fields left out of the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, errors.Wrapf(err, "cannot read config file %q", path)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "cannot parse config file %q", path)
	}
	if cfg.Store == "" {
		cfg.Store = Default().Store
	}
	if cfg.Generator.Length < 1 {
		cfg.Generator.Length = vault.DefaultLength
	}
	return cfg, nil
}

// Charset maps the configured character classes to the generator's
// charset selection. An all-false selection falls back to every class
// rather than producing an unusable generator.
func (c Config) Charset() vault.Charset {
	var cs vault.Charset
	if c.Generator.Lower {
		cs |= vault.Lower
	}
	if c.Generator.Upper {
		cs |= vault.Upper
	}
	if c.Generator.Digits {
		cs |= vault.Digits
	}
	if c.Generator.Symbols {
		cs |= vault.Symbols
	}
	if cs == 0 {
		cs = vault.AllClasses
	}
	return cs
}

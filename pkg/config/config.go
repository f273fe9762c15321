package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SOFTSYNC_"

// Config is the effective softsync configuration.
type Config struct {
	Sync   Sync   `koanf:"sync" toml:"sync"`
	Output Output `koanf:"output" toml:"output"`
	S3     S3     `koanf:"s3" toml:"s3"`
}

// Sync holds defaults for cp.
type Sync struct {
	Symbolic    bool `koanf:"symbolic" toml:"symbolic"`
	Reconstruct bool `koanf:"reconstruct" toml:"reconstruct"`
}

// Output selects how results are rendered.
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// S3 configures the s3:// scheme. It is only registered when Enabled.
type S3 struct {
	Enabled   bool   `koanf:"enabled" toml:"enabled"`
	Region    string `koanf:"region" toml:"region"`
	Endpoint  string `koanf:"endpoint" toml:"endpoint"`
	PathStyle bool   `koanf:"path_style" toml:"path_style"`
	Profile   string `koanf:"profile" toml:"profile"`
}

// Loaded pairs the decoded configuration with its source, if any.
type Loaded struct {
	*Config
	Source string
	k      *koanf.Koanf
}

// Koanf exposes the merged key space.
func (l *Loaded) Koanf() *koanf.Koanf {
	return l.k
}

// Default returns the embedded defaults alone.
func Default() (*Config, error) {
	l, err := load("", false)
	if err != nil {
		return nil, err
	}
	return l.Config, nil
}

// Load merges defaults, the user file and the environment. An explicit path
// must exist; otherwise the first of config.toml and config.yaml under
// $XDG_CONFIG_HOME/softsync is used when present.
func Load(path string) (*Loaded, error) {
	return load(path, true)
}

func load(path string, user bool) (*Loaded, error) {
	logger := logging.GetLogger("softsync.config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	loaded := &Loaded{k: k}
	if user {
		if path != "" {
			if _, err := os.Stat(path); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file not found: %s", path)
			}
		} else {
			path = findUserConfig()
		}
		if path != "" {
			if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
			}
			loaded.Source = path
			logger.Debug().Str("path", path).Msg("loaded user config")
		}

		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	loaded.Config = &cfg
	return loaded, nil
}

// envKey maps SOFTSYNC_S3_PATH_STYLE to s3.path_style. Only the first
// underscore separates the section from the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	return section + "." + key
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func findUserConfig() string {
	dir := filepath.Join(xdg.ConfigHome, "softsync")
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// TOML renders the configuration in the defaults file layout.
func (c *Config) TOML() (string, error) {
	out, err := gotoml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return string(out), nil
}

package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	crserrors "github.com/arthur-debert/crsops/pkg/errors"
	"github.com/arthur-debert/crsops/pkg/locator"
	"github.com/arthur-debert/crsops/pkg/resolver"
)

// ConfigFilename is looked up in the well-known configuration
// directories.
const ConfigFilename = "crsops.toml"

// EnvPrefix guards which environment variables feed the configuration.
const EnvPrefix = "CRSOPS_"

// Config is the fully merged application configuration.
type Config struct {
	Authority   string      `koanf:"authority"`
	Definitions Definitions `koanf:"definitions"`
	Logging     Logging     `koanf:"logging"`
}

// Definitions configures where the operation definitions file is found.
type Definitions struct {
	// Filename of the definitions file on the search path.
	Filename string `koanf:"filename"`

	// ExtraDirectory is searched before the well-known directories. It
	// must name an existing directory when set.
	ExtraDirectory string `koanf:"extra_directory"`
}

// Logging configures the log output.
type Logging struct {
	Verbosity int `koanf:"verbosity"`
}

// envKeys maps the supported environment variables onto config keys.
// Unknown CRSOPS_ variables are ignored.
var envKeys = map[string]string{
	"AUTHORITY":       "authority",
	"FILENAME":        "definitions.filename",
	"EXTRA_DIRECTORY": "definitions.extra_directory",
	"VERBOSITY":       "logging.verbosity",
}

// Load merges the embedded defaults, any crsops.toml found in the
// well-known configuration directories and the CRSOPS_* environment
// into a validated Config.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, crserrors.Wrap(err, crserrors.ErrConfigLoad, "failed to load default configuration")
	}

	// System dirs first so the user config overrides them.
	for _, path := range configFileCandidates() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, crserrors.Wrapf(err, crserrors.ErrConfigParse,
				"failed to parse configuration file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[s[len(EnvPrefix):]]
	}), nil); err != nil {
		return nil, crserrors.Wrap(err, crserrors.ErrConfigLoad, "failed to load environment configuration")
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
		return nil, crserrors.Wrap(err, crserrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the resolver could not honor.
func (c *Config) Validate() error {
	if c.Authority == "" {
		return crserrors.New(crserrors.ErrConfigValid, "authority must not be empty")
	}
	if c.Definitions.Filename == "" {
		return crserrors.New(crserrors.ErrConfigValid, "definitions filename must not be empty")
	}
	if dir := c.Definitions.ExtraDirectory; dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return crserrors.Wrapf(err, crserrors.ErrConfigValid,
				"definitions directory %q is not accessible", dir)
		}
		if !info.IsDir() {
			return crserrors.Newf(crserrors.ErrConfigValid,
				"definitions path %q is not a directory", dir)
		}
	}
	return nil
}

// ResolverConfig translates the loaded configuration into resolver
// construction inputs.
func (c *Config) ResolverConfig() resolver.Config {
	return resolver.Config{
		Authority:   c.Authority,
		OverrideDir: c.Definitions.ExtraDirectory,
		Filename:    c.Definitions.Filename,
	}
}

func configFileCandidates() []string {
	candidates := make([]string, 0, 1+len(xdg.ConfigDirs))
	for i := len(xdg.ConfigDirs) - 1; i >= 0; i-- {
		candidates = append(candidates, filepath.Join(xdg.ConfigDirs[i], locator.AppDir, ConfigFilename))
	}
	candidates = append(candidates, filepath.Join(xdg.ConfigHome, locator.AppDir, ConfigFilename))
	return candidates
}

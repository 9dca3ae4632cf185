// Package config resolves dupkeep's settings from layered sources:
// embedded defaults, the user config file, and DUPKEEP_* environment
// variables. Command-line flags override all of it.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dupkeep/pkg/errors"
	"github.com/arthur-debert/dupkeep/pkg/types"
)

//go:embed dupkeep.toml
var defaultConfig []byte

// Settings is the flag-shaped view of the configuration. Every field
// can be preset in the config file and overridden on the command line.
type Settings struct {
	FilesOnly      bool   `koanf:"files_only" toml:"files_only"`
	FollowSymlinks bool   `koanf:"follow_symlinks" toml:"follow_symlinks"`
	Exclude        string `koanf:"exclude" toml:"exclude"`
	List           string `koanf:"list" toml:"list"`
	Store          bool   `koanf:"store" toml:"store"`
	Accounting     bool   `koanf:"accounting" toml:"accounting"`
	Verbose        bool   `koanf:"verbose" toml:"verbose"`
	Overwrite      bool   `koanf:"overwrite" toml:"overwrite"`
	Delete         bool   `koanf:"delete" toml:"delete"`
	CopyTo         string `koanf:"copy_to" toml:"copy_to"`
	MoveTo         string `koanf:"move_to" toml:"move_to"`
}

// envKeys maps DUPKEEP_* variables onto config keys. Only string-valued
// settings are exposed through the environment.
var envKeys = map[string]string{
	"DUPKEEP_LIST":    "list",
	"DUPKEEP_EXCLUDE": "exclude",
	"DUPKEEP_COPY_TO": "copy_to",
	"DUPKEEP_MOVE_TO": "move_to",
}

// Path returns the user config file location.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "dupkeep", "config.toml")
}

// Load resolves settings from defaults, then the user config file if
// present, then the environment.
func Load() (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "failed to load default config")
	}

	if path := Path(); fileExists(path) {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Settings{}, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
	}

	overrides := map[string]interface{}{}
	for env, key := range envKeys {
		if v, ok := os.LookupEnv(env); ok {
			overrides[key] = v
		}
	}
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply environment overrides")
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}
	return s, nil
}

// Options converts resolved settings into the runtime option set,
// compiling the exclude pattern. An invalid pattern is a setup error.
func (s Settings) Options() (types.Options, error) {
	opts := types.Options{
		FilesOnly:         s.FilesOnly,
		FollowSymlinks:    s.FollowSymlinks,
		ListPath:          s.List,
		StoreNew:          s.Store,
		MissingAccounting: s.Accounting,
		Verbose:           s.Verbose,
		Actions: types.Actions{
			Delete:  s.Delete,
			CopyTo:  s.CopyTo,
			MoveTo:  s.MoveTo,
			Clobber: s.Overwrite,
		},
	}
	if s.Exclude != "" {
		re, err := regexp.Compile(s.Exclude)
		if err != nil {
			return types.Options{}, errors.Wrapf(err, errors.ErrExcludeParse, "invalid exclude pattern %q", s.Exclude)
		}
		opts.Exclude = re
	}
	return opts, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// rawBytesProvider feeds embedded bytes to koanf
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("rawBytesProvider does not support Read()")
}

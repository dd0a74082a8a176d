package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bento-build/bento/pkg/errors"
	"github.com/bento-build/bento/pkg/logging"
	"github.com/bento-build/bento/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider feeds embedded config bytes to koanf.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load reads the effective configuration for a project: embedded defaults,
// then the project manifest (bento.toml) if present, then BENTO_ environment
// overrides. A nil fsys reads the manifest from the OS filesystem. A missing
// manifest is not a load error, but the defaults carry no app identity, so
// validation rejects the result unless overrides supply one.
func Load(fsys types.FS, projectRoot string) (*Config, error) {
	log := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestLoad, "failed to load embedded defaults")
	}

	// 2. Project manifest
	if err := loadManifest(k, fsys, filepath.Join(projectRoot, "bento.toml"), log); err != nil {
		return nil, err
	}

	// 3. Environment overrides: BENTO_BUNDLE__TOOL -> bundle.tool.
	// A double underscore separates key segments so that keys like
	// hidden_imports survive the mapping.
	err := k.Load(env.Provider("BENTO_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "BENTO_")
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestLoad, "failed to load environment overrides")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to unmarshal configuration")
	}

	applyDerivedDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadManifest merges the project manifest into k when it exists. With a
// nil fsys the file is read from the OS through koanf's file provider;
// otherwise it goes through the injected filesystem, so tests can serve
// the manifest from memory.
func loadManifest(k *koanf.Koanf, fsys types.FS, manifestPath string, log zerolog.Logger) error {
	if fsys == nil {
		if _, err := os.Stat(manifestPath); err != nil {
			log.Debug().Str("path", manifestPath).Msg("No project manifest found, using defaults")
			return nil
		}
		if err := k.Load(file.Provider(manifestPath), toml.Parser()); err != nil {
			return errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s", manifestPath)
		}
		log.Debug().Str("path", manifestPath).Msg("Loaded project manifest")
		return nil
	}

	if !types.Exists(fsys, manifestPath) {
		log.Debug().Str("path", manifestPath).Msg("No project manifest found, using defaults")
		return nil
	}
	raw, err := fsys.ReadFile(manifestPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestLoad, "failed to read %s", manifestPath)
	}
	if err := k.Load(&rawBytesProvider{bytes: raw}, toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s", manifestPath)
	}
	log.Debug().Str("path", manifestPath).Msg("Loaded project manifest")
	return nil
}

// applyDerivedDefaults fills fields whose default depends on another field.
func applyDerivedDefaults(cfg *Config) {
	if cfg.Post.FinalDir == "" {
		cfg.Post.FinalDir = cfg.App.Name
	}
	if cfg.Bundle.CertDest == "" {
		cfg.Bundle.CertDest = "certifi"
	}
	if cfg.Post.InternalDir == "" {
		cfg.Post.InternalDir = "_internal"
	}
}

// Validate rejects manifests that cannot produce a meaningful build.
func Validate(cfg *Config) error {
	if cfg.App.Name == "" {
		return errors.New(errors.ErrManifestInvalid, "app.name must not be empty")
	}
	if cfg.App.Entrypoint == "" {
		return errors.New(errors.ErrManifestInvalid, "app.entrypoint must not be empty")
	}
	if cfg.Bundle.Tool == "" {
		return errors.New(errors.ErrManifestInvalid, "bundle.tool must not be empty")
	}
	switch cfg.Bundle.Mode {
	case "onedir", "onefile":
	default:
		return errors.Newf(errors.ErrManifestInvalid, "bundle.mode must be onedir or onefile, got %q", cfg.Bundle.Mode)
	}
	for i, entry := range cfg.Bundle.Data {
		if entry.Source == "" {
			return errors.Newf(errors.ErrEntryInvalid, "bundle.data[%d]: source must not be empty", i)
		}
		if entry.Dest == "" {
			return errors.Newf(errors.ErrEntryInvalid, "bundle.data[%d]: dest must not be empty", i)
		}
	}
	return nil
}

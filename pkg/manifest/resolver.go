package manifest

import (
	"path/filepath"

	"github.com/bento-build/bento/pkg/config"
	"github.com/bento-build/bento/pkg/logging"
	"github.com/bento-build/bento/pkg/rules"
	"github.com/bento-build/bento/pkg/types"
	"github.com/rs/zerolog"
)

// DataEntry is one resolved inclusion pair: an absolute source path and a
// destination directory inside the bundle.
type DataEntry struct {
	Source string `toml:"source"`
	Dest   string `toml:"dest"`
}

// Resolution is the outcome of resolving a manifest against a filesystem.
type Resolution struct {
	// Included holds the entries whose sources exist, in manifest order.
	Included []DataEntry `toml:"included"`

	// Missing holds the entries that were dropped because their source
	// does not exist. Reported, never fatal.
	Missing []DataEntry `toml:"missing"`

	// HiddenImports is the deduplicated hidden-import list.
	HiddenImports []string `toml:"hidden_imports"`

	// Excludes is the deduplicated exclusion pattern list.
	Excludes []string `toml:"excludes"`
}

// Resolver resolves manifests against a filesystem.
type Resolver struct {
	fs types.FS
}

// NewResolver creates a Resolver reading through the given filesystem.
func NewResolver(fsys types.FS) *Resolver {
	return &Resolver{fs: fsys}
}

// Resolve builds the candidate entry list from the manifest, filters it by
// filesystem existence, and collects the import and exclusion lists.
//
// The pass is deterministic: entries keep their manifest order, duplicates
// keep their first position, and the certificate bundle (when present on
// disk) is appended exactly once. Running Resolve twice against an
// unchanged filesystem yields identical results.
func (r *Resolver) Resolve(cfg *config.Config, projectRoot string) (*Resolution, error) {
	logger := logging.GetLogger("manifest.resolver")

	matcher, err := rules.NewMatcher(cfg.Bundle.Excludes)
	if err != nil {
		return nil, err
	}

	res := &Resolution{
		HiddenImports: dedupe(cfg.Bundle.HiddenImports),
		Excludes:      matcher.Patterns(),
	}

	seen := make(map[string]struct{})
	candidates := make([]DataEntry, 0, len(cfg.Bundle.Data)+1)

	for _, raw := range cfg.Bundle.Data {
		entry := DataEntry{
			Source: absolute(projectRoot, raw.Source),
			Dest:   cleanDest(raw.Dest),
		}
		key := entry.Source + "\x00" + entry.Dest
		if _, dup := seen[key]; dup {
			logger.Debug().Str("source", entry.Source).Msg("Dropping duplicate data entry")
			continue
		}
		seen[key] = struct{}{}

		if matcher.ExcludedPath(raw.Source) {
			logger.Debug().Str("source", raw.Source).Msg("Data entry pruned by exclusion rule")
			continue
		}
		candidates = append(candidates, entry)
	}

	for _, entry := range candidates {
		if types.Exists(r.fs, entry.Source) {
			res.Included = append(res.Included, entry)
			logger.Debug().Str("source", entry.Source).Str("dest", entry.Dest).Msg("Entry included")
		} else {
			res.Missing = append(res.Missing, entry)
			logger.Warn().Str("source", entry.Source).Msg("Entry source not found, dropped from bundle")
		}
	}

	r.appendCertBundle(cfg, projectRoot, res, logger)

	logger.Info().
		Int("included", len(res.Included)).
		Int("missing", len(res.Missing)).
		Int("hiddenImports", len(res.HiddenImports)).
		Int("excludes", len(res.Excludes)).
		Msg("Manifest resolved")

	return res, nil
}

// appendCertBundle adds the CA certificate bundle to the included list when
// it exists on disk. The append happens at most once: an entry with the
// same source already present (for example listed explicitly in the data
// section) suppresses it.
func (r *Resolver) appendCertBundle(cfg *config.Config, projectRoot string, res *Resolution, logger zerolog.Logger) {
	if cfg.Bundle.CertBundle == "" {
		return
	}

	source := absolute(projectRoot, cfg.Bundle.CertBundle)
	for _, entry := range res.Included {
		if entry.Source == source {
			logger.Debug().Str("source", source).Msg("Certificate bundle already listed, not appending")
			return
		}
	}

	if !types.Exists(r.fs, source) {
		logger.Warn().Str("source", source).Msg("Certificate bundle not found, skipped")
		return
	}

	res.Included = append(res.Included, DataEntry{Source: source, Dest: cleanDest(cfg.Bundle.CertDest)})
	logger.Debug().Str("source", source).Msg("Certificate bundle appended")
}

func absolute(projectRoot, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(projectRoot, p)
}

func cleanDest(dest string) string {
	cleaned := filepath.ToSlash(filepath.Clean(dest))
	if cleaned == "" {
		return "."
	}
	return cleaned
}

// dedupe removes duplicates from a string slice, preserving first-seen order.
func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

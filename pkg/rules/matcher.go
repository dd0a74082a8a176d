package rules

import (
	"path"
	"strings"

	"github.com/bento-build/bento/pkg/errors"
	"github.com/bento-build/bento/pkg/logging"
)

// Matcher answers whether a name falls under one of the exclusion patterns.
type Matcher struct {
	patterns []string
}

// NewMatcher compiles an exclusion matcher from the given patterns.
// Duplicates are dropped, first occurrence wins, order is preserved so that
// rendered argument lists stay deterministic.
func NewMatcher(patterns []string) (*Matcher, error) {
	logger := logging.GetLogger("rules.matcher")

	deduped := make([]string, 0, len(patterns))
	seen := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// path.Match is the single source of truth for pattern syntax;
		// reject malformed patterns up front instead of at match time.
		if _, err := path.Match(p, "probe"); err != nil {
			return nil, errors.Wrapf(err, errors.ErrRuleInvalid, "invalid exclusion pattern %q", p)
		}
		if _, dup := seen[p]; dup {
			logger.Debug().Str("pattern", p).Msg("Dropping duplicate exclusion pattern")
			continue
		}
		seen[p] = struct{}{}
		deduped = append(deduped, p)
	}

	return &Matcher{patterns: deduped}, nil
}

// Patterns returns the compiled pattern list in manifest order.
func (m *Matcher) Patterns() []string {
	return m.patterns
}

// ExcludedName reports whether a plain module name matches a pattern.
func (m *Matcher) ExcludedName(name string) bool {
	for _, p := range m.patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}

// ExcludedPath reports whether a slash-separated relative path falls under
// an excluded tree: the whole path or any single segment may match.
func (m *Matcher) ExcludedPath(rel string) bool {
	rel = strings.Trim(path.Clean(strings.ReplaceAll(rel, "\\", "/")), "/")
	if rel == "" || rel == "." {
		return false
	}
	if m.ExcludedName(rel) {
		return true
	}
	for _, seg := range strings.Split(rel, "/") {
		if m.ExcludedName(seg) {
			return true
		}
	}
	return false
}

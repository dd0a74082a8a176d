// Package bundler translates a resolved manifest into the external
// bundling tool's argument vector and runs the tool. The tool's output
// layout is the tool's own business; bento only hands it the assembled
// inclusion, import, and exclusion lists.
package bundler

import (
	"runtime"

	"github.com/bento-build/bento/pkg/config"
	"github.com/bento-build/bento/pkg/manifest"
)

// Invocation is a fully rendered external tool call.
type Invocation struct {
	Tool string
	Args []string

	// Dir is the working directory the tool runs in.
	Dir string
}

// DataSeparator returns the separator the bundling tool expects between the
// source and destination halves of an --add-data argument. Windows uses ";"
// because ":" appears in drive letters.
func DataSeparator() string {
	if runtime.GOOS == "windows" {
		return ";"
	}
	return ":"
}

// BuildInvocation renders the tool call for a resolution. The argument
// order is stable so that two runs over the same resolution produce the
// same command line.
func BuildInvocation(cfg *config.Config, res *manifest.Resolution, workDir string) Invocation {
	sep := DataSeparator()

	args := make([]string, 0, 16+2*len(res.Included)+2*len(res.HiddenImports)+2*len(res.Excludes))

	if !cfg.Bundle.Confirm {
		args = append(args, "--noconfirm")
	}
	if cfg.Bundle.Clean {
		args = append(args, "--clean")
	}

	args = append(args, "--name", cfg.App.Name)

	switch cfg.Bundle.Mode {
	case "onefile":
		args = append(args, "--onefile")
	default:
		args = append(args, "--onedir")
	}

	if !cfg.Bundle.Console {
		args = append(args, "--noconsole")
	}
	if cfg.App.Icon != "" {
		args = append(args, "--icon", cfg.App.Icon)
	}

	for _, entry := range res.Included {
		args = append(args, "--add-data", entry.Source+sep+entry.Dest)
	}
	for _, imp := range res.HiddenImports {
		args = append(args, "--hidden-import", imp)
	}
	for _, excl := range res.Excludes {
		args = append(args, "--exclude-module", excl)
	}

	args = append(args, cfg.Bundle.ExtraArgs...)
	args = append(args, cfg.App.Entrypoint)

	return Invocation{
		Tool: cfg.Bundle.Tool,
		Args: args,
		Dir:  workDir,
	}
}

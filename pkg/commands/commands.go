// Package commands implements bento's top-level commands. Each command is
// a plain function taking an Options struct and returning a result the CLI
// layer renders; nothing here writes to the terminal directly.
package commands

import (
	"context"
	"io"
	"path/filepath"

	"github.com/bento-build/bento/pkg/bundler"
	"github.com/bento-build/bento/pkg/config"
	"github.com/bento-build/bento/pkg/errors"
	"github.com/bento-build/bento/pkg/filesystem"
	"github.com/bento-build/bento/pkg/logging"
	"github.com/bento-build/bento/pkg/manifest"
	"github.com/bento-build/bento/pkg/operations"
	"github.com/bento-build/bento/pkg/paths"
	"github.com/bento-build/bento/pkg/postbuild"
	"github.com/bento-build/bento/pkg/types"
)

// AssembleOptions defines the options for the Assemble command.
type AssembleOptions struct {
	// ProjectRoot is the path to the project being packaged.
	ProjectRoot string

	// ReportPath, when set, receives the resolution as a TOML report.
	ReportPath string

	// FS overrides the filesystem; nil means the OS filesystem.
	FS types.FS
}

// AssembleResult carries the loaded manifest and its resolution.
type AssembleResult struct {
	Config     *config.Config
	Resolution *manifest.Resolution
}

// Assemble loads the manifest, resolves it against the filesystem, and
// optionally writes the resolution report.
func Assemble(opts AssembleOptions) (*AssembleResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Assemble").Str("projectRoot", opts.ProjectRoot).Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cfg, err := config.Load(opts.FS, opts.ProjectRoot)
	if err != nil {
		return nil, err
	}

	res, err := manifest.NewResolver(fsys).Resolve(cfg, opts.ProjectRoot)
	if err != nil {
		return nil, err
	}

	if opts.ReportPath != "" {
		if err := manifest.WriteReport(res, opts.ReportPath); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("command", "Assemble").
		Int("included", len(res.Included)).
		Int("missing", len(res.Missing)).
		Msg("Command finished")

	return &AssembleResult{Config: cfg, Resolution: res}, nil
}

// BuildOptions defines the options for the Build command.
type BuildOptions struct {
	ProjectRoot string

	// DryRun prints the invocation and post-build plan without executing.
	DryRun bool

	// SkipPost stops after the bundler, leaving its dist output in place.
	SkipPost bool

	// Stdout and Stderr receive the external tool's output.
	Stdout io.Writer
	Stderr io.Writer

	FS types.FS
}

// BuildResult carries everything the CLI needs to report a build.
type BuildResult struct {
	Config     *config.Config
	Resolution *manifest.Resolution
	Invocation bundler.Invocation

	// PostResults holds post-build operation outcomes; nil when post-build
	// was skipped or dry-run.
	PostResults []operations.OperationResult
}

// Build assembles the manifest, runs the external bundler, and performs
// post-build staging.
func Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Build").Bool("dryRun", opts.DryRun).Msg("Executing command")

	assembled, err := Assemble(AssembleOptions{ProjectRoot: opts.ProjectRoot, FS: opts.FS})
	if err != nil {
		return nil, err
	}

	layout := postbuild.Layout{
		ProjectRoot:   opts.ProjectRoot,
		BuildToolsDir: buildToolsDir(opts.ProjectRoot),
	}
	inv := bundler.BuildInvocation(assembled.Config, assembled.Resolution, layout.BuildToolsDir)

	result := &BuildResult{
		Config:     assembled.Config,
		Resolution: assembled.Resolution,
		Invocation: inv,
	}

	if opts.DryRun {
		log.Info().Str("command", "Build").Msg("Dry run, bundler not invoked")
		return result, nil
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	// The tool runs inside the build-tools dir so its build/ and dist/
	// output stays out of the project root.
	if err := fsys.MkdirAll(layout.BuildToolsDir, 0o755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", layout.BuildToolsDir)
	}

	runner := bundler.NewRunner(opts.Stdout, opts.Stderr)
	if err := runner.Run(ctx, inv); err != nil {
		return result, err
	}

	if opts.SkipPost {
		log.Info().Str("command", "Build").Msg("Post-build skipped")
		return result, nil
	}

	postResults, err := runPost(assembled.Config, layout, opts.FS, false)
	result.PostResults = postResults
	if err != nil {
		return result, err
	}

	log.Info().Str("command", "Build").Msg("Command finished")
	return result, nil
}

// PostBuildOptions defines the options for the PostBuild command.
type PostBuildOptions struct {
	ProjectRoot string
	DryRun      bool
	FS          types.FS
}

// PostBuildResult carries post-build operation outcomes.
type PostBuildResult struct {
	Config  *config.Config
	Results []operations.OperationResult

	// Launched reports whether the staged executable was started.
	Launched bool

	// LaunchErr is reported but does not fail the run; a missing
	// executable after staging is a finding, not a crash.
	LaunchErr error
}

// PostBuild runs only the post-build staging pipeline.
func PostBuild(opts PostBuildOptions) (*PostBuildResult, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "PostBuild").Bool("dryRun", opts.DryRun).Msg("Executing command")

	cfg, err := config.Load(opts.FS, opts.ProjectRoot)
	if err != nil {
		return nil, err
	}

	layout := postbuild.Layout{
		ProjectRoot:   opts.ProjectRoot,
		BuildToolsDir: buildToolsDir(opts.ProjectRoot),
	}

	results, err := runPost(cfg, layout, opts.FS, opts.DryRun)
	result := &PostBuildResult{Config: cfg, Results: results}
	if err != nil {
		return result, err
	}

	if cfg.Post.Launch && !opts.DryRun {
		fsys := opts.FS
		if fsys == nil {
			fsys = filesystem.NewOS()
		}
		launcher := postbuild.NewLauncher(fsys)
		if err := launcher.Launch(layout.FinalDir(cfg), cfg.App.Name); err != nil {
			log.Warn().Err(err).Msg("Failed to launch staged executable")
			result.LaunchErr = err
		} else {
			result.Launched = true
		}
	}

	log.Info().Str("command", "PostBuild").Int("operations", len(results)).Msg("Command finished")
	return result, nil
}

// InitOptions defines the options for the Init command.
type InitOptions struct {
	ProjectRoot string
	Force       bool
	FS          types.FS
}

// Init writes a starter manifest into the project root.
func Init(opts InitOptions) (string, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Init").Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	path := manifestPath(opts.ProjectRoot)
	if err := config.WriteStarter(fsys, path, opts.Force); err != nil {
		return "", err
	}

	log.Info().Str("command", "Init").Str("path", path).Msg("Command finished")
	return path, nil
}

func buildToolsDir(projectRoot string) string {
	return filepath.Join(projectRoot, paths.BuildToolsDirName)
}

func manifestPath(projectRoot string) string {
	return filepath.Join(projectRoot, paths.ManifestFileName)
}

func runPost(cfg *config.Config, layout postbuild.Layout, fsys types.FS, dryRun bool) ([]operations.OperationResult, error) {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	ops, err := postbuild.Plan(cfg, layout)
	if err != nil {
		return nil, err
	}

	return operations.NewExecutor(fsys, dryRun).Execute(ops)
}

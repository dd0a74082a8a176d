package bento

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bento-build/bento/internal/version"
	"github.com/bento-build/bento/pkg/cobrax/topics"
	"github.com/bento-build/bento/pkg/commands"
	"github.com/bento-build/bento/pkg/config"
	"github.com/bento-build/bento/pkg/logging"
	"github.com/bento-build/bento/pkg/paths"
	"github.com/bento-build/bento/pkg/style"
	"github.com/bento-build/bento/pkg/watcher"
)

//go:embed topics
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity int
		dryRun    bool
		format    string
	)

	rootCmd := &cobra.Command{
		Use:     "bento",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but signal incorrect usage
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", MsgFlagFormat)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newAssembleCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newPostCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help from the embedded docs
	if docs, err := fs.Sub(topicFiles, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".txt", ".md"},
			Renderer:   topics.NewGlamourRenderer(),
		}
		if err := topics.Initialize(rootCmd, docs, opts); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize help topics")
		}
	}

	return rootCmd
}

// initPaths initializes the paths instance and shows a warning if the
// project root had to fall back to the current directory.
func initPaths() (paths.Paths, error) {
	p, err := paths.New("")
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	if p.UsedFallback() {
		fmt.Fprintf(os.Stderr, MsgFallbackWarning, p.ProjectRoot())
	}

	return p, nil
}

// newRenderer resolves the --format flag against the terminal.
func newRenderer(cmd *cobra.Command) (*style.TerminalRenderer, error) {
	raw, _ := cmd.Root().PersistentFlags().GetString("format")
	f, err := style.ParseFormat(raw)
	if err != nil {
		return nil, err
	}
	return style.NewTerminalRenderer(f.Resolve(os.Stdout)), nil
}

func newAssembleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assemble",
		Short:   MsgAssembleShort,
		Long:    MsgAssembleLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			report, _ := cmd.Flags().GetString("report")

			result, err := commands.Assemble(commands.AssembleOptions{
				ProjectRoot: p.ProjectRoot(),
				ReportPath:  report,
			})
			if err != nil {
				return fmt.Errorf(MsgErrAssemble, err)
			}

			fmt.Println(renderer.RenderResolution(result.Resolution))
			return nil
		},
	}

	cmd.Flags().String("report", "", MsgFlagReport)

	return cmd
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
			skipPost, _ := cmd.Flags().GetBool("skip-post")

			log.Info().
				Str("project_root", p.ProjectRoot()).
				Bool("dry_run", dryRun).
				Msg("Building from project root")

			result, err := commands.Build(cmd.Context(), commands.BuildOptions{
				ProjectRoot: p.ProjectRoot(),
				DryRun:      dryRun,
				SkipPost:    skipPost,
				Stdout:      os.Stdout,
				Stderr:      os.Stderr,
			})
			if err != nil {
				return fmt.Errorf(MsgErrBuild, err)
			}

			fmt.Println(renderer.RenderResolution(result.Resolution))
			fmt.Println(renderer.RenderInvocation(result.Invocation))

			if dryRun {
				fmt.Println(MsgDryRunNotice)
				return nil
			}

			if result.PostResults != nil {
				fmt.Println(renderer.RenderResults(result.PostResults))
			}

			return nil
		},
	}

	cmd.Flags().Bool("skip-post", false, MsgFlagSkipPost)

	return cmd
}

func newPostCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "post",
		Short:   MsgPostShort,
		Long:    MsgPostLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			result, err := commands.PostBuild(commands.PostBuildOptions{
				ProjectRoot: p.ProjectRoot(),
				DryRun:      dryRun,
			})
			if err != nil {
				return fmt.Errorf(MsgErrPostBuild, err)
			}

			if dryRun {
				fmt.Println(MsgDryRunNotice)
			}
			fmt.Println(renderer.RenderResults(result.Results))

			if result.Launched {
				fmt.Printf(MsgAppLaunched, result.Config.App.Name)
			}
			if result.LaunchErr != nil {
				fmt.Println(renderer.RenderError(result.LaunchErr))
			}

			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			force, _ := cmd.Flags().GetBool("force")

			path, err := commands.Init(commands.InitOptions{
				ProjectRoot: p.ProjectRoot(),
				Force:       force,
			})
			if err != nil {
				return fmt.Errorf(MsgErrInit, err)
			}

			fmt.Printf(MsgManifestCreated, path)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, MsgFlagForce)

	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			debounce, _ := cmd.Flags().GetDuration("debounce")

			cfg, err := config.Load(nil, p.ProjectRoot())
			if err != nil {
				return fmt.Errorf(MsgErrWatch, err)
			}

			// Build output churns constantly, never re-trigger on it.
			excludes := append([]string{
				paths.BuildToolsDirName,
				cfg.Post.FinalDir,
			}, cfg.Post.Clean...)

			assemble := func() {
				result, err := commands.Assemble(commands.AssembleOptions{
					ProjectRoot: p.ProjectRoot(),
				})
				if err != nil {
					fmt.Println(renderer.RenderError(err))
					return
				}
				fmt.Println(renderer.RenderResolution(result.Resolution))
			}

			w, err := watcher.New(p.ProjectRoot(), excludes, debounce, assemble)
			if err != nil {
				return fmt.Errorf(MsgErrWatch, err)
			}
			defer func() { _ = w.Close() }()

			// Show the initial state before waiting for changes.
			assemble()

			if err := w.Watch(cmd.Context()); err != nil && err != context.Canceled {
				return fmt.Errorf(MsgErrWatch, err)
			}

			fmt.Print(MsgWatchStopped)
			return nil
		},
	}

	cmd.Flags().Duration("debounce", watcher.DefaultDebounce, MsgFlagDebounce)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bento version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

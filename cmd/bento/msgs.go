package bento

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "A declarative bundle assembler for desktop apps"
	MsgRootLong  = `bento reads a bento.toml manifest, resolves which data files, hidden
imports, and exclusions actually apply on this machine, drives an external
bundling tool such as PyInstaller, and stages the finished bundle into
your project.

Entries that point at files missing on this machine are reported and
skipped instead of failing the build, so one manifest serves every
developer checkout.`

	MsgAssembleShort = "Resolve the manifest against this machine"
	MsgAssembleLong  = `Assemble loads bento.toml, checks every data entry against the
filesystem, and prints which entries were included, which were missing,
and the hidden imports and exclusions that will be forwarded to the
bundling tool. Nothing is built.`

	MsgBuildShort = "Assemble, run the bundling tool, and stage the result"
	MsgBuildLong  = `Build assembles the manifest, invokes the external bundling tool with
the resolved arguments, and then runs the post-build pipeline that stages
the finished bundle into the project root.`

	MsgPostShort = "Run only the post-build staging pipeline"
	MsgPostLong  = `Post stages an already-built bundle: it copies configured extras into
place, moves the dist output to its final directory, and removes
intermediate build directories. Use it after running the bundling tool
by hand.`

	MsgInitShort = "Create a starter bento.toml manifest"
	MsgInitLong  = `Init writes a commented starter manifest into the project root. It
refuses to overwrite an existing manifest unless --force is given.`

	MsgWatchShort = "Re-resolve the manifest whenever project files change"
	MsgWatchLong  = `Watch monitors the project tree and reruns assembly after changes
settle, so you can see immediately when an edit makes a data entry
appear or go missing. Press Ctrl-C to stop.`

	MsgVersionShort    = "Print version information"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice    = "\nDRY RUN MODE - No changes were made"
	MsgManifestCreated = "Created %s\n"
	MsgAppLaunched     = "Launched %s\n"
	MsgWatchStopped    = "Watch stopped.\n"

	// Error messages
	MsgErrInitPaths = "failed to initialize paths: %w"
	MsgErrAssemble  = "failed to assemble manifest: %w"
	MsgErrBuild     = "build failed: %w"
	MsgErrPostBuild = "post-build staging failed: %w"
	MsgErrInit      = "failed to create manifest: %w"
	MsgErrWatch     = "watch failed: %w"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Preview changes without executing them"
	MsgFlagFormat   = "Output format (auto, term, text)"
	MsgFlagReport   = "Write the resolution report to this file"
	MsgFlagSkipPost = "Stop after the bundling tool, skip staging"
	MsgFlagForce    = "Overwrite an existing manifest"
	MsgFlagDebounce = "How long changes must settle before re-assembling"

	// Warnings
	MsgFallbackWarning = "Warning: no BENTO_PROJECT_ROOT set and no bento.toml found, using current directory: %s\n"
)

// MsgUsageTemplate is the cobra usage template with bold group titles.
const MsgUsageTemplate = `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

Available Commands:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold .Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

Additional Commands:{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

// MsgCompletionLong documents shell completion setup per shell.
const MsgCompletionLong = `To load completions:

Bash:
  $ source <(bento completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ bento completion bash > /etc/bash_completion.d/bento
  # macOS:
  $ bento completion bash > /usr/local/etc/bash_completion.d/bento

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ bento completion zsh > "${fpath[1]}/_bento"

Fish:
  $ bento completion fish | source
  # To load completions for each session, execute once:
  $ bento completion fish > ~/.config/fish/completions/bento.fish

PowerShell:
  PS> bento completion powershell | Out-String | Invoke-Expression
`

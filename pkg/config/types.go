package config

// Config is the fully merged packaging manifest: embedded defaults,
// the project's bento.toml, and BENTO_ environment overrides.
type Config struct {
	App    AppConfig    `koanf:"app" toml:"app"`
	Bundle BundleConfig `koanf:"bundle" toml:"bundle"`
	Post   PostConfig   `koanf:"post" toml:"post"`
}

// AppConfig identifies the application being bundled.
type AppConfig struct {
	// Name is the bundle name; the external tool creates dist/<Name>.
	Name string `koanf:"name" toml:"name"`

	// Entrypoint is the script or binary handed to the bundling tool.
	Entrypoint string `koanf:"entrypoint" toml:"entrypoint"`

	// Version is embedded in generated application metadata.
	Version string `koanf:"version" toml:"version"`

	// Icon is the path to the application icon, relative to the project root.
	Icon string `koanf:"icon" toml:"icon"`
}

// BundleConfig describes what the external bundling tool should assemble.
type BundleConfig struct {
	// Tool is the external bundler command.
	Tool string `koanf:"tool" toml:"tool"`

	// Mode selects the bundle layout: "onedir" or "onefile".
	Mode string `koanf:"mode" toml:"mode"`

	// Console controls whether the bundled app keeps a console window.
	Console bool `koanf:"console" toml:"console"`

	// Clean asks the tool to discard its caches before building.
	Clean bool `koanf:"clean" toml:"clean"`

	// Confirm controls whether the tool may prompt before overwriting output.
	Confirm bool `koanf:"confirm" toml:"confirm"`

	// Data lists the (source, dest) inclusion candidates. Sources that do
	// not exist at build time are dropped with a warning.
	Data []DataEntryConfig `koanf:"data" toml:"data"`

	// HiddenImports names dependencies the tool cannot discover statically.
	HiddenImports []string `koanf:"hidden_imports" toml:"hidden_imports"`

	// Excludes names optional modules to omit from the bundle. Glob
	// patterns are allowed.
	Excludes []string `koanf:"excludes" toml:"excludes"`

	// CertBundle is the path to a CA certificate bundle. When it exists it
	// is appended to the data list exactly once.
	CertBundle string `koanf:"cert_bundle" toml:"cert_bundle"`

	// CertDest is the in-bundle destination directory for the CA bundle.
	CertDest string `koanf:"cert_dest" toml:"cert_dest"`

	// ExtraArgs are passed to the tool verbatim, after the generated ones.
	ExtraArgs []string `koanf:"extra_args" toml:"extra_args"`
}

// DataEntryConfig is one inclusion candidate from the manifest.
type DataEntryConfig struct {
	Source string `koanf:"source" toml:"source"`
	Dest   string `koanf:"dest" toml:"dest"`
}

// PostConfig describes the staging performed after the bundler has run.
type PostConfig struct {
	// FinalDir is where the finished bundle lands, relative to the project
	// root. Defaults to the app name.
	FinalDir string `koanf:"final_dir" toml:"final_dir"`

	// InternalDir is the bundle subdirectory holding runtime data files.
	InternalDir string `koanf:"internal_dir" toml:"internal_dir"`

	// EnvTemplate is copied into the bundle's internal directory.
	EnvTemplate string `koanf:"env_template" toml:"env_template"`

	// Copy lists extra files placed next to the final executable.
	Copy []CopyEntryConfig `koanf:"copy" toml:"copy"`

	// Clean lists directories removed after staging, relative to the
	// project root or the build-tools directory.
	Clean []string `koanf:"clean" toml:"clean"`

	// Launch starts the bundled executable once staging finishes.
	Launch bool `koanf:"launch" toml:"launch"`

	// Manifest writes a Windows side-by-side manifest next to the exe.
	Manifest bool `koanf:"manifest" toml:"manifest"`
}

// CopyEntryConfig is one post-build copy: source, destination, and the
// label used in status lines.
type CopyEntryConfig struct {
	Source string `koanf:"source" toml:"source"`
	Dest   string `koanf:"dest" toml:"dest"`
	Label  string `koanf:"label" toml:"label"`
}

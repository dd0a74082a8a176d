package config

import (
	"io/fs"

	"github.com/bento-build/bento/pkg/errors"
	"github.com/bento-build/bento/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// StarterManifest returns the content of a starter bento.toml: a small,
// working example the user edits down to their project.
func StarterManifest() ([]byte, error) {
	starter := Config{
		App: AppConfig{
			Name:       "MyApp",
			Entrypoint: "main.py",
			Version:    "1.0.0",
			Icon:       "assets/icon.ico",
		},
		Bundle: BundleConfig{
			Tool:    "pyinstaller",
			Mode:    "onedir",
			Console: false,
			Clean:   true,
			Data: []DataEntryConfig{
				{Source: ".env.example", Dest: "."},
				{Source: "README.md", Dest: "."},
				{Source: "assets/icon.ico", Dest: "assets"},
			},
			HiddenImports: []string{"grpc", "certifi"},
			Excludes:      []string{"tkinter", "unittest"},
			CertBundle:    "certs/cacert.pem",
			CertDest:      "certifi",
		},
		Post: PostConfig{
			EnvTemplate: ".env.example",
			Copy: []CopyEntryConfig{
				{Source: "settings.json", Dest: "settings.json", Label: "settings.json"},
			},
			Clean:  []string{"build", "dist", "__pycache__"},
			Launch: false,
		},
	}

	out, err := toml.Marshal(starter)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal starter manifest")
	}
	return out, nil
}

// WriteStarter writes a starter manifest to path. An existing file is only
// replaced when force is set.
func WriteStarter(fsys types.FS, path string, force bool) error {
	if types.Exists(fsys, path) && !force {
		return errors.Newf(errors.ErrManifestExists, "%s already exists (use --force to overwrite)", path)
	}

	content, err := StarterManifest()
	if err != nil {
		return err
	}

	if err := fsys.WriteFile(path, content, fs.FileMode(0644)); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}

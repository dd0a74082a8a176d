package manifest

import (
	"github.com/bento-build/bento/pkg/errors"
	"github.com/bento-build/bento/pkg/logging"
	"github.com/google/renameio/v2"
	toml "github.com/pelletier/go-toml/v2"
)

// WriteReport persists a resolution as TOML at path. The write is atomic
// (temp file, fsync, rename) so a crashed run never leaves a truncated
// report behind for CI to misread.
func WriteReport(res *Resolution, path string) error {
	logger := logging.GetLogger("manifest.report")

	data, err := toml.Marshal(res)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to marshal resolution report")
	}

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create pending report file %s", path)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending report file")
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write report %s", path)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to replace report %s", path)
	}

	logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Resolution report written")
	return nil
}

package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// WriteAtomic writes the output produced by write to a uuid-named temporary
// file in the same directory as path, then renames it into place. A failed
// write never leaves a partial file at path.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), id.String()))

	log.Debug().Str("path", path).Str("tmp", tmp).Msg("writing output file")

	f, err := os.Create(tmp)
	if err != nil {
		err = fmt.Errorf("error creating temp file %w", err)
		log.Error().Err(err).Send()
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		remove(tmp)
		return err
	}

	if err := f.Close(); err != nil {
		err = fmt.Errorf("error closing temp file %w", err)
		log.Error().Err(err).Send()
		remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		err = fmt.Errorf("error renaming temp file %w", err)
		log.Error().Err(err).Send()
		remove(tmp)
		return err
	}

	log.Debug().Str("path", path).Msg("created file")

	return nil
}

// Size returns the size in bytes of the file at path.
func Size(path string) (int64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	return stat.Size(), nil
}

// Exists reports whether path exists on the filesystem.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func remove(path string) {
	err := os.Remove(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up temp file")
		return
	}
	log.Debug().Str("path", path).Msg("cleaned up temp file")
}

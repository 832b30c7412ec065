package file

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		writeErr error
		wantErr  bool
	}{
		{
			name:    "success",
			content: []byte("test\n"),
			wantErr: false,
		},
		{
			name:    "empty file",
			content: []byte(""),
			wantErr: false,
		},
		{
			name:     "write failure leaves no destination",
			content:  []byte("partial"),
			writeErr: errors.New("encode failed"),
			wantErr:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "out.dat")

			err := WriteAtomic(path, func(w io.Writer) error {
				if _, err := w.Write(tc.content); err != nil {
					return err
				}
				return tc.writeErr
			})

			if tc.wantErr {
				require.Error(t, err)
				assert.False(t, Exists(path))
			} else {
				require.NoError(t, err)
				got, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, tc.content, got)
			}

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			for _, entry := range entries {
				assert.NotContains(t, entry.Name(), ".tmp")
			}
		})
	}
}

func TestWriteAtomicOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.dat")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	err := WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write([]byte("new"))
		return err
	})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sized.dat")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))

	size, err := Size(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	_, err = Size(filepath.Join(t.TempDir(), "missing.dat"))
	require.Error(t, err)
}

func TestExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "there.dat")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.True(t, Exists(path))
	assert.False(t, Exists(path+".nope"))
}

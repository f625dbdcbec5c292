package govff

import (
	"io"
	"io/fs"

	"github.com/spf13/afero"
)

// NewIOFS opens the container read from reader as fs.FS.
// It uses the afero.IOFS compatibility layer on top of Fs.
func NewIOFS(reader io.ReadSeeker) (fs.FS, error) {
	fsys, err := New(reader)
	if err != nil {
		return nil, err
	}

	return afero.IOFS{Fs: fsys}, nil
}

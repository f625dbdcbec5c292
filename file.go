package govff

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/aligator/govff/checkpoint"
	"github.com/spf13/afero"
)

// These errors may occur while processing a file.
var (
	ErrReadFile = errors.New("could not read file completely")
	ErrSeekFile = errors.New("could not seek inside of the file")
)

// File is an opened file or directory of an Fs.
// File contents are read completely when opening the file.
type File struct {
	name string
	stat os.FileInfo

	data []byte
	// dir is only set for directories.
	dir         *Directory
	showDeleted bool

	// offset is the read position for files and the number of returned entries for directories.
	offset int64
	closed bool
}

var _ afero.File = &File{}

func (f *File) Close() error {
	if f.closed {
		return afero.ErrFileClosed
	}
	f.closed = true
	f.data = nil
	f.dir = nil
	return nil
}

func (f *File) Read(p []byte) (n int, err error) {
	if f.closed {
		return 0, afero.ErrFileClosed
	}
	if f.dir != nil {
		return 0, checkpoint.Wrap(syscall.EISDIR, ErrReadFile)
	}
	if len(p) == 0 {
		return 0, nil
	}

	// Reading a file if the size has been already reached, makes no sense.
	if int64(len(f.data)) <= f.offset {
		return 0, io.EOF
	}

	n = copy(p, f.data[f.offset:])
	f.offset += int64(n)
	return n, nil
}

func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if f.closed {
		return 0, afero.ErrFileClosed
	}
	if f.dir != nil {
		return 0, checkpoint.Wrap(syscall.EISDIR, ErrReadFile)
	}
	if off < 0 {
		return 0, checkpoint.Wrap(afero.ErrOutOfRange, ErrReadFile)
	}

	// Reading over the end makes no sense.
	if int64(len(f.data)) <= off {
		return 0, io.EOF
	}

	n = copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Seek jumps to a specific offset in the file. This affects all Read operation except ReadAt.
// May return a syscall.EINVAL error if the whence value is invalid.
// May return an afero.ErrOutOfRange error if the offset is out of range.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, afero.ErrFileClosed
	}

	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = f.offset + offset
	case io.SeekEnd:
		offset = int64(len(f.data)) + offset
	default:
		return 0, checkpoint.Wrap(ErrSeekFile, fmt.Errorf("%w, offset: %v, whence: %v", syscall.EINVAL, offset, whence))
	}

	if offset < 0 || offset > int64(len(f.data)) {
		return 0, checkpoint.Wrap(afero.ErrOutOfRange, fmt.Errorf("%w, offset: %v, whence: %v", ErrSeekFile, offset, whence))
	}

	f.offset = offset
	return offset, nil
}

func (f *File) Write(p []byte) (n int, err error) {
	return 0, readOnly("write", f.name)
}

func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, readOnly("write", f.name)
}

func (f *File) WriteString(s string) (ret int, err error) {
	return f.Write([]byte(s))
}

func (f *File) Truncate(size int64) error {
	return readOnly("truncate", f.name)
}

// Sync has nothing to do as nothing can be written.
func (f *File) Sync() error {
	return nil
}

func (f *File) Name() string {
	return f.name
}

func (f *File) Stat() (os.FileInfo, error) {
	if f.closed {
		return nil, afero.ErrFileClosed
	}
	return f.stat, nil
}

// Readdir reads the contents of a directory, without "." and "..".
// For count > 0 at most count entries are returned and io.EOF once there is nothing left.
// For count <= 0 all remaining entries are returned.
// May return syscall.ENOTDIR if the current File is no directory.
func (f *File) Readdir(count int) ([]os.FileInfo, error) {
	if f.closed {
		return nil, afero.ErrFileClosed
	}
	if f.dir == nil {
		return nil, checkpoint.Wrap(syscall.ENOTDIR, ErrReadDir)
	}

	entries, err := f.dir.Read(f.showDeleted)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadDir)
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.isDotEntry() {
			continue
		}
		infos = append(infos, entry.FileInfo())
	}

	if f.offset >= int64(len(infos)) {
		if count > 0 {
			return nil, io.EOF
		}
		return []os.FileInfo{}, nil
	}

	rest := infos[f.offset:]
	if count > 0 && count < len(rest) {
		rest = rest[:count]
	}
	f.offset += int64(len(rest))

	return rest, nil
}

func (f *File) Readdirnames(count int) ([]string, error) {
	content, err := f.Readdir(count)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(content))
	for i, entry := range content {
		names[i] = entry.Name()
	}

	return names, nil
}

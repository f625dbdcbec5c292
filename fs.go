package govff

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/aligator/govff/checkpoint"
	"github.com/spf13/afero"
)

// Fs is a read-only afero.Fs view of a container.
// Paths are resolved by the displayed names of the records ("NAME.EXT"), ignoring case.
type Fs struct {
	vff         *Vff
	root        *Directory
	showDeleted bool
}

var _ afero.Fs = &Fs{}

// New opens the container read from reader as afero.Fs. Deleted records are hidden.
func New(reader io.ReadSeeker) (*Fs, error) {
	vff, root, err := Open(reader)
	if err != nil {
		return nil, err
	}

	return NewFs(vff, root, false), nil
}

// NewFs creates the filesystem view for an already opened container.
// If showDeleted is set, deleted records are visible with the deleted marker as first character.
func NewFs(vff *Vff, root *Directory, showDeleted bool) *Fs {
	return &Fs{
		vff:         vff,
		root:        root,
		showDeleted: showDeleted,
	}
}

// Vff returns the container the Fs reads from.
func (fs *Fs) Vff() *Vff {
	return fs.vff
}

func cleanPath(name string) string {
	return path.Clean("/" + filepath.ToSlash(name))
}

func (fs *Fs) open(name string) (*File, error) {
	cleaned := cleanPath(name)
	if cleaned == "/" {
		return &File{name: name, stat: rootFileInfo{}, dir: fs.root, showDeleted: fs.showDeleted}, nil
	}

	parts := strings.Split(strings.TrimPrefix(cleaned, "/"), "/")
	dir := fs.root
	for i, part := range parts {
		entry, ok, err := dir.Lookup(part, fs.showDeleted)
		if err != nil {
			return nil, &os.PathError{Op: "open", Path: name, Err: err}
		}
		if !ok {
			return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
		}

		last := i == len(parts)-1
		if !last && !entry.IsDir() {
			return nil, &os.PathError{Op: "open", Path: name, Err: syscall.ENOTDIR}
		}

		content, err := dir.Resolve(entry)
		if err != nil {
			return nil, &os.PathError{Op: "open", Path: name, Err: err}
		}

		if !last {
			dir = content.Dir
			continue
		}

		return &File{
			name:        name,
			stat:        entry.FileInfo(),
			data:        content.Data,
			dir:         content.Dir,
			showDeleted: fs.showDeleted,
		}, nil
	}

	// Not reachable, parts always has at least one element.
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
}

func (fs *Fs) Open(name string) (afero.File, error) {
	file, err := fs.open(name)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// OpenFile only supports opening for reading.
func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		return nil, readOnly("open", name)
	}
	return fs.Open(name)
}

func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	file, err := fs.open(name)
	if err != nil {
		return nil, err
	}
	return file.stat, nil
}

func (fs *Fs) Name() string {
	return "VffFs"
}

func readOnly(op, name string) error {
	return &os.PathError{Op: op, Path: name, Err: checkpoint.Wrap(syscall.EROFS, ErrReadOnly)}
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, readOnly("create", name)
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return readOnly("mkdir", name)
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return readOnly("mkdir", path)
}

func (fs *Fs) Remove(name string) error {
	return readOnly("remove", name)
}

func (fs *Fs) RemoveAll(path string) error {
	return readOnly("remove", path)
}

func (fs *Fs) Rename(oldname, newname string) error {
	return readOnly("rename", oldname)
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return readOnly("chmod", name)
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return readOnly("chown", name)
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return readOnly("chtimes", name)
}

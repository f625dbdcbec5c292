package govff

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aligator/govff/checkpoint"
	"github.com/aligator/govff/internal/cmdlogger"
	"github.com/spf13/afero"
)

// List returns one line per file below the directory, depth first in on-disk order:
//
//	<path>/<NAME.EXT> [0x<size>]
//
// Deleted files get a " [DELETED]" suffix. Directories without any file or subdirectory
// show up with their bare path.
func (d *Directory) List(showDeleted bool) ([]string, error) {
	w := walker{showDeleted: showDeleted}
	if err := w.walk(d, ""); err != nil {
		return nil, err
	}
	return w.lines, nil
}

// Dump extracts all files below the directory into dest on the given filesystem,
// recreating the directory structure.
func (d *Directory) Dump(fsys afero.Fs, dest string, showDeleted bool) error {
	if err := fsys.MkdirAll(dest, 0o755); err != nil {
		return checkpoint.Wrap(err, ErrDump)
	}

	w := walker{showDeleted: showDeleted, fsys: fsys}
	return w.walk(d, dest)
}

// walker is the traversal shared by List and Dump.
// It keeps its own stack instead of recursing, so the depth of a tree is only bound by memory.
type walker struct {
	showDeleted bool
	// fsys is nil when listing.
	fsys  afero.Fs
	lines []string
}

type walkFrame struct {
	dir     *Directory
	entries []Entry
	next    int
	dest    string
	// populated is set as soon as anything besides "." and ".." was found.
	populated bool
}

func (w *walker) newFrame(dir *Directory, dest string) (*walkFrame, error) {
	entries, err := dir.Read(w.showDeleted)
	if err != nil {
		return nil, err
	}
	return &walkFrame{dir: dir, entries: entries, dest: dest}, nil
}

func (w *walker) walk(root *Directory, dest string) error {
	frame, err := w.newFrame(root, dest)
	if err != nil {
		return err
	}

	stack := []*walkFrame{frame}
	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.next >= len(top.entries) {
			if !top.populated {
				w.lines = append(w.lines, top.dir.path)
			}
			stack = stack[:len(stack)-1]
			continue
		}

		entry := top.entries[top.next]
		top.next++

		if entry.IsDir() {
			if entry.isDotEntry() {
				continue
			}
			top.populated = true

			child, err := w.descend(stack, entry)
			if err != nil {
				return err
			}
			stack = append(stack, child)
			continue
		}

		top.populated = true
		if w.fsys == nil {
			w.lines = append(w.lines, listingLine(top.dir.path, entry))
			continue
		}
		if err := w.writeFile(top, entry); err != nil {
			return err
		}
	}

	return nil
}

// descend resolves a subdirectory of the top of the stack into a new frame.
func (w *walker) descend(stack []*walkFrame, entry Entry) (*walkFrame, error) {
	parent := stack[len(stack)-1]

	content, err := parent.dir.Resolve(entry)
	if err != nil {
		return nil, err
	}
	if content.Kind != DirContent {
		return nil, invalidData("walking "+parent.dir.path, "a directory for an entry marked as one", "kind %d", content.Kind)
	}

	for _, ancestor := range stack {
		if ancestor.dir.cluster != 0 && ancestor.dir.cluster == content.Dir.cluster {
			return nil, invalidData("walking "+parent.dir.path, "subdirectories which do not link back to an ancestor",
				"%s starts at cluster %04x like %q", entry.NiceName(), content.Dir.cluster, ancestor.dir.path)
		}
	}

	var dest string
	if w.fsys != nil {
		name, err := hostName(parent.dir, entry.NiceName())
		if err != nil {
			return nil, err
		}
		dest = filepath.Join(parent.dest, name)
		if err := w.fsys.MkdirAll(dest, 0o755); err != nil {
			return nil, checkpoint.Wrap(err, ErrDump)
		}
	}

	cmdlogger.Debugf("Descending into %s", content.Dir.path)
	return w.newFrame(content.Dir, dest)
}

func (w *walker) writeFile(frame *walkFrame, entry Entry) error {
	name, err := hostName(frame.dir, entry.NiceFullName())
	if err != nil {
		return err
	}

	content, err := frame.dir.Resolve(entry)
	if err != nil {
		return err
	}
	if content.Kind != FileContent {
		return invalidData("dumping "+frame.dir.path, "file bytes for a file entry", "kind %d", content.Kind)
	}

	if err := w.fsys.MkdirAll(frame.dest, 0o755); err != nil {
		return checkpoint.Wrap(err, ErrDump)
	}

	target := filepath.Join(frame.dest, name)
	if err := afero.WriteFile(w.fsys, target, content.Data, 0o644); err != nil {
		return checkpoint.Wrap(err, ErrDump)
	}

	cmdlogger.Debugf("Wrote %d bytes to %s", len(content.Data), target)
	return nil
}

// hostName checks that a decoded record name stays a single element when joined to a host path.
func hostName(dir *Directory, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", invalidData("dumping "+dir.path, "a name which is a single path element", "%q", name)
	}
	return name, nil
}

func listingLine(path string, entry Entry) string {
	line := fmt.Sprintf("%s/%s [0x%04x]", path, entry.NiceFullName(), entry.Size)
	if entry.Deleted {
		line += " [DELETED]"
	}
	return line
}

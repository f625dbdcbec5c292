package govff

import (
	"strings"

	"github.com/aligator/govff/checkpoint"
)

// clusterReader provides all methods needed from a container for Directory.
// It mainly exists to be able to mock the Vff in tests.
// Generated mock using mockgen:
//
//	mockgen -source=directory.go -destination=directory_mock.go -package govff
type clusterReader interface {
	ReadChain(start uint32) ([]byte, error)
}

// ContentKind tells what a resolved entry turned out to be.
type ContentKind int

const (
	// NoContent means no entry matched.
	NoContent ContentKind = iota
	FileContent
	DirContent
)

// Content is a resolved directory entry.
type Content struct {
	Kind ContentKind
	// Path of the directory the entry was found in.
	Path string
	Name string

	// Data is set for FileContent and already trimmed to the file size.
	Data []byte
	// Dir is set for DirContent.
	Dir *Directory
}

// Directory is the decoded entry region of a single directory.
// Child directories and files are read on demand through the container it belongs to.
type Directory struct {
	vff  clusterReader
	data []byte
	path string
	// cluster is the start cluster of the directory, 0 for the root region.
	cluster uint32
}

func newDirectory(vff clusterReader, data []byte, path string) (*Directory, error) {
	if len(data)%entrySize != 0 {
		return nil, invalidData("directory region", "a multiple of 32 bytes", "%d bytes", len(data))
	}

	return &Directory{
		vff:  vff,
		data: data,
		path: path,
	}, nil
}

// Path is "" for the root and "/NAME/..." for everything below it.
func (d *Directory) Path() string {
	return d.path
}

// Read decodes all records of the directory in on-disk order.
// Free slots and long filename records are skipped, deleted records only show up if showDeleted is set.
func (d *Directory) Read(showDeleted bool) ([]Entry, error) {
	var entries []Entry
	for offset := 0; offset+entrySize <= len(d.data); offset += entrySize {
		entry, err := decodeEntry(d.data[offset : offset+entrySize])
		if err != nil {
			return nil, checkpoint.Wrap(err, ErrReadDir)
		}

		switch entry.Name[0] {
		case freeMarker:
			// Free slots may be followed by used ones.
			continue
		case deletedMarker:
			if !showDeleted {
				continue
			}
			entry.Deleted = true
		}

		if entry.isLongNameStub() {
			continue
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// Find returns the first entry whose short name (without extension) matches name, ignoring case.
func (d *Directory) Find(name string, showDeleted bool) (Entry, bool, error) {
	return d.find(showDeleted, func(e Entry) bool {
		return strings.EqualFold(e.NiceName(), name)
	})
}

// Lookup returns the first entry whose displayed name ("NAME.EXT" for files) matches name, ignoring case.
func (d *Directory) Lookup(name string, showDeleted bool) (Entry, bool, error) {
	return d.find(showDeleted, func(e Entry) bool {
		return strings.EqualFold(e.displayName(), name)
	})
}

func (d *Directory) find(showDeleted bool, match func(e Entry) bool) (Entry, bool, error) {
	entries, err := d.Read(showDeleted)
	if err != nil {
		return Entry{}, false, err
	}

	for _, entry := range entries {
		if match(entry) {
			return entry, true, nil
		}
	}
	return Entry{}, false, nil
}

// Get finds the entry with the given short name and resolves it.
// If nothing matches, a Content of kind NoContent is returned and no error.
func (d *Directory) Get(name string, showDeleted bool) (Content, error) {
	entry, ok, err := d.Find(name, showDeleted)
	if err != nil {
		return Content{}, err
	}
	if !ok {
		return Content{Kind: NoContent, Path: d.path}, nil
	}

	return d.Resolve(entry)
}

// Resolve reads the content of an entry of this directory.
// Directories are read completely, files are trimmed to their size and empty files are not read at all.
func (d *Directory) Resolve(entry Entry) (Content, error) {
	name := entry.NiceName()
	start := uint32(entry.StartCluster)

	if entry.IsDir() {
		data, err := d.vff.ReadChain(start)
		if err != nil {
			return Content{}, checkpoint.Wrap(err, ErrReadDir)
		}

		child, err := newDirectory(d.vff, data, d.path+"/"+name)
		if err != nil {
			return Content{}, checkpoint.Wrap(err, ErrReadDir)
		}
		child.cluster = start

		return Content{Kind: DirContent, Path: d.path, Name: name, Dir: child}, nil
	}

	if entry.Size == 0 {
		return Content{Kind: FileContent, Path: d.path, Name: name, Data: []byte{}}, nil
	}

	data, err := d.vff.ReadChain(start)
	if err != nil {
		return Content{}, checkpoint.Wrap(err, ErrReadDir)
	}
	if uint64(len(data)) > uint64(entry.Size) {
		data = data[:entry.Size]
	}

	return Content{Kind: FileContent, Path: d.path, Name: name, Data: data}, nil
}

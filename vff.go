package govff

import (
	"io"
	"sync"

	"github.com/aligator/govff/checkpoint"
	"github.com/aligator/govff/internal/cmdlogger"
	"github.com/spf13/afero"
)

// rootDirectorySize is the fixed size of the root directory region which follows the allocation table.
const rootDirectorySize = 0x1000

// Vff is an opened container.
// It owns the source, the header and the allocation table and is shared by all
// directories read from it.
type Vff struct {
	// mu is held for a whole chain read, as every cluster read is a seek followed by a read.
	mu     sync.Mutex
	reader io.ReadSeeker
	closer io.Closer

	header     Header
	table      *allocationTable
	dataOffset int64
}

// Open decodes the container layout from the given reader and returns it together with
// its root directory.
func Open(reader io.ReadSeeker) (*Vff, *Directory, error) {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return nil, nil, checkpoint.Wrap(err, ErrOpen)
	}

	raw := make([]byte, headerSize)
	if _, err := io.ReadFull(reader, raw); err != nil {
		return nil, nil, checkpoint.Wrap(err, ErrOpen)
	}
	header, err := parseHeader(raw)
	if err != nil {
		return nil, nil, checkpoint.Wrap(err, ErrOpen)
	}

	if _, err := reader.Seek(headerReservedSize, io.SeekCurrent); err != nil {
		return nil, nil, checkpoint.Wrap(err, ErrOpen)
	}

	table, err := readAllocationTable(reader, header)
	if err != nil {
		return nil, nil, checkpoint.Wrap(err, ErrOpen)
	}

	root := make([]byte, rootDirectorySize)
	if _, err := io.ReadFull(reader, root); err != nil {
		return nil, nil, checkpoint.Wrap(err, ErrOpen)
	}

	dataOffset, err := reader.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, nil, checkpoint.Wrap(err, ErrOpen)
	}

	cmdlogger.Debugf("Opened container with %d clusters of %d bytes, data starts at %#x",
		header.ClusterCount, header.ClusterSize, dataOffset)

	vff := &Vff{
		reader:     reader,
		header:     header,
		table:      table,
		dataOffset: dataOffset,
	}

	dir, err := newDirectory(vff, root, "")
	if err != nil {
		return nil, nil, checkpoint.Wrap(err, ErrOpen)
	}

	return vff, dir, nil
}

// OpenFs opens the named container on the given filesystem.
// Closing the returned Vff closes the file.
func OpenFs(fsys afero.Fs, name string) (*Vff, *Directory, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, nil, checkpoint.Wrap(err, ErrOpen)
	}

	vff, root, err := Open(file)
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	vff.closer = file

	return vff, root, nil
}

func (v *Vff) Close() error {
	if v.closer == nil {
		return nil
	}
	err := v.closer.Close()
	v.closer = nil
	return checkpoint.From(err)
}

func (v *Vff) Header() Header {
	return v.header
}

// ClusterCount is the number of clusters the volume is divided into.
func (v *Vff) ClusterCount() uint32 {
	return v.header.ClusterCount
}

// DataOffset is the byte offset of cluster 2.
func (v *Vff) DataOffset() int64 {
	return v.dataOffset
}

// ReadCluster reads a single cluster. Cluster numbers start at 2.
func (v *Vff) ReadCluster(cluster uint32) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.readCluster(cluster)
}

// ReadChain reads all clusters of the chain starting at start and concatenates them in chain order.
// The result is cluster aligned, trimming it to a file size is up to the caller.
func (v *Vff) ReadChain(start uint32) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	clusters, err := v.table.chain(start)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadChain)
	}

	data := make([]byte, 0, len(clusters)*int(v.header.ClusterSize))
	for _, cluster := range clusters {
		content, err := v.readCluster(cluster)
		if err != nil {
			return nil, checkpoint.Wrap(err, ErrReadChain)
		}
		data = append(data, content...)
	}

	return data, nil
}

func (v *Vff) readCluster(cluster uint32) ([]byte, error) {
	if cluster < 2 {
		return nil, invalidData("read_cluster", "a cluster number of at least 2", "%d", cluster)
	}

	offset := v.dataOffset + int64(v.header.ClusterSize)*int64(cluster-2)
	if _, err := v.reader.Seek(offset, io.SeekStart); err != nil {
		return nil, checkpoint.From(err)
	}

	data := make([]byte, v.header.ClusterSize)
	if _, err := io.ReadFull(v.reader, data); err != nil {
		return nil, checkpoint.From(err)
	}

	return data, nil
}

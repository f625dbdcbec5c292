// Package testimage builds small containers in memory, so tests do not depend on binary fixtures.
package testimage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultClusterSize is small enough to get multi cluster files from a few hundred bytes.
	DefaultClusterSize = 512
	// DefaultClusterCount is the smallest power of two which is laid out as FAT16.
	DefaultClusterCount = 4096

	rootSize   = 0x1000
	recordSize = 32
	endOfChain = 0xFFFF
)

// Node is a record to place into a directory.
type Node struct {
	Name string
	Ext  string
	Attr byte
	Dir  bool

	// Deleted overwrites the first byte of the name with the deleted marker.
	Deleted bool
	// Free leaves an unused slot at this position. All other fields are ignored.
	Free bool

	Data     []byte
	Children []Node

	// Start is written as start cluster instead of allocating clusters, if set.
	Start uint16

	Modified time.Time
}

// Builder assembles a container.
// The exported fields may be changed before calling Build to produce broken containers.
type Builder struct {
	Magic          [4]byte
	VolumeSize     uint32
	ClusterSizeRaw uint16

	overrides map[uint32]uint16
	links     map[uint32]uint16
	clusters  map[uint32][]byte
	next      uint32
}

func New() *Builder {
	return &Builder{
		Magic:          [4]byte{'V', 'F', 'F', ' '},
		VolumeSize:     DefaultClusterCount * DefaultClusterSize,
		ClusterSizeRaw: DefaultClusterSize / 16,
		overrides:      map[uint32]uint16{},
	}
}

// Link stores value as link of cluster after all clusters are allocated.
func (b *Builder) Link(cluster uint32, value uint16) {
	b.overrides[cluster] = value
}

func (b *Builder) clusterSize() int {
	return int(b.ClusterSizeRaw) * 16
}

// Header returns the 16 header bytes.
func (b *Builder) Header() []byte {
	header := make([]byte, 16)
	copy(header[0:4], b.Magic[:])
	binary.BigEndian.PutUint32(header[4:], 0xFEFF0100)
	binary.BigEndian.PutUint32(header[8:], b.VolumeSize)
	binary.BigEndian.PutUint16(header[12:], b.ClusterSizeRaw)
	return header
}

// tableSize returns the size of one table copy in bytes.
func (b *Builder) tableSize() int {
	clusterSize := b.clusterSize()
	if clusterSize == 0 {
		return 0
	}
	count := int(b.VolumeSize) / clusterSize
	return (count*2 + clusterSize - 1) / clusterSize * clusterSize
}

// Build returns the complete container with the given records in its root directory.
func (b *Builder) Build(root []Node) []byte {
	b.links = map[uint32]uint16{}
	b.clusters = map[uint32][]byte{}
	b.next = 2

	rootRecords := b.records(root, 0, 0, false)
	if len(rootRecords) > rootSize {
		panic(fmt.Sprintf("testimage: %d root records do not fit", len(root)))
	}

	for cluster, value := range b.overrides {
		b.links[cluster] = value
	}

	var out bytes.Buffer
	out.Write(b.Header())
	out.Write(make([]byte, 16))

	// Two copies of the table.
	tableSize := b.tableSize()
	table := make([]uint16, tableSize)
	for cluster, value := range b.links {
		for _, index := range []int{int(cluster), int(cluster) + tableSize/2} {
			if index < len(table) {
				table[index] = value
			}
		}
	}
	if err := binary.Write(&out, binary.LittleEndian, table); err != nil {
		panic(err)
	}

	out.Write(rootRecords)
	out.Write(make([]byte, rootSize-len(rootRecords)))

	for cluster := uint32(2); cluster < b.next; cluster++ {
		content := make([]byte, b.clusterSize())
		copy(content, b.clusters[cluster])
		out.Write(content)
	}

	return out.Bytes()
}

// allocate links enough contiguous clusters for size bytes, at least one.
// Without a cluster size nothing can be allocated and 0 is returned.
func (b *Builder) allocate(size int) uint32 {
	if b.clusterSize() == 0 {
		return 0
	}

	count := (size + b.clusterSize() - 1) / b.clusterSize()
	if count == 0 {
		count = 1
	}

	start := b.next
	for i := 0; i < count; i++ {
		cluster := b.next
		b.next++
		if i == count-1 {
			b.links[cluster] = endOfChain
		} else {
			b.links[cluster] = uint16(cluster + 1)
		}
	}
	return start
}

func (b *Builder) write(start uint32, content []byte) {
	if start == 0 || b.clusterSize() == 0 {
		return
	}
	for cluster := start; len(content) > 0; cluster++ {
		n := b.clusterSize()
		if n > len(content) {
			n = len(content)
		}
		b.clusters[cluster] = content[:n]
		content = content[n:]
	}
}

// records encodes a directory. Subdirectories start with "." and "..".
func (b *Builder) records(nodes []Node, self, parent uint32, sub bool) []byte {
	var out []byte
	if sub {
		out = append(out, encode(Node{Name: ".", Dir: true}, self, 0)...)
		out = append(out, encode(Node{Name: "..", Dir: true}, parent, 0)...)
	}
	for _, n := range nodes {
		out = append(out, b.node(n, self)...)
	}
	return out
}

func (b *Builder) node(n Node, parent uint32) []byte {
	start := uint32(n.Start)

	switch {
	case n.Free:
		return make([]byte, recordSize)
	case n.Dir:
		if start == 0 {
			start = b.allocate((len(n.Children) + 2) * recordSize)
			b.write(start, b.records(n.Children, start, parent, true))
		}
		return encode(n, start, 0)
	case len(n.Data) > 0:
		if start == 0 {
			start = b.allocate(len(n.Data))
			b.write(start, n.Data)
		}
		return encode(n, start, len(n.Data))
	default:
		return encode(n, start, 0)
	}
}

func pad(s string, n int) []byte {
	out := []byte(strings.Repeat(" ", n))
	copy(out, s)
	return out
}

func encode(n Node, start uint32, size int) []byte {
	record := make([]byte, recordSize)
	copy(record[0x00:0x08], pad(n.Name, 8))
	copy(record[0x08:0x0B], pad(n.Ext, 3))
	if n.Deleted {
		record[0] = 0xE5
	}

	attr := n.Attr
	if n.Dir {
		attr |= 0x10
	}
	record[0x0B] = attr

	if !n.Modified.IsZero() {
		date, tm := dosDateTime(n.Modified)
		binary.LittleEndian.PutUint16(record[0x0E:], tm)
		binary.LittleEndian.PutUint16(record[0x10:], date)
		binary.LittleEndian.PutUint16(record[0x12:], date)
		binary.LittleEndian.PutUint16(record[0x16:], tm)
		binary.LittleEndian.PutUint16(record[0x18:], date)
	}

	binary.LittleEndian.PutUint16(record[0x1A:], uint16(start))
	binary.LittleEndian.PutUint32(record[0x1C:], uint32(size))
	return record
}

func dosDateTime(t time.Time) (date, tm uint16) {
	date = uint16(t.Year()-1980)<<9 | uint16(t.Month())<<5 | uint16(t.Day())
	tm = uint16(t.Hour())<<11 | uint16(t.Minute())<<5 | uint16(t.Second()/2)
	return date, tm
}

package govff

import (
	"encoding/binary"
	"io"

	"github.com/aligator/govff/checkpoint"
)

const (
	fat16MaxClusters = 0xfff5
	fat12MaxClusters = 0xff5

	fat16ReservedMarker = 0xfff0
	fat16Mask           = 0xffff
)

// fatEntry is a single link of the allocation table.
// Exactly one of IsFree, IsUsed, IsReserved, IsBad and IsLast holds for every 16 bit value.
type fatEntry uint32

// IsFree reports a cluster which is available for allocation.
func (e fatEntry) IsFree() bool {
	return e == 0
}

// IsUsed reports a link to a next cluster.
func (e fatEntry) IsUsed() bool {
	return 0x1 <= e && e < fat16ReservedMarker
}

// IsReserved reports the values between the last valid cluster and the bad marker.
func (e fatEntry) IsReserved() bool {
	return fat16ReservedMarker <= e && e < fat16ReservedMarker+7
}

func (e fatEntry) IsBad() bool {
	return e == fat16ReservedMarker+7
}

// IsLast reports an end-of-chain marker.
func (e fatEntry) IsLast() bool {
	return fat16ReservedMarker+8 <= e
}

// allocationTable holds the decoded 16 bit cluster links.
// Cluster numbering starts at 2, so the first two entries carry no links.
type allocationTable struct {
	entries []uint16
}

// allocationTableSize returns the cluster aligned size in bytes of one copy of the table.
func allocationTableSize(h Header) (uint32, error) {
	if h.ClusterCount > fat16MaxClusters {
		return 0, &UnsupportedError{Feature: "FAT32"}
	}
	if h.ClusterCount <= fat12MaxClusters {
		return 0, &UnsupportedError{Feature: "FAT12"}
	}

	size := h.ClusterCount * 2
	clusterSize := uint32(h.ClusterSize)
	return (size + clusterSize - 1) / clusterSize * clusterSize, nil
}

// readAllocationTable decodes the table region which directly follows the header.
// The container stores two copies of the table back to back. Both are loaded, which
// means size/2 entries per copy and size entries in total.
func readAllocationTable(r io.Reader, h Header) (*allocationTable, error) {
	size, err := allocationTableSize(h)
	if err != nil {
		return nil, err
	}

	entries := make([]uint16, size)
	if err := binary.Read(r, binary.LittleEndian, entries); err != nil {
		return nil, checkpoint.From(err)
	}

	return &allocationTable{entries: entries}, nil
}

// get looks up the link stored for the given cluster.
func (t *allocationTable) get(index uint32) (fatEntry, error) {
	i := index & fat16Mask
	if int(i) >= len(t.entries) {
		return 0, invalidData("get_cluster FAT16", "indexing into the cluster data at a valid location",
			"cluster data wasn't long enough to index that far. Asked for: %d Cluster len: %d", i, len(t.entries))
	}
	return fatEntry(t.entries[i]), nil
}

// chain returns all clusters starting with start in the order they are linked.
// The walk stops at the first value which is no link. That value has to be an end-of-chain marker.
func (t *allocationTable) chain(start uint32) ([]uint32, error) {
	var clusters []uint32
	visited := make(map[fatEntry]struct{})

	current := fatEntry(start)
	for current.IsUsed() {
		if _, ok := visited[current]; ok {
			return nil, invalidData("FAT chain parsing", "a chain which never revisits a cluster",
				"cluster %04x is linked twice", uint32(current))
		}
		visited[current] = struct{}{}
		clusters = append(clusters, uint32(current))

		next, err := t.get(uint32(current))
		if err != nil {
			return nil, err
		}
		current = next
	}

	if !current.IsLast() {
		return nil, invalidData("FAT chain parsing", "the first unused cluster in the chain should satisfy is_last",
			"false, the cluster reads: %04x", uint32(current))
	}

	return clusters, nil
}

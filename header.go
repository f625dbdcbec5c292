package govff

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/aligator/govff/checkpoint"
	"github.com/go-restruct/restruct"
)

const (
	// headerSize is the size of the interpreted part of the header.
	headerSize = 0x10
	// headerReservedSize bytes follow the header and are skipped.
	headerReservedSize = 0x10
	clusterSizeUnit    = 16
)

var expectedMagic = [4]byte{'V', 'F', 'F', ' '}

// Header contains the geometry of a container.
type Header struct {
	VolumeSize uint32
	// ClusterSize in bytes, already scaled.
	ClusterSize  uint16
	ClusterCount uint32
}

// parseHeader decodes the first headerSize bytes of a container.
func parseHeader(raw []byte) (Header, error) {
	var h rawHeader
	if err := restruct.Unpack(raw, binary.BigEndian, &h); err != nil {
		return Header{}, checkpoint.From(err)
	}

	clusterSize := uint32(h.ClusterSize) * clusterSizeUnit
	if clusterSize > math.MaxUint16 {
		return Header{}, invalidData("checking VFF header - compute cluster size",
			"cluster_size * 16 should not overflow", "overflow detected (raw cluster size %#04x)", h.ClusterSize)
	}
	if clusterSize == 0 {
		return Header{}, invalidData("checking VFF header", "cluster size != 0", "0")
	}
	if h.Magic != expectedMagic {
		return Header{}, invalidData("checking VFF header: parsing file magic",
			fmt.Sprintf("%q", string(expectedMagic[:])), "%q", string(h.Magic[:]))
	}

	return Header{
		VolumeSize:   h.VolumeSize,
		ClusterSize:  uint16(clusterSize),
		ClusterCount: h.VolumeSize / clusterSize,
	}, nil
}

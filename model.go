// File model contains the structs which match the direct structures of the VFF container.

package govff

// rawHeader is the big-endian header at the very beginning of a container.
type rawHeader struct {
	Magic [4]byte
	// Unknown is not interpreted.
	Unknown    uint32
	VolumeSize uint32
	// ClusterSize is stored in units of 16 bytes.
	ClusterSize uint16
	Padding     [2]byte
}

// EntryHeader is a single little-endian 32 byte directory record.
type EntryHeader struct {
	Name           [8]byte
	Extension      [3]byte
	Attribute      byte
	Reserved       byte
	CreateTimeFine byte
	CreateTime     uint16
	CreateDate     uint16
	AccessDate     uint16
	EAIndex        uint16
	ModifyTime     uint16
	ModifyDate     uint16
	StartCluster   uint16
	Size           uint32
}

package testimage

import "time"

// Deep returns the content of the deeply nested sample file.
// It spans three clusters and ends in the middle of the last one.
func Deep() []byte {
	data := make([]byte, 1300)
	for i := range data {
		data[i] = byte(i * 7 % 251)
	}
	return data
}

// Sample is a root directory with an empty file, a file nested six levels deep and
// a deleted file, interleaved with a long filename record and a free slot.
func Sample() []Node {
	modified := time.Date(2009, 11, 23, 18, 30, 12, 0, time.UTC)

	deep := Node{Name: "DEEP", Ext: "BIN", Data: Deep(), Modified: modified}
	for _, name := range []string{"E", "D", "C", "B", "A"} {
		deep = Node{Name: name, Dir: true, Children: []Node{deep}, Modified: modified}
	}

	return []Node{
		{Name: "EMPTY", Ext: "TXT", Modified: modified},
		{Name: "AB~1", Attr: 0x0F},
		{Free: true},
		{Name: "OLD", Ext: "TXT", Deleted: true, Data: []byte("gone but not forgotten")},
		deep,
	}
}

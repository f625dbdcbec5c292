package govff

import (
	"encoding/binary"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// record encodes a single 32 byte directory record.
func record(name, ext string, attr byte, start uint16, size uint32) []byte {
	raw := make([]byte, entrySize)
	copy(raw[0:8], "        ")
	copy(raw[8:11], "   ")
	copy(raw[0:8], name)
	copy(raw[8:11], ext)
	raw[0x0B] = attr
	binary.LittleEndian.PutUint16(raw[0x1A:], start)
	binary.LittleEndian.PutUint32(raw[0x1C:], size)
	return raw
}

func deleted(raw []byte) []byte {
	raw[0] = deletedMarker
	return raw
}

func mustDecodeEntry(t *testing.T, raw []byte) Entry {
	t.Helper()
	e, err := decodeEntry(raw)
	if err != nil {
		t.Fatalf("decodeEntry() error = %v", err)
	}
	return e
}

func Test_decodeEntry(t *testing.T) {
	raw := record("HELLO", "TXT", AttrArchive, 0x1234, 0x0A0B0C0D)
	binary.LittleEndian.PutUint16(raw[0x16:], 18<<11|30<<5|6)
	binary.LittleEndian.PutUint16(raw[0x18:], 29<<9|11<<5|23)

	got := mustDecodeEntry(t, raw)
	want := EntryHeader{
		Name:         [8]byte{'H', 'E', 'L', 'L', 'O', ' ', ' ', ' '},
		Extension:    [3]byte{'T', 'X', 'T'},
		Attribute:    AttrArchive,
		ModifyTime:   18<<11 | 30<<5 | 6,
		ModifyDate:   29<<9 | 11<<5 | 23,
		StartCluster: 0x1234,
		Size:         0x0A0B0C0D,
	}
	if diff := cmp.Diff(want, got.EntryHeader); diff != "" {
		t.Errorf("decodeEntry() mismatch (-want +got):\n%s", diff)
	}
	if !got.ModifiedAt().Equal(time.Date(2009, 11, 23, 18, 30, 12, 0, time.UTC)) {
		t.Errorf("ModifiedAt() = %v", got.ModifiedAt())
	}
	if !got.CreatedAt().IsZero() {
		t.Errorf("CreatedAt() = %v, want zero", got.CreatedAt())
	}
}

func TestEntry_names(t *testing.T) {
	tests := []struct {
		name          string
		raw           []byte
		wantName      string
		wantExtension string
		wantFullName  string
		wantDisplay   string
	}{
		{
			name:          "file",
			raw:           record("HELLO", "TXT", 0, 0, 0),
			wantName:      "HELLO",
			wantExtension: "TXT",
			wantFullName:  "HELLO.TXT",
			wantDisplay:   "HELLO.TXT",
		},
		{
			name:          "full length",
			raw:           record("ABCDEFGH", "IJK", 0, 0, 0),
			wantName:      "ABCDEFGH",
			wantExtension: "IJK",
			wantFullName:  "ABCDEFGH.IJK",
			wantDisplay:   "ABCDEFGH.IJK",
		},
		{
			name:         "file without extension keeps the dot",
			raw:          record("README", "", 0, 0, 0),
			wantName:     "README",
			wantFullName: "README.",
			wantDisplay:  "README",
		},
		{
			name:          "directory",
			raw:           record("SUB", "DIR", AttrDirectory, 0, 0),
			wantName:      "SUB",
			wantExtension: "DIR",
			wantFullName:  "SUB",
			wantDisplay:   "SUB",
		},
		{
			name:          "deleted marker is replaced",
			raw:           deleted(record("OLD", "TXT", 0, 0, 0)),
			wantName:      "\uFFFDLD",
			wantExtension: "TXT",
			wantFullName:  "\uFFFDLD.TXT",
			wantDisplay:   "\uFFFDLD.TXT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustDecodeEntry(t, tt.raw)
			if got := e.NiceName(); got != tt.wantName {
				t.Errorf("NiceName() = %q, want %q", got, tt.wantName)
			}
			if got := e.NiceExtension(); got != tt.wantExtension {
				t.Errorf("NiceExtension() = %q, want %q", got, tt.wantExtension)
			}
			if got := e.NiceFullName(); got != tt.wantFullName {
				t.Errorf("NiceFullName() = %q, want %q", got, tt.wantFullName)
			}
			if got := e.displayName(); got != tt.wantDisplay {
				t.Errorf("displayName() = %q, want %q", got, tt.wantDisplay)
			}
		})
	}
}

func TestEntry_flags(t *testing.T) {
	tests := []struct {
		name         string
		raw          []byte
		wantDir      bool
		wantLongName bool
		wantDot      bool
	}{
		{name: "file", raw: record("A", "B", AttrArchive, 0, 0)},
		{name: "directory", raw: record("A", "", AttrDirectory, 0, 0), wantDir: true},
		{name: "self", raw: record(".", "", AttrDirectory, 0, 0), wantDir: true, wantDot: true},
		{name: "parent", raw: record("..", "", AttrDirectory, 0, 0), wantDir: true, wantDot: true},
		{name: "dot file is no dot entry", raw: record(".", "", 0, 0, 0)},
		{name: "long name", raw: record("AB~1", "", AttrLongName, 0, 0), wantLongName: true},
		{name: "long name with archive bit", raw: record("AB~1", "", AttrLongName|AttrArchive, 0, 0), wantLongName: true},
		{name: "hidden system file", raw: record("IO", "SYS", AttrHidden|AttrSystem, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustDecodeEntry(t, tt.raw)
			if got := e.IsDir(); got != tt.wantDir {
				t.Errorf("IsDir() = %v, want %v", got, tt.wantDir)
			}
			if got := e.isLongNameStub(); got != tt.wantLongName {
				t.Errorf("isLongNameStub() = %v, want %v", got, tt.wantLongName)
			}
			if got := e.isDotEntry(); got != tt.wantDot {
				t.Errorf("isDotEntry() = %v, want %v", got, tt.wantDot)
			}
		})
	}
}

func TestEntry_FileInfo(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		wantName string
		wantSize int64
		wantMode os.FileMode
		wantDir  bool
	}{
		{
			name:     "file",
			raw:      record("HELLO", "TXT", 0, 2, 42),
			wantName: "HELLO.TXT",
			wantSize: 42,
			wantMode: 0o644,
		},
		{
			name:     "read-only file",
			raw:      record("HELLO", "TXT", AttrReadOnly, 2, 42),
			wantName: "HELLO.TXT",
			wantSize: 42,
			wantMode: 0o444,
		},
		{
			name:     "directory",
			raw:      record("SUB", "", AttrDirectory, 2, 512),
			wantName: "SUB",
			wantSize: 0,
			wantMode: os.ModeDir | 0o755,
			wantDir:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustDecodeEntry(t, tt.raw)
			info := e.FileInfo()

			if got := info.Name(); got != tt.wantName {
				t.Errorf("Name() = %q, want %q", got, tt.wantName)
			}
			if got := info.Size(); got != tt.wantSize {
				t.Errorf("Size() = %d, want %d", got, tt.wantSize)
			}
			if got := info.Mode(); got != tt.wantMode {
				t.Errorf("Mode() = %v, want %v", got, tt.wantMode)
			}
			if got := info.IsDir(); got != tt.wantDir {
				t.Errorf("IsDir() = %v, want %v", got, tt.wantDir)
			}
			if sys, ok := info.Sys().(Entry); !ok || sys.StartCluster != 2 {
				t.Errorf("Sys() = %v, want the entry", info.Sys())
			}
		})
	}
}

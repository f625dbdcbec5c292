package govff

import (
	"encoding/binary"
	"os"
	"strings"
	"time"

	"github.com/aligator/govff/checkpoint"
	"github.com/go-restruct/restruct"
	"golang.org/x/text/encoding/unicode"
)

// Attributes of a directory record.
const (
	AttrReadOnly    byte = 0x01
	AttrHidden      byte = 0x02
	AttrSystem      byte = 0x04
	AttrVolumeLabel byte = 0x08
	AttrDirectory   byte = 0x10
	AttrArchive     byte = 0x20
	AttrDevice      byte = 0x40

	// AttrLongName marks records used by long filename schemes.
	AttrLongName = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeLabel
)

const (
	entrySize = 32

	// Markers stored in the first byte of a record name.
	freeMarker    = 0x00
	deletedMarker = 0xE5
)

// Entry is a decoded directory record.
type Entry struct {
	EntryHeader

	// Deleted is not stored on disk. It is set for records carrying the deleted marker.
	Deleted bool
}

func decodeEntry(raw []byte) (Entry, error) {
	var e Entry
	if err := restruct.Unpack(raw[:entrySize], binary.LittleEndian, &e.EntryHeader); err != nil {
		return Entry{}, checkpoint.From(err)
	}
	return e, nil
}

// decodeName decodes a space padded name field. Invalid UTF-8 is replaced, never rejected.
func decodeName(raw []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		decoded = []byte(strings.ToValidUTF8(string(raw), "\uFFFD"))
	}
	return strings.TrimRight(string(decoded), " ")
}

// NiceName returns the name without padding.
// For deleted records the first character is the deleted marker.
func (e Entry) NiceName() string {
	return decodeName(e.Name[:])
}

// NiceExtension returns the extension without padding.
func (e Entry) NiceExtension() string {
	return decodeName(e.Extension[:])
}

// NiceFullName returns the bare name for directories and "name.extension" for everything else,
// including a trailing dot if the extension is empty.
func (e Entry) NiceFullName() string {
	if e.IsDir() {
		return e.NiceName()
	}
	return e.NiceName() + "." + e.NiceExtension()
}

func (e Entry) IsDir() bool {
	return e.Attribute&AttrDirectory != 0
}

func (e Entry) isLongNameStub() bool {
	return e.Attribute&AttrLongName == AttrLongName
}

func (e Entry) isDotEntry() bool {
	name := e.NiceName()
	return e.IsDir() && (name == "." || name == "..")
}

// displayName is the name used by the filesystem view: "NAME.EXT", or "NAME" if there is no extension.
func (e Entry) displayName() string {
	name := e.NiceName()
	if ext := e.NiceExtension(); ext != "" && !e.IsDir() {
		name += "." + ext
	}
	return name
}

// CreatedAt returns the creation time or time.Time{} if it is not set.
func (e Entry) CreatedAt() time.Time {
	return parseTimestamp(e.CreateDate, e.CreateTime, e.CreateTimeFine)
}

// ModifiedAt returns the last modification time or time.Time{} if it is not set.
func (e Entry) ModifiedAt() time.Time {
	return parseTimestamp(e.ModifyDate, e.ModifyTime, 0)
}

// AccessedAt returns the last access date or time.Time{} if it is not set.
func (e Entry) AccessedAt() time.Time {
	return ParseDate(e.AccessDate)
}

func (e Entry) FileInfo() os.FileInfo {
	return entryFileInfo{entry: e}
}

type entryFileInfo struct {
	entry Entry
}

func (i entryFileInfo) Name() string {
	return i.entry.displayName()
}

func (i entryFileInfo) Size() int64 {
	if i.entry.IsDir() {
		return 0
	}
	return int64(i.entry.Size)
}

func (i entryFileInfo) Mode() os.FileMode {
	mode := os.FileMode(0o444)
	if i.entry.Attribute&AttrReadOnly == 0 {
		mode |= 0o200
	}
	if i.IsDir() {
		return mode | os.ModeDir | 0o111
	}
	return mode
}

func (i entryFileInfo) ModTime() time.Time {
	return i.entry.ModifiedAt()
}

func (i entryFileInfo) IsDir() bool {
	return i.entry.IsDir()
}

func (i entryFileInfo) Sys() interface{} {
	return i.entry
}

// rootFileInfo describes the root directory, which has no record of its own.
type rootFileInfo struct{}

func (rootFileInfo) Name() string       { return "." }
func (rootFileInfo) Size() int64        { return 0 }
func (rootFileInfo) Mode() os.FileMode  { return os.ModeDir | 0o755 }
func (rootFileInfo) ModTime() time.Time { return time.Time{} }
func (rootFileInfo) IsDir() bool        { return true }
func (rootFileInfo) Sys() interface{}   { return nil }

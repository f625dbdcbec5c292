package govff

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/aligator/govff/internal/testimage"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

// sampleImage builds the sample container, applying the given changes to the builder first.
func sampleImage(t *testing.T, change func(b *testimage.Builder)) []byte {
	t.Helper()
	b := testimage.New()
	if change != nil {
		change(b)
	}
	return b.Build(testimage.Sample())
}

func openSample(t *testing.T) (*Vff, *Directory) {
	t.Helper()
	vff, root, err := Open(bytes.NewReader(sampleImage(t, nil)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return vff, root
}

func TestOpen(t *testing.T) {
	vff, root := openSample(t)

	want := Header{
		VolumeSize:   testimage.DefaultClusterCount * testimage.DefaultClusterSize,
		ClusterSize:  testimage.DefaultClusterSize,
		ClusterCount: testimage.DefaultClusterCount,
	}
	if diff := cmp.Diff(want, vff.Header()); diff != "" {
		t.Errorf("Header() mismatch (-want +got):\n%s", diff)
	}

	if got := vff.ClusterCount(); got != testimage.DefaultClusterCount {
		t.Errorf("ClusterCount() = %d, want %d", got, testimage.DefaultClusterCount)
	}

	// Header, reserved bytes, two table copies and the root region.
	wantOffset := int64(0x10 + 0x10 + 2*testimage.DefaultClusterCount*2 + rootDirectorySize)
	if got := vff.DataOffset(); got != wantOffset {
		t.Errorf("DataOffset() = %#x, want %#x", got, wantOffset)
	}

	if root.Path() != "" {
		t.Errorf("root Path() = %q, want empty", root.Path())
	}
	if len(root.data) != rootDirectorySize {
		t.Errorf("root region has %d bytes, want %d", len(root.data), rootDirectorySize)
	}
}

func TestOpen_errors(t *testing.T) {
	tests := []struct {
		name    string
		image   []byte
		wantErr []error
	}{
		{
			name:    "wrong magic",
			image:   sampleImage(t, func(b *testimage.Builder) { b.Magic = [4]byte{'V', 'F', 'F', '!'} }),
			wantErr: []error{ErrOpen, ErrInvalidData},
		},
		{
			name:    "zero cluster size",
			image:   sampleImage(t, func(b *testimage.Builder) { b.ClusterSizeRaw = 0 }),
			wantErr: []error{ErrOpen, ErrInvalidData},
		},
		{
			name:    "FAT12",
			image:   sampleImage(t, func(b *testimage.Builder) { b.VolumeSize = 0xff5 * testimage.DefaultClusterSize }),
			wantErr: []error{ErrOpen, ErrUnsupported},
		},
		{
			name: "FAT32",
			image: func() []byte {
				b := testimage.New()
				b.VolumeSize = 0xfff6 * testimage.DefaultClusterSize
				return b.Header()
			}(),
			wantErr: []error{ErrOpen, ErrUnsupported},
		},
		{
			name:    "header only",
			image:   testimage.New().Header()[:10],
			wantErr: []error{io.ErrUnexpectedEOF},
		},
		{
			name:    "truncated table",
			image:   sampleImage(t, nil)[:0x100],
			wantErr: []error{io.ErrUnexpectedEOF},
		},
		{
			name:    "truncated root",
			image:   sampleImage(t, nil)[:0x20+2*testimage.DefaultClusterCount*2+0x10],
			wantErr: []error{io.ErrUnexpectedEOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Open(bytes.NewReader(tt.image))
			if err == nil {
				t.Fatalf("Open() error = nil")
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("Open() error = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestOpenFs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/images/sample.vff", sampleImage(t, nil), 0o644); err != nil {
		t.Fatal(err)
	}

	vff, root, err := OpenFs(fsys, "/images/sample.vff")
	if err != nil {
		t.Fatalf("OpenFs() error = %v", err)
	}
	if _, found, err := root.Lookup("EMPTY.TXT", false); err != nil || !found {
		t.Errorf("Lookup() = %v, %v, want EMPTY.TXT", found, err)
	}
	if err := vff.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := vff.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if _, _, err := OpenFs(fsys, "/images/missing.vff"); !errors.Is(err, ErrOpen) {
		t.Errorf("OpenFs() error = %v, want ErrOpen", err)
	}
}

func TestVff_ReadCluster(t *testing.T) {
	vff, _ := openSample(t)

	// The deleted file is the first one with data.
	got, err := vff.ReadCluster(2)
	if err != nil {
		t.Fatalf("ReadCluster(2) error = %v", err)
	}
	if len(got) != testimage.DefaultClusterSize {
		t.Errorf("len(ReadCluster(2)) = %d, want %d", len(got), testimage.DefaultClusterSize)
	}
	if !bytes.HasPrefix(got, []byte("gone but not forgotten")) {
		t.Errorf("ReadCluster(2) = %q...", got[:32])
	}

	for _, cluster := range []uint32{0, 1} {
		if _, err := vff.ReadCluster(cluster); !errors.Is(err, ErrInvalidData) {
			t.Errorf("ReadCluster(%d) error = %v, want ErrInvalidData", cluster, err)
		}
	}

	// Past the end of the image.
	if _, err := vff.ReadCluster(testimage.DefaultClusterCount); err == nil {
		t.Errorf("ReadCluster() past the end error = nil")
	}
}

func TestVff_ReadChain(t *testing.T) {
	tests := []struct {
		name    string
		change  func(b *testimage.Builder)
		start   uint32
		want    []byte
		wantErr error
	}{
		{
			name:  "chain over three clusters",
			start: 8,
			want:  testimage.Deep(),
		},
		{
			name:    "cycle",
			change:  func(b *testimage.Builder) { b.Link(9, 8) },
			start:   8,
			wantErr: ErrInvalidData,
		},
		{
			name:    "broken link",
			change:  func(b *testimage.Builder) { b.Link(9, 0) },
			start:   8,
			wantErr: ErrInvalidData,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vff, _, err := Open(bytes.NewReader(sampleImage(t, tt.change)))
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}

			got, err := vff.ReadChain(tt.start)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadChain() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, ErrReadChain) {
					t.Errorf("ReadChain() error = %v, want ErrReadChain", err)
				}
				return
			}

			if len(got)%testimage.DefaultClusterSize != 0 {
				t.Errorf("len(ReadChain()) = %d, want cluster aligned", len(got))
			}
			if !bytes.Equal(got[:len(tt.want)], tt.want) {
				t.Errorf("ReadChain() does not start with the expected content")
			}
		})
	}
}

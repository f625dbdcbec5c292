// Package govff reads VFF containers, which embed a FAT16 filesystem laid out in fixed size clusters.
//
// Open decodes the header and the allocation table and returns the root directory.
// Directories can be listed, extracted to an afero.Fs or browsed through the read-only Fs.
// Nothing is cached: every lookup reads the needed clusters again.
package govff

//go:generate go run ./cmd/generate

package main

import (
	"os"
	"path/filepath"

	"github.com/aligator/govff/internal/testimage"
)

// main writes the sample container. Can be executed using 'go generate' from the project root.
func main() {
	dest := filepath.Join("testdata", "sample.vff")

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		panic(err)
	}

	image := testimage.New().Build(testimage.Sample())
	if err := os.WriteFile(dest, image, 0o644); err != nil {
		panic(err)
	}
}

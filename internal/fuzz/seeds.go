package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
)

// seedDirs - каталоги с C# фикстурами относительно internal/fuzz.
var seedDirs = []string{
	filepath.Join("..", "generator", "testdata"),
	filepath.Join("..", "pipeline", "testdata"),
	filepath.Join("..", "..", "cmd", "testgen", "testdata"),
}

func addCorpusSeeds(f *testing.F) {
	for _, dir := range seedDirs {
		addTestdataSeeds(f, dir)
	}
	// хотя бы один минимальный пример на случай пустого testdata
	f.Add([]byte{})
	f.Add([]byte("namespace N { public class C { public void M() { } } }\n"))
	f.Add([]byte("\xef\xbb\xbfpublic class Bom { }\r\n"))
}

func addTestdataSeeds(f *testing.F, root string) {
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".cs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

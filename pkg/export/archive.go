package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// ArchiveFiles packs the given files into one zip archive at zipPath,
// each entry named by the file's base name. The sources are left in
// place; deleting them after a successful archive is the caller's call.
func ArchiveFiles(zipPath string, files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("cannot create empty archive %s", zipPath)
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, path := range files {
		if err := addFile(zw, path); err != nil {
			zw.Close()
			os.Remove(zipPath)
			return err
		}
	}

	if err := zw.Close(); err != nil {
		os.Remove(zipPath)
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for archiving: %w", path, err)
	}
	defer src.Close()

	entry, err := zw.Create(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create archive entry for %s: %w", path, err)
	}

	if _, err := io.Copy(entry, src); err != nil {
		return fmt.Errorf("failed to write archive entry for %s: %w", path, err)
	}
	return nil
}

// ArchiveNames lists the entry names inside an existing archive, in
// archive order.
func ArchiveNames(zipPath string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

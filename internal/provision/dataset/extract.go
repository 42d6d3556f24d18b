package dataset

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractZip unpacks archive into dir, overwriting existing files.
// Returns the paths of all extracted entries.
func ExtractZip(archive, dir string) ([]string, error) {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	var extracted []string
	for _, file := range reader.File {
		path, err := safeJoin(dir, file.Name)
		if err != nil {
			return nil, err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0750); err != nil {
				return nil, fmt.Errorf("failed to create directory %s: %w", path, err)
			}
			continue
		}

		if err := extractFile(file, path); err != nil {
			return nil, err
		}
		extracted = append(extracted, path)
	}

	return extracted, nil
}

// safeJoin joins an archive entry name onto dir, rejecting entries that
// would escape it.
func safeJoin(dir, name string) (string, error) {
	path := filepath.Join(dir, filepath.Clean("/"+name))
	if !strings.HasPrefix(path, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction directory", name)
	}
	return path, nil
}

func extractFile(file *zip.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer dst.Close()

	// #nosec G110 - the benchmark archives are fixed public datasets
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}
	return dst.Close()
}

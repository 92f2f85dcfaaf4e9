package util

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log/slog"
)

type ArchiveEntry struct {
	Name string
	Data []byte
}

// CreateZipArchive bundles rendered certificates into one zip. Entries without
// data are skipped.
func CreateZipArchive(entries []ArchiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, entry := range entries {
		if len(entry.Data) == 0 {
			slog.Warn("Archive Skipping empty entry", "filename", entry.Name)
			continue
		}

		zipFile, err := zipWriter.Create(entry.Name)
		if err != nil {
			zipWriter.Close()
			return nil, fmt.Errorf("failed to create ZIP entry %s: %w", entry.Name, err)
		}

		if _, err := zipFile.Write(entry.Data); err != nil {
			zipWriter.Close()
			return nil, fmt.Errorf("failed to write ZIP entry %s: %w", entry.Name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close ZIP writer: %w", err)
	}

	return buf.Bytes(), nil
}

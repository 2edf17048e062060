// Package zip bundles in-memory files into a ZIP archive.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
)

// Entry is one file of an archive. Name may contain forward slashes to
// place the file in a folder.
type Entry struct {
	Name     string
	Data     []byte
	Modified time.Time
}

// Write streams entries as a ZIP archive into w. Entries with an empty or
// duplicate name are rejected so the archive never silently drops a file.
func Write(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		name := strings.TrimLeft(strings.ReplaceAll(e.Name, "\\", "/"), "/")
		if name == "" {
			return fmt.Errorf("zip: entry without name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("zip: duplicate entry %q", name)
		}
		seen[name] = struct{}{}

		hdr := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: e.Modified}
		if hdr.Modified.IsZero() {
			hdr.Modified = time.Now()
		}
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("zip: create %s: %w", name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return fmt.Errorf("zip: write %s: %w", name, err)
		}
	}
	return zw.Close()
}

// Archive returns entries as an in-memory ZIP archive.
func Archive(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

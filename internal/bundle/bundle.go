// Package bundle packages a decoded demo's raw bytes, its exported
// world-state snapshot, and a small JSON manifest into a single zip
// archive for distribution — the same archive/zip machinery the teacher
// used to build pk3s, repointed at a QuakeWorld demo's own artifacts.
package bundle

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Manifest describes one bundled demo: enough to locate its map and
// duration without re-decoding the demo or snapshot inside the archive.
type Manifest struct {
	DemoFile     string   `json:"demo_file"`
	SnapshotFile string   `json:"snapshot_file"`
	Map          string   `json:"map"`
	DurationMs   int64    `json:"duration_ms"`
	Participants []string `json:"participants"`
}

// Write creates a zip archive at outputPath containing demoData under
// demoName, snapshotData under snapshotName, and a manifest.json
// describing both, using Deflate compression throughout.
func Write(outputPath string, demoName string, demoData []byte, snapshotName string, snapshotData []byte, m Manifest) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("bundle: create %s: %w", outputPath, err)
	}
	defer f.Close()
	return WriteTo(f, demoName, demoData, snapshotName, snapshotData, m)
}

// WriteTo writes the same archive Write does to an arbitrary writer.
func WriteTo(w io.Writer, demoName string, demoData []byte, snapshotName string, snapshotData []byte, m Manifest) error {
	m.DemoFile = demoName
	m.SnapshotFile = snapshotName

	manifestData, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("bundle: marshal manifest: %w", err)
	}

	files := map[string][]byte{
		demoName:        demoData,
		snapshotName:    snapshotData,
		"manifest.json": manifestData,
	}

	zw := zip.NewWriter(w)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		header := &zip.FileHeader{Name: name, Method: zip.Deflate}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("bundle: create entry %s: %w", name, err)
		}
		if _, err := fw.Write(files[name]); err != nil {
			return fmt.Errorf("bundle: write entry %s: %w", name, err)
		}
	}
	return zw.Close()
}

// ReadManifest opens a bundle archive and returns its manifest without
// extracting the demo or snapshot payloads.
func ReadManifest(path string) (Manifest, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("bundle: open %s: %w", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "manifest.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Manifest{}, fmt.Errorf("bundle: open manifest in %s: %w", path, err)
		}
		defer rc.Close()

		var m Manifest
		if err := json.NewDecoder(rc).Decode(&m); err != nil {
			return Manifest{}, fmt.Errorf("bundle: decode manifest in %s: %w", path, err)
		}
		return m, nil
	}
	return Manifest{}, fmt.Errorf("bundle: %s has no manifest.json", path)
}

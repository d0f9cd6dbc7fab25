package bundle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteThenReadManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.qwbundle")
	m := Manifest{Map: "dm2", DurationMs: 90000, Participants: []string{"alice", "bob"}}

	if err := Write(path, "dm2.mvd", []byte("demo-bytes"), "dm2.snapshot.json.zst", []byte("snap-bytes"), m); err != nil {
		t.Fatal(err)
	}

	got, err := ReadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Map != "dm2" || got.DurationMs != 90000 {
		t.Fatalf("manifest = %+v", got)
	}
	if got.DemoFile != "dm2.mvd" || got.SnapshotFile != "dm2.snapshot.json.zst" {
		t.Fatalf("manifest file names = %+v", got)
	}
	if len(got.Participants) != 2 || got.Participants[0] != "alice" {
		t.Fatalf("participants = %v", got.Participants)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatal("expected a zip (PK-prefixed) archive on disk")
	}
}

func TestReadManifestMissingFile(t *testing.T) {
	if _, err := ReadManifest(filepath.Join(t.TempDir(), "missing.qwbundle")); err == nil {
		t.Fatal("expected an error for a missing bundle file")
	}
}

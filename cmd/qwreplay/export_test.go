package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/ernie/qwgo/internal/bundle"
	"github.com/ernie/qwgo/internal/entities"
	"github.com/ernie/qwgo/internal/message"
	"github.com/ernie/qwgo/internal/protoflags"
)

func TestCompressSnapshotRoundTrips(t *testing.T) {
	original := []byte(`{"player_indexes":[0,1]}`)
	compressed, err := compressSnapshot(original)
	if err != nil {
		t.Fatal(err)
	}

	dec, err := zstd.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(dec); err != nil {
		t.Fatal(err)
	}
	if out.String() != string(original) {
		t.Fatalf("decompressed = %q, want %q", out.String(), original)
	}
}

func TestRunExportWritesBundleWhenRequested(t *testing.T) {
	dir := t.TempDir()
	demoPath := filepath.Join(dir, "dm2.mvd")

	var buf []byte
	buf = append(buf, buildTestFrame(10, byte(protoflags.DemoCommandAll), func(inner *message.Message) {
		inner.WriteU8(byte(protoflags.SvcServerData))
		entities.WriteServerdata(inner, entities.Serverdata{
			Protocol:    protoflags.StandardProtocolVersion,
			ServerCount: 1,
			GameDir:     message.StringByte{Bytes: []byte("qw")},
			Map:         message.StringByte{Bytes: []byte("dm2")},
		})
	})...)
	buf = append(buf, endOfDemoFrame()...)
	if err := os.WriteFile(demoPath, buf, 0o644); err != nil {
		t.Fatal(err)
	}

	bundlePath := filepath.Join(dir, "dm2.qwbundle")
	var stdout bytes.Buffer
	if err := runExport([]string{"-bundle", bundlePath, demoPath}, &stdout); err != nil {
		t.Fatal(err)
	}

	m, err := bundle.ReadManifest(bundlePath)
	if err != nil {
		t.Fatal(err)
	}
	if m.Map != "dm2" {
		t.Fatalf("manifest map = %q, want dm2", m.Map)
	}
}

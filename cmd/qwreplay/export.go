package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/maps"

	"github.com/ernie/qwgo/internal/bundle"
)

func runExport(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("qwreplay export", flag.ContinueOnError)
	outPath := fs.String("out", "", "output path for the compressed snapshot (default: <demo>.snapshot.json.zst)")
	bundlePath := fs.String("bundle", "", "also write a zip bundle (demo + snapshot + manifest) to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("qwreplay export: exactly one demo path is required")
	}
	demoPath := fs.Arg(0)
	if *outPath == "" {
		*outPath = demoPath + ".snapshot.json.zst"
	}

	data, err := readDemoFile(demoPath)
	if err != nil {
		return err
	}
	demo, err := decodeDemo(data)
	if err != nil {
		return err
	}

	snapshotJSON, err := json.Marshal(demo.State.Snapshot())
	if err != nil {
		return fmt.Errorf("qwreplay export: marshal snapshot: %w", err)
	}

	compressed, err := compressSnapshot(snapshotJSON)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*outPath, compressed, 0o644); err != nil {
		return fmt.Errorf("qwreplay export: write %s: %w", *outPath, err)
	}

	if *bundlePath != "" {
		if err := writeBundle(*bundlePath, demoPath, data, *outPath, compressed, demo); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "%s: %s frames, %s demo, wrote %s (%s -> %s)\n",
		demoPath,
		humanize.Comma(int64(len(demo.Frames))),
		demo.Duration.Round(time.Millisecond),
		*outPath,
		humanize.Bytes(uint64(len(snapshotJSON))),
		humanize.Bytes(uint64(len(compressed))),
	)
	return nil
}

func writeBundle(bundlePath, demoPath string, demoData []byte, snapshotPath string, snapshotData []byte, demo *DecodedDemo) error {
	indexes := maps.Keys(demo.State.Players)
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })
	var participants []string
	for _, idx := range indexes {
		if name := demo.State.Players[idx].Name; name != "" {
			participants = append(participants, name)
		}
	}

	m := bundle.Manifest{
		Map:          string(demo.State.Serverdata.Map.Bytes),
		DurationMs:   demo.Duration.Milliseconds(),
		Participants: participants,
	}
	if err := bundle.Write(bundlePath, filepath.Base(demoPath), demoData, filepath.Base(snapshotPath), snapshotData, m); err != nil {
		return fmt.Errorf("qwreplay export: %w", err)
	}
	return nil
}

// compressSnapshot zstd-encodes data, logging (but not failing on) the
// encoder's own close-time errors the way the teacher's decoder side logs
// and tolerates the trailing-data condition on read.
func compressSnapshot(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("qwreplay export: zstd encoder init error: %w", err)
	}
	defer func() {
		if err := enc.Close(); err != nil {
			log.Printf("qwreplay export: zstd encoder close error: %v", err)
		}
	}()
	return enc.EncodeAll(data, nil), nil
}

package main

import (
	"flag"
	"fmt"
	"io"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/ernie/qwgo/internal/demoindex"
)

func runIndex(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("qwreplay index", flag.ContinueOnError)
	dbPath := fs.String("db", "demos.db", "path to the sqlite demo index")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("qwreplay index: at least one demo path is required")
	}

	idx, err := demoindex.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("qwreplay index: open %s: %w", *dbPath, err)
	}
	defer idx.Close()

	for _, path := range fs.Args() {
		if err := indexOne(idx, path, stdout); err != nil {
			return err
		}
	}
	return nil
}

func indexOne(idx *demoindex.Index, path string, stdout io.Writer) error {
	data, err := readDemoFile(path)
	if err != nil {
		return err
	}
	hash := demoindex.ContentHash(data)

	if existing, ok, err := idx.FindByHash(hash); err != nil {
		return fmt.Errorf("qwreplay index: lookup %s: %w", path, err)
	} else if ok {
		fmt.Fprintf(stdout, "%s: already indexed as %s\n", path, existing.ID)
		return nil
	}

	demo, err := decodeDemo(data)
	if err != nil {
		return err
	}

	names := maps.Keys(demo.State.Players)
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	var participants []string
	for _, playerIdx := range names {
		if name := demo.State.Players[playerIdx].Name; name != "" {
			participants = append(participants, name)
		}
	}

	entry, err := idx.Insert(demoindex.Entry{
		Path:         path,
		Map:          string(demo.State.Serverdata.Map.Bytes),
		Duration:     demo.Duration,
		Participants: participants,
		ContentHash:  hash,
	})
	if err != nil {
		return fmt.Errorf("qwreplay index: insert %s: %w", path, err)
	}
	fmt.Fprintf(stdout, "%s: indexed as %s (map=%s, %d frames)\n", path, entry.ID, entry.Map, len(demo.Frames))
	return nil
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ernie/qwgo/internal/world"
)

func TestPrintSnapshotListsPlayersInOrder(t *testing.T) {
	snap := world.Snapshot{
		PlayerIndexes: []uint16{2, 0},
		Players: map[uint16]*world.Player{
			0: {Name: "zoid", Frags: 5, Ping: 40},
			2: {Name: "spike", Frags: -1, Ping: 80},
		},
	}

	var buf bytes.Buffer
	printSnapshot(&buf, snap)

	out := buf.String()
	zoidAt := strings.Index(out, "zoid")
	spikeAt := strings.Index(out, "spike")
	if zoidAt == -1 || spikeAt == -1 {
		t.Fatalf("expected both names present, got %q", out)
	}
	if zoidAt > spikeAt {
		t.Fatalf("expected player 0 (zoid) before player 2 (spike), got %q", out)
	}
}

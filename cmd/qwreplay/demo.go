package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ernie/qwgo/internal/message"
	"github.com/ernie/qwgo/internal/mvd"
	"github.com/ernie/qwgo/internal/world"
)

// DecodedDemo is the result of fully demultiplexing one MVD file: every
// frame in arrival order, the world state folded from all of them, and the
// demo's total duration.
type DecodedDemo struct {
	Frames   []mvd.Frame
	State    *world.State
	Duration time.Duration
}

// decodeDemo demultiplexes data, the raw bytes of one MVD file, into its
// frames and final world state.
func decodeDemo(data []byte) (*DecodedDemo, error) {
	m := message.New(data, 0, len(data), false, message.Flags{}, message.TypeDemo)
	d := mvd.New()
	state := world.New()
	var frames []mvd.Frame

	for {
		f, err := d.ParseFrame(m)
		if err != nil {
			return nil, fmt.Errorf("qwreplay: parse frame %d: %w", d.FrameCount(), err)
		}
		if len(f.Messages) > 0 {
			state.ApplyMessagesMvd(f.Messages, f.Target)
		}
		if d.Finished {
			if len(f.Messages) > 0 || f.IsSet {
				frames = append(frames, f)
			}
			break
		}
		frames = append(frames, f)
	}

	return &DecodedDemo{
		Frames:   frames,
		State:    state,
		Duration: time.Duration(d.Time() * float64(time.Second)),
	}, nil
}

func readDemoFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("qwreplay: read %s: %w", path, err)
	}
	return data, nil
}

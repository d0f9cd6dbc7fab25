// Package mvd implements the multiview-demo frame demultiplexer: a loop
// over a linear demo byte stream that advances demo time, classifies each
// frame by routing target, and re-enters the message codec to decode the
// server messages packed into that frame.
package mvd

import (
	"fmt"

	"github.com/ernie/qwgo/internal/entities"
	"github.com/ernie/qwgo/internal/message"
	"github.com/ernie/qwgo/internal/protoflags"
)

// Target describes the most recently observed non-Set routing header: who
// a frame's sub-packet is addressed to, and which command produced it.
type Target struct {
	To      uint32
	Command protoflags.DemoCommand
}

// Frame is one decoded MVD frame: its routing target, sequence numbers for
// the Set command, and the server messages its sub-packet carried.
type Frame struct {
	Target     Target
	Messages   []entities.ServerMessage
	SetIncoming, SetOutgoing uint32
	IsSet      bool
}

// Demux drives the frame loop over a shared Message buffer. Time
// accumulates monotonically in seconds; Finished latches true on
// end-of-demo or exhaustion of the buffer.
type Demux struct {
	last     Target
	time     float64
	frame    int
	Finished bool
}

// New returns a Demux ready to read frames starting at m's current cursor.
func New() *Demux {
	return &Demux{}
}

// Time returns the accumulated demo time in seconds.
func (d *Demux) Time() float64 { return d.time }

// FrameCount returns the number of frames parsed so far.
func (d *Demux) FrameCount() int { return d.frame }

// Last returns the most recently observed routing target.
func (d *Demux) Last() Target { return d.last }

// endOfDemoMarker is the "ndOfDemo" text that follows the 'E' (0x45) byte
// and precedes the NUL of the sentinel ending an MVD stream mid sub-packet.
var endOfDemoMarker = []byte("ndOfDemo")

// ParseFrame reads one frame from m and advances its cursor. It returns
// io.EOF-free; a fully exhausted buffer only sets d.Finished when the demo
// time byte itself cannot be read.
func (d *Demux) ParseFrame(m *message.Message) (Frame, error) {
	var f Frame

	if m.AtEnd() {
		d.Finished = true
		return f, nil
	}

	ms, err := m.ReadU8(false)
	if err != nil {
		d.Finished = true
		return f, nil
	}
	d.time += float64(ms) * 0.001

	cmdByte, err := m.ReadU8(false)
	if err != nil {
		return f, err
	}
	cmd := protoflags.ParseDemoCommand(cmdByte)

	if cmd == protoflags.DemoCommandCommand {
		return f, fmt.Errorf("mvd: qwd command byte in mvd stream: %w", message.ErrQwdCommand)
	}

	switch cmd {
	case protoflags.DemoCommandMultiple:
		to, err := m.ReadU32(false)
		if err != nil {
			return f, err
		}
		d.last = Target{To: to, Command: protoflags.DemoCommandMultiple}
	case protoflags.DemoCommandSingle, protoflags.DemoCommandStats:
		d.last = Target{To: uint32(cmdByte >> 3), Command: cmd}
	case protoflags.DemoCommandAll:
		d.last = Target{To: 0, Command: protoflags.DemoCommandAll}
	case protoflags.DemoCommandSet:
		in, err := m.ReadU32(false)
		if err != nil {
			return f, err
		}
		out, err := m.ReadU32(false)
		if err != nil {
			return f, err
		}
		f.IsSet = true
		f.SetIncoming = in
		f.SetOutgoing = out
		f.Target = d.last
		d.frame++
		return f, nil
	case protoflags.DemoCommandEmpty, protoflags.DemoCommandRead:
		// Empty/Read carry no extra routing header; d.last is unchanged.
	default:
		return f, &message.UnhandledCommandError{Command: cmdByte}
	}

	f.Target = d.last

	size, err := m.ReadU32(false)
	if err != nil {
		return f, err
	}
	if size == 0 {
		d.frame++
		return f, nil
	}

	subStart := m.Position
	subEnd := subStart + int(size)

	if d.last.Command == protoflags.DemoCommandMultiple && d.last.To == 0 {
		m.Position = subEnd
		d.frame++
		return f, nil
	}

	for m.Position < subEnd {
		opByte, err := m.ReadU8(true)
		if err != nil {
			return f, err
		}
		if opByte == 0x45 && isEndOfDemo(m, subEnd) {
			d.Finished = true
			d.frame++
			return f, nil
		}

		sm, err := entities.DecodeOne(m)
		if err != nil {
			return f, err
		}
		f.Messages = append(f.Messages, sm)

		if sd, ok := sm.Body.(entities.Serverdata); ok {
			m.Flags.FteExt = sd.FteExt
			m.Flags.FteExt2 = sd.FteExt2
			m.Flags.MvdExt = sd.MvdExt
			if sd.Protocol != 0 {
				m.Flags.ProtocolVersion = sd.Protocol
			}
		}
	}

	d.frame++
	return f, nil
}

// isEndOfDemo checks whether the opcode byte 0x45 just peeked is followed
// by the literal "ndOfDemo\x00" sentinel; if so it consumes the opcode
// byte and the sentinel and reports true, otherwise it leaves the cursor
// untouched so the caller decodes 0x45 normally (there is no legitimate
// opcode 0x45 in the table, so in practice this always matches when hit).
func isEndOfDemo(m *message.Message, subEnd int) bool {
	remaining := subEnd - m.Position - 1
	if remaining < len(endOfDemoMarker)+1 {
		return false
	}
	save := m.Position
	if _, err := m.ReadU8(false); err != nil { // consume the 0x45 opcode byte
		m.Position = save
		return false
	}
	tail, err := m.ReadBytes(len(endOfDemoMarker), false)
	if err != nil || string(tail) != string(endOfDemoMarker) {
		m.Position = save
		return false
	}
	if _, err := m.ReadU8(false); err != nil { // trailing NUL
		m.Position = save
		return false
	}
	return true
}

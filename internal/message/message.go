// Package message implements the QuakeWorld byte-oriented message codec: a
// position-tracked reader/writer over a byte buffer with typed accessors
// for the protocol's integers, floats, length-implicit strings,
// coordinates, angles, and delta user commands.
package message

import (
	"math"

	"github.com/ernie/qwgo/internal/glyph"
	"github.com/ernie/qwgo/internal/protoflags"
)

// Type distinguishes the two contexts a message can be decoded in, which
// changes the shape of a handful of opcodes (Playerinfo, Serverdata).
type Type int

const (
	TypeConnection Type = iota
	TypeDemo
)

// Flags carries the protocol version and negotiated extension bitsets a
// Message needs to pick the correct field widths.
type Flags struct {
	ProtocolVersion int
	FteExt          protoflags.FteExtension
	FteExt2         protoflags.FteExtension2
	MvdExt          protoflags.MvdExtension
}

// IsLegacy reports whether the delta-user-command / angle layout should
// use the pre-FTE (protocol <= 26) encoding.
func (f Flags) IsLegacy() bool {
	return f.ProtocolVersion != 0 && f.ProtocolVersion <= 26
}

// Message is a position-tracked view over a byte buffer: start is the
// buffer offset this logical message begins at, length is its size, and
// position is the cursor relative to start.
type Message struct {
	Buffer    []byte
	Start     int
	Length    int
	Position  int
	BigEndian bool
	Flags     Flags
	Type      Type
	Glyph     *glyph.Mapper
	Trace     *Trace
}

// New wraps buf[start:start+length] as a Message.
func New(buf []byte, start, length int, bigEndian bool, flags Flags, typ Type) *Message {
	return &Message{
		Buffer:    buf,
		Start:     start,
		Length:    length,
		BigEndian: bigEndian,
		Flags:     flags,
		Type:      typ,
	}
}

// Empty returns a zero-length Message ready for writes (used to compose
// outbound datagrams).
func Empty() *Message {
	return &Message{}
}

// Remaining returns the number of unread bytes before the logical end.
func (m *Message) Remaining() int {
	return m.Length - m.Position
}

// AtEnd reports whether the cursor has reached the logical end.
func (m *Message) AtEnd() bool {
	return m.Position >= m.Length
}

func (m *Message) checkReadSize(n int) error {
	if m.Position+n > m.Length {
		return &ReadBeyondSizeError{
			LogicalEnd: m.Start + m.Length,
			Cursor:     m.Start + m.Position,
			Requested:  n,
		}
	}
	return nil
}

func (m *Message) advance(readahead bool, n int) {
	if !readahead {
		m.Position += n
	}
}

func (m *Message) traced(function string, readahead bool, fn func() error) error {
	start := m.Start + m.Position
	node := m.Trace.push(function, start, readahead)
	err := fn()
	m.Trace.pop(node, m.Start+m.Position)
	return err
}

// ReadBytes reads count raw bytes.
func (m *Message) ReadBytes(count int, readahead bool) ([]byte, error) {
	var out []byte
	err := m.traced("ReadBytes", readahead, func() error {
		if err := m.checkReadSize(count); err != nil {
			return err
		}
		out = make([]byte, count)
		copy(out, m.Buffer[m.Start+m.Position:m.Start+m.Position+count])
		m.advance(readahead, count)
		return nil
	})
	return out, err
}

// WriteBytes appends raw bytes and advances the cursor.
func (m *Message) WriteBytes(b []byte) {
	m.Buffer = append(m.Buffer, b...)
	m.Position += len(b)
	m.Length += len(b)
}

func (m *Message) ReadU8(readahead bool) (uint8, error) {
	var v uint8
	err := m.traced("ReadU8", readahead, func() error {
		if err := m.checkReadSize(1); err != nil {
			return err
		}
		v = m.Buffer[m.Start+m.Position]
		m.advance(readahead, 1)
		return nil
	})
	return v, err
}

func (m *Message) ReadI8(readahead bool) (int8, error) {
	v, err := m.ReadU8(readahead)
	return int8(v), err
}

func (m *Message) WriteU8(v uint8) {
	m.WriteBytes([]byte{v})
}

func (m *Message) WriteI8(v int8) {
	m.WriteU8(uint8(v))
}

func (m *Message) ReadU16(readahead bool) (uint16, error) {
	var v uint16
	err := m.traced("ReadU16", readahead, func() error {
		if err := m.checkReadSize(2); err != nil {
			return err
		}
		b := m.Buffer[m.Start+m.Position : m.Start+m.Position+2]
		if m.BigEndian {
			v = uint16(b[0])<<8 | uint16(b[1])
		} else {
			v = uint16(b[1])<<8 | uint16(b[0])
		}
		m.advance(readahead, 2)
		return nil
	})
	return v, err
}

func (m *Message) ReadI16(readahead bool) (int16, error) {
	v, err := m.ReadU16(readahead)
	return int16(v), err
}

func (m *Message) WriteU16(v uint16) {
	if m.BigEndian {
		m.WriteBytes([]byte{byte(v >> 8), byte(v)})
	} else {
		m.WriteBytes([]byte{byte(v), byte(v >> 8)})
	}
}

func (m *Message) WriteI16(v int16) {
	m.WriteU16(uint16(v))
}

func (m *Message) ReadU32(readahead bool) (uint32, error) {
	var v uint32
	err := m.traced("ReadU32", readahead, func() error {
		if err := m.checkReadSize(4); err != nil {
			return err
		}
		b := m.Buffer[m.Start+m.Position : m.Start+m.Position+4]
		if m.BigEndian {
			v = uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
		} else {
			v = uint32(b[3])<<24 | uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0])
		}
		m.advance(readahead, 4)
		return nil
	})
	return v, err
}

func (m *Message) ReadI32(readahead bool) (int32, error) {
	v, err := m.ReadU32(readahead)
	return int32(v), err
}

func (m *Message) WriteU32(v uint32) {
	if m.BigEndian {
		m.WriteBytes([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	} else {
		m.WriteBytes([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
	}
}

func (m *Message) WriteI32(v int32) {
	m.WriteU32(uint32(v))
}

func (m *Message) ReadF32(readahead bool) (float32, error) {
	v, err := m.ReadU32(readahead)
	return math.Float32frombits(v), err
}

func (m *Message) WriteF32(v float32) {
	m.WriteU32(math.Float32bits(v))
}

// ReplaceAt overwrites len(b) bytes at absolute buffer offset pos. Used to
// patch a reserved checksum byte after the rest of a message is written.
func (m *Message) ReplaceAt(b []byte, pos int) error {
	if pos+len(b) > len(m.Buffer) {
		return &ReadBeyondSizeError{LogicalEnd: len(m.Buffer), Cursor: pos, Requested: len(b)}
	}
	copy(m.Buffer[pos:pos+len(b)], b)
	return nil
}

package message

import "github.com/ernie/qwgo/internal/glyph"

// StringByte is a length-implicit, NUL-terminated byte string, paired with
// its printable projection when a glyph mapper is attached to the owning
// Message.
type StringByte struct {
	Bytes  []byte
	String string
}

func newStringByte(raw []byte, m *glyph.Mapper) StringByte {
	sb := StringByte{Bytes: raw}
	if m != nil {
		sb.String = m.String(raw)
	}
	return sb
}

// ReadStringByte collects bytes until a NUL terminator, dropping any 0xFF
// padding bytes along the way.
func (m *Message) ReadStringByte(readahead bool) (StringByte, error) {
	var sb StringByte
	err := m.traced("ReadStringByte", readahead, func() error {
		original := m.Position
		var buf []byte
		for {
			if err := m.checkReadSize(1); err != nil {
				return err
			}
			b := m.Buffer[m.Start+m.Position]
			m.Position++
			if b == 0 {
				break
			}
			if b == 0xff {
				continue
			}
			buf = append(buf, b)
		}
		if readahead {
			m.Position = original
		}
		sb = newStringByte(buf, m.Glyph)
		return nil
	})
	return sb, err
}

// ReadStringVector reads StringByte values until an empty one terminates
// the sequence (the terminator itself is not included in the result).
func (m *Message) ReadStringVector(readahead bool) ([]StringByte, error) {
	original := m.Position
	var out []StringByte
	for {
		sb, err := m.ReadStringByte(false)
		if err != nil {
			return nil, err
		}
		if len(sb.Bytes) == 0 {
			break
		}
		out = append(out, sb)
	}
	if readahead {
		m.Position = original
	}
	return out, nil
}

// WriteStringByte appends raw bytes followed by a single NUL terminator.
func (m *Message) WriteStringByte(raw []byte) {
	m.WriteBytes(raw)
	m.WriteU8(0)
}

// WriteString is a convenience wrapper over WriteStringByte for plain Go
// strings.
func (m *Message) WriteString(s string) {
	m.WriteStringByte([]byte(s))
}

// WriteStringVector writes each string followed by NUL, then an extra NUL
// terminator marking the end of the vector.
func (m *Message) WriteStringVector(values []string) {
	for _, v := range values {
		m.WriteString(v)
	}
	m.WriteU8(0)
}

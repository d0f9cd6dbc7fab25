package message

import "github.com/ernie/qwgo/internal/protoflags"

// IsOOB peeks the leading i32 of buf and reports whether it is -1
// (0xFFFFFFFF), the out-of-band connectionless marker.
func IsOOB(buf []byte) bool {
	if len(buf) < 4 {
		return false
	}
	v := int32(uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24)
	return v == -1
}

// Challenge is the decoded connectionless server-challenge response.
type Challenge struct {
	Challenge string
	Protocol  Flags
}

// ReadChallenge decodes the 'c' connectionless command body: a
// NUL-terminated decimal challenge followed by repeated (tag, bitset)
// pairs. Unknown tags are skipped by consuming one extra u32.
func (m *Message) ReadChallenge() (Challenge, error) {
	var c Challenge
	sb, err := m.ReadStringByte(false)
	if err != nil {
		return c, err
	}
	c.Challenge = string(sb.Bytes)

	for !m.AtEnd() {
		tag, err := m.ReadU32(false)
		if err != nil {
			return c, err
		}
		switch tag {
		case protoflags.TagStandard:
			c.Protocol.ProtocolVersion = protoflags.StandardProtocolVersion
		case protoflags.TagFTEX:
			bits, err := m.ReadU32(false)
			if err != nil {
				return c, err
			}
			c.Protocol.FteExt = protoflags.FteExtension(bits)
		case protoflags.TagFTE2:
			bits, err := m.ReadU32(false)
			if err != nil {
				return c, err
			}
			c.Protocol.FteExt2 = protoflags.FteExtension2(bits)
		case protoflags.TagMVD1:
			bits, err := m.ReadU32(false)
			if err != nil {
				return c, err
			}
			c.Protocol.MvdExt = protoflags.MvdExtension(bits)
		default:
			if _, err := m.ReadU32(false); err != nil {
				return c, err
			}
		}
	}
	return c, nil
}

// SequencePair is the (sequence, ack) header of a connected datagram; the
// reliable bit occupies bit 31 of each word.
type SequencePair struct {
	Sequence    uint32
	Reliable    bool
	Ack         uint32
	AckReliable bool
}

// ReadSequencePair reads the two leading u32 sequence words of a connected
// datagram and splits out their reliable bits.
func (m *Message) ReadSequencePair() (SequencePair, error) {
	var sp SequencePair
	seq, err := m.ReadU32(false)
	if err != nil {
		return sp, err
	}
	ack, err := m.ReadU32(false)
	if err != nil {
		return sp, err
	}
	sp.Sequence = seq &^ (1 << 31)
	sp.Reliable = seq&(1<<31) != 0
	sp.Ack = ack &^ (1 << 31)
	sp.AckReliable = ack&(1<<31) != 0
	return sp, nil
}

// WriteSequencePair writes a (sequence, ack) pair, each optionally carrying
// the high reliable bit already folded in by the caller.
func (m *Message) WriteSequencePair(sequence, ack uint32) {
	m.WriteU32(sequence)
	m.WriteU32(ack)
}

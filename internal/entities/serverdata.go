package entities

import (
	"fmt"

	"github.com/ernie/qwgo/internal/message"
	"github.com/ernie/qwgo/internal/protoflags"
)

// Serverdata is the connection/demo preamble: a repeated tag-prefixed
// extension preamble terminated by the standard protocol tag, followed by
// the server count, game directory, map, and the ten movevars.
type Serverdata struct {
	Protocol     int
	FteExt       protoflags.FteExtension
	FteExt2      protoflags.FteExtension2
	MvdExt       protoflags.MvdExtension
	ServerCount  uint32
	DemoTime     float32
	GameDir      message.StringByte
	PlayerNumber uint8
	Map          message.StringByte
	MoveVars     [10]float32
}

// ReadServerdata decodes a Serverdata body. m.Type selects whether the
// player-number or demotime field follows the game directory.
func ReadServerdata(m *message.Message) (Serverdata, error) {
	var sd Serverdata

loop:
	for {
		tag, err := m.ReadU32(false)
		if err != nil {
			return sd, err
		}
		switch tag {
		case 0:
			return sd, fmt.Errorf("serverdata: protocol tag 0: %w", message.ErrBadRead)
		case protoflags.TagStandard:
			sd.Protocol = protoflags.StandardProtocolVersion
			break loop
		case protoflags.TagFTEX:
			bits, err := m.ReadU32(false)
			if err != nil {
				return sd, err
			}
			sd.FteExt = protoflags.FteExtension(bits)
		case protoflags.TagFTE2:
			bits, err := m.ReadU32(false)
			if err != nil {
				return sd, err
			}
			sd.FteExt2 = protoflags.FteExtension2(bits)
		case protoflags.TagMVD1:
			bits, err := m.ReadU32(false)
			if err != nil {
				return sd, err
			}
			sd.MvdExt = protoflags.MvdExtension(bits)
		default:
			return sd, fmt.Errorf("serverdata: unknown protocol tag 0x%x: %w", tag, message.ErrBadRead)
		}
	}

	sc, err := m.ReadU32(false)
	if err != nil {
		return sd, err
	}
	sd.ServerCount = sc

	gd, err := m.ReadStringByte(false)
	if err != nil {
		return sd, err
	}
	sd.GameDir = gd

	switch m.Type {
	case message.TypeConnection:
		pn, err := m.ReadU8(false)
		if err != nil {
			return sd, err
		}
		sd.PlayerNumber = pn
	case message.TypeDemo:
		dt, err := m.ReadF32(false)
		if err != nil {
			return sd, err
		}
		sd.DemoTime = dt
	}

	mp, err := m.ReadStringByte(false)
	if err != nil {
		return sd, err
	}
	sd.Map = mp

	for i := range sd.MoveVars {
		v, err := m.ReadF32(false)
		if err != nil {
			return sd, err
		}
		sd.MoveVars[i] = v
	}

	return sd, nil
}

// WriteServerdata encodes a Serverdata body, always preceded by the
// extension preamble tags for any non-zero bitset before the terminating
// standard-protocol tag.
func WriteServerdata(m *message.Message, sd Serverdata) {
	if sd.FteExt != 0 {
		m.WriteU32(protoflags.TagFTEX)
		m.WriteU32(uint32(sd.FteExt))
	}
	if sd.FteExt2 != 0 {
		m.WriteU32(protoflags.TagFTE2)
		m.WriteU32(uint32(sd.FteExt2))
	}
	if sd.MvdExt != 0 {
		m.WriteU32(protoflags.TagMVD1)
		m.WriteU32(uint32(sd.MvdExt))
	}
	m.WriteU32(protoflags.TagStandard)
	m.WriteU32(sd.ServerCount)
	m.WriteStringByte(sd.GameDir.Bytes)

	switch m.Type {
	case message.TypeConnection:
		m.WriteU8(sd.PlayerNumber)
	case message.TypeDemo:
		m.WriteF32(sd.DemoTime)
	}

	m.WriteStringByte(sd.Map.Bytes)
	for _, v := range sd.MoveVars {
		m.WriteF32(v)
	}
}

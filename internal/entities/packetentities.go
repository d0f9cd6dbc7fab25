package entities

import "github.com/ernie/qwgo/internal/protoflags"
import "github.com/ernie/qwgo/internal/message"

// Packetentity is one entity's delta record within a Packetentities,
// Deltapacketentities, SpawnstaticFte2 or FteSpawnbaseline2 message.
type Packetentity struct {
	EntityIndex  uint16
	Bits         uint16
	FteBits      protoflags.FteDeltaExtension
	Remove       bool
	Model        *uint16
	Frame        *uint8
	Colormap     *uint8
	Skin         *uint8
	Effects      *uint8
	Origin       *CoordinateVectorOption
	Angle        *AngleVectorOption
	Transparency *uint8
}

// readPacketEntityCommon decodes the fields shared by every delta variant
// (model/frame/colormap/skin/effects/origin/angle), assuming the caller has
// already resolved flags (including any MOREBITS continuation byte).
func readPacketEntityCommon(m *message.Message, flags protoflags.UpdateTypes) (Packetentity, error) {
	var p Packetentity
	p.Remove = flags.Has(protoflags.UTRemove)

	if flags.Has(protoflags.UTModel) {
		b, err := m.ReadU8(false)
		if err != nil {
			return p, err
		}
		v := uint16(b)
		p.Model = &v
	}
	if flags.Has(protoflags.UTFrame) {
		b, err := m.ReadU8(false)
		if err != nil {
			return p, err
		}
		p.Frame = &b
	}
	if flags.Has(protoflags.UTColorMap) {
		b, err := m.ReadU8(false)
		if err != nil {
			return p, err
		}
		p.Colormap = &b
	}
	if flags.Has(protoflags.UTSkin) {
		b, err := m.ReadU8(false)
		if err != nil {
			return p, err
		}
		p.Skin = &b
	}
	if flags.Has(protoflags.UTEffects) {
		b, err := m.ReadU8(false)
		if err != nil {
			return p, err
		}
		p.Effects = &b
	}

	var origin CoordinateVectorOption
	var angle AngleVectorOption

	if flags.Has(protoflags.UTOrigin1) {
		f, err := m.ReadCoordinate(false)
		if err != nil {
			return p, err
		}
		origin.X = &f
	}
	if flags.Has(protoflags.UTAngle1) {
		f, err := m.ReadAngle(false)
		if err != nil {
			return p, err
		}
		angle.X = &f
	}
	if flags.Has(protoflags.UTOrigin2) {
		f, err := m.ReadCoordinate(false)
		if err != nil {
			return p, err
		}
		origin.Y = &f
	}
	if flags.Has(protoflags.UTAngle2) {
		f, err := m.ReadAngle(false)
		if err != nil {
			return p, err
		}
		angle.Y = &f
	}
	if flags.Has(protoflags.UTOrigin3) {
		f, err := m.ReadCoordinate(false)
		if err != nil {
			return p, err
		}
		origin.Z = &f
	}
	if flags.Has(protoflags.UTAngle3) {
		f, err := m.ReadAngle(false)
		if err != nil {
			return p, err
		}
		angle.Z = &f
	}

	if !origin.Empty() {
		p.Origin = &origin
	}
	if !angle.Empty() {
		p.Angle = &angle
	}

	return p, nil
}

// readUpdateTypeBits reads the first update-type word, splitting off the
// 9-bit baseline index, and folds in the MOREBITS continuation byte when
// present.
func readUpdateTypeBits(m *message.Message) (bits uint16, flags protoflags.UpdateTypes, baselineIndex uint16, err error) {
	raw, err := m.ReadU16(false)
	if err != nil {
		return 0, 0, 0, err
	}
	baselineIndex = raw & uint16(protoflags.EntityIndexMask)
	bits = raw &^ uint16(protoflags.EntityIndexMask)
	flags = protoflags.UpdateTypes(bits)
	if flags.Has(protoflags.UTMoreBits) {
		mb, err := m.ReadU8(false)
		if err != nil {
			return 0, 0, 0, err
		}
		bits |= uint16(mb)
		flags = protoflags.UpdateTypes(bits)
	}
	return bits, flags, baselineIndex, nil
}

// Packetentities is svc_packetentities: a run of absolute (non-delta)
// entity updates terminated by a zero update-type word.
type Packetentities struct {
	Entities []Packetentity
}

func ReadPacketentities(m *message.Message) (Packetentities, error) {
	var out Packetentities
	for {
		bits, flags, baselineIndex, err := readUpdateTypeBits(m)
		if err != nil {
			return out, err
		}
		if bits == 0 && baselineIndex == 0 {
			break
		}
		p, err := readPacketEntityCommon(m, flags)
		if err != nil {
			return out, err
		}
		p.EntityIndex = baselineIndex
		p.Bits = bits
		out.Entities = append(out.Entities, p)
	}
	return out, nil
}

// Deltapacketentities is svc_deltapacketentities: like Packetentities, but
// relative to a previously-acked frame named by From, and the loop also
// terminates if folding in MOREBITS yields an all-zero word.
type Deltapacketentities struct {
	From     uint8
	Entities []Packetentity
}

func ReadDeltapacketentities(m *message.Message) (Deltapacketentities, error) {
	var out Deltapacketentities
	from, err := m.ReadU8(false)
	if err != nil {
		return out, err
	}
	out.From = from

	for {
		bits, flags, baselineIndex, err := readUpdateTypeBits(m)
		if err != nil {
			return out, err
		}
		if bits == 0 && baselineIndex == 0 {
			break
		}
		if bits == 0 {
			break
		}
		p, err := readPacketEntityCommon(m, flags)
		if err != nil {
			return out, err
		}
		p.EntityIndex = baselineIndex
		p.Bits = bits
		out.Entities = append(out.Entities, p)
	}
	return out, nil
}

// SpawnstaticFte2 and FteSpawnbaseline2 both carry a single FTE2-extended
// delta record: an extra "evenmore"/"yetmore" flag byte pair gates
// transparency and the entity/model doubling extensions.
type SpawnstaticFte2 struct {
	From   uint8
	Entity Packetentity
}

type FteSpawnbaseline2 struct {
	From   uint8
	Entity Packetentity
}

func readFte2Delta(m *message.Message) (Packetentity, error) {
	bits, flags, baselineIndex, err := readUpdateTypeBits(m)
	if err != nil {
		return Packetentity{}, err
	}

	var morebits protoflags.FteDeltaExtension
	if flags.Has(protoflags.UTFteExt) {
		b, err := m.ReadU8(false)
		if err != nil {
			return Packetentity{}, err
		}
		bits16 := uint16(b)
		if bits16&uint16(protoflags.FteDeltaYetMore) != 0 {
			mb, err := m.ReadU8(false)
			if err != nil {
				return Packetentity{}, err
			}
			bits16 |= uint16(mb) << 8
		}
		morebits = protoflags.FteDeltaExtension(bits16)
	}

	p, err := readPacketEntityCommon(m, flags)
	if err != nil {
		return Packetentity{}, err
	}
	p.EntityIndex = baselineIndex
	p.Bits = bits
	p.FteBits = morebits

	if morebits.Has(protoflags.FteDeltaTrans) {
		b, err := m.ReadU8(false)
		if err != nil {
			return Packetentity{}, err
		}
		p.Transparency = &b
	}

	if morebits.Has(protoflags.FteDeltaEntityDouble) {
		p.EntityIndex += 512
	}
	if morebits.Has(protoflags.FteDeltaEntityDouble2) {
		p.EntityIndex += 1024
	}
	if morebits.Has(protoflags.FteDeltaModelDouble) && p.Model != nil {
		v := *p.Model + 512
		p.Model = &v
	}

	return p, nil
}

func ReadSpawnstaticFte2(m *message.Message) (SpawnstaticFte2, error) {
	p, err := readFte2Delta(m)
	return SpawnstaticFte2{Entity: p}, err
}

func ReadFteSpawnbaseline2(m *message.Message) (FteSpawnbaseline2, error) {
	p, err := readFte2Delta(m)
	return FteSpawnbaseline2{Entity: p}, err
}

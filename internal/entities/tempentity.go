package entities

import (
	"fmt"

	"github.com/ernie/qwgo/internal/message"
)

// TempEntityType enumerates svc_temp_entity's first byte.
type TempEntityType uint8

const (
	TeSpike TempEntityType = iota
	TeSuperSpike
	TeGunshot
	TeExplosion
	TeTarExplosion
	TeLightning1
	TeLightning2
	TeWizSpike
	TeKnightSpike
	TeLightning3
	TeLavaSplash
	TeTeleport
	TeBlood
	TeLightningBlood
)

func (t TempEntityType) String() string {
	names := [...]string{
		"Spike", "SuperSpike", "Gunshot", "Explosion", "TarExplosion",
		"Lightning1", "Lightning2", "WizSpike", "KnightSpike", "Lightning3",
		"LavaSplash", "Teleport", "Blood", "LightningBlood",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("TempEntityType(%d)", uint8(t))
}

// Tempentity is svc_temp_entity: a variable-shape message gated on its type
// byte. Gunshot and Blood carry a count byte; the three Lightning variants
// carry an entity index and a start vector ahead of the common origin.
type Tempentity struct {
	Type   TempEntityType
	Origin message.Vector3
	Start  message.Vector3
	Entity uint16
	Count  int8
}

func ReadTempentity(m *message.Message) (Tempentity, error) {
	var v Tempentity
	t, err := m.ReadU8(false)
	if err != nil {
		return v, err
	}
	if t > uint8(TeLightningBlood) {
		return v, fmt.Errorf("tempentity: unknown type %d: %w", t, message.ErrBadRead)
	}
	v.Type = TempEntityType(t)

	if v.Type == TeGunshot || v.Type == TeBlood {
		if v.Count, err = m.ReadI8(false); err != nil {
			return v, err
		}
	}

	if v.Type == TeLightning1 || v.Type == TeLightning2 || v.Type == TeLightning3 {
		if v.Entity, err = m.ReadU16(false); err != nil {
			return v, err
		}
		if v.Start, err = m.ReadCoordinateVector(false); err != nil {
			return v, err
		}
	}

	if v.Origin, err = m.ReadCoordinateVector(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteTempentity(m *message.Message, v Tempentity) {
	m.WriteU8(uint8(v.Type))
	if v.Type == TeGunshot || v.Type == TeBlood {
		m.WriteI8(v.Count)
	}
	if v.Type == TeLightning1 || v.Type == TeLightning2 || v.Type == TeLightning3 {
		m.WriteU16(v.Entity)
		m.WriteCoordinateVector(v.Start)
	}
	m.WriteCoordinateVector(v.Origin)
}

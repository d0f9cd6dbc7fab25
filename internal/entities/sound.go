package entities

import "github.com/ernie/qwgo/internal/message"

// Sound is svc_sound: a channel word whose top two bits gate an optional
// volume/attenuation byte, with the entity index packed into bits 3-12.
type Sound struct {
	Channel             uint16
	Entity              uint16
	Index               uint8
	Volume, Attenuation *uint8
	Origin              message.Vector3
}

const (
	soundVolumeBit      uint16 = 1 << 15
	soundAttenuationBit uint16 = 1 << 14
)

func ReadSound(m *message.Message) (Sound, error) {
	var v Sound
	channel, err := m.ReadU16(false)
	if err != nil {
		return v, err
	}
	v.Channel = channel

	if channel&soundVolumeBit != 0 {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Volume = &b
	}
	if channel&soundAttenuationBit != 0 {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Attenuation = &b
	}

	v.Entity = (channel >> 3) & 1023

	if v.Index, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Origin, err = m.ReadCoordinateVector(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteSound(m *message.Message, v Sound) {
	channel := v.Channel
	if v.Volume != nil {
		channel |= soundVolumeBit
	}
	if v.Attenuation != nil {
		channel |= soundAttenuationBit
	}
	m.WriteU16(channel)
	if v.Volume != nil {
		m.WriteU8(*v.Volume)
	}
	if v.Attenuation != nil {
		m.WriteU8(*v.Attenuation)
	}
	m.WriteU8(v.Index)
	m.WriteCoordinateVector(v.Origin)
}

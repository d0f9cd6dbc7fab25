// Package entities decodes and encodes QuakeWorld server-to-client messages:
// the fixed-layout opcode family, the two Playerinfo variants, and the
// packet-entity delta family shared by Packetentities, Deltapacketentities,
// SpawnstaticFte2 and FteSpawnbaseline2.
package entities

import "github.com/ernie/qwgo/internal/message"

// CoordinateVectorOption is a per-axis optional coordinate, used where only
// a subset of x/y/z travels on the wire for a given update.
type CoordinateVectorOption struct {
	X, Y, Z *float32
}

func (o CoordinateVectorOption) Empty() bool {
	return o.X == nil && o.Y == nil && o.Z == nil
}

func (o CoordinateVectorOption) ApplyTo(target *message.Vector3) {
	if o.X != nil {
		target.X = *o.X
	}
	if o.Y != nil {
		target.Y = *o.Y
	}
	if o.Z != nil {
		target.Z = *o.Z
	}
}

// AngleVectorOption is a per-axis optional angle.
type AngleVectorOption struct {
	X, Y, Z *float32
}

func (o AngleVectorOption) Empty() bool {
	return o.X == nil && o.Y == nil && o.Z == nil
}

func (o AngleVectorOption) ApplyTo(target *message.Vector3) {
	if o.X != nil {
		target.X = *o.X
	}
	if o.Y != nil {
		target.Y = *o.Y
	}
	if o.Z != nil {
		target.Z = *o.Z
	}
}

// VelocityVectorOption is a per-axis optional velocity component, units of
// 1/16 world unit.
type VelocityVectorOption struct {
	X, Y, Z *int16
}

// StringVector is a sequence of StringByte values terminated by an empty one.
type StringVector []message.StringByte

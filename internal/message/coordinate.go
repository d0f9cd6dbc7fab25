package message

import "github.com/ernie/qwgo/internal/protoflags"

// Vector3 is an x,y,z triple of float values, used for coordinates and
// angles alike.
type Vector3 struct {
	X, Y, Z float32
}

// ReadCoordinate reads one coordinate scalar: a 32-bit float when
// FLOATCOORDS is negotiated, otherwise a 16-bit value scaled by 1/8.
func (m *Message) ReadCoordinate(readahead bool) (float32, error) {
	if m.Flags.FteExt.Has(protoflags.FteFloatCoords) {
		return m.ReadF32(readahead)
	}
	v, err := m.ReadI16(readahead)
	if err != nil {
		return 0, err
	}
	return float32(v) * (1.0 / 8.0), nil
}

// WriteCoordinate mirrors ReadCoordinate's width selection.
func (m *Message) WriteCoordinate(v float32) {
	if m.Flags.FteExt.Has(protoflags.FteFloatCoords) {
		m.WriteF32(v)
		return
	}
	m.WriteI16(int16(v * 8))
}

// ReadCoordinateVector reads three coordinates in x,y,z order.
func (m *Message) ReadCoordinateVector(readahead bool) (Vector3, error) {
	var v Vector3
	var err error
	if v.X, err = m.ReadCoordinate(readahead); err != nil {
		return v, err
	}
	if v.Y, err = m.ReadCoordinate(readahead); err != nil {
		return v, err
	}
	if v.Z, err = m.ReadCoordinate(readahead); err != nil {
		return v, err
	}
	return v, nil
}

// WriteCoordinateVector writes three coordinates in x,y,z order.
func (m *Message) WriteCoordinateVector(v Vector3) {
	m.WriteCoordinate(v.X)
	m.WriteCoordinate(v.Y)
	m.WriteCoordinate(v.Z)
}

// ReadAngle reads one angle scalar: a 32-bit float when FLOATCOORDS is
// negotiated, otherwise an 8-bit value scaled by 360/256.
func (m *Message) ReadAngle(readahead bool) (float32, error) {
	if m.Flags.FteExt.Has(protoflags.FteFloatCoords) {
		return m.ReadF32(readahead)
	}
	v, err := m.ReadU8(readahead)
	if err != nil {
		return 0, err
	}
	return float32(v) * (360.0 / 256.0), nil
}

// WriteAngle mirrors ReadAngle's width selection.
func (m *Message) WriteAngle(v float32) {
	if m.Flags.FteExt.Has(protoflags.FteFloatCoords) {
		m.WriteF32(v)
		return
	}
	m.WriteU8(uint8(v * (256.0 / 360.0)))
}

// ReadAngle16 reads a 16-bit angle, always scaled by 360/65535 regardless
// of FLOATCOORDS.
func (m *Message) ReadAngle16(readahead bool) (float32, error) {
	v, err := m.ReadU16(readahead)
	if err != nil {
		return 0, err
	}
	return float32(v) * (360.0 / 65535.0), nil
}

// WriteAngle16 writes a 16-bit angle, the width outbound user commands
// always use regardless of FLOATCOORDS.
func (m *Message) WriteAngle16(v float32) {
	m.WriteU16(uint16(v * (65535.0 / 360.0)))
}

// ReadAngleVector reads three angles in x,y,z order.
func (m *Message) ReadAngleVector(readahead bool) (Vector3, error) {
	var v Vector3
	var err error
	if v.X, err = m.ReadAngle(readahead); err != nil {
		return v, err
	}
	if v.Y, err = m.ReadAngle(readahead); err != nil {
		return v, err
	}
	if v.Z, err = m.ReadAngle(readahead); err != nil {
		return v, err
	}
	return v, nil
}

// WriteAngleVector writes three angles in x,y,z order.
func (m *Message) WriteAngleVector(v Vector3) {
	m.WriteAngle(v.X)
	m.WriteAngle(v.Y)
	m.WriteAngle(v.Z)
}


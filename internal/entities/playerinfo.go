package entities

import (
	"github.com/ernie/qwgo/internal/message"
	"github.com/ernie/qwgo/internal/protoflags"
)

// PlayerinfoMvd is svc_playerinfo as seen in a demo/MVD context: field
// presence is gated by DfTypes and every optional axis travels
// independently rather than as a whole vector.
type PlayerinfoMvd struct {
	PlayerNumber uint8
	Flags        protoflags.DfTypes
	Frame        uint8
	Origin       CoordinateVectorOption
	Angle        AngleVectorOption
	Model        *uint8
	Skinnum      *uint8
	Effects      *uint8
	Weaponframe  *uint8
}

// PlayerinfoConnection is svc_playerinfo as seen over a live connection:
// origin always travels in full, and msec/command/velocity/alpha are
// gated by PFTypes.
type PlayerinfoConnection struct {
	PlayerNumber uint8
	Flags        protoflags.PFTypes
	Origin       message.Vector3
	Frame        uint8
	Msec         *uint8
	Command      *message.DeltaUserCommand
	Velocity     VelocityVectorOption
	Model        *uint8
	Skinnum      *uint8
	Effects      *uint8
	Weaponframe  *uint8
	Alpha        *uint8
}

// ReadPlayerinfo dispatches on m.Type: a live connection reads the
// PFTypes-gated variant, anything else (demo/MVD) reads the DfTypes-gated
// variant.
func ReadPlayerinfo(m *message.Message) (any, error) {
	if m.Type == message.TypeConnection {
		return readPlayerinfoConnection(m)
	}
	return readPlayerinfoMvd(m)
}

func readPlayerinfoMvd(m *message.Message) (PlayerinfoMvd, error) {
	var v PlayerinfoMvd
	var err error
	if v.PlayerNumber, err = m.ReadU8(false); err != nil {
		return v, err
	}
	bits, err := m.ReadU16(false)
	if err != nil {
		return v, err
	}
	v.Flags = protoflags.DfTypes(bits)
	if v.Frame, err = m.ReadU8(false); err != nil {
		return v, err
	}

	for i, bit := range []protoflags.DfTypes{protoflags.DFOrigin, protoflags.DFOrigin2, protoflags.DFOrigin3} {
		if v.Flags.Has(bit) {
			f, err := m.ReadCoordinate(false)
			if err != nil {
				return v, err
			}
			switch i {
			case 0:
				v.Origin.X = &f
			case 1:
				v.Origin.Y = &f
			case 2:
				v.Origin.Z = &f
			}
		}
	}

	for i, bit := range []protoflags.DfTypes{protoflags.DFAngle, protoflags.DFAngle2, protoflags.DFAngle3} {
		if v.Flags.Has(bit) {
			f, err := m.ReadAngle16(false)
			if err != nil {
				return v, err
			}
			switch i {
			case 0:
				v.Angle.X = &f
			case 1:
				v.Angle.Y = &f
			case 2:
				v.Angle.Z = &f
			}
		}
	}

	if v.Flags.Has(protoflags.DFModel) {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Model = &b
	}
	if v.Flags.Has(protoflags.DFSkinNum) {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Skinnum = &b
	}
	if v.Flags.Has(protoflags.DFEffects) {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Effects = &b
	}
	if v.Flags.Has(protoflags.DFWeaponFrame) {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Weaponframe = &b
	}

	return v, nil
}

func readPlayerinfoConnection(m *message.Message) (PlayerinfoConnection, error) {
	var v PlayerinfoConnection
	var err error
	if v.PlayerNumber, err = m.ReadU8(false); err != nil {
		return v, err
	}
	bits, err := m.ReadU16(false)
	if err != nil {
		return v, err
	}
	v.Flags = protoflags.PFTypes(bits)

	if v.Origin, err = m.ReadCoordinateVector(false); err != nil {
		return v, err
	}
	if v.Frame, err = m.ReadU8(false); err != nil {
		return v, err
	}

	if v.Flags.Has(protoflags.PFMsec) {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Msec = &b
	}

	if v.Flags.Has(protoflags.PFCommand) {
		cmd, err := m.ReadDeltaUserCommand()
		if err != nil {
			return v, err
		}
		v.Command = &cmd
	}

	if v.Flags.Has(protoflags.PFVelocity1) {
		b, err := m.ReadI16(false)
		if err != nil {
			return v, err
		}
		v.Velocity.X = &b
	}
	if v.Flags.Has(protoflags.PFVelocity2) {
		b, err := m.ReadI16(false)
		if err != nil {
			return v, err
		}
		v.Velocity.Y = &b
	}
	if v.Flags.Has(protoflags.PFVelocity3) {
		b, err := m.ReadI16(false)
		if err != nil {
			return v, err
		}
		v.Velocity.Z = &b
	}

	if v.Flags.Has(protoflags.PFModel) {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Model = &b
	}
	if v.Flags.Has(protoflags.PFSkinNum) {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Skinnum = &b
	}
	if v.Flags.Has(protoflags.PFEffects) {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Effects = &b
	}
	if v.Flags.Has(protoflags.PFWeaponFrame) {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Weaponframe = &b
	}

	if v.Flags.Has(protoflags.PFTrans) && m.Flags.FteExt.Has(protoflags.FteTrans) {
		b, err := m.ReadU8(false)
		if err != nil {
			return v, err
		}
		v.Alpha = &b
	}

	return v, nil
}

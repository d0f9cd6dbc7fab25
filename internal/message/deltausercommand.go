package message

import "github.com/ernie/qwgo/internal/protoflags"

// DeltaUserCommand is the presence-bitmask-driven optional field set
// describing one movement frame.
type DeltaUserCommand struct {
	Angle1, Angle2, Angle3 *float32
	Forward, Side, Up      *int16
	Buttons                *uint8
	Impulse                *uint8
	Msec                   *uint8
}

// ReadDeltaUserCommand reads a presence bitmask, then each present field in
// fixed order. The legacy layout (protocol <= 26) folds Angle2 into Msec
// and packs forward/side/up as i8<<3; the modern layout uses raw i16 for
// forward/side/up and always carries Msec.
func (m *Message) ReadDeltaUserCommand() (DeltaUserCommand, error) {
	var cmd DeltaUserCommand
	bits, err := m.ReadU8(false)
	if err != nil {
		return cmd, err
	}
	flags := protoflags.UserCommandFlags(bits)
	legacy := m.Flags.IsLegacy()

	if flags.Has(protoflags.UCAngle1) {
		v, err := m.ReadAngle16(false)
		if err != nil {
			return cmd, err
		}
		cmd.Angle1 = &v
	}

	if legacy {
		// Legacy repurposes the ANGLE2 bit as "CM_MSEC follows"; angle.y
		// is otherwise unconditional in this variant.
		v, err := m.ReadAngle16(false)
		if err != nil {
			return cmd, err
		}
		cmd.Angle2 = &v
		if flags.Has(protoflags.UCAngle2) {
			msec, err := m.ReadU8(false)
			if err != nil {
				return cmd, err
			}
			cmd.Msec = &msec
		}
	} else if flags.Has(protoflags.UCAngle2) {
		v, err := m.ReadAngle16(false)
		if err != nil {
			return cmd, err
		}
		cmd.Angle2 = &v
	}

	if flags.Has(protoflags.UCAngle3) {
		v, err := m.ReadAngle16(false)
		if err != nil {
			return cmd, err
		}
		cmd.Angle3 = &v
	}

	if flags.Has(protoflags.UCForward) {
		v, err := m.readMoveAxis(legacy)
		if err != nil {
			return cmd, err
		}
		cmd.Forward = &v
	}
	if flags.Has(protoflags.UCSide) {
		v, err := m.readMoveAxis(legacy)
		if err != nil {
			return cmd, err
		}
		cmd.Side = &v
	}
	if flags.Has(protoflags.UCUp) {
		v, err := m.readMoveAxis(legacy)
		if err != nil {
			return cmd, err
		}
		cmd.Up = &v
	}

	if flags.Has(protoflags.UCButtons) {
		v, err := m.ReadU8(false)
		if err != nil {
			return cmd, err
		}
		cmd.Buttons = &v
	}
	if flags.Has(protoflags.UCImpulse) {
		v, err := m.ReadU8(false)
		if err != nil {
			return cmd, err
		}
		cmd.Impulse = &v
	}

	if !legacy {
		v, err := m.ReadU8(false)
		if err != nil {
			return cmd, err
		}
		cmd.Msec = &v
	}

	return cmd, nil
}

func (m *Message) readMoveAxis(legacy bool) (int16, error) {
	if legacy {
		v, err := m.ReadI8(false)
		return int16(v) << 3, err
	}
	return m.ReadI16(false)
}

// WriteDeltaUserCommand mirrors ReadDeltaUserCommand: the mask byte is
// computed from which fields are present and patched in at its reserved
// slot once the rest of the command has been written.
func (m *Message) WriteDeltaUserCommand(cmd DeltaUserCommand) {
	legacy := m.Flags.IsLegacy()
	var flags protoflags.UserCommandFlags

	maskPos := len(m.Buffer)
	m.WriteU8(0) // reserved mask slot, patched below

	if cmd.Angle1 != nil {
		flags |= protoflags.UCAngle1
		m.WriteAngle16(*cmd.Angle1)
	}

	if legacy {
		var a2 float32
		if cmd.Angle2 != nil {
			a2 = *cmd.Angle2
		}
		m.WriteAngle16(a2)
		if cmd.Msec != nil {
			flags |= protoflags.UCAngle2
			m.WriteU8(*cmd.Msec)
		}
	} else if cmd.Angle2 != nil {
		flags |= protoflags.UCAngle2
		m.WriteAngle16(*cmd.Angle2)
	}

	if cmd.Angle3 != nil {
		flags |= protoflags.UCAngle3
		m.WriteAngle16(*cmd.Angle3)
	}

	if cmd.Forward != nil {
		flags |= protoflags.UCForward
		m.writeMoveAxis(*cmd.Forward, legacy)
	}
	if cmd.Side != nil {
		flags |= protoflags.UCSide
		m.writeMoveAxis(*cmd.Side, legacy)
	}
	if cmd.Up != nil {
		flags |= protoflags.UCUp
		m.writeMoveAxis(*cmd.Up, legacy)
	}

	if cmd.Buttons != nil {
		flags |= protoflags.UCButtons
		m.WriteU8(*cmd.Buttons)
	}
	if cmd.Impulse != nil {
		flags |= protoflags.UCImpulse
		m.WriteU8(*cmd.Impulse)
	}

	if !legacy {
		var msec uint8
		if cmd.Msec != nil {
			msec = *cmd.Msec
		}
		m.WriteU8(msec)
	}

	m.Buffer[maskPos] = byte(flags)
}

func (m *Message) writeMoveAxis(v int16, legacy bool) {
	if legacy {
		m.WriteI8(int8(v >> 3))
		return
	}
	m.WriteI16(v)
}

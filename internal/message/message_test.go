package message

import (
	"testing"

	"github.com/ernie/qwgo/internal/protoflags"
)

func TestRoundTripIntegers(t *testing.T) {
	for _, big := range []bool{false, true} {
		m := &Message{BigEndian: big}
		m.WriteU8(0x12)
		m.WriteI8(-5)
		m.WriteU16(0xbeef)
		m.WriteI16(-1000)
		m.WriteU32(0xdeadbeef)
		m.WriteI32(-100000)
		m.WriteF32(3.5)

		r := New(m.Buffer, 0, len(m.Buffer), big, Flags{}, TypeConnection)
		if v, err := r.ReadU8(false); err != nil || v != 0x12 {
			t.Fatalf("ReadU8 = %v, %v", v, err)
		}
		if v, err := r.ReadI8(false); err != nil || v != -5 {
			t.Fatalf("ReadI8 = %v, %v", v, err)
		}
		if v, err := r.ReadU16(false); err != nil || v != 0xbeef {
			t.Fatalf("ReadU16 = %v, %v", v, err)
		}
		if v, err := r.ReadI16(false); err != nil || v != -1000 {
			t.Fatalf("ReadI16 = %v, %v", v, err)
		}
		if v, err := r.ReadU32(false); err != nil || v != 0xdeadbeef {
			t.Fatalf("ReadU32 = %v, %v", v, err)
		}
		if v, err := r.ReadI32(false); err != nil || v != -100000 {
			t.Fatalf("ReadI32 = %v, %v", v, err)
		}
		if v, err := r.ReadF32(false); err != nil || v != 3.5 {
			t.Fatalf("ReadF32 = %v, %v", v, err)
		}
	}
}

func TestReadBeyondSize(t *testing.T) {
	m := New([]byte{1, 2}, 0, 2, false, Flags{}, TypeConnection)
	if _, err := m.ReadU32(false); err == nil {
		t.Fatal("expected ReadBeyondSizeError")
	}
}

func TestReadaheadDoesNotAdvance(t *testing.T) {
	m := New([]byte{1, 2, 3, 4}, 0, 4, false, Flags{}, TypeConnection)
	if _, err := m.ReadU32(true); err != nil {
		t.Fatal(err)
	}
	if m.Position != 0 {
		t.Fatalf("readahead advanced position to %d", m.Position)
	}
}

func TestStringByteRoundTrip(t *testing.T) {
	w := &Message{}
	w.WriteStringByte([]byte("hello"))
	r := New(w.Buffer, 0, len(w.Buffer), false, Flags{}, TypeConnection)
	sb, err := r.ReadStringByte(false)
	if err != nil {
		t.Fatal(err)
	}
	if string(sb.Bytes) != "hello" {
		t.Fatalf("got %q, want hello", sb.Bytes)
	}
}

func TestStringByteDropsPaddingBytes(t *testing.T) {
	r := New([]byte{0xff, 'h', 'i', 0}, 0, 4, false, Flags{}, TypeConnection)
	sb, err := r.ReadStringByte(false)
	if err != nil {
		t.Fatal(err)
	}
	if string(sb.Bytes) != "hi" {
		t.Fatalf("got %q, want hi", sb.Bytes)
	}
}

func TestStringVectorTerminatesAtEmpty(t *testing.T) {
	w := &Message{}
	w.WriteStringVector([]string{"a", "b", "c"})
	r := New(w.Buffer, 0, len(w.Buffer), false, Flags{}, TypeConnection)
	vec, err := r.ReadStringVector(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(vec) != 3 {
		t.Fatalf("len = %d, want 3", len(vec))
	}
}

func TestCoordinateWidth(t *testing.T) {
	w := &Message{Flags: Flags{FteExt: protoflags.FteFloatCoords}}
	w.WriteCoordinate(1.5)
	if len(w.Buffer) != 4 {
		t.Fatalf("float coordinate wrote %d bytes, want 4", len(w.Buffer))
	}

	w2 := &Message{}
	w2.WriteCoordinate(1.5)
	if len(w2.Buffer) != 2 {
		t.Fatalf("scaled coordinate wrote %d bytes, want 2", len(w2.Buffer))
	}
}

func TestAngleWidth(t *testing.T) {
	w := &Message{Flags: Flags{FteExt: protoflags.FteFloatCoords}}
	w.WriteAngle(90)
	if len(w.Buffer) != 4 {
		t.Fatalf("float angle wrote %d bytes, want 4", len(w.Buffer))
	}

	w2 := &Message{}
	w2.WriteAngle(90)
	if len(w2.Buffer) != 1 {
		t.Fatalf("scaled angle wrote %d bytes, want 1", len(w2.Buffer))
	}
}

func TestReadChallenge(t *testing.T) {
	w := &Message{}
	w.WriteStringByte([]byte("12345"))
	w.WriteU32(protoflags.TagFTEX)
	w.WriteU32(0x00008008)
	w.WriteU32(protoflags.TagMVD1)
	w.WriteU32(0x00000001)

	r := New(w.Buffer, 0, len(w.Buffer), false, Flags{}, TypeConnection)
	c, err := r.ReadChallenge()
	if err != nil {
		t.Fatal(err)
	}
	if c.Challenge != "12345" {
		t.Fatalf("challenge = %q, want 12345", c.Challenge)
	}
	if !c.Protocol.FteExt.Has(protoflags.FteTrans) || !c.Protocol.FteExt.Has(protoflags.FteFloatCoords) {
		t.Fatalf("fte_ext = %v, want TRANS|FLOATCOORDS", c.Protocol.FteExt)
	}
	if !c.Protocol.MvdExt.Has(protoflags.MvdFloatCoords) {
		t.Fatalf("mvd_ext = %v, want FLOATCOORDS", c.Protocol.MvdExt)
	}
}

func TestDeltaUserCommandRoundTripModern(t *testing.T) {
	msec := uint8(20)
	forward := int16(400)
	w := &Message{}
	w.WriteDeltaUserCommand(DeltaUserCommand{Forward: &forward, Msec: &msec})

	r := New(w.Buffer, 0, len(w.Buffer), false, Flags{}, TypeConnection)
	got, err := r.ReadDeltaUserCommand()
	if err != nil {
		t.Fatal(err)
	}
	if got.Forward == nil || *got.Forward != 400 {
		t.Fatalf("forward = %v, want 400", got.Forward)
	}
	if got.Msec == nil || *got.Msec != 20 {
		t.Fatalf("msec = %v, want 20 (modern variant always encodes msec)", got.Msec)
	}
	if got.Side != nil || got.Up != nil {
		t.Fatalf("unexpected side/up present")
	}
}

func TestDeltaUserCommandRoundTripLegacy(t *testing.T) {
	msec := uint8(33)
	side := int16(8) // legacy packs as i8<<3, so must be a multiple of 8
	w := &Message{Flags: Flags{ProtocolVersion: 26}}
	w.WriteDeltaUserCommand(DeltaUserCommand{Side: &side, Msec: &msec})

	r := New(w.Buffer, 0, len(w.Buffer), false, Flags{ProtocolVersion: 26}, TypeConnection)
	got, err := r.ReadDeltaUserCommand()
	if err != nil {
		t.Fatal(err)
	}
	if got.Side == nil || *got.Side != 8 {
		t.Fatalf("side = %v, want 8", got.Side)
	}
	if got.Msec == nil || *got.Msec != 33 {
		t.Fatalf("msec = %v, want 33", got.Msec)
	}
	if got.Angle2 == nil {
		t.Fatalf("legacy variant should always decode angle.y unconditionally")
	}
}

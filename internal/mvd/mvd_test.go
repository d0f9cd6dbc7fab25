package mvd

import (
	"testing"

	"github.com/ernie/qwgo/internal/entities"
	"github.com/ernie/qwgo/internal/message"
	"github.com/ernie/qwgo/internal/protoflags"
)

func buildFrame(t *testing.T, ms uint8, cmdByte byte, body func(w *message.Message)) []byte {
	t.Helper()
	w := &message.Message{}
	w.WriteU8(ms)
	w.WriteU8(cmdByte)
	if cmdByte&0x7 == byte(protoflags.DemoCommandMultiple) {
		w.WriteU32(1)
	}

	inner := &message.Message{}
	body(inner)

	w.WriteU32(uint32(len(inner.Buffer)))
	w.WriteBytes(inner.Buffer)
	return w.Buffer
}

func TestParseFrameAllRoutesPrint(t *testing.T) {
	buf := buildFrame(t, 10, byte(protoflags.DemoCommandAll), func(inner *message.Message) {
		inner.WriteU8(byte(protoflags.SvcPrint))
		entities.WritePrint(inner, entities.Print{From: 3, Message: message.StringByte{Bytes: []byte("hi")}})
	})

	m := message.New(buf, 0, len(buf), false, message.Flags{}, message.TypeDemo)
	d := New()
	f, err := d.ParseFrame(m)
	if err != nil {
		t.Fatal(err)
	}
	if f.Target.Command != protoflags.DemoCommandAll || f.Target.To != 0 {
		t.Fatalf("target = %+v", f.Target)
	}
	if len(f.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(f.Messages))
	}
	p, ok := f.Messages[0].Body.(entities.Print)
	if !ok || string(p.Message.Bytes) != "hi" {
		t.Fatalf("body = %+v", f.Messages[0].Body)
	}
	if d.Time() != 0.01 {
		t.Fatalf("time = %v, want 0.01", d.Time())
	}
}

func TestParseFrameMultipleToZeroSkips(t *testing.T) {
	w := &message.Message{}
	w.WriteU8(5)
	w.WriteU8(byte(protoflags.DemoCommandMultiple))
	w.WriteU32(0) // to == 0: nobody

	inner := &message.Message{}
	inner.WriteU8(byte(protoflags.SvcPrint))
	entities.WritePrint(inner, entities.Print{From: 1, Message: message.StringByte{Bytes: []byte("x")}})

	w.WriteU32(uint32(len(inner.Buffer)))
	w.WriteBytes(inner.Buffer)

	m := message.New(w.Buffer, 0, len(w.Buffer), false, message.Flags{}, message.TypeDemo)
	d := New()
	f, err := d.ParseFrame(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Messages) != 0 {
		t.Fatalf("messages = %d, want 0 (addressed to nobody)", len(f.Messages))
	}
	if !m.AtEnd() {
		t.Fatalf("cursor not advanced past skipped sub-packet")
	}
}

func TestParseFrameSetReturnsImmediately(t *testing.T) {
	w := &message.Message{}
	w.WriteU8(1)
	w.WriteU8(byte(protoflags.DemoCommandSet))
	w.WriteU32(100)
	w.WriteU32(200)

	m := message.New(w.Buffer, 0, len(w.Buffer), false, message.Flags{}, message.TypeDemo)
	d := New()
	f, err := d.ParseFrame(m)
	if err != nil {
		t.Fatal(err)
	}
	if !f.IsSet || f.SetIncoming != 100 || f.SetOutgoing != 200 {
		t.Fatalf("frame = %+v", f)
	}
}

func TestParseFrameEndOfDemo(t *testing.T) {
	buf := buildFrame(t, 0, byte(protoflags.DemoCommandAll), func(inner *message.Message) {
		inner.WriteU8(0x45)
		inner.WriteBytes([]byte("ndOfDemo"))
		inner.WriteU8(0)
	})

	m := message.New(buf, 0, len(buf), false, message.Flags{}, message.TypeDemo)
	d := New()
	f, err := d.ParseFrame(m)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Finished {
		t.Fatal("Finished not set")
	}
	if len(f.Messages) != 0 {
		t.Fatalf("messages = %d, want 0", len(f.Messages))
	}
}

func TestParseFrameSingleRoutesByShiftedCommandByte(t *testing.T) {
	// Single command: low 3 bits = DemoCommandSingle(4), upper bits = target.
	cmdByte := byte(7<<3) | byte(protoflags.DemoCommandSingle)
	buf := buildFrame(t, 1, cmdByte, func(inner *message.Message) {
		inner.WriteU8(byte(protoflags.SvcNop))
	})

	m := message.New(buf, 0, len(buf), false, message.Flags{}, message.TypeDemo)
	d := New()
	f, err := d.ParseFrame(m)
	if err != nil {
		t.Fatal(err)
	}
	if f.Target.To != 7 || f.Target.Command != protoflags.DemoCommandSingle {
		t.Fatalf("target = %+v", f.Target)
	}
}

func TestQwdCommandByteIsFatal(t *testing.T) {
	w := &message.Message{}
	w.WriteU8(1)
	w.WriteU8(byte(protoflags.DemoCommandCommand))

	m := message.New(w.Buffer, 0, len(w.Buffer), false, message.Flags{}, message.TypeDemo)
	d := New()
	_, err := d.ParseFrame(m)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestTimeMonotonic(t *testing.T) {
	var all []byte
	for _, ms := range []uint8{5, 10, 0, 20} {
		buf := buildFrame(t, ms, byte(protoflags.DemoCommandAll), func(inner *message.Message) {})
		all = append(all, buf...)
	}

	m := message.New(all, 0, len(all), false, message.Flags{}, message.TypeDemo)
	d := New()
	last := -1.0
	for i := 0; i < 4; i++ {
		if _, err := d.ParseFrame(m); err != nil {
			t.Fatal(err)
		}
		if d.Time() < last {
			t.Fatalf("time decreased: %v < %v", d.Time(), last)
		}
		last = d.Time()
	}
}

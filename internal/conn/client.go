// Package conn implements the client-side QuakeWorld connection state
// machine: the challenge/connect/accepted/connected handshake, the
// reliable-sequence channel with piggybacked acknowledgements, and the
// composition of client command frames in response to incoming server
// messages.
package conn

import (
	"fmt"
	"strings"

	"github.com/ernie/qwgo/internal/crc"
	"github.com/ernie/qwgo/internal/entities"
	"github.com/ernie/qwgo/internal/message"
	"github.com/ernie/qwgo/internal/protoflags"
	"github.com/ernie/qwgo/internal/userinfo"
)

// State enumerates the client connection's lifecycle.
type State int

const (
	StateInitialized State = iota
	StateChallengeSent
	StateChallengeReceived
	StateConnectionAccepted
	StateConnected
	StateDisconnected
	StateError
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "Initialized"
	case StateChallengeSent:
		return "ChallengeSent"
	case StateChallengeReceived:
		return "ChallengeReceived"
	case StateConnectionAccepted:
		return "ConnectionAccepted"
	case StateConnected:
		return "Connected"
	case StateDisconnected:
		return "Disconnected"
	case StateError:
		return "Error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Client drives the handshake and reliable channel for one server
// connection. It owns no socket; HandlePacket/HandleTimeout take and
// return byte slices for the caller to ship over its own transport.
type Client struct {
	State        State
	Port         int
	Channel      *Channel
	Flags        message.Flags
	Serverdata   *entities.Serverdata
	MapCRC       uint16
	PrespawnSent bool
	Userinfo     *userinfo.Bag

	// LastMessages holds the server messages decoded from the most recent
	// connected datagram, for callers (e.g. a world-state view) that want
	// to fold them without re-decoding.
	LastMessages []entities.ServerMessage

	challenge string
}

// NewClient returns a Client in StateInitialized, with its userinfo bag
// seeded with a client-identifier key.
func NewClient(port int) *Client {
	bag := userinfo.New()
	bag.Set("*qwgo_version", "1.0")
	return &Client{
		State:    StateInitialized,
		Port:     port,
		Channel:  NewChannel(),
		Userinfo: bag,
	}
}

// Connect begins the handshake, returning the connectionless getchallenge
// datagram and transitioning to StateChallengeSent.
func (c *Client) Connect() []byte {
	c.State = StateChallengeSent
	return challengeDatagram()
}

func challengeDatagram() []byte {
	return []byte("\xff\xff\xff\xffgetchallenge\n")
}

// HandleTimeout produces the keep-alive datagram appropriate to the
// current state: a re-sent challenge while waiting on one, a sequenced
// empty move once connected, nothing otherwise.
func (c *Client) HandleTimeout() []byte {
	switch c.State {
	case StateChallengeSent:
		return challengeDatagram()
	case StateConnected:
		return c.sequencedEmptyMove()
	default:
		return nil
	}
}

// HandlePacket processes one inbound datagram and returns the client's
// reply, if any. Errors are returned to the caller without attempting to
// resynchronize; the next inbound packet is parsed fresh.
func (c *Client) HandlePacket(buf []byte) ([]byte, error) {
	if message.IsOOB(buf) {
		return c.handleOOB(buf)
	}
	return c.handleConnected(buf)
}

func (c *Client) handleOOB(buf []byte) ([]byte, error) {
	if len(buf) < 5 {
		c.State = StateError
		return nil, fmt.Errorf("conn: short out-of-band packet")
	}
	switch buf[4] {
	case 'c':
		m := message.New(buf, 5, len(buf)-5, false, message.Flags{}, message.TypeConnection)
		ch, err := m.ReadChallenge()
		if err != nil {
			c.State = StateError
			return nil, fmt.Errorf("conn: read challenge: %w", err)
		}
		c.challenge = ch.Challenge
		c.Flags = ch.Protocol
		c.State = StateChallengeReceived
		return c.composeConnect(), nil
	case 'j':
		c.State = StateConnectionAccepted
		return c.firstClientDatagram(), nil
	default:
		c.State = StateError
		return nil, fmt.Errorf("conn: unknown out-of-band command %q", buf[4])
	}
}

// composeConnect builds the connect line plus one pext advertisement line
// per negotiated extension family, all inside a single connectionless
// packet.
func (c *Client) composeConnect() []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "connect %d %d %s \"%s\"\n",
		protoflags.StandardProtocolVersion, c.Port, c.challenge, c.Userinfo.String())
	for _, line := range extensionAdvertisements(c.Flags) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return append([]byte{0xff, 0xff, 0xff, 0xff}, []byte(sb.String())...)
}

// extensionAdvertisements renders one "pext <tag hex> <bits hex>" line per
// non-zero negotiated extension bitset, shared by the initial connect line
// and the "cmd pext_" stufftext echo.
func extensionAdvertisements(f message.Flags) []string {
	var out []string
	if f.FteExt != 0 {
		out = append(out, fmt.Sprintf("pext 0x%x 0x%x", protoflags.TagFTEX, uint32(f.FteExt)))
	}
	if f.FteExt2 != 0 {
		out = append(out, fmt.Sprintf("pext 0x%x 0x%x", protoflags.TagFTE2, uint32(f.FteExt2)))
	}
	if f.MvdExt != 0 {
		out = append(out, fmt.Sprintf("pext 0x%x 0x%x", protoflags.TagMVD1, uint32(f.MvdExt)))
	}
	return out
}

// firstClientDatagram is sent once on entering StateConnectionAccepted:
// a "new" command, a Nop, and an empty move.
func (c *Client) firstClientDatagram() []byte {
	seq, ack := c.Channel.Unreliable()
	out := &message.Message{Flags: c.Flags}
	out.WriteSequencePair(seq, ack)
	out.WriteU16(uint16(c.Port))
	out.WriteU8(byte(protoflags.ClcStringCommand))
	out.WriteString("new")
	out.WriteU8(byte(protoflags.ClcNop))
	appendEmptyMove(out, seq)
	return out.Buffer
}

func (c *Client) sequencedEmptyMove() []byte {
	seq, ack := c.Channel.Unreliable()
	out := &message.Message{Flags: c.Flags}
	out.WriteSequencePair(seq, ack)
	out.WriteU16(uint16(c.Port))
	appendEmptyMove(out, seq)
	return out.Buffer
}

func (c *Client) handleConnected(buf []byte) ([]byte, error) {
	m := message.New(buf, 0, len(buf), false, c.Flags, message.TypeConnection)
	sp, err := m.ReadSequencePair()
	if err != nil {
		c.State = StateError
		return nil, fmt.Errorf("conn: read sequence pair: %w", err)
	}

	seqRaw := sp.Sequence
	if sp.Reliable {
		seqRaw |= reliableBit
	}
	ackRaw := sp.Ack
	if sp.AckReliable {
		ackRaw |= reliableBit
	}
	c.Channel.Received(seqRaw, ackRaw)

	var messages []entities.ServerMessage
	for !m.AtEnd() {
		sm, err := entities.DecodeOne(m)
		if err != nil {
			c.State = StateError
			return nil, fmt.Errorf("conn: decode server message: %w", err)
		}
		messages = append(messages, sm)
		if sd, ok := sm.Body.(entities.Serverdata); ok {
			c.Flags.FteExt = sd.FteExt
			c.Flags.FteExt2 = sd.FteExt2
			c.Flags.MvdExt = sd.MvdExt
			if sd.Protocol != 0 {
				c.Flags.ProtocolVersion = sd.Protocol
			}
			m.Flags = c.Flags
		}
	}
	c.LastMessages = messages

	switch c.State {
	case StateConnectionAccepted:
		c.State = StateConnected
		return c.sequencedEmptyMove(), nil
	case StateConnected:
		cmds := c.composeResponse(messages)
		seq, ack := c.Channel.Unreliable()
		out := &message.Message{Flags: c.Flags}
		out.WriteSequencePair(seq, ack)
		out.WriteU16(uint16(c.Port))
		for _, cmd := range cmds {
			out.WriteU8(byte(protoflags.ClcStringCommand))
			out.WriteString(cmd)
		}
		appendEmptyMove(out, seq)
		return out.Buffer, nil
	default:
		c.State = StateError
		return nil, fmt.Errorf("conn: connected datagram in unexpected state %s", c.State)
	}
}

// appendEmptyMove writes a Move opcode carrying three zero delta user
// commands (msec=0) and patches the reserved checksum byte once the full
// move payload is known.
func appendEmptyMove(m *message.Message, sequence uint32) {
	m.WriteU8(byte(protoflags.ClcMove))
	checksumPos := len(m.Buffer)
	m.WriteU8(0)
	zeroMsec := uint8(0)
	empty := message.DeltaUserCommand{Msec: &zeroMsec}
	m.WriteDeltaUserCommand(empty)
	m.WriteDeltaUserCommand(empty)
	m.WriteDeltaUserCommand(empty)

	sum := crc.MoveChecksum(m.Buffer, checksumPos, len(m.Buffer), sequence)
	m.Buffer[checksumPos] = byte(sum)
}

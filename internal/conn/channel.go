package conn

// ReliableState enumerates a half-sequence's outstanding-reliable status.
type ReliableState int

const (
	ReliableNone ReliableState = iota
	ReliableSend
	ReliableAck
	ReliableReceived
)

// halfSequence tracks one direction's sequence counter and reliable latch.
type halfSequence struct {
	Sequence      uint32
	LastReliable  uint32
	ReliableState ReliableState
}

const reliableBit uint32 = 1 << 31

// Channel implements the reliable/unreliable sequence pairing: at most one
// outstanding unacknowledged reliable frame may be in flight at a time.
type Channel struct {
	outgoing     halfSequence
	acknowledged halfSequence
	incomingRel  bool
}

// NewChannel returns a zeroed Channel ready to emit its first datagram.
func NewChannel() *Channel {
	return &Channel{}
}

// CanReliable reports whether a new reliable frame may be sent: false iff
// the outgoing half-sequence already has one in flight.
func (c *Channel) CanReliable() bool {
	return c.outgoing.ReliableState != ReliableSend
}

// Unreliable increments the outgoing sequence and returns the
// (sequence, ack) header word pair for a plain unreliable datagram.
func (c *Channel) Unreliable() (sequence, ack uint32) {
	c.outgoing.Sequence++
	return c.header()
}

// Reliable behaves like Unreliable but also sets the outgoing reliable bit
// and transitions the outgoing half-sequence to ReliableSend. Callers must
// check CanReliable first; calling this while a reliable is already in
// flight would silently stomp the prior one's ack tracking.
func (c *Channel) Reliable() (sequence, ack uint32) {
	c.outgoing.Sequence++
	c.outgoing.LastReliable = c.outgoing.Sequence
	c.outgoing.ReliableState = ReliableSend
	sequence, ack = c.header()
	return sequence | reliableBit, ack
}

func (c *Channel) header() (sequence, ack uint32) {
	sequence = c.outgoing.Sequence
	ack = c.acknowledged.Sequence
	if c.incomingRel {
		ack |= reliableBit
	}
	return sequence, ack
}

// Received processes an inbound (sequence, ack) header pair: seqIn/ackIn
// carry their reliable bits in bit 31, matching the wire encoding.
func (c *Channel) Received(seqIn, ackIn uint32) {
	seq := seqIn &^ reliableBit
	seqRel := seqIn&reliableBit != 0
	ackRel := ackIn&reliableBit != 0

	c.acknowledged.Sequence = seq
	if seqRel {
		c.acknowledged.ReliableState = ReliableReceived
	}
	c.incomingRel = seqRel

	if ackRel {
		c.outgoing.ReliableState = ReliableAck
		c.outgoing.LastReliable = 0
	}
}

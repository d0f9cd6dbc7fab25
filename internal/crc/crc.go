// Package crc implements the QuakeWorld move-packet checksum: a block
// CRC-16 walk plus a sequence-mixing step that folds the outgoing packet
// sequence number into the checksummed bytes.
package crc

// Block computes the CRC-16 over the first length bytes of buf.
func Block(buf []byte, length int) uint16 {
	crc := uint16(0xffff)
	if length > len(buf) {
		length = len(buf)
	}
	for i := 0; i < length; i++ {
		crc = (crc << 8) ^ table16[(byte(crc>>8)^buf[i])]
	}
	return crc
}

// MoveChecksum computes the packet-move checksum used to protect a client
// command frame: the bytes of buf[start:stop] (capped at 60), followed by
// four mixer bytes derived from sequence and the 1024-entry mixing table.
func MoveChecksum(buf []byte, start, stop int, sequence uint32) uint16 {
	length := stop - start
	if length > 60 {
		length = 60
	}

	var chkb [64]byte
	copy(chkb[:length], buf[start:start+length])

	p := int(sequence) % (len(seqTable) - 4)
	chkb[length] = byte(sequence&0xff) ^ seqTable[p]
	chkb[length+1] = seqTable[p+1]
	chkb[length+2] = byte(sequence>>8) ^ seqTable[p+2]
	chkb[length+3] = seqTable[p+3]
	length += 4

	return Block(chkb[:], length)
}

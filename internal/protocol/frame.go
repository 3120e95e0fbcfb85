// Package protocol turns semantic arm commands into framed byte sequences
// for the actuator link.
package protocol

const (
	headerHigh = 0xAA
	headerLow  = 0x55
	trailer    = 0x9A
)

// Frame wraps an ASCII payload into the wire format: a fixed two byte
// header, the payload bytes and a fixed trailer. There is no length field
// and no checksum; the receiver knows the payload width from the opcode.
// Framing is pure and total over any input.
func Frame(payload string) []byte {
	frame := make([]byte, 0, len(payload)+3)
	frame = append(frame, headerHigh, headerLow)
	frame = append(frame, payload...)
	frame = append(frame, trailer)

	return frame
}

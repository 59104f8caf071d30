package protocol

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	// FrameHeaderSize is the size of the frame header: type, flags and a
	// big-endian payload length.
	FrameHeaderSize = 4

	// MaxPayloadSize is the largest payload the length field can carry.
	MaxPayloadSize = 1<<16 - 1
)

// FrameType says what a frame's payload holds.
type FrameType uint8

const (
	FrameEvent   FrameType = 0x01 // Client → Server: one Event
	FramePatches FrameType = 0x02 // Server → Client: a PatchesFrame
	FrameError   FrameType = 0x05 // Server → Client: an ErrorMessage
)

func (ft FrameType) String() string {
	switch ft {
	case FrameEvent:
		return "Event"
	case FramePatches:
		return "Patches"
	case FrameError:
		return "Error"
	}
	return "Unknown"
}

// FrameFlags modify how a frame is processed.
type FrameFlags uint8

// FlagFinal marks the last patches frame of one flush.
const FlagFinal FrameFlags = 0x04

// Has reports whether flag is set.
func (ff FrameFlags) Has(flag FrameFlags) bool {
	return ff&flag != 0
}

var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is one websocket message.
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// NewFrame creates a frame with no flags.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode returns the header followed by the payload.
func (f *Frame) Encode() ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, 0, FrameHeaderSize+len(f.Payload))
	buf = append(buf, byte(f.Type), byte(f.Flags))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(f.Payload)))
	return append(buf, f.Payload...), nil
}

// DecodeFrame parses one message. Bytes past the declared payload length
// are ignored; the payload is copied out of data.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	end := FrameHeaderSize + int(binary.BigEndian.Uint16(data[2:]))
	if len(data) < end {
		return nil, io.ErrUnexpectedEOF
	}

	f := &Frame{Type: FrameType(data[0]), Flags: FrameFlags(data[1])}
	switch f.Type {
	case FrameEvent, FramePatches, FrameError:
	default:
		return nil, ErrInvalidFrameType
	}
	f.Payload = append([]byte(nil), data[FrameHeaderSize:end]...)
	return f, nil
}

package protocol

import (
	"errors"
	"fmt"
	"io"
)

const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the largest payload a 24-bit length can describe.
	MaxPayloadSize = 1<<24 - 1
)

// FrameType identifies the payload carried by a frame.
type FrameType uint8

const (
	FrameSnapshot FrameType = 0x01 // Server → client: full tree
	FramePatches  FrameType = 0x02 // Server → client: patch list
	FrameResync   FrameType = 0x03 // Client → server: last applied sequence
	FrameError    FrameType = 0x04 // Either direction
)

func (ft FrameType) String() string {
	switch ft {
	case FrameSnapshot:
		return "Snapshot"
	case FramePatches:
		return "Patches"
	case FrameResync:
		return "Resync"
	case FrameError:
		return "Error"
	default:
		return fmt.Sprintf("FrameType(%d)", uint8(ft))
	}
}

func (ft FrameType) valid() bool {
	return ft >= FrameSnapshot && ft <= FrameError
}

// Frame errors.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is a typed, length-delimited payload.
type Frame struct {
	Type    FrameType
	Payload []byte
}

// NewFrame creates a frame.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode returns the header followed by the payload. It panics if the
// payload exceeds MaxPayloadSize; use WriteFrame to get an error instead.
func (f *Frame) Encode() []byte {
	n := len(f.Payload)
	if n > MaxPayloadSize {
		panic(ErrFrameTooLarge)
	}
	buf := make([]byte, FrameHeaderSize+n)
	buf[0] = byte(f.Type)
	buf[1] = byte(n >> 16)
	buf[2] = byte(n >> 8)
	buf[3] = byte(n)
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf
}

// DecodeFrame decodes one complete frame. Bytes after the frame are an
// error.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	ft, n, err := parseHeader(data[:FrameHeaderSize])
	if err != nil {
		return nil, err
	}
	switch {
	case len(data) < FrameHeaderSize+n:
		return nil, io.ErrUnexpectedEOF
	case len(data) > FrameHeaderSize+n:
		return nil, ErrTrailingBytes
	}
	payload := make([]byte, n)
	copy(payload, data[FrameHeaderSize:])
	return &Frame{Type: ft, Payload: payload}, nil
}

// ReadFrame reads one frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	var header [FrameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	ft, n, err := parseHeader(header[:])
	if err != nil {
		return nil, err
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return &Frame{Type: ft, Payload: payload}, nil
}

// WriteFrame writes f to w.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxPayloadSize {
		return ErrFrameTooLarge
	}
	_, err := w.Write(f.Encode())
	return err
}

func parseHeader(h []byte) (FrameType, int, error) {
	ft := FrameType(h[0])
	if !ft.valid() {
		return 0, 0, fmt.Errorf("%w: 0x%02x", ErrInvalidFrameType, h[0])
	}
	return ft, int(h[1])<<16 | int(h[2])<<8 | int(h[3]), nil
}

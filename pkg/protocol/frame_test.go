package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	f := NewFrame(FramePatches, []byte("payload"))
	data := f.Encode()

	if len(data) != FrameHeaderSize+7 {
		t.Fatalf("len(Encode()) = %d, want %d", len(data), FrameHeaderSize+7)
	}
	if !bytes.Equal(data[:4], []byte{0x02, 0x00, 0x00, 0x07}) {
		t.Errorf("header = % x, want 02 00 00 07", data[:4])
	}

	got, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if got.Type != FramePatches || string(got.Payload) != "payload" {
		t.Errorf("DecodeFrame() = %v %q", got.Type, got.Payload)
	}
}

func TestFrameLargePayload(t *testing.T) {
	payload := bytes.Repeat([]byte{'x'}, 70000)
	var buf bytes.Buffer
	if err := WriteFrame(&buf, NewFrame(FrameSnapshot, payload)); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if len(got.Payload) != 70000 {
		t.Errorf("payload length = %d, want 70000", len(got.Payload))
	}
}

func TestFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte{0x01, 0x00}, io.ErrUnexpectedEOF},
		{"short payload", []byte{0x01, 0x00, 0x00, 0x05, 'a'}, io.ErrUnexpectedEOF},
		{"trailing bytes", []byte{0x01, 0x00, 0x00, 0x01, 'a', 'b'}, ErrTrailingBytes},
		{"unknown type", []byte{0x09, 0x00, 0x00, 0x00}, ErrInvalidFrameType},
		{"zero type", []byte{0x00, 0x00, 0x00, 0x00}, ErrInvalidFrameType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFrame(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("DecodeFrame() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	f := NewFrame(FrameSnapshot, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(io.Discard, f); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("WriteFrame() error = %v, want ErrFrameTooLarge", err)
	}
}

func TestReadFrameStream(t *testing.T) {
	var buf bytes.Buffer
	WriteFrame(&buf, NewFrame(FrameResync, EncodeResync(&ResyncRequest{LastSeq: 4})))
	WriteFrame(&buf, NewFrame(FrameError, EncodeErrorMessage(NewFatalError(ErrCodeSequenceGap, "gone"))))

	f1, err := ReadFrame(&buf)
	if err != nil || f1.Type != FrameResync {
		t.Fatalf("first frame = %v, %v", f1, err)
	}
	req, err := DecodeResync(f1.Payload)
	if err != nil || req.LastSeq != 4 {
		t.Errorf("DecodeResync() = %+v, %v", req, err)
	}

	f2, err := ReadFrame(&buf)
	if err != nil || f2.Type != FrameError {
		t.Fatalf("second frame = %v, %v", f2, err)
	}
	em, err := DecodeErrorMessage(f2.Payload)
	if err != nil {
		t.Fatalf("DecodeErrorMessage() error = %v", err)
	}
	if em.Error() != "fatal: SequenceGap: gone" {
		t.Errorf("Error() = %q", em.Error())
	}

	if _, err := ReadFrame(&buf); err != io.EOF {
		t.Errorf("ReadFrame() at end = %v, want io.EOF", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	if FrameSnapshot.String() != "Snapshot" || FrameType(0x42).String() != "FrameType(66)" {
		t.Errorf("unexpected FrameType strings: %s %s", FrameSnapshot, FrameType(0x42))
	}
}

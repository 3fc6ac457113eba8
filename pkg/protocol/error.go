package protocol

import "fmt"

// ErrorCode identifies the kind of error carried by an error frame.
type ErrorCode uint16

const (
	ErrCodeUnknown      ErrorCode = 0x0000
	ErrCodeInvalidFrame ErrorCode = 0x0001 // Peer sent a malformed frame
	ErrCodeSequenceGap  ErrorCode = 0x0002 // Resync impossible; a snapshot follows
	ErrCodeUpdateFailed ErrorCode = 0x0003 // Server view stopped updating
	ErrCodeServerError  ErrorCode = 0x0100
)

func (ec ErrorCode) String() string {
	switch ec {
	case ErrCodeUnknown:
		return "Unknown"
	case ErrCodeInvalidFrame:
		return "InvalidFrame"
	case ErrCodeSequenceGap:
		return "SequenceGap"
	case ErrCodeUpdateFailed:
		return "UpdateFailed"
	case ErrCodeServerError:
		return "ServerError"
	default:
		return fmt.Sprintf("ErrorCode(0x%04x)", uint16(ec))
	}
}

// ErrorMessage is the payload of an error frame.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
	Fatal   bool // The sender closes the connection after this frame
}

// NewError creates a non-fatal error message.
func NewError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message}
}

// NewFatalError creates a fatal error message.
func NewFatalError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message, Fatal: true}
}

// EncodeErrorMessage encodes an error frame payload.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteUint16(uint16(em.Code))
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an error frame payload.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: ErrorCode(code), Message: msg, Fatal: fatal}, d.Finish()
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	if em.Fatal {
		return "fatal: " + em.Code.String() + ": " + em.Message
	}
	return em.Code.String() + ": " + em.Message
}

package protocol

// ErrorCode tells the client why an event or frame was rejected.
type ErrorCode uint16

const (
	ErrUnknown        ErrorCode = 0x0000
	ErrInvalidFrame   ErrorCode = 0x0001 // Malformed or unexpected frame
	ErrInvalidEvent   ErrorCode = 0x0002 // Malformed event payload
	ErrUnknownNode    ErrorCode = 0x0003 // Event for a node that is not in the tree
	ErrHandlerPanic   ErrorCode = 0x0004 // A listener panicked
	ErrCascadeTooDeep ErrorCode = 0x0005 // Notification cascade exceeded its limit
	ErrQueueFull      ErrorCode = 0x0006 // Session event queue overflowed
	ErrServerError    ErrorCode = 0x0100 // Anything else
)

var errorCodeNames = map[ErrorCode]string{
	ErrInvalidFrame:   "InvalidFrame",
	ErrInvalidEvent:   "InvalidEvent",
	ErrUnknownNode:    "UnknownNode",
	ErrHandlerPanic:   "HandlerPanic",
	ErrCascadeTooDeep: "CascadeTooDeep",
	ErrQueueFull:      "QueueFull",
	ErrServerError:    "ServerError",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "Unknown"
}

// ErrorMessage is the payload of an error frame.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
	Fatal   bool // The server closes the connection after sending it
}

// NewError creates a non-fatal ErrorMessage.
func NewError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message}
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	s := em.Code.String() + ": " + em.Message
	if em.Fatal {
		return "fatal: " + s
	}
	return s
}

// EncodeErrorMessage encodes an error frame payload: a big-endian code,
// the message and the fatal flag.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	var w writer
	w.code(em.Code)
	w.str(em.Message)
	w.flag(em.Fatal)
	return w.buf
}

// DecodeErrorMessage decodes an error frame payload.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	r := &reader{buf: data}
	em := &ErrorMessage{
		Code:    r.code(),
		Message: r.str(),
		Fatal:   r.flag(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return em, nil
}

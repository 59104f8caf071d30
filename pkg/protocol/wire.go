package protocol

import (
	"encoding/binary"
	"errors"
	"io"
)

// Decoding limits. A peer cannot make the server allocate more than this
// from a single length prefix.
const (
	// MaxStringSize bounds one decoded tag, text, event name or value.
	MaxStringSize = 4 * 1024 * 1024

	// MaxPatchCount bounds the patches in one frame.
	MaxPatchCount = 100_000
)

var (
	ErrVarintOverflow     = errors.New("protocol: varint overflow")
	ErrAllocationTooLarge = errors.New("protocol: string exceeds size limit")
	ErrCollectionTooLarge = errors.New("protocol: patch count exceeds limit")
)

// writer appends the fields of axon messages to a byte slice.
type writer struct {
	buf []byte
}

func (w *writer) id(v uint64) {
	w.buf = binary.AppendUvarint(w.buf, v)
}

func (w *writer) str(s string) {
	w.buf = binary.AppendUvarint(w.buf, uint64(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *writer) op(op PatchOp) {
	w.buf = append(w.buf, byte(op))
}

func (w *writer) code(c ErrorCode) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, uint16(c))
}

func (w *writer) flag(b bool) {
	if b {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// reader consumes the fields written by writer. The first failure sticks:
// later reads return zero values and err reports what went wrong.
type reader struct {
	buf []byte
	err error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
	r.buf = nil
}

func (r *reader) id() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf)
	switch {
	case n == 0:
		r.fail(io.ErrUnexpectedEOF)
		return 0
	case n < 0:
		r.fail(ErrVarintOverflow)
		return 0
	}
	r.buf = r.buf[n:]
	return v
}

func (r *reader) str() string {
	n := r.id()
	if r.err != nil {
		return ""
	}
	if n > MaxStringSize {
		r.fail(ErrAllocationTooLarge)
		return ""
	}
	if n > uint64(len(r.buf)) {
		r.fail(io.ErrUnexpectedEOF)
		return ""
	}
	s := string(r.buf[:n])
	r.buf = r.buf[n:]
	return s
}

func (r *reader) byte() byte {
	if r.err != nil {
		return 0
	}
	if len(r.buf) == 0 {
		r.fail(io.ErrUnexpectedEOF)
		return 0
	}
	b := r.buf[0]
	r.buf = r.buf[1:]
	return b
}

func (r *reader) code() ErrorCode {
	if r.err != nil {
		return 0
	}
	if len(r.buf) < 2 {
		r.fail(io.ErrUnexpectedEOF)
		return 0
	}
	c := binary.BigEndian.Uint16(r.buf)
	r.buf = r.buf[2:]
	return ErrorCode(c)
}

func (r *reader) flag() bool {
	return r.byte() != 0
}

// count reads a patch count. Every patch takes at least one byte, so a
// count larger than the rest of the buffer is truncated input.
func (r *reader) count() int {
	n := r.id()
	if r.err != nil {
		return 0
	}
	if n > MaxPatchCount {
		r.fail(ErrCollectionTooLarge)
		return 0
	}
	if n > uint64(len(r.buf)) {
		r.fail(io.ErrUnexpectedEOF)
		return 0
	}
	return int(n)
}

package protocol

// Event is a client → server event observed on a listened node.
type Event struct {
	ID    uint64 // Node the listener was registered on
	Type  string // Event name, e.g. "click"
	Key   string // Key name for keyboard events
	Value string // Value field of the node for input events
}

// EncodeEvent encodes an event payload.
func EncodeEvent(ev *Event) []byte {
	var w writer
	w.id(ev.ID)
	w.str(ev.Type)
	w.str(ev.Key)
	w.str(ev.Value)
	return w.buf
}

// DecodeEvent decodes an event payload.
func DecodeEvent(data []byte) (*Event, error) {
	r := &reader{buf: data}
	ev := &Event{
		ID:    r.id(),
		Type:  r.str(),
		Key:   r.str(),
		Value: r.str(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return ev, nil
}

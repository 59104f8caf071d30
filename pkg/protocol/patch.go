package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// PatchOp is the type of patch operation.
type PatchOp uint8

// Patch operation constants.
const (
	PatchCreateElement PatchOp = 0x01 // Create detached element (ID, Tag)
	PatchCreateText    PatchOp = 0x02 // Create detached text node (ID, Text)
	PatchInsert        PatchOp = 0x03 // Move ID into Parent before Ref (0 appends)
	PatchRemove        PatchOp = 0x04 // Detach ID from Parent
	PatchReplace       PatchOp = 0x05 // Put ID in place of Old within Parent
	PatchListen        PatchOp = 0x06 // Forward Event from ID to the server
	PatchSetValue      PatchOp = 0x07 // Set value field of ID to Text
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case PatchCreateElement:
		return "CreateElement"
	case PatchCreateText:
		return "CreateText"
	case PatchInsert:
		return "Insert"
	case PatchRemove:
		return "Remove"
	case PatchReplace:
		return "Replace"
	case PatchListen:
		return "Listen"
	case PatchSetValue:
		return "SetValue"
	default:
		return "Unknown"
	}
}

// ErrUnknownPatchOp is returned when decoding an unrecognized operation.
var ErrUnknownPatchOp = errors.New("protocol: unknown patch op")

// Patch represents a single presentation-tree operation.
type Patch struct {
	Op     PatchOp
	ID     uint64 // Target node
	Parent uint64 // Parent for Insert/Remove/Replace
	Ref    uint64 // Insert reference node, 0 to append
	Old    uint64 // Node being replaced
	Tag    string // Element tag for CreateElement
	Text   string // Content for CreateText, value for SetValue
	Event  string // Event name for Listen
}

// PatchesFrame represents a batch of patches with sequence number.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// patchField names one wire field of a Patch.
type patchField uint8

const (
	fieldID patchField = iota
	fieldParent
	fieldRef
	fieldOld
	fieldTag
	fieldText
	fieldEvent
)

// patchLayout lists, per op, the fields that follow the op byte in wire
// order. Ops missing from the table are invalid.
var patchLayout = map[PatchOp][]patchField{
	PatchCreateElement: {fieldID, fieldTag},
	PatchCreateText:    {fieldID, fieldText},
	PatchInsert:        {fieldParent, fieldID, fieldRef},
	PatchRemove:        {fieldParent, fieldID},
	PatchReplace:       {fieldParent, fieldOld, fieldID},
	PatchListen:        {fieldID, fieldEvent},
	PatchSetValue:      {fieldID, fieldText},
}

func (p *Patch) node(f patchField) *uint64 {
	switch f {
	case fieldParent:
		return &p.Parent
	case fieldRef:
		return &p.Ref
	case fieldOld:
		return &p.Old
	case fieldID:
		return &p.ID
	}
	return nil
}

func (p *Patch) label(f patchField) *string {
	switch f {
	case fieldTag:
		return &p.Tag
	case fieldText:
		return &p.Text
	case fieldEvent:
		return &p.Event
	}
	return nil
}

func (w *writer) patch(p *Patch) {
	w.op(p.Op)
	for _, f := range patchLayout[p.Op] {
		if id := p.node(f); id != nil {
			w.id(*id)
		} else {
			w.str(*p.label(f))
		}
	}
}

func (r *reader) patch(p *Patch) {
	p.Op = PatchOp(r.byte())
	if r.err != nil {
		return
	}
	layout, ok := patchLayout[p.Op]
	if !ok {
		r.fail(fmt.Errorf("%w: 0x%02x", ErrUnknownPatchOp, byte(p.Op)))
		return
	}
	for _, f := range layout {
		if id := p.node(f); id != nil {
			*id = r.id()
		} else {
			*p.label(f) = r.str()
		}
	}
}

// EncodePatches encodes a patches frame payload.
func EncodePatches(pf *PatchesFrame) []byte {
	w := &writer{buf: make([]byte, 0, 64*len(pf.Patches)+8)}
	w.id(pf.Seq)
	w.id(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		w.patch(&pf.Patches[i])
	}
	return w.buf
}

// DecodePatches decodes a patches frame payload.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	r := &reader{buf: data}
	pf := &PatchesFrame{Seq: r.id()}
	pf.Patches = make([]Patch, r.count())
	for i := range pf.Patches {
		r.patch(&pf.Patches[i])
		if r.err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, r.err)
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return pf, nil
}

// ChunkPatches splits patches into frames whose encoded payloads fit in
// MaxPayloadSize. Frames are numbered consecutively from seq and the last
// one carries FlagFinal. A single patch too large for a frame is an error.
func ChunkPatches(seq uint64, patches []Patch) ([]*Frame, error) {
	// Header room: seq and count varints take at most 10 bytes each.
	const budget = MaxPayloadSize - 2*binary.MaxVarintLen64

	var frames []*Frame
	start, size := 0, 0
	emit := func(end int) {
		payload := EncodePatches(&PatchesFrame{Seq: seq, Patches: patches[start:end]})
		frames = append(frames, NewFrame(FramePatches, payload))
		seq++
		start, size = end, 0
	}

	var scratch writer
	for i := range patches {
		scratch.buf = scratch.buf[:0]
		scratch.patch(&patches[i])
		n := len(scratch.buf)
		if n > budget {
			return nil, fmt.Errorf("%w: %s patch of %d bytes", ErrFrameTooLarge, patches[i].Op, n)
		}
		if size+n > budget {
			emit(i)
		}
		size += n
	}
	if start < len(patches) || len(frames) == 0 {
		emit(len(patches))
	}

	frames[len(frames)-1].Flags |= FlagFinal
	return frames, nil
}

package bind

import (
	"log/slog"
	"sync/atomic"

	"github.com/vango-dev/axon/pkg/dom"
)

// Instruction is one child of an element description.
// Every instruction can release the subscriptions it holds.
type Instruction interface {
	// Disconnect releases every observer subscription held by the
	// instruction and its descendants. Calling it again has no effect.
	Disconnect()
}

// NodeProducer is an instruction that contributes a child node.
type NodeProducer interface {
	Instruction

	// Materialize builds the node on first call and returns the current
	// node on every later call without rebuilding.
	Materialize(doc dom.Document) dom.Node
}

// Behavior is an instruction that acts on the element containing it.
type Behavior interface {
	Instruction

	// Attach runs once, when the containing element materializes.
	Attach(doc dom.Document, parent dom.Node)
}

var logger atomic.Pointer[slog.Logger]

// SetLogger sets the logger used by the binding layer.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func getLogger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

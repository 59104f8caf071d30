// Package server serves bound views to browsers over WebSocket.
//
// Each connection gets its own Session. A session builds a fresh view from
// the App factory and mounts it into a RemoteDocument, an in-memory mirror
// of the browser tree that records every mutation as a protocol patch.
// Patches are flushed to the client after every event, and the client
// forwards listened events back.
//
// The observable core is single-threaded, so every session runs one event
// loop goroutine and all reads and writes of its observables happen there.
// Code running elsewhere must use Session.Dispatch.
//
//	srv := server.New(func() bind.NodeProducer {
//	    count := reactive.New(0)
//	    return bind.Div(
//	        bind.Text(reactive.Map(count, strconv.Itoa)),
//	        bind.Button(bind.Text("+"), bind.OnClick(func() {
//	            count.Update(func(n int) int { return n + 1 })
//	        })),
//	    )
//	}, nil)
//	srv.Run(ctx)
package server

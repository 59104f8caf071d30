// Package clientdist holds the browser client served by live sessions.
package clientdist

import _ "embed"

// AxonJS is the thin client that applies patch frames to the page and
// forwards listened events back to the server.
//
// It is served by the framework at "/_axon/client.js".
//
//go:embed axon.js
var AxonJS []byte

// Package axontest provides testing helpers for bound views.
//
// Mount materializes a view into an in-memory document and unmounts it
// when the test ends. The returned View finds nodes, simulates user input
// and asserts on the rendered HTML.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    v := axontest.Mount(t, NewCounter().View())
//	    v.Click(v.FindAll("button")[1])
//	    v.ExpectContains("<span>1</span>")
//	}
//
// # Render Assertions
//
// For a one-off look at a view's initial output:
//
//	html := axontest.RenderToString(view)
package axontest

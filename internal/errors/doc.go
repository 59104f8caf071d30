// Package errors provides structured, actionable error messages for Axon
// tooling: the CLI, configuration loading and live sessions.
//
// Each error has a unique code (e.g., "E101") that maps to a short message,
// a detailed explanation and a documentation URL:
//
//	err := errors.New("E101").
//	    WithDetail("No axon.json found in ./app").
//	    WithSuggestion("Pass --config or create axon.json")
//
//	errors.PrintError(err)
//	// ERROR E101: Configuration file not found
//	//
//	//   No axon.json found in ./app
//	//
//	//   Hint: Pass --config or create axon.json
//
// The observable core never returns these errors; its operations cannot fail.
package errors

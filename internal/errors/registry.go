package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Notification cascade too deep",
		Detail:   "An observable was re-entered by its own notification more often than the configured limit. This usually means two observers write each other's observables.",
		DocURL:   "https://axon.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Event handler panicked",
		Detail:   "A listener registered through the binding layer panicked while handling a client event.",
		DocURL:   "https://axon.dev/docs/errors/E002",
	},

	// ============================================
	// Protocol Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryProtocol,
		Message:  "WebSocket upgrade failed",
		Detail:   "The HTTP connection could not be upgraded to a WebSocket.",
		DocURL:   "https://axon.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
		Detail:   "The client sent a frame that could not be decoded.",
		DocURL:   "https://axon.dev/docs/errors/E061",
	},
	"E062": {
		Category: CategoryProtocol,
		Message:  "Unknown node",
		Detail:   "The client sent an event for a node that does not exist in the session's document.",
		DocURL:   "https://axon.dev/docs/errors/E062",
	},

	// ============================================
	// Config Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range.",
		DocURL:   "https://axon.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No axon.json or axon.yaml was found.",
		DocURL:   "https://axon.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Configuration parse error",
		Detail:   "The configuration file could not be parsed.",
		DocURL:   "https://axon.dev/docs/errors/E102",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The live server stopped with an error.",
		DocURL:   "https://axon.dev/docs/errors/E140",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Unknown demo",
		Detail:   "The requested demo application does not exist.",
		DocURL:   "https://axon.dev/docs/errors/E141",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

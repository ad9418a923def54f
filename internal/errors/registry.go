package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Config errors (E100-E119)

	"E100": {
		Category: CategoryConfig,
		Message:  "Failed to parse strada.json",
		Detail:   "The configuration file exists but is not valid JSON.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No strada.json was found at the given path.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "No listeners configured",
		Detail:   "The configuration must declare at least one listener with an address.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Listener has no address",
		Detail:   "Every listener needs an addr field, e.g. \":8080\".",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid route declaration",
		Detail:   "A configured route is missing its pattern or uses an unknown method.",
	},

	// Validation errors (E120-E139)

	"E120": {
		Category: CategoryValidation,
		Message:  "Route table build failed",
		Detail:   "A configured pattern or handler was rejected while building the router.",
	},
	"E121": {
		Category: CategoryValidation,
		Message:  "Invalid timeout",
		Detail:   "Timeouts must be positive durations such as \"30s\".",
	},

	// CLI errors (E140-E159)

	"E140": {
		Category: CategoryCLI,
		Message:  "Server failed to start",
		Detail:   "A listener could not bind or serve.",
	},
}

package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://github.com/proptree/proptree/blob/main/docs/errors.md#"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Composition Errors (P000-P009)
	// ============================================

	"P000": {
		Category: CategoryCompose,
		Message:  "Composition failed",
		Detail:   "A component returned an error while it was being expanded.",
		DocURL:   docBase + "p000",
	},
	"P001": {
		Category: CategoryCompose,
		Message:  "Missing property",
		Detail:   "A component dereferences a property path that is absent from the bundle it was applied to. Required paths are checked before the component renders.",
		DocURL:   docBase + "p001",
	},
	"P002": {
		Category: CategoryCompose,
		Message:  "Infinite expansion",
		Detail:   "A component applied itself, directly or through other components, with an unchanged property bundle, or the expansion exceeded the maximum depth.",
		DocURL:   docBase + "p002",
	},
	"P003": {
		Category: CategoryCompose,
		Message:  "Duplicate key",
		Detail:   "Two items of the same list carry the same key. Keys identify list items and must be unique among siblings.",
		DocURL:   docBase + "p003",
	},
	"P004": {
		Category: CategoryCompose,
		Message:  "Value cannot be rendered",
		Detail:   "A nested bundle or a callback was placed where a child node is expected.",
		DocURL:   docBase + "p004",
	},
	"P005": {
		Category: CategoryMount,
		Message:  "Tree is not composed",
		Detail:   "A tree given to a mount point still contains component applications or unresolved values. Compose it first.",
		DocURL:   docBase + "p005",
	},
	"P006": {
		Category: CategoryCompose,
		Message:  "Property has the wrong type",
		Detail:   "A property holds a different kind of value than the component expects.",
		DocURL:   docBase + "p006",
	},

	// ============================================
	// Example Errors (P010-P019)
	// ============================================

	"P010": {
		Category: CategoryExample,
		Message:  "Unknown example",
		Detail:   "No built-in example has that name. Run 'proptree list' to see the available examples.",
		DocURL:   docBase + "p010",
	},
	"P011": {
		Category: CategoryExample,
		Message:  "Invalid property file",
		Detail:   "The property file could not be read. It must be a YAML or JSON document whose root is a mapping.",
		DocURL:   docBase + "p011",
	},

	// ============================================
	// Config Errors (P020-P029)
	// ============================================

	"P020": {
		Category: CategoryConfig,
		Message:  "Invalid proptree.json",
		Detail:   "The configuration file contains invalid JSON or invalid values.",
		DocURL:   docBase + "p020",
	},
	"P021": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "No proptree.json was found in the current directory or its parents.",
		DocURL:   docBase + "p021",
	},
	"P022": {
		Category: CategoryConfig,
		Message:  "Invalid asset manifest",
		Detail:   "The asset manifest could not be loaded. It must be a JSON object mapping resource ids to file names.",
		DocURL:   docBase + "p022",
	},

	// ============================================
	// Mount Errors (P030-P039)
	// ============================================

	"P030": {
		Category: CategoryMount,
		Message:  "Mount failed",
		Detail:   "The tree could not be displayed on the target.",
		DocURL:   docBase + "p030",
	},
	"P031": {
		Category: CategoryMount,
		Message:  "Unknown target",
		Detail:   "Nothing has been mounted on that target.",
		DocURL:   docBase + "p031",
	},
	"P032": {
		Category: CategoryMount,
		Message:  "Handler not found",
		Detail:   "No callback is registered for that element and event. The target may have been re-mounted with different content.",
		DocURL:   docBase + "p032",
	},
	"P033": {
		Category: CategoryMount,
		Message:  "Snapshot not found",
		Detail:   "The snapshot store has no such target or sequence number.",
		DocURL:   docBase + "p033",
	},

	// ============================================
	// CLI Errors (P040-P049)
	// ============================================

	"P040": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
		DocURL:   docBase + "p040",
	},
	"P041": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command was called with invalid arguments.",
		DocURL:   docBase + "p041",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

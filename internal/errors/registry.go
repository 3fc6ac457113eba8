package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Patch application (E001-E019)
	"E001": {
		Category: CategoryPatch,
		Message:  "Patch target not found",
		Detail:   "A patch names a node index that does not exist in the live tree.",
	},
	"E002": {
		Category: CategoryPatch,
		Message:  "Attribute kind mismatch",
		Detail:   "A patch sets or removes an attribute with the wrong kind: a listener through the plain attribute path or the other way round.",
	},
	"E003": {
		Category: CategoryPatch,
		Message:  "Live tree shape mismatch",
		Detail:   "The live tree does not have the shape the patch list was computed against.",
	},

	// Protocol (E060-E079)
	"E060": {
		Category: CategoryProtocol,
		Message:  "Malformed frame",
		Detail:   "A frame or its payload could not be decoded.",
	},
	"E061": {
		Category: CategoryProtocol,
		Message:  "Frame too large",
		Detail:   "The encoded payload exceeds the maximum frame size.",
	},
	"E062": {
		Category: CategoryProtocol,
		Message:  "Sequence gap",
		Detail:   "The patch stream skipped a sequence number; the mirror must resync.",
	},

	// Configuration (E120-E139)
	"E120": {
		Category: CategoryConfig,
		Message:  "Config parse error",
		Detail:   "patchwork.json is not valid JSON.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range or inconsistent.",
	},

	// Fixtures (E140-E159)
	"E140": {
		Category: CategoryFixture,
		Message:  "Fixture parse error",
		Detail:   "The view file could not be decoded as a tree.",
	},
	"E141": {
		Category: CategoryFixture,
		Message:  "File not found",
		Detail:   "The file does not exist or cannot be read.",
	},

	// Snapshot store (E160-E179)
	"E160": {
		Category: CategoryStore,
		Message:  "Snapshot not found",
		Detail:   "No snapshot is stored under this name.",
	},
	"E161": {
		Category: CategoryStore,
		Message:  "Snapshot store failure",
		Detail:   "The snapshot backend returned an error.",
	},
}

// Codes returns all registered error codes in ascending order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Template returns the template for an error code.
func Template(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

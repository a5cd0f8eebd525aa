package log

// Canonical field name constants for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"

	FieldCheck    = "check"
	FieldPath     = "path"
	FieldURL      = "url"
	FieldStatus   = "status"
	FieldEntries  = "entries"
	FieldVersion  = "version"
	FieldPlatform = "platform"
	FieldCode     = "code"
)

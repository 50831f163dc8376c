package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldScenario   = "scenario"
	FieldFormat     = "format"
	FieldFile       = "file"
)

// Components
const (
	ComponentApp         = "app"
	ComponentCalculation = "calculation"
	ComponentHTTP        = "http"
	ComponentChart       = "chart"
	ComponentCLI         = "cli"
)

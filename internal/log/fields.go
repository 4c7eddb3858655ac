package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldDate      = "date"
	FieldActivity  = "activity"
	FieldCategory  = "category"
	FieldCount     = "count"
	FieldKey       = "key"
	FieldValue     = "value"
	FieldCents     = "amount_cents"
	FieldBackend   = "backend"
	FieldPath      = "path"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentCLI      = "cli"
	ComponentLedger   = "ledger"
	ComponentSettings = "settings"
	ComponentStorage  = "storage"
	ComponentBackend  = "backend"
	ComponentCatalog  = "catalog"
	ComponentEvents   = "events"
)

// Operations defines standard operation names
const (
	OpLog    = "log"
	OpRemove = "remove"
	OpToggle = "toggle"
	OpReset  = "reset"
	OpUpdate = "update"
	OpLoad   = "load"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithSession adds the record key fields
func (f LogFields) WithSession(date, activity string) LogFields {
	f[FieldDate] = date
	f[FieldActivity] = activity
	return f
}

// WithSetting adds settings key/value fields
func (f LogFields) WithSetting(key, value string) LogFields {
	f[FieldKey] = key
	f[FieldValue] = value
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}

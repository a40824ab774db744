package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldIssueID is the standardized key for continuity issue identifiers.
	FieldIssueID = "issue_id"
	// FieldStorageKey is the standardized key for key-value store keys.
	FieldStorageKey = "storage_key"
	// FieldPatternType is the standardized key for style pattern dimensions.
	FieldPatternType = "pattern_type"
)

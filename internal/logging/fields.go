package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for the transform run identifier.
	FieldRunID = "run_id"
	// FieldEntry is the standardized structured logging key for archive entry paths.
	FieldEntry = "entry"
	// FieldTarget is the standardized structured logging key for link targets.
	FieldTarget = "target"
)

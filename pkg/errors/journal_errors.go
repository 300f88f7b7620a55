package errors

import "fmt"

// Error codes used across the journal domain. Handlers surface these in the
// API error payload so clients can branch without parsing messages.
const (
	CodeScoreOutOfRange     = "SCORE_OUT_OF_RANGE"
	CodeInvalidWindow       = "INVALID_WINDOW"
	CodeImportRejected      = "IMPORT_REJECTED"
	CodeNoEntries           = "NO_ENTRIES"
	CodeAssessmentUnknown   = "ASSESSMENT_UNKNOWN"
	CodeResponsesInvalid    = "RESPONSES_INVALID"
	CodeReminderJobUnknown  = "REMINDER_JOB_UNKNOWN"
	CodeMirrorNotConfigured = "MIRROR_NOT_CONFIGURED"
)

// NewScoreRangeError reports a numeric self-report field outside its 1..10
// domain. Values are rejected, never clamped.
func NewScoreRangeError(field string, value int) *AppError {
	return NewValidationError(fmt.Sprintf("%s must be between 1 and 10, got %d", field, value)).
		WithCode(CodeScoreOutOfRange).
		WithDetails(map[string]interface{}{"field": field, "value": value})
}

// NewWindowError reports a negative look-back window.
func NewWindowError(days int) *AppError {
	return NewValidationError(fmt.Sprintf("days must be non-negative, got %d", days)).
		WithCode(CodeInvalidWindow).
		WithDetails(map[string]interface{}{"days": days})
}

// NewImportElementError reports the first malformed element of an import
// document. Element indices are zero-based.
func NewImportElementError(index int, reason string) *AppError {
	return NewImportFormatError(fmt.Sprintf("import rejected: element %d: %s", index, reason)).
		WithCode(CodeImportRejected).
		WithDetails(map[string]interface{}{"element": index})
}

// ErrNoEntries is the explicit empty-dataset outcome for analytics over an
// empty collection or window.
func ErrNoEntries() *AppError {
	return NewNoDataError("no entries recorded").WithCode(CodeNoEntries)
}

// ErrNoEntriesInWindow is the empty-dataset outcome scoped to a window.
func ErrNoEntriesInWindow(days int) *AppError {
	return NewNoDataError(fmt.Sprintf("no entries recorded in the last %d days", days)).
		WithCode(CodeNoEntries).
		WithDetails(map[string]interface{}{"days": days})
}

// NewUnknownAssessmentError reports a request for an assessment the catalog
// does not carry.
func NewUnknownAssessmentError(id string) *AppError {
	return NewNotFoundError(fmt.Sprintf("assessment %q", id)).
		WithCode(CodeAssessmentUnknown).
		WithDetails(map[string]interface{}{"assessment_id": id})
}

// NewResponsesError reports an assessment response vector with the wrong
// shape or out-of-range answers.
func NewResponsesError(message string) *AppError {
	return NewValidationError(message).WithCode(CodeResponsesInvalid)
}

// NewUnknownReminderJobError reports a cancel or lookup for a job that is not
// scheduled.
func NewUnknownReminderJobError(jobID string) *AppError {
	return NewNotFoundError(fmt.Sprintf("reminder job %q", jobID)).
		WithCode(CodeReminderJobUnknown).
		WithDetails(map[string]interface{}{"job_id": jobID})
}

// NewMirrorNotConfiguredError reports a sync operation with no mirror wired.
func NewMirrorNotConfiguredError() *AppError {
	return NewUnavailableError("entry mirror").WithCode(CodeMirrorNotConfigured)
}

package scheduling

import "fmt"

// RejectionCode is a stable machine-readable code for an expected
// business-rule violation. Frontends match on the code, never the message.
type RejectionCode string

const (
	CodeTooSoon           RejectionCode = "too_soon"
	CodeTooFarAhead       RejectionCode = "too_far_ahead"
	CodeSlotNotAvailable  RejectionCode = "slot_not_available"
	CodeSlotConflict      RejectionCode = "slot_conflict"
	CodeInvalidTransition RejectionCode = "invalid_transition"
	CodeNotFound          RejectionCode = "not_found"
	// CodeDoctorBusy means the per-doctor booking lock was held by a
	// concurrent request; the caller may retry.
	CodeDoctorBusy RejectionCode = "doctor_busy"
)

// Rejection is a typed refusal of a booking or transition request. It is an
// expected outcome, not a fault: storage errors are returned as plain errors
// and never wrapped in a Rejection.
type Rejection struct {
	Code    RejectionCode
	Message string
	// Details carries the violated threshold or conflicting values,
	// keyed by stable field names.
	Details map[string]interface{}
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

func rejectf(code RejectionCode, format string, args ...interface{}) *Rejection {
	return &Rejection{Code: code, Message: fmt.Sprintf(format, args...)}
}

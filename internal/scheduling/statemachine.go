package scheduling

import "go-clinic-scheduling/internal/domain/entity"

// Action is a lifecycle operation requested on an appointment.
type Action string

const (
	ActionCheckIn    Action = "check_in"
	ActionComplete   Action = "complete"
	ActionCancel     Action = "cancel"
	ActionReschedule Action = "reschedule"
)

// ParseAction validates an action name from the wire.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionCheckIn, ActionComplete, ActionCancel, ActionReschedule:
		return Action(s), true
	}
	return "", false
}

// Transition applies a lifecycle action to the current status.
//
//	scheduled  -> checked_in (check_in) | canceled (cancel) | rescheduled (reschedule)
//	checked_in -> completed (complete)  | canceled (cancel)
//
// completed, canceled and rescheduled are terminal. Rescheduling marks the
// original record terminal; the replacement appointment is created by the
// booking flow, not by this function.
func Transition(status entity.AppointmentStatus, action Action) (entity.AppointmentStatus, *Rejection) {
	switch action {
	case ActionCheckIn:
		if status == entity.AppointmentStatusScheduled {
			return entity.AppointmentStatusCheckedIn, nil
		}
	case ActionComplete:
		if status == entity.AppointmentStatusCheckedIn {
			return entity.AppointmentStatusCompleted, nil
		}
	case ActionCancel:
		if status == entity.AppointmentStatusScheduled || status == entity.AppointmentStatusCheckedIn {
			return entity.AppointmentStatusCanceled, nil
		}
	case ActionReschedule:
		if status == entity.AppointmentStatusScheduled {
			return entity.AppointmentStatusRescheduled, nil
		}
	default:
		return "", rejectf(CodeInvalidTransition, "unknown action %q", action)
	}
	return "", rejectf(CodeInvalidTransition, "cannot %s an appointment in status %q", action, status)
}

package scheduling

import (
	"testing"

	"go-clinic-scheduling/internal/domain/entity"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		status  entity.AppointmentStatus
		action  Action
		want    entity.AppointmentStatus
		wantErr bool
	}{
		{"check in scheduled", entity.AppointmentStatusScheduled, ActionCheckIn, entity.AppointmentStatusCheckedIn, false},
		{"complete checked in", entity.AppointmentStatusCheckedIn, ActionComplete, entity.AppointmentStatusCompleted, false},
		{"cancel scheduled", entity.AppointmentStatusScheduled, ActionCancel, entity.AppointmentStatusCanceled, false},
		{"cancel checked in", entity.AppointmentStatusCheckedIn, ActionCancel, entity.AppointmentStatusCanceled, false},
		{"reschedule scheduled", entity.AppointmentStatusScheduled, ActionReschedule, entity.AppointmentStatusRescheduled, false},

		{"complete from scheduled skips check in", entity.AppointmentStatusScheduled, ActionComplete, "", true},
		{"check in twice", entity.AppointmentStatusCheckedIn, ActionCheckIn, "", true},
		{"reschedule after check in", entity.AppointmentStatusCheckedIn, ActionReschedule, "", true},
		{"cancel completed", entity.AppointmentStatusCompleted, ActionCancel, "", true},
		{"check in canceled", entity.AppointmentStatusCanceled, ActionCheckIn, "", true},
		{"reschedule a rescheduled record", entity.AppointmentStatusRescheduled, ActionReschedule, "", true},
		{"unknown action", entity.AppointmentStatusScheduled, Action("archive"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rej := Transition(tt.status, tt.action)
			if tt.wantErr {
				if rej == nil {
					t.Fatalf("expected rejection, got status %q", got)
				}
				if rej.Code != CodeInvalidTransition {
					t.Errorf("code = %s, want %s", rej.Code, CodeInvalidTransition)
				}
				return
			}
			if rej != nil {
				t.Fatalf("unexpected rejection: %v", rej)
			}
			if got != tt.want {
				t.Errorf("Transition(%s, %s) = %s, want %s", tt.status, tt.action, got, tt.want)
			}
		})
	}
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	terminal := []entity.AppointmentStatus{
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusCanceled,
		entity.AppointmentStatusRescheduled,
	}
	actions := []Action{ActionCheckIn, ActionComplete, ActionCancel, ActionReschedule}
	for _, status := range terminal {
		for _, action := range actions {
			if _, rej := Transition(status, action); rej == nil {
				t.Errorf("Transition(%s, %s) should be rejected", status, action)
			}
		}
	}
}

func TestParseAction(t *testing.T) {
	for _, valid := range []string{"check_in", "complete", "cancel", "reschedule"} {
		if _, ok := ParseAction(valid); !ok {
			t.Errorf("ParseAction(%q) should succeed", valid)
		}
	}
	for _, invalid := range []string{"", "checkin", "CANCEL", "delete"} {
		if _, ok := ParseAction(invalid); ok {
			t.Errorf("ParseAction(%q) should fail", invalid)
		}
	}
}

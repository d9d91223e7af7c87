package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-clinic-scheduling/internal/domain/entity"
)

// Store is the narrow read-only view of persistent state the engine needs.
// Implementations must not mutate anything; all writes stay in the usecase
// layer so the engine remains a pure function over current state.
type Store interface {
	// Availability returns the doctor's availability record for a weekday
	// (0 = Sunday .. 6 = Saturday), or nil when none exists. When
	// duplicate records exist for the weekday, the most recently updated
	// one is returned.
	Availability(ctx context.Context, doctorID uuid.UUID, weekday int) (*entity.DoctorAvailability, error)
	// Exclusions returns holidays whose date range covers the given date,
	// for the doctor or clinic-wide.
	Exclusions(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Holiday, error)
	// Rule returns the department's booking rule, or nil for open policy.
	Rule(ctx context.Context, departmentID int) (*entity.AppointmentRule, error)
	// Appointments returns the doctor's appointments on the date whose
	// status is one of the given statuses.
	Appointments(ctx context.Context, doctorID uuid.UUID, date time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error)
}

// Config carries engine policy defaults.
type Config struct {
	// DefaultSlotMinutes applies when an availability record has no slot
	// duration set.
	DefaultSlotMinutes int
}

// Engine computes bookable slots and validates booking requests. It holds no
// mutable state of its own; every call reads through the Store.
type Engine struct {
	store Store
	cfg   Config
	now   func() time.Time
}

func NewEngine(store Store, cfg Config) *Engine {
	if cfg.DefaultSlotMinutes <= 0 {
		cfg.DefaultSlotMinutes = 30
	}
	return &Engine{store: store, cfg: cfg, now: time.Now}
}

// WithClock overrides the engine's clock. Used by tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// EvaluateRule checks the department's booking window against the requested
// appointment start. A department without a rule has an open policy. A
// threshold of zero or below disables that bound.
func (e *Engine) EvaluateRule(ctx context.Context, departmentID int, startAt time.Time) error {
	rule, err := e.store.Rule(ctx, departmentID)
	if err != nil {
		return fmt.Errorf("load rule for department %d: %w", departmentID, err)
	}
	if rule == nil {
		return nil
	}

	lead := startAt.Sub(e.now())
	if rule.MinHoursBeforeBooking > 0 {
		min := time.Duration(rule.MinHoursBeforeBooking) * time.Hour
		if lead < min {
			rej := rejectf(CodeTooSoon, "appointments must be booked at least %d hours in advance", rule.MinHoursBeforeBooking)
			rej.Details = map[string]interface{}{"min_hours_before_booking": rule.MinHoursBeforeBooking}
			return rej
		}
	}
	if rule.MaxDaysAdvanceBooking > 0 {
		max := time.Duration(rule.MaxDaysAdvanceBooking) * 24 * time.Hour
		if lead > max {
			rej := rejectf(CodeTooFarAhead, "appointments cannot be booked more than %d days in advance", rule.MaxDaysAdvanceBooking)
			rej.Details = map[string]interface{}{"max_days_advance_booking": rule.MaxDaysAdvanceBooking}
			return rej
		}
	}
	return nil
}

// GenerateSlots computes the candidate slots for a doctor on a date:
// the availability windows for that weekday, partitioned by slot duration,
// minus any date covered by a holiday. Slots come back in chronological
// order, morning window first. The result is recomputed on every call.
func (e *Engine) GenerateSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]Slot, error) {
	avail, err := e.store.Availability(ctx, doctorID, int(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("load availability for doctor %s: %w", doctorID, err)
	}
	if avail == nil || avail.IsActive == nil || !*avail.IsActive {
		return nil, nil
	}

	exclusions, err := e.store.Exclusions(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("load exclusions for doctor %s: %w", doctorID, err)
	}
	if len(exclusions) > 0 {
		// Holidays are whole-date ranges, so any covering entry blanks
		// the day.
		return nil, nil
	}

	duration := avail.SlotDurationMinutes
	if duration <= 0 {
		duration = e.cfg.DefaultSlotMinutes
	}

	var slots []Slot
	if avail.HasMorningWindow() {
		window, err := parseWindow(*avail.MorningStartTime, *avail.MorningEndTime)
		if err != nil {
			return nil, fmt.Errorf("availability %d morning window: %w", avail.ID, err)
		}
		slots = append(slots, partitionWindow(window.start, window.end, duration)...)
	}
	if avail.HasEveningWindow() {
		window, err := parseWindow(*avail.EveningStartTime, *avail.EveningEndTime)
		if err != nil {
			return nil, fmt.Errorf("availability %d evening window: %w", avail.ID, err)
		}
		slots = append(slots, partitionWindow(window.start, window.end, duration)...)
	}
	return slots, nil
}

// ResolveSlot returns the generated slot starting at start for the
// doctor/date. A missing match means the request is outside availability,
// inside an exclusion, or misaligned to the slot granularity.
func (e *Engine) ResolveSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, start int) (Slot, error) {
	slots, err := e.GenerateSlots(ctx, doctorID, date)
	if err != nil {
		return Slot{}, err
	}
	for _, s := range slots {
		if s.Start == start {
			return s, nil
		}
	}
	return Slot{}, rejectf(CodeSlotNotAvailable, "%s is not a bookable slot for this doctor on %s",
		FormatClock(start), date.Format("2006-01-02"))
}

// HasConflict reports whether [start, end) overlaps an existing appointment
// for the doctor on the date. Only scheduled, checked-in and completed
// appointments block; canceled and rescheduled ones have vacated their slot.
func (e *Engine) HasConflict(ctx context.Context, doctorID uuid.UUID, date time.Time, start, end int) (bool, error) {
	existing, err := e.store.Appointments(ctx, doctorID, date, entity.BlockingStatuses())
	if err != nil {
		return false, fmt.Errorf("load appointments for doctor %s: %w", doctorID, err)
	}
	for i := range existing {
		otherStart, err := ParseClock(existing[i].StartTime)
		if err != nil {
			return false, fmt.Errorf("appointment %s start_time: %w", existing[i].ID, err)
		}
		otherEnd, err := ParseClock(existing[i].EndTime)
		if err != nil {
			return false, fmt.Errorf("appointment %s end_time: %w", existing[i].ID, err)
		}
		if Overlaps(start, end, otherStart, otherEnd) {
			return true, nil
		}
	}
	return false, nil
}

// FreeSlots returns the generated slots minus those already occupied by a
// blocking appointment. This is what the UI renders before booking.
func (e *Engine) FreeSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]Slot, error) {
	slots, err := e.GenerateSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, nil
	}

	existing, err := e.store.Appointments(ctx, doctorID, date, entity.BlockingStatuses())
	if err != nil {
		return nil, fmt.Errorf("load appointments for doctor %s: %w", doctorID, err)
	}

	type interval struct{ start, end int }
	booked := make([]interval, 0, len(existing))
	for i := range existing {
		s, err := ParseClock(existing[i].StartTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %s start_time: %w", existing[i].ID, err)
		}
		en, err := ParseClock(existing[i].EndTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %s end_time: %w", existing[i].ID, err)
		}
		booked = append(booked, interval{s, en})
	}

	free := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		taken := false
		for _, b := range booked {
			if Overlaps(slot.Start, slot.End, b.start, b.end) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, slot)
		}
	}
	return free, nil
}

type window struct{ start, end int }

func parseWindow(startClock, endClock string) (window, error) {
	start, err := ParseClock(startClock)
	if err != nil {
		return window{}, fmt.Errorf("start %q: %w", startClock, err)
	}
	end, err := ParseClock(endClock)
	if err != nil {
		return window{}, fmt.Errorf("end %q: %w", endClock, err)
	}
	return window{start: start, end: end}, nil
}

package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"go-clinic-scheduling/internal/domain/entity"
)

type fakeStore struct {
	availability *entity.DoctorAvailability
	exclusions   []entity.Holiday
	rule         *entity.AppointmentRule
	appointments []entity.Appointment
	err          error
}

func (f *fakeStore) Availability(ctx context.Context, doctorID uuid.UUID, weekday int) (*entity.DoctorAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.availability != nil && f.availability.Weekday != weekday {
		return nil, nil
	}
	return f.availability, nil
}

func (f *fakeStore) Exclusions(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Holiday, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.exclusions, nil
}

func (f *fakeStore) Rule(ctx context.Context, departmentID int) (*entity.AppointmentRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rule, nil
}

func (f *fakeStore) Appointments(ctx context.Context, doctorID uuid.UUID, date time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Appointment
	for _, a := range f.appointments {
		for _, s := range statuses {
			if a.Status == s {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func boolPtr(b bool) *bool       { return &b }
func strPtr(s string) *string    { return &s }
func clock(s string) int         { m, _ := ParseClock(s); return m }
func date(s string) time.Time    { d, _ := time.Parse("2006-01-02", s); return d }
func fixedNow(s string) func() time.Time {
	t, _ := time.Parse("2006-01-02 15:04", s)
	return func() time.Time { return t }
}

// Monday 2026-09-07, doctor works 09:00-12:00 mornings, 30 minute slots.
func mondayMorning() *entity.DoctorAvailability {
	return &entity.DoctorAvailability{
		ID:                  1,
		Weekday:             1,
		MorningStartTime:    strPtr("09:00"),
		MorningEndTime:      strPtr("12:00"),
		SlotDurationMinutes: 30,
		IsActive:            boolPtr(true),
	}
}

func TestGenerateSlotsMorningWindow(t *testing.T) {
	engine := NewEngine(&fakeStore{availability: mondayMorning()}, Config{})
	doctorID := uuid.New()

	slots, err := engine.GenerateSlots(context.Background(), doctorID, date("2026-09-07"))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots for 09:00-12:00 at 30m, got %d", len(slots))
	}
	if slots[0].StartClock() != "09:00" || slots[0].EndClock() != "09:30" {
		t.Errorf("first slot = %s-%s, want 09:00-09:30", slots[0].StartClock(), slots[0].EndClock())
	}
	if slots[5].StartClock() != "11:30" || slots[5].EndClock() != "12:00" {
		t.Errorf("last slot = %s-%s, want 11:30-12:00", slots[5].StartClock(), slots[5].EndClock())
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start != slots[i-1].End {
			t.Errorf("slot %d does not abut previous: %d vs %d", i, slots[i].Start, slots[i-1].End)
		}
	}
}

func TestGenerateSlotsBothWindows(t *testing.T) {
	avail := mondayMorning()
	avail.EveningStartTime = strPtr("17:00")
	avail.EveningEndTime = strPtr("19:00")
	engine := NewEngine(&fakeStore{availability: avail}, Config{})

	slots, err := engine.GenerateSlots(context.Background(), uuid.New(), date("2026-09-07"))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 10 {
		t.Fatalf("expected 6 morning + 4 evening slots, got %d", len(slots))
	}
	if slots[6].StartClock() != "17:00" {
		t.Errorf("first evening slot starts at %s, want 17:00", slots[6].StartClock())
	}
}

func TestGenerateSlotsDropsTrailingPartial(t *testing.T) {
	avail := mondayMorning()
	avail.MorningEndTime = strPtr("10:45")
	engine := NewEngine(&fakeStore{availability: avail}, Config{})

	slots, err := engine.GenerateSlots(context.Background(), uuid.New(), date("2026-09-07"))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 full slots in 09:00-10:45, got %d", len(slots))
	}
	if slots[2].EndClock() != "10:30" {
		t.Errorf("last slot ends at %s, want 10:30", slots[2].EndClock())
	}
}

func TestGenerateSlotsNoAvailability(t *testing.T) {
	engine := NewEngine(&fakeStore{}, Config{})
	slots, err := engine.GenerateSlots(context.Background(), uuid.New(), date("2026-09-07"))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots without an availability record, got %d", len(slots))
	}
}

func TestGenerateSlotsInactiveAvailability(t *testing.T) {
	avail := mondayMorning()
	avail.IsActive = boolPtr(false)
	engine := NewEngine(&fakeStore{availability: avail}, Config{})

	slots, err := engine.GenerateSlots(context.Background(), uuid.New(), date("2026-09-07"))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots for an inactive availability, got %d", len(slots))
	}
}

func TestGenerateSlotsWrongWeekday(t *testing.T) {
	engine := NewEngine(&fakeStore{availability: mondayMorning()}, Config{})
	// 2026-09-08 is a Tuesday.
	slots, err := engine.GenerateSlots(context.Background(), uuid.New(), date("2026-09-08"))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a weekday without availability, got %d", len(slots))
	}
}

func TestGenerateSlotsHolidayBlanksDay(t *testing.T) {
	store := &fakeStore{
		availability: mondayMorning(),
		exclusions:   []entity.Holiday{{ID: 1, StartDate: date("2026-09-07"), EndDate: date("2026-09-07")}},
	}
	engine := NewEngine(store, Config{})

	slots, err := engine.GenerateSlots(context.Background(), uuid.New(), date("2026-09-07"))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a holiday, got %d", len(slots))
	}
}

func TestGenerateSlotsDefaultDuration(t *testing.T) {
	avail := mondayMorning()
	avail.SlotDurationMinutes = 0
	engine := NewEngine(&fakeStore{availability: avail}, Config{DefaultSlotMinutes: 60})

	slots, err := engine.GenerateSlots(context.Background(), uuid.New(), date("2026-09-07"))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 hour slots in 09:00-12:00, got %d", len(slots))
	}
}

func TestGenerateSlotsIdempotent(t *testing.T) {
	engine := NewEngine(&fakeStore{availability: mondayMorning()}, Config{})
	doctorID := uuid.New()

	first, err := engine.GenerateSlots(context.Background(), doctorID, date("2026-09-07"))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	second, err := engine.GenerateSlots(context.Background(), doctorID, date("2026-09-07"))
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("slot counts differ across calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("slot %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestEvaluateRule(t *testing.T) {
	now := fixedNow("2026-09-01 08:00")
	rule := &entity.AppointmentRule{MinHoursBeforeBooking: 24, MaxDaysAdvanceBooking: 30}

	tests := []struct {
		name     string
		rule     *entity.AppointmentRule
		startAt  time.Time
		wantCode RejectionCode
	}{
		{"no rule is open policy", nil, date("2026-09-02"), ""},
		{"inside window", rule, date("2026-09-10"), ""},
		{"too soon", rule, date("2026-09-01").Add(10 * time.Hour), CodeTooSoon},
		{"exactly at minimum", rule, date("2026-09-02").Add(8 * time.Hour), ""},
		{"too far ahead", rule, date("2026-11-01"), CodeTooFarAhead},
		{"zero thresholds unrestricted", &entity.AppointmentRule{}, date("2027-09-01"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(&fakeStore{rule: tt.rule}, Config{}).WithClock(now)
			err := engine.EvaluateRule(context.Background(), 1, tt.startAt)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected rejection: %v", err)
				}
				return
			}
			var rej *Rejection
			if !errors.As(err, &rej) {
				t.Fatalf("expected a Rejection, got %v", err)
			}
			if rej.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", rej.Code, tt.wantCode)
			}
			if len(rej.Details) == 0 {
				t.Errorf("expected the violated threshold in Details")
			}
		})
	}
}

func TestResolveSlot(t *testing.T) {
	engine := NewEngine(&fakeStore{availability: mondayMorning()}, Config{})
	doctorID := uuid.New()
	day := date("2026-09-07")

	slot, err := engine.ResolveSlot(context.Background(), doctorID, day, clock("09:30"))
	if err != nil {
		t.Fatalf("aligned start rejected: %v", err)
	}
	if slot.StartClock() != "09:30" || slot.EndClock() != "10:00" {
		t.Errorf("slot = %s-%s, want 09:30-10:00", slot.StartClock(), slot.EndClock())
	}

	var rej *Rejection
	_, err = engine.ResolveSlot(context.Background(), doctorID, day, clock("09:15"))
	if !errors.As(err, &rej) || rej.Code != CodeSlotNotAvailable {
		t.Fatalf("misaligned start: got %v, want %s", err, CodeSlotNotAvailable)
	}

	_, err = engine.ResolveSlot(context.Background(), doctorID, day, clock("13:00"))
	if !errors.As(err, &rej) || rej.Code != CodeSlotNotAvailable {
		t.Fatalf("start outside window: got %v, want %s", err, CodeSlotNotAvailable)
	}
}

func TestHasConflict(t *testing.T) {
	scheduled := entity.Appointment{StartTime: "09:30", EndTime: "10:00", Status: entity.AppointmentStatusScheduled}
	canceled := entity.Appointment{StartTime: "10:00", EndTime: "10:30", Status: entity.AppointmentStatusCanceled}
	store := &fakeStore{appointments: []entity.Appointment{scheduled, canceled}}
	engine := NewEngine(store, Config{})
	doctorID := uuid.New()
	day := date("2026-09-07")

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"exact overlap", "09:30", "10:00", true},
		{"partial overlap from left", "09:15", "09:45", true},
		{"partial overlap from right", "09:45", "10:15", true},
		{"containing interval", "09:00", "11:00", true},
		{"back to back before", "09:00", "09:30", false},
		{"back to back after", "10:00", "10:30", false},
		{"canceled does not block", "10:00", "10:30", false},
		{"disjoint", "11:00", "11:30", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.HasConflict(context.Background(), doctorID, day, clock(tt.start), clock(tt.end))
			if err != nil {
				t.Fatalf("HasConflict: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasConflict(%s-%s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestHasConflictIsSymmetric(t *testing.T) {
	doctorID := uuid.New()
	day := date("2026-09-07")
	a := [2]string{"09:00", "09:45"}
	b := [2]string{"09:30", "10:15"}

	storeA := &fakeStore{appointments: []entity.Appointment{{StartTime: a[0], EndTime: a[1], Status: entity.AppointmentStatusScheduled}}}
	storeB := &fakeStore{appointments: []entity.Appointment{{StartTime: b[0], EndTime: b[1], Status: entity.AppointmentStatusScheduled}}}

	gotAB, err := NewEngine(storeA, Config{}).HasConflict(context.Background(), doctorID, day, clock(b[0]), clock(b[1]))
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	gotBA, err := NewEngine(storeB, Config{}).HasConflict(context.Background(), doctorID, day, clock(a[0]), clock(a[1]))
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if gotAB != gotBA {
		t.Errorf("conflict detection is asymmetric: %v vs %v", gotAB, gotBA)
	}
}

func TestFreeSlotsExcludesBooked(t *testing.T) {
	store := &fakeStore{
		availability: mondayMorning(),
		appointments: []entity.Appointment{
			{StartTime: "09:30", EndTime: "10:00", Status: entity.AppointmentStatusScheduled},
			{StartTime: "11:00", EndTime: "11:30", Status: entity.AppointmentStatusCheckedIn},
			{StartTime: "10:00", EndTime: "10:30", Status: entity.AppointmentStatusCanceled},
		},
	}
	engine := NewEngine(store, Config{})

	free, err := engine.FreeSlots(context.Background(), uuid.New(), date("2026-09-07"))
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(free) != 4 {
		t.Fatalf("expected 4 free slots, got %d", len(free))
	}
	for _, s := range free {
		if s.StartClock() == "09:30" || s.StartClock() == "11:00" {
			t.Errorf("booked slot %s still listed as free", s.StartClock())
		}
	}
}

func TestEngineSurfacesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset")
	engine := NewEngine(&fakeStore{err: storeErr}, Config{})

	if _, err := engine.GenerateSlots(context.Background(), uuid.New(), date("2026-09-07")); !errors.Is(err, storeErr) {
		t.Errorf("GenerateSlots should wrap store error, got %v", err)
	}
	if err := engine.EvaluateRule(context.Background(), 1, date("2026-09-10")); !errors.Is(err, storeErr) {
		t.Errorf("EvaluateRule should wrap store error, got %v", err)
	}
	if _, err := engine.HasConflict(context.Background(), uuid.New(), date("2026-09-07"), 540, 570); !errors.Is(err, storeErr) {
		t.Errorf("HasConflict should wrap store error, got %v", err)
	}
}

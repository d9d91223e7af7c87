package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"go-clinic-scheduling/config"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/scheduling"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[uuid.UUID]*entity.Appointment{}}
}

func (f *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return nil
}

func (f *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	stored, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	found := *stored
	return &found, nil
}

func (f *fakeAppointmentRepo) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.DoctorID != doctorID || !a.AppointmentDate.Equal(date) {
			continue
		}
		for _, s := range statuses {
			if a.Status == s {
				out = append(out, *a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	a, ok := f.appointments[id]
	if !ok || a.Status != from {
		return 0, nil
	}
	a.Status = to
	return 1, nil
}

func (f *fakeAppointmentRepo) MarkRescheduled(db *gorm.DB, id, replacementID uuid.UUID) (int64, error) {
	a, ok := f.appointments[id]
	if !ok || a.Status != entity.AppointmentStatusScheduled {
		return 0, nil
	}
	a.Status = entity.AppointmentStatusRescheduled
	a.RescheduledTo = &replacementID
	return 1, nil
}

func (f *fakeAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return nil
}

type fakeAvailabilityRepo struct {
	availability *entity.DoctorAvailability
}

func (f *fakeAvailabilityRepo) Create(db *gorm.DB, availability *entity.DoctorAvailability) error {
	return nil
}

func (f *fakeAvailabilityRepo) FindByID(db *gorm.DB, id int) (*entity.DoctorAvailability, error) {
	return nil, nil
}

func (f *fakeAvailabilityRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorAvailability, error) {
	return nil, nil
}

func (f *fakeAvailabilityRepo) FindActiveByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday int) (*entity.DoctorAvailability, error) {
	if f.availability == nil || f.availability.Weekday != weekday {
		return nil, nil
	}
	return f.availability, nil
}

func (f *fakeAvailabilityRepo) Update(db *gorm.DB, availability *entity.DoctorAvailability) error {
	return nil
}

func (f *fakeAvailabilityRepo) Deactivate(db *gorm.DB, id int) (int64, error) {
	return 0, nil
}

type fakeHolidayRepo struct {
	holidays []entity.Holiday
}

func (f *fakeHolidayRepo) Create(db *gorm.DB, holiday *entity.Holiday) error { return nil }

func (f *fakeHolidayRepo) FindByID(db *gorm.DB, id int) (*entity.Holiday, error) { return nil, nil }

func (f *fakeHolidayRepo) FindAll(db *gorm.DB) ([]entity.Holiday, error) { return nil, nil }

func (f *fakeHolidayRepo) FindCovering(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeHolidayRepo) Delete(db *gorm.DB, id int) (int64, error) { return 0, nil }

type fakeRuleRepo struct {
	rule *entity.AppointmentRule
}

func (f *fakeRuleRepo) Upsert(db *gorm.DB, rule *entity.AppointmentRule) error { return nil }

func (f *fakeRuleRepo) FindByDepartmentID(db *gorm.DB, departmentID int) (*entity.AppointmentRule, error) {
	return f.rule, nil
}

func (f *fakeRuleRepo) FindAll(db *gorm.DB) ([]entity.AppointmentRule, error) { return nil, nil }

func (f *fakeRuleRepo) DeleteByDepartmentID(db *gorm.DB, departmentID int) (int64, error) {
	return 0, nil
}

type fakeDoctorProfileRepo struct {
	profile *entity.DoctorProfile
}

func (f *fakeDoctorProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	if f.profile == nil || f.profile.UserID != userID {
		return nil, nil
	}
	return f.profile, nil
}

func (f *fakeDoctorProfileRepo) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	return nil, nil
}

type fakePatientProfileRepo struct {
	profile *entity.PatientProfile
}

func (f *fakePatientProfileRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	if f.profile == nil || f.profile.UserID != userID {
		return nil, nil
	}
	return f.profile, nil
}

type fakeSlotLocker struct {
	contended bool
	calls     int
}

func (f *fakeSlotLocker) WithSlotLock(ctx context.Context, doctorID uuid.UUID, date time.Time, fn func() error) error {
	f.calls++
	if f.contended {
		return service.ErrLockNotAcquired
	}
	return fn()
}

type fakeAuditService struct {
	entries int
}

func (f *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	f.entries++
	return nil
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	f.entries++
	return nil
}

func (f *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	f.entries++
	return nil
}

type bookingFixture struct {
	usecase      *bookingUsecase
	appointments *fakeAppointmentRepo
	rules        *fakeRuleRepo
	locker       *fakeSlotLocker
	doctorID     uuid.UUID
	patientID    uuid.UUID
}

// newBookingFixture wires the booking usecase against in-memory fakes. The
// db handle carries no connection; the fakes ignore it and the transaction
// wrapper is stubbed to run its body directly.
func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	doctorID := uuid.New()
	patientID := uuid.New()
	appointments := newFakeAppointmentRepo()
	rules := &fakeRuleRepo{}
	locker := &fakeSlotLocker{}
	db := &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}

	active := true
	morningStart, morningEnd := "09:00", "12:00"
	availability := &entity.DoctorAvailability{
		ID:                  1,
		DoctorID:            doctorID,
		Weekday:             1,
		MorningStartTime:    &morningStart,
		MorningEndTime:      &morningEnd,
		SlotDurationMinutes: 30,
		IsActive:            &active,
	}

	u := NewBookingUsecase(
		db,
		log,
		config.BookingConfig{DefaultSlotMinutes: 30},
		appointments,
		&fakeAvailabilityRepo{availability: availability},
		&fakeHolidayRepo{},
		rules,
		&fakeDoctorProfileRepo{profile: &entity.DoctorProfile{UserID: doctorID, DepartmentID: 1}},
		&fakePatientProfileRepo{profile: &entity.PatientProfile{UserID: patientID}},
		locker,
		&fakeAuditService{},
	).(*bookingUsecase)
	u.transact = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return fn(db)
	}

	return &bookingFixture{
		usecase:      u,
		appointments: appointments,
		rules:        rules,
		locker:       locker,
		doctorID:     doctorID,
		patientID:    patientID,
	}
}

// bookingDay is Monday 2026-09-07, matching the fixture availability.
func bookingDay() time.Time {
	return time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
}

func (f *bookingFixture) seedAppointment(t *testing.T, start, end string) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		PatientID:       f.patientID,
		DoctorID:        f.doctorID,
		DepartmentID:    1,
		AppointmentDate: bookingDay(),
		StartTime:       start,
		EndTime:         end,
		Type:            entity.AppointmentTypeNew,
		Status:          entity.AppointmentStatusScheduled,
	}
	if err := f.appointments.Create(nil, appointment); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return appointment
}

func (f *bookingFixture) stored(t *testing.T, id uuid.UUID) *entity.Appointment {
	t.Helper()
	stored, ok := f.appointments.appointments[id]
	if !ok {
		t.Fatalf("appointment %s not stored", id)
	}
	return stored
}

func bookRequest(doctorID uuid.UUID, start string) *dto.BookAppointmentRequest {
	return &dto.BookAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: "2026-09-07",
		StartTime:       start,
	}
}

func patientContext(id uuid.UUID) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, id)
	return context.WithValue(ctx, middleware.RoleIDKey, entity.RoleIDPatient)
}

func staffContext(id uuid.UUID) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, id)
	return context.WithValue(ctx, middleware.RoleIDKey, entity.RoleIDAdmin)
}

func wantRejection(t *testing.T, err error, code scheduling.RejectionCode) {
	t.Helper()
	var rej *scheduling.Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want Rejection %s", err, code)
	}
	if rej.Code != code {
		t.Fatalf("Rejection code = %s, want %s", rej.Code, code)
	}
}

func newTestBookingUsecase() BookingUsecase {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewBookingUsecase(nil, log, config.BookingConfig{DefaultSlotMinutes: 30}, nil, nil, nil, nil, nil, nil, nil, nil)
}

func TestListSlotsRejectsMalformedDate(t *testing.T) {
	u := newTestBookingUsecase()

	_, err := u.ListSlots(context.Background(), uuid.New(), "07-09-2026")
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("ListSlots err = %v, want ErrInvalidDateFormat", err)
	}
}

func TestBookRequiresAuthenticatedUser(t *testing.T) {
	u := newTestBookingUsecase()

	_, err := u.Book(context.Background(), &dto.BookAppointmentRequest{
		DoctorID:        uuid.New(),
		AppointmentDate: "2026-09-07",
		StartTime:       "09:00",
	})
	if err == nil {
		t.Fatal("Book with no user in context should fail")
	}
}

func TestBookRejectsMalformedInput(t *testing.T) {
	u := newTestBookingUsecase()
	ctx := patientContext(uuid.New())

	tests := []struct {
		name    string
		date    string
		start   string
		wantErr error
	}{
		{"bad date", "07/09/2026", "09:00", ErrInvalidDateFormat},
		{"empty date", "", "09:00", ErrInvalidDateFormat},
		{"bad time", "2026-09-07", "9am", ErrInvalidTimeFormat},
		{"out of range time", "2026-09-07", "25:00", ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.Book(ctx, &dto.BookAppointmentRequest{
				DoctorID:        uuid.New(),
				AppointmentDate: tt.date,
				StartTime:       tt.start,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Book err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookCreatesScheduledAppointment(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.usecase.Book(patientContext(f.patientID), bookRequest(f.doctorID, "09:00"))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	if resp.Status != string(entity.AppointmentStatusScheduled) {
		t.Errorf("status = %s, want scheduled", resp.Status)
	}
	if resp.StartTime != "09:00" || resp.EndTime != "09:30" {
		t.Errorf("slot = %s-%s, want 09:00-09:30", resp.StartTime, resp.EndTime)
	}
	if resp.PatientID != f.patientID {
		t.Errorf("patient = %s, want %s", resp.PatientID, f.patientID)
	}

	stored := f.stored(t, resp.ID)
	if stored.Status != entity.AppointmentStatusScheduled {
		t.Errorf("stored status = %s, want scheduled", stored.Status)
	}
	if f.locker.calls != 1 {
		t.Errorf("lock acquired %d times, want 1", f.locker.calls)
	}
}

func TestBookRejectsUnknownSlotStart(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.usecase.Book(patientContext(f.patientID), bookRequest(f.doctorID, "09:15"))
	wantRejection(t, err, scheduling.CodeSlotNotAvailable)

	if len(f.appointments.appointments) != 0 {
		t.Errorf("misaligned booking persisted %d appointments", len(f.appointments.appointments))
	}
}

func TestBookRejectsTakenSlot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := patientContext(f.patientID)

	if _, err := f.usecase.Book(ctx, bookRequest(f.doctorID, "09:00")); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := f.usecase.Book(ctx, bookRequest(f.doctorID, "09:00"))
	wantRejection(t, err, scheduling.CodeSlotConflict)

	if len(f.appointments.appointments) != 1 {
		t.Errorf("stored %d appointments after rejected rebook, want 1", len(f.appointments.appointments))
	}
}

func TestBookWhenDoctorLockContended(t *testing.T) {
	f := newBookingFixture(t)
	f.locker.contended = true

	_, err := f.usecase.Book(patientContext(f.patientID), bookRequest(f.doctorID, "09:00"))
	wantRejection(t, err, scheduling.CodeDoctorBusy)

	if len(f.appointments.appointments) != 0 {
		t.Errorf("contended booking persisted %d appointments", len(f.appointments.appointments))
	}
}

func TestBookHonorsClinicTimezone(t *testing.T) {
	// 08:00 UTC on 2026-09-06 leaves a 25 hour lead until 09:00 UTC the
	// next day, but only 18 hours until 09:00 in UTC+7.
	now := func() time.Time { return time.Date(2026, time.September, 6, 8, 0, 0, 0, time.UTC) }
	rule := &entity.AppointmentRule{DepartmentID: 1, MinHoursBeforeBooking: 24}

	western := newBookingFixture(t)
	western.usecase.cfg.Timezone = time.FixedZone("UTC+7", 7*60*60)
	western.rules.rule = rule
	western.usecase.now = now

	_, err := western.usecase.Book(patientContext(western.patientID), bookRequest(western.doctorID, "09:00"))
	wantRejection(t, err, scheduling.CodeTooSoon)

	utc := newBookingFixture(t)
	utc.rules.rule = rule
	utc.usecase.now = now

	if _, err := utc.usecase.Book(patientContext(utc.patientID), bookRequest(utc.doctorID, "09:00")); err != nil {
		t.Fatalf("Book in UTC clinic: %v", err)
	}
}

func TestRescheduleRejectsMalformedInput(t *testing.T) {
	u := newTestBookingUsecase()
	ctx := patientContext(uuid.New())

	_, err := u.Reschedule(ctx, uuid.New(), &dto.RescheduleAppointmentRequest{
		AppointmentDate: "next tuesday",
		StartTime:       "09:00",
	})
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("Reschedule err = %v, want ErrInvalidDateFormat", err)
	}

	_, err = u.Reschedule(ctx, uuid.New(), &dto.RescheduleAppointmentRequest{
		AppointmentDate: "2026-09-08",
		StartTime:       "0900",
	})
	if !errors.Is(err, ErrInvalidTimeFormat) {
		t.Fatalf("Reschedule err = %v, want ErrInvalidTimeFormat", err)
	}
}

func TestRescheduleCreatesReplacementAndClosesOriginal(t *testing.T) {
	f := newBookingFixture(t)
	original := f.seedAppointment(t, "09:00", "09:30")

	resp, err := f.usecase.Reschedule(patientContext(f.patientID), original.ID, &dto.RescheduleAppointmentRequest{
		AppointmentDate: "2026-09-07",
		StartTime:       "10:00",
	})
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}

	if resp.StartTime != "10:00" || resp.EndTime != "10:30" {
		t.Errorf("replacement slot = %s-%s, want 10:00-10:30", resp.StartTime, resp.EndTime)
	}
	if resp.Status != string(entity.AppointmentStatusScheduled) {
		t.Errorf("replacement status = %s, want scheduled", resp.Status)
	}

	closed := f.stored(t, original.ID)
	if closed.Status != entity.AppointmentStatusRescheduled {
		t.Errorf("original status = %s, want rescheduled", closed.Status)
	}
	if closed.RescheduledTo == nil || *closed.RescheduledTo != resp.ID {
		t.Errorf("original.RescheduledTo = %v, want %s", closed.RescheduledTo, resp.ID)
	}
}

func TestRescheduleConflictLeavesOriginalUntouched(t *testing.T) {
	f := newBookingFixture(t)
	original := f.seedAppointment(t, "09:00", "09:30")
	f.seedAppointment(t, "10:00", "10:30")

	_, err := f.usecase.Reschedule(patientContext(f.patientID), original.ID, &dto.RescheduleAppointmentRequest{
		AppointmentDate: "2026-09-07",
		StartTime:       "10:00",
	})
	wantRejection(t, err, scheduling.CodeSlotConflict)

	kept := f.stored(t, original.ID)
	if kept.Status != entity.AppointmentStatusScheduled {
		t.Errorf("original status = %s, want scheduled", kept.Status)
	}
	if kept.RescheduledTo != nil {
		t.Errorf("original.RescheduledTo = %v, want nil", kept.RescheduledTo)
	}
	if len(f.appointments.appointments) != 2 {
		t.Errorf("stored %d appointments after rejected reschedule, want 2", len(f.appointments.appointments))
	}
}

func TestPatientCannotReachOthersAppointment(t *testing.T) {
	f := newBookingFixture(t)
	appointment := f.seedAppointment(t, "09:00", "09:30")
	intruder := patientContext(uuid.New())

	_, err := f.usecase.GetAppointment(intruder, appointment.ID)
	wantRejection(t, err, scheduling.CodeNotFound)

	_, err = f.usecase.Transition(intruder, appointment.ID, scheduling.ActionCancel)
	wantRejection(t, err, scheduling.CodeNotFound)

	_, err = f.usecase.Reschedule(intruder, appointment.ID, &dto.RescheduleAppointmentRequest{
		AppointmentDate: "2026-09-07",
		StartTime:       "10:00",
	})
	wantRejection(t, err, scheduling.CodeNotFound)

	kept := f.stored(t, appointment.ID)
	if kept.Status != entity.AppointmentStatusScheduled {
		t.Errorf("appointment status = %s, want scheduled", kept.Status)
	}
}

func TestPatientCanCancelOwnAppointment(t *testing.T) {
	f := newBookingFixture(t)
	appointment := f.seedAppointment(t, "09:00", "09:30")

	resp, err := f.usecase.Transition(patientContext(f.patientID), appointment.ID, scheduling.ActionCancel)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if resp.Status != string(entity.AppointmentStatusCanceled) {
		t.Errorf("status = %s, want canceled", resp.Status)
	}
	if f.stored(t, appointment.ID).Status != entity.AppointmentStatusCanceled {
		t.Errorf("stored status = %s, want canceled", f.stored(t, appointment.ID).Status)
	}
}

func TestStaffCanActOnAnyPatientsAppointment(t *testing.T) {
	f := newBookingFixture(t)
	appointment := f.seedAppointment(t, "09:00", "09:30")
	staff := staffContext(uuid.New())

	if _, err := f.usecase.GetAppointment(staff, appointment.ID); err != nil {
		t.Fatalf("GetAppointment as staff: %v", err)
	}

	resp, err := f.usecase.Transition(staff, appointment.ID, scheduling.ActionCheckIn)
	if err != nil {
		t.Fatalf("Transition as staff: %v", err)
	}
	if resp.Status != string(entity.AppointmentStatusCheckedIn) {
		t.Errorf("status = %s, want checked_in", resp.Status)
	}
}

func TestTransitionRefusesRescheduleAction(t *testing.T) {
	u := newTestBookingUsecase()

	_, err := u.Transition(patientContext(uuid.New()), uuid.New(), scheduling.ActionReschedule)

	var rej *scheduling.Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("Transition err = %v, want Rejection", err)
	}
	if rej.Code != scheduling.CodeInvalidTransition {
		t.Fatalf("Rejection code = %q, want %q", rej.Code, scheduling.CodeInvalidTransition)
	}
}

func TestAuditActionForMapsEveryAction(t *testing.T) {
	tests := []struct {
		action scheduling.Action
		want   string
	}{
		{scheduling.ActionCheckIn, "appointment.check_in"},
		{scheduling.ActionComplete, "appointment.complete"},
		{scheduling.ActionCancel, "appointment.cancel"},
	}

	for _, tt := range tests {
		if got := auditActionFor(tt.action); got != tt.want {
			t.Errorf("auditActionFor(%q) = %q, want %q", tt.action, got, tt.want)
		}
	}
}

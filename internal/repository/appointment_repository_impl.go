package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Patient.User").Preload("Department").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Where("doctor_id = ? AND appointment_date = ?", doctorID, date.Format("2006-01-02"))
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("start_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Doctor.User").Preload("Patient.User").Preload("Department")

	if filter != nil {
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.DepartmentID != 0 {
			query = query.Where("department_id = ?", filter.DepartmentID)
		}
		if filter.DateFrom != "" {
			query = query.Where("appointment_date >= ?", filter.DateFrom)
		}
		if filter.DateTo != "" {
			query = query.Where("appointment_date <= ?", filter.DateTo)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	err := query.Order("appointment_date ASC, start_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus moves an appointment from one status to another atomically.
// Affected rows: 1 = success, 0 = the record was not in the expected status
// (a concurrent transition won).
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// MarkRescheduled closes the original record and points it at its
// replacement, guarded by the same compare-and-set as UpdateStatus.
func (r *appointmentRepository) MarkRescheduled(db *gorm.DB, id, replacementID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusScheduled).
		Updates(map[string]interface{}{
			"status":         entity.AppointmentStatusRescheduled,
			"rescheduled_to": replacementID,
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Doctor", "Patient", "Department").Save(appointment).Error
}

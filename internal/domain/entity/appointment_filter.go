package entity

import "github.com/google/uuid"

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by the repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	DoctorID     *uuid.UUID
	PatientID    *uuid.UUID
	DepartmentID int
	DateFrom     string // Format: YYYY-MM-DD
	DateTo       string // Format: YYYY-MM-DD
	Status       string
}

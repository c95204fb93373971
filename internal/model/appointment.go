package model

import (
	"fmt"
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// Blocks reports whether an appointment in this status holds its slot.
func (s AppointmentStatus) Blocks() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusConfirmed
}

type Appointment struct {
	ID              int64             `db:"id" json:"id"`
	DoctorID        int64             `db:"doctor_id" json:"doctor_id"`
	PatientName     string            `db:"patient_name" json:"patient_name"`
	PatientEmail    string            `db:"patient_email" json:"patient_email"`
	PatientPhone    string            `db:"patient_phone" json:"patient_phone"`
	AppointmentDate Date              `db:"appointment_date" json:"appointment_date"`
	AppointmentTime TimeOfDay         `db:"appointment_time" json:"appointment_time"`
	Notes           *string           `db:"notes" json:"notes,omitempty"`
	Status          AppointmentStatus `db:"status" json:"status"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

// SetStatus is the single mutation point for the appointment state machine.
// Any of the four statuses is accepted as a target; a stricter transition
// table can be substituted here without touching call sites.
func (a *Appointment) SetStatus(status AppointmentStatus, now time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	a.Status = status
	a.UpdatedAt = now
	return nil
}

type CreateAppointmentRequest struct {
	DoctorID        int64   `json:"doctor_id" binding:"required"`
	PatientName     string  `json:"patient_name" binding:"required"`
	PatientEmail    string  `json:"patient_email" binding:"required,email"`
	PatientPhone    string  `json:"patient_phone" binding:"required"`
	AppointmentDate string  `json:"appointment_date" binding:"required,dateonly"`
	AppointmentTime string  `json:"appointment_time" binding:"required,timeofday"`
	Notes           *string `json:"notes"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AppointmentFilters narrows the general appointment listing. All fields
// are optional and combine with AND.
type AppointmentFilters struct {
	DoctorID        int64
	AppointmentDate *Date
	Status          AppointmentStatus
	PatientEmail    string
	Pagination      Pagination
}

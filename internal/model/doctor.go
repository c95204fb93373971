package model

import "time"

// Doctor is a schedulable professional. ProfessionalCode is the external
// registry identifier and is globally unique; ID is assigned on creation.
type Doctor struct {
	ID                int64     `db:"id" json:"id"`
	ProfessionalCode  string    `db:"professional_code" json:"professional_code"`
	Name              string    `db:"name" json:"name"`
	Specialty         *string   `db:"specialty" json:"specialty,omitempty"`
	LicenseNumber     *string   `db:"license_number" json:"license_number,omitempty"`
	EstablishmentID   string    `db:"establishment_id" json:"establishment_id"`
	EstablishmentName *string   `db:"establishment_name" json:"establishment_name,omitempty"`
	Email             *string   `db:"email" json:"email,omitempty"`
	Phone             *string   `db:"phone" json:"phone,omitempty"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

type CreateDoctorRequest struct {
	ProfessionalCode  string  `json:"professional_code" binding:"required"`
	Name              string  `json:"name" binding:"required"`
	Specialty         *string `json:"specialty"`
	LicenseNumber     *string `json:"license_number"`
	EstablishmentID   string  `json:"establishment_id" binding:"required"`
	EstablishmentName *string `json:"establishment_name"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Phone             *string `json:"phone"`
}

// DoctorFilters narrows doctor listings. Specialty is matched as a
// case-insensitive substring.
type DoctorFilters struct {
	EstablishmentID string
	Specialty       string
	Pagination      Pagination
}

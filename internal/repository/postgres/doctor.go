package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finddoctor/scheduling-api/internal/model"
	apperrors "github.com/finddoctor/scheduling-api/pkg/errors"
)

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			professional_code, name, specialty, license_number,
			establishment_id, establishment_name, email, phone,
			is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	doctor.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		doctor.ProfessionalCode,
		doctor.Name,
		doctor.Specialty,
		doctor.LicenseNumber,
		doctor.EstablishmentID,
		doctor.EstablishmentName,
		doctor.Email,
		doctor.Phone,
		doctor.IsActive,
		doctor.CreatedAt,
	).Scan(&doctor.ID)
	if err != nil {
		if isUniqueViolation(err, "doctors_professional_code_key") {
			return apperrors.Conflict("professional code already registered", err)
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `
		SELECT id, professional_code, name, specialty, license_number,
			   establishment_id, establishment_name, email, phone,
			   is_active, created_at
		FROM doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	query := `
		SELECT id, professional_code, name, specialty, license_number,
			   establishment_id, establishment_name, email, phone,
			   is_active, created_at
		FROM doctors
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.EstablishmentID != "" {
		query += fmt.Sprintf(" AND establishment_id = $%d", argCount)
		args = append(args, filters.EstablishmentID)
		argCount++
	}

	if filters.Specialty != "" {
		query += fmt.Sprintf(" AND specialty ILIKE $%d", argCount)
		args = append(args, "%"+filters.Specialty+"%")
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filters.Pagination.Limit, filters.Pagination.Offset)

	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	// Windows and appointments go with the doctor via ON DELETE CASCADE.
	query := `
		DELETE FROM doctors
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("doctor", nil)
	}

	return nil
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vet-appointments/internal/database"
	"vet-appointments/internal/models"
)

// ErrNotFound is returned when no row matches the lookup.
var ErrNotFound = errors.New("appointment not found")

type AppointmentRepository struct {
	pool *database.Pool
}

func NewAppointmentRepo(pool *database.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// Create inserts a new appointment and fills in its generated ID
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.pool.Execute(ctx, func(db *gorm.DB) error {
		return db.Create(appointment).Error
	})
}

// FindByCredential retrieves every appointment booked with the given email
// and confirmation code, latest date first
func (r *AppointmentRepository) FindByCredential(ctx context.Context, correo, codigo string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.pool.Execute(ctx, func(db *gorm.DB) error {
		return db.Where("correo = ? AND codigo_confirmacion = ?", correo, codigo).
			Order("fecha_cita DESC").
			Order("hora_cita DESC").
			Find(&appointments).Error
	})
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, ErrNotFound
	}
	return appointments, nil
}

// GetByID retrieves an appointment by ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.pool.Execute(ctx, func(db *gorm.DB) error {
		return db.First(&appointment, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// UpdateDetails overwrites the editable columns. The existence check and the
// update share one transaction.
func (r *AppointmentRepository) UpdateDetails(ctx context.Context, id uint, details models.AppointmentDetails) error {
	return r.pool.Transact(ctx, func(tx *gorm.DB) error {
		var existing models.Appointment
		if err := tx.Select("id").First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		return tx.Model(&models.Appointment{}).
			Where("id = ?", id).
			Updates(details.Columns()).Error
	})
}

// Cancel sets the appointment state to cancelada, even when it already is
func (r *AppointmentRepository) Cancel(ctx context.Context, id uint) error {
	return r.pool.Execute(ctx, func(db *gorm.DB) error {
		result := db.Model(&models.Appointment{}).
			Where("id = ?", id).
			Update("estado", models.EstadoCancelada)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Delete permanently removes an appointment regardless of its state
func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	return r.pool.Execute(ctx, func(db *gorm.DB) error {
		result := db.Delete(&models.Appointment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

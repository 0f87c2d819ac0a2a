package repository

import (
	"context"

	"gorm.io/gorm"

	"vet-appointments/internal/database"
	"vet-appointments/internal/models"
)

type AuditRepository struct {
	pool *database.Pool
}

func NewAuditRepo(pool *database.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Record creates a new audit log entry for an appointment
func (r *AuditRepository) Record(ctx context.Context, appointmentID uint, action string, details string) error {
	log := &models.AuditLog{
		AppointmentID: appointmentID,
		Action:        action,
		Details:       details,
	}
	return r.pool.Execute(ctx, func(db *gorm.DB) error {
		return db.Create(log).Error
	})
}

// ListByAppointment returns the trail of an appointment, oldest first
func (r *AuditRepository) ListByAppointment(ctx context.Context, appointmentID uint) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.pool.Execute(ctx, func(db *gorm.DB) error {
		return db.Where("appointment_id = ?", appointmentID).
			Order("created_at ASC").
			Order("id ASC").
			Find(&logs).Error
	})
	return logs, err
}

package models

import "time"

// AuditLog represents the cita_auditoria table
// Used to keep a trail of appointment lifecycle actions
type AuditLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uint      `gorm:"index;not null" json:"appointment_id"`
	Action        string    `gorm:"size:100;not null" json:"action"`
	Details       string    `gorm:"type:text" json:"details"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "cita_auditoria"
}

// Audit actions recorded for appointments.
const (
	ActionCreate = "appointment_create"
	ActionUpdate = "appointment_update"
	ActionCancel = "appointment_cancel"
	ActionDelete = "appointment_delete"
)

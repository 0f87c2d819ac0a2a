package models

import "time"

// Estado is the lifecycle status of an appointment.
type Estado string

const (
	EstadoActiva    Estado = "activa"
	EstadoCancelada Estado = "cancelada"
)

// Appointment represents a row of the citas table: one client, one pet and
// one requested slot.
type Appointment struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Nombre             string    `gorm:"size:100;not null" json:"nombre"`
	Telefono           string    `gorm:"size:9;not null" json:"telefono"`
	Correo             string    `gorm:"size:255;not null;index:idx_citas_credencial,priority:1" json:"correo"`
	Descripcion        string    `gorm:"size:255;not null" json:"descripcion"`
	TipoAnimal         string    `gorm:"size:50;not null" json:"tipo_animal"`
	NombreMascota      string    `gorm:"size:100;not null" json:"nombre_mascota"`
	RazonConsulta      string    `gorm:"size:255;not null" json:"razon_consulta"`
	Mensaje            string    `gorm:"type:text;not null" json:"mensaje"`
	FechaCita          Fecha     `gorm:"type:date;not null" json:"fecha_cita"`
	HoraCita           Hora      `gorm:"type:time;not null" json:"hora_cita"`
	CodigoConfirmacion string    `gorm:"size:8;not null;index:idx_citas_credencial,priority:2" json:"codigo_confirmacion"`
	Estado             Estado    `gorm:"type:enum('activa','cancelada');default:'activa'" json:"estado"`
	CreatedAt          time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "citas"
}

// IsCancelled reports whether the appointment reached its terminal state.
func (a *Appointment) IsCancelled() bool {
	return a.Estado == EstadoCancelada
}

// AppointmentDetails holds the columns a client may change after booking.
type AppointmentDetails struct {
	FechaCita     Fecha
	HoraCita      Hora
	RazonConsulta string
	Mensaje       string
	TipoAnimal    string
	NombreMascota string
}

// Columns maps the details onto their column names for a partial update.
func (d AppointmentDetails) Columns() map[string]interface{} {
	return map[string]interface{}{
		"fecha_cita":     d.FechaCita,
		"hora_cita":      d.HoraCita,
		"razon_consulta": d.RazonConsulta,
		"mensaje":        d.Mensaje,
		"tipo_animal":    d.TipoAnimal,
		"nombre_mascota": d.NombreMascota,
	}
}

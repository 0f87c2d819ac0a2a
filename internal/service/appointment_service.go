package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"vet-appointments/internal/metrics"
	"vet-appointments/internal/models"
	"vet-appointments/internal/repository"
)

var (
	telefonoPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{4}$`)
	correoPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// AppointmentStore is the persistence contract the service depends on.
type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByCredential(ctx context.Context, correo, codigo string) ([]models.Appointment, error)
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateDetails(ctx context.Context, id uint, details models.AppointmentDetails) error
	Cancel(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

// AuditTrail stores lifecycle entries for appointments.
type AuditTrail interface {
	Record(ctx context.Context, appointmentID uint, action string, details string) error
	ListByAppointment(ctx context.Context, appointmentID uint) ([]models.AuditLog, error)
}

type AppointmentService struct {
	repo     AppointmentStore
	audit    AuditTrail
	log      *logrus.Logger
	validate *validator.Validate
	now      func() time.Time
	loc      *time.Location
	newCode  CodeGenerator
}

// Option customizes an AppointmentService.
type Option func(*AppointmentService)

// WithClock overrides the time source used for the not-in-the-past rule.
func WithClock(now func() time.Time) Option {
	return func(s *AppointmentService) { s.now = now }
}

// WithLocation sets the clinic timezone that decides what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *AppointmentService) { s.loc = loc }
}

// WithCodeGenerator overrides confirmation code generation.
func WithCodeGenerator(gen CodeGenerator) Option {
	return func(s *AppointmentService) { s.newCode = gen }
}

func NewAppointmentService(repo AppointmentStore, audit AuditTrail, log *logrus.Logger, opts ...Option) *AppointmentService {
	s := &AppointmentService{
		repo:     repo,
		audit:    audit,
		log:      log,
		validate: newValidator(),
		now:      time.Now,
		loc:      time.Local,
		newCode:  RandomCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("telefono", func(fl validator.FieldLevel) bool {
		return telefonoPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("correo", func(fl validator.FieldLevel) bool {
		return correoPattern.MatchString(fl.Field().String())
	})

	return v
}

// CreateInput carries the ten business fields of a booking.
type CreateInput struct {
	Nombre        string `json:"nombre" validate:"required,max=100"`
	Telefono      string `json:"telefono" validate:"required,telefono"`
	Correo        string `json:"correo" validate:"required,max=255,correo"`
	Descripcion   string `json:"descripcion" validate:"required,max=255"`
	TipoAnimal    string `json:"tipo_animal" validate:"required,max=50"`
	NombreMascota string `json:"nombre_mascota" validate:"required,max=100"`
	RazonConsulta string `json:"razon_consulta" validate:"required,max=255"`
	Mensaje       string `json:"mensaje" validate:"required"`
	FechaCita     string `json:"fecha_cita" validate:"required"`
	HoraCita      string `json:"hora_cita" validate:"required"`
}

func (in CreateInput) trimmed() CreateInput {
	return CreateInput{
		Nombre:        strings.TrimSpace(in.Nombre),
		Telefono:      strings.TrimSpace(in.Telefono),
		Correo:        strings.TrimSpace(in.Correo),
		Descripcion:   strings.TrimSpace(in.Descripcion),
		TipoAnimal:    strings.TrimSpace(in.TipoAnimal),
		NombreMascota: strings.TrimSpace(in.NombreMascota),
		RazonConsulta: strings.TrimSpace(in.RazonConsulta),
		Mensaje:       strings.TrimSpace(in.Mensaje),
		FechaCita:     strings.TrimSpace(in.FechaCita),
		HoraCita:      strings.TrimSpace(in.HoraCita),
	}
}

// UpdateInput carries the editable fields. Calendar rules are not applied
// on update, only presence and parseability.
type UpdateInput struct {
	FechaCita     string `json:"fecha_cita" validate:"required"`
	HoraCita      string `json:"hora_cita" validate:"required"`
	RazonConsulta string `json:"razon_consulta" validate:"required,max=255"`
	Mensaje       string `json:"mensaje" validate:"required"`
	TipoAnimal    string `json:"tipo_animal" validate:"required,max=50"`
	NombreMascota string `json:"nombre_mascota" validate:"required,max=100"`
}

func (in UpdateInput) trimmed() UpdateInput {
	return UpdateInput{
		FechaCita:     strings.TrimSpace(in.FechaCita),
		HoraCita:      strings.TrimSpace(in.HoraCita),
		RazonConsulta: strings.TrimSpace(in.RazonConsulta),
		Mensaje:       strings.TrimSpace(in.Mensaje),
		TipoAnimal:    strings.TrimSpace(in.TipoAnimal),
		NombreMascota: strings.TrimSpace(in.NombreMascota),
	}
}

// Create validates a booking, assigns its confirmation code and stores it
// as an active appointment
func (s *AppointmentService) Create(ctx context.Context, in CreateInput) (*models.Appointment, error) {
	in = in.trimmed()

	verr := s.check(in, "All fields are required")
	fecha, hora := s.parseSlot(verr, in.FechaCita, in.HoraCita)
	if _, bad := verr.Invalid["fecha_cita"]; !bad && !fecha.IsZero() {
		s.checkDate(verr, fecha)
	}
	if _, bad := verr.Invalid["hora_cita"]; !bad && !hora.IsZero() && !WithinBusinessHours(hora) {
		verr.invalid("hora_cita", "must be between 08:00 and 17:00")
	}
	if !verr.empty() {
		if len(verr.Missing) == 0 {
			verr.Message = "Invalid appointment data"
		}
		return nil, verr
	}

	appointment := &models.Appointment{
		Nombre:             in.Nombre,
		Telefono:           in.Telefono,
		Correo:             in.Correo,
		Descripcion:        in.Descripcion,
		TipoAnimal:         in.TipoAnimal,
		NombreMascota:      in.NombreMascota,
		RazonConsulta:      in.RazonConsulta,
		Mensaje:            in.Mensaje,
		FechaCita:          fecha,
		HoraCita:           hora,
		CodigoConfirmacion: s.newCode(),
		Estado:             models.EstadoActiva,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, s.storeErr("create appointment", err)
	}

	s.record(ctx, appointment.ID, models.ActionCreate,
		fmt.Sprintf("Booked %s (%s) on %s at %s", appointment.NombreMascota, appointment.TipoAnimal, appointment.FechaCita, appointment.HoraCita))
	metrics.RecordAppointmentEvent(models.ActionCreate)

	return appointment, nil
}

// FindByCredential returns the appointments matching both email and code.
// No match is reported as ErrNotFound, whichever half was wrong.
func (s *AppointmentService) FindByCredential(ctx context.Context, correo, codigo string) ([]models.Appointment, error) {
	correo = strings.TrimSpace(correo)
	codigo = strings.TrimSpace(codigo)

	verr := &ValidationError{Message: "Email and confirmation code are required"}
	if correo == "" {
		verr.Missing = append(verr.Missing, "correo")
	}
	if codigo == "" {
		verr.Missing = append(verr.Missing, "codigo")
	}
	if !verr.empty() {
		return nil, verr
	}

	appointments, err := s.repo.FindByCredential(ctx, correo, codigo)
	if err != nil {
		return nil, s.storeErr("search appointments", err)
	}
	return appointments, nil
}

// GetByID retrieves a single appointment
func (s *AppointmentService) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("get appointment", err)
	}
	return appointment, nil
}

// Update overwrites date, time, reason, notes and pet data of an existing
// appointment. Contact data, code and state are left untouched.
func (s *AppointmentService) Update(ctx context.Context, id uint, in UpdateInput) error {
	in = in.trimmed()

	verr := s.check(in, "All fields are required")
	fecha, hora := s.parseSlot(verr, in.FechaCita, in.HoraCita)
	if !verr.empty() {
		if len(verr.Missing) == 0 {
			verr.Message = "Invalid appointment data"
		}
		return verr
	}

	details := models.AppointmentDetails{
		FechaCita:     fecha,
		HoraCita:      hora,
		RazonConsulta: in.RazonConsulta,
		Mensaje:       in.Mensaje,
		TipoAnimal:    in.TipoAnimal,
		NombreMascota: in.NombreMascota,
	}
	if err := s.repo.UpdateDetails(ctx, id, details); err != nil {
		return s.storeErr("update appointment", err)
	}

	s.record(ctx, id, models.ActionUpdate, fmt.Sprintf("Rescheduled to %s at %s", fecha, hora))
	metrics.RecordAppointmentEvent(models.ActionUpdate)
	return nil
}

// Cancel marks the appointment as cancelada. Cancelling twice succeeds.
func (s *AppointmentService) Cancel(ctx context.Context, id uint) error {
	if err := s.repo.Cancel(ctx, id); err != nil {
		return s.storeErr("cancel appointment", err)
	}

	s.record(ctx, id, models.ActionCancel, "Appointment cancelled")
	metrics.RecordAppointmentEvent(models.ActionCancel)
	return nil
}

// Delete removes the appointment permanently
func (s *AppointmentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr("delete appointment", err)
	}

	s.record(ctx, id, models.ActionDelete, "Appointment deleted")
	metrics.RecordAppointmentEvent(models.ActionDelete)
	return nil
}

// History returns the lifecycle trail of an appointment. It outlives the
// appointment itself, so deleted appointments still have one.
func (s *AppointmentService) History(ctx context.Context, id uint) ([]models.AuditLog, error) {
	logs, err := s.audit.ListByAppointment(ctx, id)
	if err != nil {
		return nil, s.storeErr("list appointment history", err)
	}
	if len(logs) == 0 {
		return nil, ErrNotFound
	}
	return logs, nil
}

// check runs the struct tag rules and sorts failures into missing and
// invalid fields.
func (s *AppointmentService) check(in interface{}, message string) *ValidationError {
	verr := &ValidationError{Message: message}

	err := s.validate.Struct(in)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.invalid("body", err.Error())
		return verr
	}

	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			verr.Missing = append(verr.Missing, fe.Field())
		case "max":
			verr.invalid(fe.Field(), fmt.Sprintf("must be at most %s characters", fe.Param()))
		case "telefono":
			verr.invalid(fe.Field(), "must match the format 0000-0000")
		case "correo":
			verr.invalid(fe.Field(), "must be a valid email address")
		default:
			verr.invalid(fe.Field(), "is invalid")
		}
	}
	return verr
}

func (s *AppointmentService) parseSlot(verr *ValidationError, fechaStr, horaStr string) (models.Fecha, models.Hora) {
	var (
		fecha models.Fecha
		hora  models.Hora
		err   error
	)
	if fechaStr != "" {
		if fecha, err = models.ParseFecha(fechaStr); err != nil {
			verr.invalid("fecha_cita", "must be a date in YYYY-MM-DD format")
		}
	}
	if horaStr != "" {
		if hora, err = models.ParseHora(horaStr); err != nil {
			verr.invalid("hora_cita", "must be a time in HH:MM format")
		}
	}
	return fecha, hora
}

func (s *AppointmentService) checkDate(verr *ValidationError, fecha models.Fecha) {
	today := models.FechaOf(s.now().In(s.loc))
	if fecha.Before(today) {
		verr.invalid("fecha_cita", "must not be in the past")
		return
	}
	if IsWeekend(fecha) {
		verr.invalid("fecha_cita", fmt.Sprintf("falls on a weekend, next available weekday is %s", NextWeekday(fecha)))
	}
}

func (s *AppointmentService) storeErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return &StoreError{Op: op, Err: err}
}

// record writes an audit entry. Failures are logged and never surface to
// the caller.
func (s *AppointmentService) record(ctx context.Context, id uint, action, details string) {
	if err := s.audit.Record(ctx, id, action, details); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"appointment_id": id,
			"action":         action,
		}).Warn("Failed to write audit log")
	}
}

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"vet-appointments/internal/database"
	"vet-appointments/internal/logger"
	"vet-appointments/internal/models"
)

var appointmentColumns = []string{
	"id", "nombre", "telefono", "correo", "descripcion", "tipo_animal", "nombre_mascota",
	"razon_consulta", "mensaje", "fecha_cita", "hora_cita", "codigo_confirmacion", "estado",
	"created_at", "updated_at",
}

func newMockPool(t *testing.T) (*database.Pool, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	pool := database.NewWithOpener(func() (*gorm.DB, error) {
		return gorm.Open(gormmysql.New(gormmysql.Config{
			Conn:                      sqlDB,
			SkipInitializeWithVersion: true,
		}), &gorm.Config{SkipDefaultTransaction: true})
	}, logger.Discard())
	return pool, mock
}

func appointmentRow(rows *sqlmock.Rows, id int64, fecha, hora string, estado string) *sqlmock.Rows {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Ana", "6000-1234", "ana@example.com", "Consulta general", "Perro", "Luna",
		"Vacunas", "Primera visita", fecha, []byte(hora), "ABCD1234", estado, now, now)
}

func TestAppointmentCreate(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewAppointmentRepo(pool)

	mock.ExpectExec("INSERT INTO `citas`").WillReturnResult(sqlmock.NewResult(42, 1))

	a := &models.Appointment{
		Nombre:             "Ana",
		Telefono:           "6000-1234",
		Correo:             "ana@example.com",
		FechaCita:          models.NewFecha(2025, time.March, 10),
		HoraCita:           models.NewHora(9, 0, 0),
		CodigoConfirmacion: "ABCD1234",
		Estado:             models.EstadoActiva,
	}
	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, uint(42), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentFindByCredential(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewAppointmentRepo(pool)

	rows := sqlmock.NewRows(appointmentColumns)
	appointmentRow(rows, 2, "2025-03-12", "10:30:00", "activa")
	appointmentRow(rows, 1, "2025-03-10", "09:00:00", "cancelada")

	mock.ExpectQuery("SELECT \\* FROM `citas` WHERE correo = \\? AND codigo_confirmacion = \\? ORDER BY fecha_cita DESC,hora_cita DESC").
		WithArgs("ana@example.com", "ABCD1234").
		WillReturnRows(rows)

	found, err := repo.FindByCredential(context.Background(), "ana@example.com", "ABCD1234")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "2025-03-12", found[0].FechaCita.String())
	assert.Equal(t, "10:30", found[0].HoraCita.String())
	assert.True(t, found[1].IsCancelled())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentFindByCredentialNoRows(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewAppointmentRepo(pool)

	mock.ExpectQuery("SELECT \\* FROM `citas`").WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, err := repo.FindByCredential(context.Background(), "ana@example.com", "WRONG000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppointmentGetByID(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewAppointmentRepo(pool)

	mock.ExpectQuery("SELECT \\* FROM `citas` WHERE `citas`.`id` = \\?").
		WillReturnRows(appointmentRow(sqlmock.NewRows(appointmentColumns), 5, "2025-03-10", "09:00:00", "activa"))

	a, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), a.ID)
	assert.Equal(t, "Luna", a.NombreMascota)

	mock.ExpectQuery("SELECT \\* FROM `citas`").WillReturnRows(sqlmock.NewRows(appointmentColumns))
	_, err = repo.GetByID(context.Background(), 6)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentGetByIDStoreError(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewAppointmentRepo(pool)

	dbErr := errors.New("server has gone away")
	mock.ExpectQuery("SELECT \\* FROM `citas`").WillReturnError(dbErr)

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestAppointmentUpdateDetails(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewAppointmentRepo(pool)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `citas`").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec("UPDATE `citas` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateDetails(context.Background(), 3, models.AppointmentDetails{
		FechaCita:     models.NewFecha(2025, time.March, 12),
		HoraCita:      models.NewHora(10, 30, 0),
		RazonConsulta: "Control",
		Mensaje:       "Cambio",
		TipoAnimal:    "Perro",
		NombreMascota: "Luna",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdateDetailsMissing(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewAppointmentRepo(pool)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `citas`").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.UpdateDetails(context.Background(), 9, models.AppointmentDetails{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCancel(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewAppointmentRepo(pool)

	mock.ExpectExec("UPDATE `citas` SET `estado`=\\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Cancel(context.Background(), 3))

	mock.ExpectExec("UPDATE `citas` SET `estado`=\\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Cancel(context.Background(), 99), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentDelete(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewAppointmentRepo(pool)

	mock.ExpectExec("DELETE FROM `citas` WHERE `citas`.`id` = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 3))

	mock.ExpectExec("DELETE FROM `citas`").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

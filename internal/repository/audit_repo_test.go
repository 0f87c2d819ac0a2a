package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-appointments/internal/models"
)

func TestAuditRecord(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewAuditRepo(pool)

	mock.ExpectExec("INSERT INTO `cita_auditoria`").WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Record(context.Background(), 7, models.ActionCancel, "Appointment cancelled"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditListByAppointment(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewAuditRepo(pool)

	created := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "appointment_id", "action", "details", "created_at"}).
		AddRow(1, 7, models.ActionCreate, "Booked Luna", created).
		AddRow(2, 7, models.ActionCancel, "Appointment cancelled", created.Add(time.Hour))

	mock.ExpectQuery("SELECT \\* FROM `cita_auditoria` WHERE appointment_id = \\? ORDER BY created_at ASC,id ASC").
		WithArgs(7).
		WillReturnRows(rows)

	logs, err := repo.ListByAppointment(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.ActionCreate, logs[0].Action)
	assert.Equal(t, models.ActionCancel, logs[1].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepositoryAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO events").
		WithArgs("anon-123", nil, "form_received", "web", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewEventRepository(db)
	err = repo.Append(context.Background(), "anon-123", nil, "form_received", "web", map[string]any{
		"email": "jane@example.com",
		"name":  "Jane Doe",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryAppendWithUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	contactID := "crm-42"
	mock.ExpectExec("INSERT INTO events").
		WithArgs("anon-123", &contactID, "form_submitted", "web", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	repo := NewEventRepository(db)
	err = repo.Append(context.Background(), "anon-123", &contactID, "form_submitted", "web", map[string]any{})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryAppendDBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO events").
		WillReturnError(errors.New("connection refused"))

	repo := NewEventRepository(db)
	err = repo.Append(context.Background(), "anon-123", nil, "form_received", "web", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "form_received")
}

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorIdentityLink(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO visitor_identities").
		WithArgs("anon-123", "crm-42", "jane@example.com").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewVisitorIdentityRepository(db)
	err = repo.Link(context.Background(), "anon-123", "crm-42", "jane@example.com")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitorIdentityLinkDBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO visitor_identities").
		WillReturnError(errors.New("deadlock detected"))

	repo := NewVisitorIdentityRepository(db)
	err = repo.Link(context.Background(), "anon-123", "crm-42", "jane@example.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "visitor identity")
}

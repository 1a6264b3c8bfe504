package database

import (
	"context"
	stderrors "errors"
	"testing"

	"estate-assistant/internal/common/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresClient_Ping_Success(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()

	client := &PostgresClient{DB: db}
	assert.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Ping_FailureIsConnectionError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(stderrors.New("connection refused"))

	client := &PostgresClient{DB: db}
	err = client.Ping(context.Background())

	require.Error(t, err)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeDatabaseConnectionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

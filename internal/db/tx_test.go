package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var readCommitted = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

func TestWithinTxCommitsOnSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mgr := NewTxManager(mock, readCommitted)

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectExec("DELETE FROM public.availability").WithArgs("e1").WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectCommit()

	err = mgr.WithinTx(context.Background(), func(ctx context.Context) error {
		assert.True(t, InTx(ctx))
		_, err := Executor(ctx, mock).Exec(ctx, "DELETE FROM public.availability WHERE expert_id = $1", "e1")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mgr := NewTxManager(mock, readCommitted)
	failure := errors.New("insert failed")

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectRollback()

	err = mgr.WithinTx(context.Background(), func(ctx context.Context) error {
		return failure
	})
	assert.ErrorIs(t, err, failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTxNestedReusesOuterTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mgr := NewTxManager(mock, readCommitted)

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectCommit()

	calls := 0
	err = mgr.WithinTx(context.Background(), func(ctx context.Context) error {
		return mgr.WithinTx(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorFallsBackOutsideTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.Equal(t, DBTX(mock), Executor(context.Background(), mock))
	assert.False(t, InTx(context.Background()))
}

func TestErrorClassification(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("insert booking failed: %w", &pgconn.PgError{Code: code})
	}

	assert.True(t, IsUniqueViolation(wrap(pgerrcode.UniqueViolation)))
	assert.True(t, IsForeignKeyViolation(wrap(pgerrcode.ForeignKeyViolation)))
	assert.True(t, IsWriteConflict(wrap(pgerrcode.ExclusionViolation)))
	assert.True(t, IsWriteConflict(wrap(pgerrcode.SerializationFailure)))
	assert.False(t, IsWriteConflict(wrap(pgerrcode.UniqueViolation)))
	assert.Equal(t, "", PgErrorCode(errors.New("plain")))
}

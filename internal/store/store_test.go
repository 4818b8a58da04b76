package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pgError(code, constraint, column string) error {
	return fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:           code,
		ConstraintName: constraint,
		ColumnName:     column,
	})
}

func TestClassifyErrorUniqueEmail(t *testing.T) {
	err := ClassifyError(pgError("23505", "idx_registrations_email", ""))

	var cerr *ConstraintError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ConstraintDuplicate, cerr.Kind)
	assert.Equal(t, "email", cerr.Column)
}

func TestClassifyErrorUniqueIdentity(t *testing.T) {
	err := ClassifyError(pgError("23505", "idx_registrations_identity_card_number", ""))

	var cerr *ConstraintError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ConstraintDuplicate, cerr.Kind)
	assert.Equal(t, "identity_card_number", cerr.Column)
}

func TestClassifyErrorNotNull(t *testing.T) {
	err := ClassifyError(pgError("23502", "", "first_name"))

	var cerr *ConstraintError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ConstraintMissingRequired, cerr.Kind)
	assert.Equal(t, "first_name", cerr.Column)
}

func TestClassifyErrorInvalidSyntax(t *testing.T) {
	err := ClassifyError(pgError("22P02", "", ""))

	var cerr *ConstraintError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ConstraintInvalidData, cerr.Kind)
}

func TestClassifyErrorOtherConstraintClasses(t *testing.T) {
	for _, code := range []string{"23514", "23503"} {
		err := ClassifyError(pgError(code, "registrations_check", ""))

		var cerr *ConstraintError
		require.ErrorAs(t, err, &cerr, "code %s", code)
		assert.Equal(t, ConstraintOther, cerr.Kind, "code %s", code)
	}
}

func TestClassifyErrorPassesThroughUnknown(t *testing.T) {
	plain := errors.New("connection refused")
	assert.Same(t, plain, ClassifyError(plain))

	// Non-constraint SQLSTATE classes are not wrapped either.
	serialization := pgError("40001", "", "")
	assert.Equal(t, serialization, ClassifyError(serialization))
}

func TestConstraintErrorUnwrap(t *testing.T) {
	err := ClassifyError(pgError("23505", "idx_registrations_email", ""))

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr, "original driver error stays reachable")
}

// Package store wraps the backing database behind the three operations
// the registration flow needs: a connectivity probe, an identity-number
// lookup and a classified insert.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/example/apizrace/internal/models"
)

// ConstraintKind classifies a store-side constraint violation so callers
// can map it to a corrective message.
type ConstraintKind string

const (
	// ConstraintDuplicate is a unique-index violation.
	ConstraintDuplicate ConstraintKind = "duplicate"
	// ConstraintMissingRequired is a not-null violation.
	ConstraintMissingRequired ConstraintKind = "missing_required"
	// ConstraintInvalidData is an input-syntax violation.
	ConstraintInvalidData ConstraintKind = "invalid_data"
	// ConstraintOther covers check, foreign-key and remaining
	// integrity-constraint classes.
	ConstraintOther ConstraintKind = "constraint_violation"
)

// ConstraintError reports which constraint class an insert tripped and,
// when known, the offending column.
type ConstraintError struct {
	Kind   ConstraintKind
	Column string
	cause  error
}

func (e *ConstraintError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("store: %s on %s: %v", e.Kind, e.Column, e.cause)
	}
	return fmt.Sprintf("store: %s: %v", e.Kind, e.cause)
}

func (e *ConstraintError) Unwrap() error {
	return e.cause
}

// RegistrationStore persists and queries registration records.
type RegistrationStore struct {
	db *gorm.DB
}

// New wraps a gorm connection.
func New(db *gorm.DB) *RegistrationStore {
	return &RegistrationStore{db: db}
}

// Probe verifies the registrations table is reachable before a
// submission is attempted.
func (s *RegistrationStore) Probe() error {
	var ids []string
	if err := s.db.Model(&models.Registration{}).Limit(1).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("store: probe: %w", err)
	}
	return nil
}

// FindByIdentityNumber returns the registration holding the identity
// number, or nil when none exists.
func (s *RegistrationStore) FindByIdentityNumber(identityNumber string) (*models.Registration, error) {
	var reg models.Registration
	err := s.db.Where("identity_card_number = ?", identityNumber).First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: find by identity number: %w", err)
	}
	return &reg, nil
}

// Insert writes the record. Constraint violations come back as
// *ConstraintError; anything else is returned as-is.
func (s *RegistrationStore) Insert(reg *models.Registration) error {
	if err := s.db.Create(reg).Error; err != nil {
		return ClassifyError(err)
	}
	return nil
}

// Postgres SQLSTATE codes the flow distinguishes.
const (
	pgInvalidTextRepresentation = "22P02"
	pgNotNullViolation          = "23502"
	pgUniqueViolation           = "23505"
)

// ClassifyError maps a driver error to a ConstraintError where it
// represents a constraint class the flow knows how to report.
func ClassifyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == pgUniqueViolation:
		return &ConstraintError{
			Kind:   ConstraintDuplicate,
			Column: uniqueColumn(pgErr.ConstraintName),
			cause:  err,
		}
	case pgErr.Code == pgNotNullViolation:
		return &ConstraintError{
			Kind:   ConstraintMissingRequired,
			Column: pgErr.ColumnName,
			cause:  err,
		}
	case pgErr.Code == pgInvalidTextRepresentation:
		return &ConstraintError{Kind: ConstraintInvalidData, cause: err}
	case strings.HasPrefix(pgErr.Code, "23"):
		return &ConstraintError{Kind: ConstraintOther, Column: pgErr.ColumnName, cause: err}
	}
	return err
}

// uniqueColumn extracts the interesting column from a unique-index name
// such as idx_registrations_email.
func uniqueColumn(constraint string) string {
	switch {
	case strings.Contains(constraint, "email"):
		return "email"
	case strings.Contains(constraint, "identity"):
		return "identity_card_number"
	}
	return ""
}

package database

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

// SQLSTATE codes the repositories care about.
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgInvalidText         = "22P02"
)

// IsNoRows reports whether err is pgx's empty-result error.
func IsNoRows(err error) bool {
	return stderrors.Is(err, pgx.ErrNoRows)
}

// WrapError classifies a store error. Constraint violations are caller
// errors; everything else is reported as the store being unavailable so the
// user can retry.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Wrap(err, errors.ErrCodeConflict, message)
		case pgCheckViolation, pgNotNullViolation, pgForeignKeyViolation, pgInvalidText:
			return errors.Wrap(err, errors.ErrCodeValidation, message)
		}
		return errors.Wrap(err, errors.ErrCodeInternal, message)
	}

	// network failures, timeouts and cancelled contexts
	return errors.Wrap(err, errors.ErrCodeUnavailable, message)
}

package testutil

import (
	ierr "github.com/hotelhub/hotelhub/internal/errors"
)

func notFound(entity, id string) error {
	return ierr.NewErrorf("%s not found", entity).
		WithHintf("%s not found", entity).
		WithReportableDetails(map[string]any{"id": id}).
		Mark(ierr.ErrNotFound)
}

// withHint re-hints a store error while keeping its kind
func withHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return ierr.WithError(err).WithHint(hint).Mark(kindOf(err))
}

func kindOf(err error) error {
	switch {
	case ierr.IsNotFound(err):
		return ierr.ErrNotFound
	case ierr.IsAlreadyExists(err):
		return ierr.ErrAlreadyExists
	case ierr.IsConflict(err):
		return ierr.ErrConflict
	default:
		return ierr.ErrDatabase
	}
}

package service

import (
	"database/sql"
	"errors"

	appErrors "github.com/aaravmahajanofficial/online-shop/internal/errors"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
)

// repoError converts a repository failure into the AppError the caller sees. Errors that are
// already AppErrors pass through untouched.
func repoError(err error, entity string) error {
	if _, ok := appErrors.IsAppError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.NotFoundError(entity + " not found").WithError(err)
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.DuplicateEntryError(entity + " already exists").WithError(err)
	case errors.Is(err, repository.ErrInvalidReference):
		return appErrors.BadRequestError("Referenced record does not exist").WithError(err)
	case errors.Is(err, repository.ErrReferenced):
		return appErrors.ConflictError(entity + " is still referenced").WithError(err)
	default:
		return appErrors.DatabaseError("Failed to access " + entity).WithError(err)
	}
}

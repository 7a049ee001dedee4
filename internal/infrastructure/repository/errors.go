package repository

import (
	"errors"

	"github.com/sellweave/pos-api/pkg/apperror"
	"gorm.io/gorm"
)

// wrapStorage classifies a GORM error for the service layer. Application
// errors produced inside repository transactions pass through unchanged;
// anything else is a storage failure the core does not retry.
func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewStorageError(err)
}

// isDuplicate reports whether err is a unique constraint violation. Relies
// on the postgres driver's error translation being enabled on the gorm
// config.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

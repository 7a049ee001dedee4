package repository

import (
	"fmt"

	"github.com/sellweave/pos-api/pkg/apperror"
	"gorm.io/gorm"
)

// nextCounterValue advances a named sequence and returns the new value. The
// upsert-and-return runs as a single statement inside the caller's
// transaction, so concurrent allocations can never observe the same value.
// This replaces the read-max-then-increment pattern, which hands out
// duplicate numbers under concurrency.
func nextCounterValue(tx *gorm.DB, name string) (int64, error) {
	var value int64
	err := tx.Raw(
		`INSERT INTO counters (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		 RETURNING value`,
		name,
	).Scan(&value).Error
	if err != nil {
		return 0, apperror.NewStorageError(err)
	}
	return value, nil
}

// formatSequence renders a sequence value as a human-readable ticket number
func formatSequence(prefix string, value int64) string {
	return fmt.Sprintf("%s-%06d", prefix, value)
}

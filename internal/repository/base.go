package repository

import (
	"errors"

	"face2geek/internal/database"
	"face2geek/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// insertIfAbsent inserts row unless a unique key already holds it. It reports
// whether this call created the row.
//
// A unique violation despite the DO NOTHING clause is read as "already
// present" on SQLite only. PostgreSQL suppresses every unique conflict under
// a target-less DO NOTHING, and a failed statement there aborts the enclosing
// transaction, so the error is returned and the transaction rolls back.
func insertIfAbsent(tx *gorm.DB, row interface{}) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		if database.IsUniqueViolation(res.Error) && tx.Dialector.Name() != "postgres" {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// lookupError maps a single-row lookup failure onto the application taxonomy.
func lookupError(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tsvs/backend/internal/domain/shared"
)

// translate maps GORM errors onto the shared domain sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errReferenceInUse
	}
	return err
}

var errReferenceInUse = shared.NewDomainError("INVALID_REFERENCE", "Referenced record does not exist or is still in use")

// deleteUnreferenced deletes the row with the given id unless a row of ref
// points at it through column. sqlite reports a RESTRICT violation as a plain
// constraint error, so the check runs up front instead of relying on the
// driver's error translation.
func deleteUnreferenced(ctx context.Context, db *gorm.DB, model, ref any, column string, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(ref).Where(column+" = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errReferenceInUse
		}
		return affected(tx.Delete(model, "id = ?", id))
	})
}

// affected turns a zero-row write into shared.ErrNotFound
func affected(result *gorm.DB) error {
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

package repo

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"mdt/pkg/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormDBCli struct {
	db *gorm.DB
}

type InterGormDBCli interface {
	Create(table, value interface{}) error
	Update(value Update) error
	Updates(value Updates) error
	Delete(value Delete) error
}

func NewInterGormDBCli(db *gorm.DB) InterGormDBCli {
	return &GormDBCli{
		db: db,
	}
}

// Create inserts value, converting a value type to a pointer so gorm can
// fill defaults.
func (g GormDBCli) Create(table, value interface{}) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		valueType := reflect.TypeOf(value)
		if valueType == nil {
			return fmt.Errorf("nothing to insert")
		}

		var createTarget interface{}
		if valueType.Kind() == reflect.Ptr {
			createTarget = value
		} else {
			valuePtr := reflect.New(valueType)
			valuePtr.Elem().Set(reflect.ValueOf(value))
			createTarget = valuePtr.Interface()
		}

		return tx.Model(table).Create(createTarget).Error
	}, "insert failed")
}

// Update sets a single column.
func (g GormDBCli) Update(value Update) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		tx = tx.Model(value.Table)
		for column, val := range value.Where {
			tx = tx.Where(column, val)
		}
		return tx.Update(value.Column, value.Value).Error
	}, "update failed")
}

// Updates sets several columns from a struct or map.
func (g GormDBCli) Updates(value Updates) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		tx = tx.Model(value.Table)
		for column, val := range value.Where {
			tx = tx.Where(column, val)
		}
		return tx.Updates(value.Updates).Error
	}, "update failed")
}

// Delete removes the matching rows, NotFound when there are none.
func (g GormDBCli) Delete(value Delete) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		tx = tx.Model(value.Table)
		for column, val := range value.Where {
			tx = tx.Where(column, val)
		}

		var deleteTarget interface{}
		tableType := reflect.TypeOf(value.Table)
		if tableType == nil {
			return fmt.Errorf("delete target has no type")
		}

		if tableType.Kind() == reflect.Ptr {
			deleteTarget = value.Table
		} else {
			deleteTarget = reflect.New(tableType).Interface()
		}

		res := tx.Delete(deleteTarget)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return nil
	}, "delete failed")
}

// executeTransaction runs operation in its own transaction. Structured
// errors pass through untouched so the API layer can still map them.
func (g GormDBCli) executeTransaction(operation func(tx *gorm.DB) error, errorMessage string) error {
	tx := g.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	if err := operation(tx); err != nil {
		tx.Rollback()
		if e := translate(err); e != err {
			return e
		}
		return fmt.Errorf("%s: %w", errorMessage, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Update sets Column to Value.
type Update struct {
	Table  interface{}
	Where  map[string]interface{}
	Column string
	Value  interface{}
}

type Updates struct {
	Table   interface{}
	Where   map[string]interface{}
	Updates interface{}
}

type Delete struct {
	Table interface{}
	Where map[string]interface{}
}

// forUpdate adds SELECT ... FOR UPDATE. Dialects without row locks ignore it.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockRow loads the row with the given id into dest under a row lock,
// returning NotFound naming entity when it does not exist.
func lockRow(tx *gorm.DB, dest interface{}, entity, id string) error {
	err := forUpdate(tx).Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

// findOne is First without the not-found error.
func findOne(db *gorm.DB, dest interface{}) (bool, error) {
	err := db.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// translate maps storage errors onto the structured kinds.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var e *apperr.Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || uniqueViolation(err) {
		return apperr.ErrDuplicate
	}
	return err
}

// uniqueViolation recognizes unique index failures from drivers that leave
// them untranslated.
func uniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

// notFound turns gorm.ErrRecordNotFound into a NotFound error.
func notFound(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

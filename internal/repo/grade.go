package repo

import (
	"mdt/internal/models"
	"mdt/pkg/apperr"

	"gorm.io/gorm"
)

type (
	GradeRepo struct {
		entryRepo
	}

	InterGradeRepo interface {
		List() ([]models.Grade, error)
		Get(id string) (models.Grade, error)
		GetByLevel(level int) (models.Grade, bool, error)
		Create(r models.Grade) error
		Save(r models.Grade) error
		Delete(id string) error
		Count() (int64, error)
	}
)

func newGradeInterface(db *gorm.DB, g InterGormDBCli) InterGradeRepo {
	return &GradeRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

// List returns grades from highest to lowest level.
func (gr GradeRepo) List() ([]models.Grade, error) {
	var data []models.Grade
	err := gr.db.Model(&models.Grade{}).Order("level DESC").Find(&data).Error
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (gr GradeRepo) Get(id string) (models.Grade, error) {
	var data models.Grade
	err := gr.db.Model(&models.Grade{}).Where("id = ?", id).First(&data).Error
	return data, notFound(err, "grade", id)
}

func (gr GradeRepo) GetByLevel(level int) (models.Grade, bool, error) {
	var data models.Grade
	ok, err := findOne(gr.db.Model(&models.Grade{}).Where("level = ?", level), &data)
	return data, ok, err
}

func (gr GradeRepo) Create(r models.Grade) error {
	return gr.g.Create(&models.Grade{}, r)
}

// Save writes every column of r. Permissions is a serialized column, so a
// struct save is the only way to clear all flags at once.
func (gr GradeRepo) Save(r models.Grade) error {
	return gr.db.Transaction(func(tx *gorm.DB) error {
		var current models.Grade
		if err := lockRow(tx, &current, "grade", r.ID); err != nil {
			return err
		}
		return translate(tx.Save(&r).Error)
	})
}

// Delete refuses while any officer holds the grade, real or visible.
func (gr GradeRepo) Delete(id string) error {
	return gr.db.Transaction(func(tx *gorm.DB) error {
		var grade models.Grade
		if err := lockRow(tx, &grade, "grade", id); err != nil {
			return err
		}

		var inUse int64
		err := tx.Model(&models.Officer{}).
			Where("grade_id = ? OR visible_grade_id = ?", id, id).
			Count(&inUse).Error
		if err != nil {
			return err
		}
		if inUse > 0 {
			return apperr.ErrGradeInUse.WithMessage("grade %s is held by %d officer(s)", grade.Name, inUse)
		}

		return tx.Delete(&models.Grade{}, "id = ?", id).Error
	})
}

func (gr GradeRepo) Count() (int64, error) {
	var n int64
	err := gr.db.Model(&models.Grade{}).Count(&n).Error
	return n, err
}

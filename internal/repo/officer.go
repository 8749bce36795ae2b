package repo

import (
	"errors"

	"mdt/internal/models"
	"mdt/pkg/apperr"

	"gorm.io/gorm"
)

type (
	OfficerRepo struct {
		entryRepo
	}

	InterOfficerRepo interface {
		Create(r models.Officer) error
		Get(id string) (models.Officer, error)
		GetByUsername(username string) (models.Officer, error)
		List(query, gradeId string, includeInactive bool) ([]models.Officer, error)
		Update(r models.Officer) error
		SetGrade(id, gradeId string, now int64) error
		Disable(id, by string, now int64) (ended bool, err error)
		Enable(id string, now int64) error
		SetPassword(id, hashed string, now int64) error
		TouchLogin(id string, at int64) error
		Briefs(ids []string) (map[string]models.OfficerBrief, error)
	}
)

func newOfficerInterface(db *gorm.DB, g InterGormDBCli) InterOfficerRepo {
	return &OfficerRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

// Create refuses a username that is already taken.
func (o OfficerRepo) Create(r models.Officer) error {
	return o.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Officer
		taken, err := findOne(tx.Model(&models.Officer{}).Where("username = ?", r.Username), &existing)
		if err != nil {
			return err
		}
		if taken {
			return apperr.ErrDuplicate.WithMessage("username %s is already taken", r.Username)
		}
		return translate(tx.Create(&r).Error)
	})
}

func (o OfficerRepo) Get(id string) (models.Officer, error) {
	var data models.Officer
	err := o.db.Model(&models.Officer{}).Where("id = ?", id).First(&data).Error
	return data, notFound(err, "officer", id)
}

func (o OfficerRepo) GetByUsername(username string) (models.Officer, error) {
	var data models.Officer
	err := o.db.Model(&models.Officer{}).Where("username = ?", username).First(&data).Error
	return data, notFound(err, "officer", username)
}

// List matches query against username, names and badge.
func (o OfficerRepo) List(query, gradeId string, includeInactive bool) ([]models.Officer, error) {
	var (
		data []models.Officer
		db   = o.db.Model(&models.Officer{})
	)

	if !includeInactive {
		db = db.Where("active = ?", true)
	}
	if gradeId != "" {
		db = db.Where("grade_id = ?", gradeId)
	}
	if query != "" {
		like := "%" + query + "%"
		db = db.Where("username LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR badge LIKE ?", like, like, like, like)
	}

	err := db.Order("last_name ASC, first_name ASC").Find(&data).Error
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Update writes the profile columns of r.
func (o OfficerRepo) Update(r models.Officer) error {
	return o.db.Transaction(func(tx *gorm.DB) error {
		var current models.Officer
		if err := lockRow(tx, &current, "officer", r.ID); err != nil {
			return err
		}
		return tx.Model(&models.Officer{}).Where("id = ?", r.ID).Updates(map[string]interface{}{
			"first_name":       r.FirstName,
			"last_name":        r.LastName,
			"badge":            r.Badge,
			"visible_grade_id": r.VisibleGradeId,
			"update_at":        r.UpdateAt,
		}).Error
	})
}

func (o OfficerRepo) SetGrade(id, gradeId string, now int64) error {
	return o.db.Transaction(func(tx *gorm.DB) error {
		var current models.Officer
		if err := lockRow(tx, &current, "officer", id); err != nil {
			return err
		}
		return tx.Model(&models.Officer{}).Where("id = ?", id).Updates(map[string]interface{}{
			"grade_id":  gradeId,
			"update_at": now,
		}).Error
	})
}

// Disable deactivates the account and, in the same transaction, closes an
// open duty session. ended reports whether a session was closed.
func (o OfficerRepo) Disable(id, by string, now int64) (ended bool, err error) {
	err = o.db.Transaction(func(tx *gorm.DB) error {
		var current models.Officer
		if err := lockRow(tx, &current, "officer", id); err != nil {
			return err
		}

		err := tx.Model(&models.Officer{}).Where("id = ?", id).Updates(map[string]interface{}{
			"active":    false,
			"update_at": now,
		}).Error
		if err != nil {
			return err
		}

		_, err = closeDutyTx(tx, id, now, models.EndedByDisabled, by)
		switch {
		case err == nil:
			ended = true
			return nil
		case errors.Is(err, apperr.ErrNotOnDuty):
			return nil
		default:
			return err
		}
	})
	return ended, err
}

func (o OfficerRepo) Enable(id string, now int64) error {
	return o.db.Transaction(func(tx *gorm.DB) error {
		var current models.Officer
		if err := lockRow(tx, &current, "officer", id); err != nil {
			return err
		}
		return tx.Model(&models.Officer{}).Where("id = ?", id).Updates(map[string]interface{}{
			"active":    true,
			"update_at": now,
		}).Error
	})
}

func (o OfficerRepo) SetPassword(id, hashed string, now int64) error {
	return o.g.Updates(Updates{
		Table: &models.Officer{},
		Where: map[string]interface{}{
			"id = ?": id,
		},
		Updates: map[string]interface{}{
			"password":  hashed,
			"update_at": now,
		},
	})
}

func (o OfficerRepo) TouchLogin(id string, at int64) error {
	return o.g.Update(Update{
		Table: &models.Officer{},
		Where: map[string]interface{}{
			"id = ?": id,
		},
		Column: "last_login_at",
		Value:  at,
	})
}

func (o OfficerRepo) Briefs(ids []string) (map[string]models.OfficerBrief, error) {
	return loadBriefs(o.db, ids)
}

// loadBriefs resolves roster views for ids, showing the visible grade name.
// Unknown ids are absent from the result.
func loadBriefs(db *gorm.DB, ids []string) (map[string]models.OfficerBrief, error) {
	out := make(map[string]models.OfficerBrief, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var officers []models.Officer
	if err := db.Model(&models.Officer{}).Where("id IN ?", ids).Find(&officers).Error; err != nil {
		return nil, err
	}

	gradeIds := make([]string, 0, len(officers))
	for _, of := range officers {
		gradeIds = append(gradeIds, of.DisplayGradeId())
	}

	var grades []models.Grade
	if err := db.Model(&models.Grade{}).Where("id IN ?", gradeIds).Find(&grades).Error; err != nil {
		return nil, err
	}
	gradeNames := make(map[string]string, len(grades))
	for _, g := range grades {
		gradeNames[g.ID] = g.Name
	}

	for _, of := range officers {
		out[of.ID] = models.OfficerBrief{
			ID:           of.ID,
			Username:     of.Username,
			FullName:     of.FullName(),
			Badge:        of.Badge,
			DisplayGrade: gradeNames[of.DisplayGradeId()],
		}
	}
	return out, nil
}

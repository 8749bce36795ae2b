package repo

import (
	"errors"

	"mdt/internal/models"
	"mdt/pkg/apperr"
	"mdt/pkg/tools"

	"gorm.io/gorm"
)

type (
	CentraleRepo struct {
		entryRepo
	}

	InterCentraleRepo interface {
		CreateNote(r models.CentraleNote) error
		GetNote(id string) (models.CentraleNote, error)
		ListNotes(pinnedOnly bool, patrolId string) ([]models.CentraleNote, error)
		SetPinned(id string, pinned bool) (models.CentraleNote, error)
		DeleteNote(id string) error
		AssignOperator(officerId, assignedBy string, now int64) (models.CentraleOperator, error)
		CurrentOperator() (models.CentraleOperator, bool, error)
		ReleaseOperator(now int64) (models.CentraleOperator, error)
	}
)

func newCentraleInterface(db *gorm.DB, g InterGormDBCli) InterCentraleRepo {
	return &CentraleRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

// CreateNote checks the author and the optional patrol in the same
// transaction as the insert.
func (c CentraleRepo) CreateNote(r models.CentraleNote) error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		var author models.Officer
		if err := lockRow(tx, &author, "officer", r.AuthorId); err != nil {
			return err
		}
		if r.PatrolId != nil {
			var patrol models.Patrol
			if err := lockRow(tx, &patrol, "patrol", *r.PatrolId); err != nil {
				return err
			}
		}
		return translate(tx.Create(&r).Error)
	})
}

func (c CentraleRepo) GetNote(id string) (models.CentraleNote, error) {
	var data models.CentraleNote
	err := c.db.Model(&models.CentraleNote{}).Where("id = ?", id).First(&data).Error
	return data, notFound(err, "note", id)
}

// ListNotes returns pinned notes first, then newest first.
func (c CentraleRepo) ListNotes(pinnedOnly bool, patrolId string) ([]models.CentraleNote, error) {
	var (
		data []models.CentraleNote
		db   = c.db.Model(&models.CentraleNote{})
	)

	if pinnedOnly {
		db = db.Where("pinned = ?", true)
	}
	if patrolId != "" {
		db = db.Where("patrol_id = ?", patrolId)
	}

	err := db.Order("pinned DESC, create_at DESC").Find(&data).Error
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c CentraleRepo) SetPinned(id string, pinned bool) (models.CentraleNote, error) {
	var note models.CentraleNote
	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &note, "note", id); err != nil {
			return err
		}
		note.Pinned = pinned
		return tx.Model(&models.CentraleNote{}).Where("id = ?", id).Update("pinned", pinned).Error
	})
	return note, err
}

func (c CentraleRepo) DeleteNote(id string) error {
	err := c.g.Delete(Delete{
		Table: &models.CentraleNote{},
		Where: map[string]interface{}{
			"id = ?": id,
		},
	})
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound("note", id)
	}
	return err
}

// AssignOperator makes officerId the single active operator. The target
// must be on duty; the previous operator is released in the same
// transaction, and the active_key unique column refuses a second active row.
func (c CentraleRepo) AssignOperator(officerId, assignedBy string, now int64) (models.CentraleOperator, error) {
	var operator models.CentraleOperator
	err := c.db.Transaction(func(tx *gorm.DB) error {
		var officer models.Officer
		if err := lockRow(tx, &officer, "officer", officerId); err != nil {
			return err
		}
		if !officer.IsActive() {
			return apperr.ErrOfficerInactive
		}

		var open models.DutySession
		ok, err := findOne(tx.Model(&models.DutySession{}).Where("officer_id = ? AND end_at IS NULL", officerId), &open)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrNotOnDuty.WithMessage("officer %s must be on duty to operate the centrale", officerId)
		}

		var current []models.CentraleOperator
		if err := forUpdate(tx).Model(&models.CentraleOperator{}).Where("active = ?", true).Find(&current).Error; err != nil {
			return err
		}
		if err := releaseOperatorTx(tx, "active = ?", true, now); err != nil {
			return err
		}

		operator = models.CentraleOperator{
			ID:         tools.NewId("op"),
			OfficerId:  officerId,
			AssignedBy: assignedBy,
			Active:     true,
			ActiveKey:  tools.StringPtr(models.OperatorActiveKey),
			AssignedAt: now,
		}
		if err := tx.Create(&operator).Error; err != nil {
			if errors.Is(translate(err), apperr.ErrDuplicate) {
				return apperr.ErrDuplicate.WithMessage("another operator was assigned concurrently")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return models.CentraleOperator{}, err
	}

	briefs, err := loadBriefs(c.db, []string{officerId})
	if err != nil {
		return operator, err
	}
	operator.Officer = briefs[officerId]
	return operator, nil
}

func (c CentraleRepo) CurrentOperator() (models.CentraleOperator, bool, error) {
	var operator models.CentraleOperator
	ok, err := findOne(c.db.Model(&models.CentraleOperator{}).Where("active = ?", true), &operator)
	if err != nil || !ok {
		return operator, false, err
	}

	briefs, err := loadBriefs(c.db, []string{operator.OfficerId})
	if err != nil {
		return operator, false, err
	}
	operator.Officer = briefs[operator.OfficerId]
	return operator, true, nil
}

// ReleaseOperator ends the active assignment, returning it.
func (c CentraleRepo) ReleaseOperator(now int64) (models.CentraleOperator, error) {
	var operator models.CentraleOperator
	err := c.db.Transaction(func(tx *gorm.DB) error {
		ok, err := findOne(forUpdate(tx).Model(&models.CentraleOperator{}).Where("active = ?", true), &operator)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("operator", "current")
		}
		if err := releaseOperatorTx(tx, "id = ?", operator.ID, now); err != nil {
			return err
		}
		operator.Active = false
		operator.ActiveKey = nil
		operator.ReleasedAt = tools.Int64Ptr(now)
		return nil
	})
	return operator, err
}

// releaseOperatorTx deactivates the active operator rows matching where.
func releaseOperatorTx(tx *gorm.DB, where string, arg interface{}, now int64) error {
	return tx.Model(&models.CentraleOperator{}).
		Where(where, arg).
		Where("active = ?", true).
		Updates(map[string]interface{}{
			"active":      false,
			"active_key":  nil,
			"released_at": now,
		}).Error
}

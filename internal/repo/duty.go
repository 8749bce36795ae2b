package repo

import (
	"errors"

	"mdt/internal/models"
	"mdt/pkg/apperr"
	"mdt/pkg/tools"

	"gorm.io/gorm"
)

type (
	DutyRepo struct {
		entryRepo
	}

	InterDutyRepo interface {
		Start(officerId string, now int64) (models.DutySession, error)
		End(officerId string, now int64, endedBy, endedById string) (models.DutySession, error)
		Open(officerId string) (models.DutySession, bool, error)
		ListOpen() ([]models.DutySession, error)
		History(officerId string, page models.Page) ([]models.DutySession, int64, error)
		StaleOpen(startedBefore int64) ([]models.DutySession, error)
	}
)

func newDutyInterface(db *gorm.DB, g InterGormDBCli) InterDutyRepo {
	return &DutyRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

// Start opens a session. The officer row lock serializes concurrent starts
// and the open_key unique index catches anything that slips past it.
func (d DutyRepo) Start(officerId string, now int64) (models.DutySession, error) {
	var session models.DutySession
	err := d.db.Transaction(func(tx *gorm.DB) error {
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
		if ok {
			return apperr.ErrAlreadyOnDuty
		}

		session = models.DutySession{
			ID:        tools.NewId("ds"),
			OfficerId: officerId,
			StartAt:   now,
			OpenKey:   tools.StringPtr(officerId),
		}
		if err := tx.Create(&session).Error; err != nil {
			if errors.Is(translate(err), apperr.ErrDuplicate) {
				return apperr.ErrAlreadyOnDuty
			}
			return err
		}
		return nil
	})
	return session, err
}

func (d DutyRepo) End(officerId string, now int64, endedBy, endedById string) (models.DutySession, error) {
	var session models.DutySession
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var officer models.Officer
		if err := lockRow(tx, &officer, "officer", officerId); err != nil {
			return err
		}

		var err error
		session, err = closeDutyTx(tx, officerId, now, endedBy, endedById)
		return err
	})
	return session, err
}

// closeDutyTx ends the open session of officerId inside tx: the duration is
// added to the officer's total, the patrol membership is removed and an
// active operator record held by the officer is released. The caller must
// hold the officer row lock.
func closeDutyTx(tx *gorm.DB, officerId string, now int64, endedBy, endedById string) (models.DutySession, error) {
	var session models.DutySession
	ok, err := findOne(forUpdate(tx).Model(&models.DutySession{}).Where("officer_id = ? AND end_at IS NULL", officerId), &session)
	if err != nil {
		return session, err
	}
	if !ok {
		return session, apperr.ErrNotOnDuty
	}

	duration := session.Elapsed(now)
	err = tx.Model(&models.DutySession{}).Where("id = ?", session.ID).Updates(map[string]interface{}{
		"end_at":      now,
		"duration":    duration,
		"ended_by":    endedBy,
		"ended_by_id": endedById,
		"open_key":    nil,
	}).Error
	if err != nil {
		return session, err
	}

	err = tx.Model(&models.Officer{}).Where("id = ?", officerId).
		Update("total_service_seconds", gorm.Expr("total_service_seconds + ?", duration)).Error
	if err != nil {
		return session, err
	}

	if err := tx.Where("officer_id = ?", officerId).Delete(&models.PatrolMember{}).Error; err != nil {
		return session, err
	}

	if err := releaseOperatorTx(tx, "officer_id = ?", officerId, now); err != nil {
		return session, err
	}

	session.EndAt = tools.Int64Ptr(now)
	session.Duration = duration
	session.EndedBy = endedBy
	session.EndedById = endedById
	session.OpenKey = nil
	return session, nil
}

func (d DutyRepo) Open(officerId string) (models.DutySession, bool, error) {
	var session models.DutySession
	ok, err := findOne(d.db.Model(&models.DutySession{}).Where("officer_id = ? AND end_at IS NULL", officerId), &session)
	return session, ok, err
}

// ListOpen returns every open session, longest running first.
func (d DutyRepo) ListOpen() ([]models.DutySession, error) {
	var data []models.DutySession
	err := d.db.Model(&models.DutySession{}).Where("end_at IS NULL").Order("start_at ASC").Find(&data).Error
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (d DutyRepo) History(officerId string, page models.Page) ([]models.DutySession, int64, error) {
	var (
		data  []models.DutySession
		count int64
		db    = d.db.Model(&models.DutySession{}).Where("officer_id = ?", officerId)
	)

	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := page.Normalize()
	err := db.Order("start_at DESC").Limit(limit).Offset(offset).Find(&data).Error
	if err != nil {
		return nil, 0, err
	}
	return data, count, nil
}

func (d DutyRepo) StaleOpen(startedBefore int64) ([]models.DutySession, error) {
	var data []models.DutySession
	err := d.db.Model(&models.DutySession{}).
		Where("end_at IS NULL AND start_at < ?", startedBefore).
		Find(&data).Error
	if err != nil {
		return nil, err
	}
	return data, nil
}
